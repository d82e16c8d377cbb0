package eventbonus

import "context"

// Repository persists bonus rows with replace-set semantics: a replace call
// leaves exactly the given rows in the named scope.
type Repository interface {
	ListByLeagueSeason(ctx context.Context, leagueID, seasonID string) ([]Bonus, error)
	ReplaceSeason(ctx context.Context, leagueID, seasonID string, items []Bonus) error
	ReplaceWeek(ctx context.Context, leagueID, seasonID string, week int, items []Bonus) error
}
