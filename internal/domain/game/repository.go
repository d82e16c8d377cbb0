package game

import "context"

// Repository reads games written by the results ingestor. UpdateWeek is the
// only mutation the scoring engine performs on games.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]Game, error)
	ListBySeasonWeek(ctx context.Context, seasonID string, week int) ([]Game, error)
	UpdateWeek(ctx context.Context, gameID string, week int) error
}
