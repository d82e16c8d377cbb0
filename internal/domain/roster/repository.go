package roster

import "context"

// Repository reads roster periods maintained by the draft and transaction flows.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]Period, error)
}
