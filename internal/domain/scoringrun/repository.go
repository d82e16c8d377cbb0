package scoringrun

import "context"

type Repository interface {
	Save(ctx context.Context, summary Summary) error
	GetByID(ctx context.Context, runID string) (Summary, bool, error)
}
