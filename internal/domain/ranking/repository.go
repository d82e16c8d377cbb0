package ranking

import "context"

type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]Entry, error)
}
