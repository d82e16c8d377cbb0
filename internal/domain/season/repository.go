package season

import "context"

// Repository describes season persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, seasonID string) (Season, bool, error)
	ListAwards(ctx context.Context, seasonID string) ([]Award, error)
}
