package school

import "context"

type Repository interface {
	List(ctx context.Context) ([]School, error)
}
