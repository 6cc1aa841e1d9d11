package exportbatch

import "context"

type Repository interface {
	Create(ctx context.Context, batch Batch) error
	ListRecent(ctx context.Context, limit int) ([]Batch, error)
}
