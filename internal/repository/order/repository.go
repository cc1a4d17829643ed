package order

import (
	"context"

	"delivery-platform/internal/domain"
)

// Repository persists and fetches orders.
type Repository interface {
	// Save inserts o when o.ID is zero, otherwise overwrites the row with that id.
	Save(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]domain.Order, error)
	Delete(ctx context.Context, id int64) error
}
