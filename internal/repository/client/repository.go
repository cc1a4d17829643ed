package client

import (
	"context"

	"delivery-platform/internal/domain"
)

// Repository persists and fetches clients.
type Repository interface {
	// Save inserts c when c.ID is zero, otherwise overwrites the row with that id.
	Save(ctx context.Context, c domain.Client) (*domain.Client, error)
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	GetByEmail(ctx context.Context, email string) (*domain.Client, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]domain.Client, error)
	Delete(ctx context.Context, id int64) error
}
