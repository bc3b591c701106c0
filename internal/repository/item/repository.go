package item

import (
	"context"

	"shopd/internal/domain"
)

type CreateItemInput struct {
	Name        string
	Description string
	Price       float64
}

// Repository persists and fetches catalog items.
type Repository interface {
	Create(ctx context.Context, in CreateItemInput) (*domain.Item, error)
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	List(ctx context.Context) ([]domain.Item, error)
}
