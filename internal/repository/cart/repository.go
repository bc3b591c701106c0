package cart

import (
	"context"

	"shopd/internal/domain"
)

// Repository persists carts and their lines. Every user owns at most one
// cart, enforced by a unique constraint on the owner column.
type Repository interface {
	Create(ctx context.Context, userID int64) (*domain.Cart, error)
	GetByUser(ctx context.Context, userID int64) (*domain.Cart, error)
	AddLine(ctx context.Context, cartID, itemID int64, quantity int) error
	ListAll(ctx context.Context) ([]domain.Cart, error)
}
