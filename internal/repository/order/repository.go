package order

import (
	"context"

	"shopd/internal/domain"
)

// Repository creates and fetches orders. CreateFromCart is the checkout
// transaction: it snapshots the cart's lines into order lines and drains
// the cart atomically.
type Repository interface {
	CreateFromCart(ctx context.Context, userID, cartID int64) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
}
