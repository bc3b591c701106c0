package order

import (
	"context"

	"shopd/internal/domain"
)

type repo interface {
	CreateFromCart(ctx context.Context, userID, cartID int64) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
}

type Service struct {
	repo repo
}

func New(repo repo) *Service {
	return &Service{repo: repo}
}

// Place drains the cart into a new pending order. The cart must exist and
// belong to userID, otherwise domain.ErrNotFound. An empty cart is allowed
// and yields an order with zero lines.
func (s *Service) Place(ctx context.Context, userID, cartID int64) (*domain.Order, error) {
	return s.repo.CreateFromCart(ctx, userID, cartID)
}

// ListForUser returns the caller's orders with resolved lines, oldest
// first.
func (s *Service) ListForUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}
