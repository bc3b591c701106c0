package order

import (
	"context"
	"errors"
	"testing"

	"shopd/internal/domain"
)

type stubRepo struct {
	order      *domain.Order
	orders     []domain.Order
	err        error
	lastUserID int64
	lastCartID int64
}

func (s *stubRepo) CreateFromCart(_ context.Context, userID, cartID int64) (*domain.Order, error) {
	s.lastUserID = userID
	s.lastCartID = cartID
	return s.order, s.err
}

func (s *stubRepo) ListByUser(_ context.Context, userID int64) ([]domain.Order, error) {
	s.lastUserID = userID
	return s.orders, s.err
}

func TestPlace_PassesOwnership(t *testing.T) {
	repo := &stubRepo{order: &domain.Order{ID: 1, UserID: 4, Status: domain.OrderStatusPending}}
	svc := New(repo)

	o, err := svc.Place(context.Background(), 4, 9)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if repo.lastUserID != 4 || repo.lastCartID != 9 {
		t.Fatalf("ownership not forwarded: user=%d cart=%d", repo.lastUserID, repo.lastCartID)
	}
	if o.Status != domain.OrderStatusPending {
		t.Fatalf("expected pending order, got %q", o.Status)
	}
}

func TestPlace_CartNotFound(t *testing.T) {
	svc := New(&stubRepo{err: domain.ErrNotFound})

	if _, err := svc.Place(context.Background(), 4, 9); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListForUser(t *testing.T) {
	repo := &stubRepo{orders: []domain.Order{{ID: 1}, {ID: 2}}}
	svc := New(repo)

	orders, err := svc.ListForUser(context.Background(), 4)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(orders) != 2 || repo.lastUserID != 4 {
		t.Fatalf("unexpected result len=%d user=%d", len(orders), repo.lastUserID)
	}
}
