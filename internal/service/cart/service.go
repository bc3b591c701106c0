package cart

import (
	"context"
	"errors"

	"shopd/internal/domain"
)

var (
	// ErrItemNotFound is returned when the item id does not resolve in the
	// catalog.
	ErrItemNotFound = errors.New("item not found")
	// ErrInvalidQuantity is returned for zero or negative quantities.
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

type cartRepo interface {
	Create(ctx context.Context, userID int64) (*domain.Cart, error)
	GetByUser(ctx context.Context, userID int64) (*domain.Cart, error)
	AddLine(ctx context.Context, cartID, itemID int64, quantity int) error
	ListAll(ctx context.Context) ([]domain.Cart, error)
}

type itemRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
}

type Service struct {
	repo  cartRepo
	items itemRepo
}

func New(repo cartRepo, items itemRepo) *Service {
	return &Service{repo: repo, items: items}
}

// AddItem appends a line for itemID to the user's cart, creating the cart
// lazily if signup never did. Adding the same item twice appends a second
// line rather than bumping the quantity of the first.
func (s *Service) AddItem(ctx context.Context, userID, itemID int64, quantity int) (*domain.Cart, error) {
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.AddLine(ctx, cart.ID, itemID, quantity); err != nil {
		return nil, err
	}

	return s.repo.GetByUser(ctx, userID)
}

// ViewForUser returns the user's cart with resolved lines. A cart that was
// never created is domain.ErrNotFound, distinct from an empty cart.
func (s *Service) ViewForUser(ctx context.Context, userID int64) (*domain.Cart, error) {
	return s.repo.GetByUser(ctx, userID)
}

// ListAll returns every cart with resolved lines.
func (s *Service) ListAll(ctx context.Context) ([]domain.Cart, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) getOrCreate(ctx context.Context, userID int64) (*domain.Cart, error) {
	cart, err := s.repo.GetByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	cart, err = s.repo.Create(ctx, userID)
	if err != nil {
		// Lost a creation race: the unique owner constraint fired, so the
		// cart exists now.
		if errors.Is(err, domain.ErrAlreadyExists) {
			return s.repo.GetByUser(ctx, userID)
		}
		return nil, err
	}
	return cart, nil
}
