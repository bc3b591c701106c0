package item

import (
	"context"
	"errors"
	"strings"

	"shopd/internal/domain"
	itemrepo "shopd/internal/repository/item"
)

// ErrInvalidItem is returned when name is empty or price is missing or
// negative.
var ErrInvalidItem = errors.New("name and price required")

type repo interface {
	Create(ctx context.Context, in itemrepo.CreateItemInput) (*domain.Item, error)
	List(ctx context.Context) ([]domain.Item, error)
}

type Service struct {
	repo repo
}

func New(repo repo) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Item, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price == nil || *in.Price < 0 {
		return nil, ErrInvalidItem
	}
	return s.repo.Create(ctx, itemrepo.CreateItemInput{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       *in.Price,
	})
}

func (s *Service) List(ctx context.Context) ([]domain.Item, error) {
	return s.repo.List(ctx)
}
