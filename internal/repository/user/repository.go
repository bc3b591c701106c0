package user

import (
	"context"

	"shopd/internal/domain"
)

// Repository persists and fetches users. The token column is the user's
// single live session credential.
type Repository interface {
	Create(ctx context.Context, username, passwordHash, token string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByToken(ctx context.Context, token string) (*domain.User, error)
	ReplaceToken(ctx context.Context, id int64, token string) error
	List(ctx context.Context) ([]domain.User, error)
}
