package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"shopd/internal/domain"
)

var (
	// ErrMissingCredentials is returned when username or password is empty.
	ErrMissingCredentials = errors.New("username and password required")
	// ErrInvalidCredentials is returned when username/password do not match.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidToken indicates the provided token could not be resolved.
	ErrInvalidToken = errors.New("invalid token")
)

type userRepo interface {
	Create(ctx context.Context, username, passwordHash, token string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByToken(ctx context.Context, token string) (*domain.User, error)
	ReplaceToken(ctx context.Context, id int64, token string) error
	List(ctx context.Context) ([]domain.User, error)
}

type cartRepo interface {
	Create(ctx context.Context, userID int64) (*domain.Cart, error)
	GetByUser(ctx context.Context, userID int64) (*domain.Cart, error)
}

// Service handles signup/login flows and token resolution.
type Service struct {
	users  userRepo
	carts  cartRepo
	hasher PasswordHasher
}

// New creates a Service. A nil hasher falls back to bcrypt.
func New(users userRepo, carts cartRepo, hasher PasswordHasher) *Service {
	if hasher == nil {
		hasher = NewBcryptHasher()
	}
	return &Service{users: users, carts: carts, hasher: hasher}
}

// Signup registers a new user, issues an initial session token and creates
// the user's empty cart. A duplicate username surfaces as
// domain.ErrAlreadyExists.
func (s *Service) Signup(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	u, err := s.users.Create(ctx, username, hash, newToken())
	if err != nil {
		return nil, err
	}

	if _, err := s.carts.Create(ctx, u.ID); err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
		return nil, err
	}
	return u, nil
}

// Login validates credentials and replaces the user's session token. The
// previous token is invalid the moment the replacement commits. The user's
// cart is attached for the login response.
func (s *Service) Login(ctx context.Context, username, password string) (*domain.User, *domain.Cart, error) {
	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	token := newToken()
	if err := s.users.ReplaceToken(ctx, u.ID, token); err != nil {
		return nil, nil, err
	}
	u.Token = &token

	cart, err := s.carts.GetByUser(ctx, u.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, nil, err
	}
	return u, cart, nil
}

// ResolveToken maps a bearer token to its user. The store lookup is the
// sole validity check; tokens never expire on their own.
func (s *Service) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	u, err := s.users.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}

// List returns all users without credential fields.
func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// newToken returns a fresh unguessable session token. uuid v4 carries 122
// bits from crypto/rand.
func newToken() string {
	return uuid.NewString()
}
