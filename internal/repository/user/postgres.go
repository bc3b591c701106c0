package user

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"shopd/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, username, passwordHash, token string) (*domain.User, error) {
	const q = `
INSERT INTO users (username, password_hash, token)
VALUES ($1, $2, $3)
RETURNING id, username, password_hash, token, created_at
`
	u, err := scanUser(r.pool.QueryRow(ctx, q, username, passwordHash, token))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return u, nil
}

func (r *postgresRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const q = `
SELECT id, username, password_hash, token, created_at
FROM users
WHERE username = $1
LIMIT 1
`
	return scanUser(r.pool.QueryRow(ctx, q, username))
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const q = `
SELECT id, username, password_hash, token, created_at
FROM users
WHERE id = $1
`
	return scanUser(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) GetByToken(ctx context.Context, token string) (*domain.User, error) {
	const q = `
SELECT id, username, password_hash, token, created_at
FROM users
WHERE token = $1
LIMIT 1
`
	return scanUser(r.pool.QueryRow(ctx, q, token))
}

// ReplaceToken overwrites the user's token in a single-row update, so a
// concurrent lookup sees either the old token or the new one, never both.
func (r *postgresRepo) ReplaceToken(ctx context.Context, id int64, token string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE users SET token = $1 WHERE id = $2`, token, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns all users with credential fields left empty.
func (r *postgresRepo) List(ctx context.Context) ([]domain.User, error) {
	const q = `
SELECT id, username, created_at
FROM users
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("user repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var token *string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &token, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	u.Token = token
	return &u, nil
}
