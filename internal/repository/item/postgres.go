package item

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

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, in CreateItemInput) (*domain.Item, error) {
	const q = `
INSERT INTO items (name, description, price)
VALUES ($1, $2, $3)
RETURNING id, name, description, price, created_at
`
	var it domain.Item
	if err := r.pool.QueryRow(ctx, q, in.Name, in.Description, in.Price).Scan(
		&it.ID,
		&it.Name,
		&it.Description,
		&it.Price,
		&it.CreatedAt,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &it, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	const q = `
SELECT id, name, description, price, created_at
FROM items
WHERE id = $1
`
	var it domain.Item
	if err := r.pool.QueryRow(ctx, q, id).Scan(
		&it.ID,
		&it.Name,
		&it.Description,
		&it.Price,
		&it.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Item, error) {
	const q = `
SELECT id, name, description, price, created_at
FROM items
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("item repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Item
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
