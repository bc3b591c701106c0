package cart

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"shopd/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, userID int64) (*domain.Cart, error) {
	const q = `
INSERT INTO carts (user_id)
VALUES ($1)
RETURNING id, user_id, created_at
`
	var cart domain.Cart
	if err := r.pool.QueryRow(ctx, q, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	cart.Lines = []domain.CartLine{}
	return &cart, nil
}

func (r *postgresRepo) GetByUser(ctx context.Context, userID int64) (*domain.Cart, error) {
	const q = `
SELECT id, user_id, created_at
FROM carts
WHERE user_id = $1
`
	var cart domain.Cart
	if err := r.pool.QueryRow(ctx, q, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	lines, err := r.fetchLines(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	cart.Lines = lines
	return &cart, nil
}

// AddLine appends a new line inside a transaction that holds the cart row
// lock, so an append lands wholly before or wholly after a concurrent
// checkout drain. Repeated adds of the same item append separate lines.
func (r *postgresRepo) AddLine(ctx context.Context, cartID, itemID int64, quantity int) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var locked int64
	if err := tx.QueryRow(ctx, `SELECT id FROM carts WHERE id = $1 FOR UPDATE`, cartID).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO cart_lines (cart_id, item_id, quantity)
VALUES ($1, $2, $3)
`, cartID, itemID, quantity); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Cart, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, created_at
FROM carts
ORDER BY id ASC
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var carts []domain.Cart
	index := map[int64]int{}
	for rows.Next() {
		var cart domain.Cart
		if err := rows.Scan(&cart.ID, &cart.UserID, &cart.CreatedAt); err != nil {
			return nil, err
		}
		cart.Lines = []domain.CartLine{}
		index[cart.ID] = len(carts)
		carts = append(carts, cart)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(carts) == 0 {
		return carts, nil
	}

	lineRows, err := r.pool.Query(ctx, linesQuery+` ORDER BY cl.cart_id ASC, cl.id ASC`)
	if err != nil {
		return nil, err
	}
	defer lineRows.Close()

	for lineRows.Next() {
		line, err := scanLine(lineRows)
		if err != nil {
			return nil, err
		}
		if i, ok := index[line.CartID]; ok {
			carts[i].Lines = append(carts[i].Lines, line)
		}
	}
	if err := lineRows.Err(); err != nil {
		return nil, err
	}
	return carts, nil
}

const linesQuery = `
SELECT cl.id, cl.cart_id, cl.item_id, cl.quantity, cl.created_at,
       i.id, i.name, i.description, i.price, i.created_at
FROM cart_lines cl
JOIN items i ON i.id = cl.item_id
`

func (r *postgresRepo) fetchLines(ctx context.Context, cartID int64) ([]domain.CartLine, error) {
	rows, err := r.pool.Query(ctx, linesQuery+` WHERE cl.cart_id = $1 ORDER BY cl.id ASC`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []domain.CartLine{}
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func scanLine(rows pgx.Rows) (domain.CartLine, error) {
	var line domain.CartLine
	var it domain.Item
	if err := rows.Scan(
		&line.ID,
		&line.CartID,
		&line.ItemID,
		&line.Quantity,
		&line.CreatedAt,
		&it.ID,
		&it.Name,
		&it.Description,
		&it.Price,
		&it.CreatedAt,
	); err != nil {
		return domain.CartLine{}, err
	}
	line.Item = &it
	return line, nil
}
