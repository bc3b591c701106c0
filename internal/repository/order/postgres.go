package order

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
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

type lineSnapshot struct {
	itemID   int64
	quantity int
	price    float64
}

// CreateFromCart runs the checkout transaction. The cart row is locked for
// the duration, so concurrent line appends serialize against the drain. Any
// failure rolls back to the pre-checkout state: lines intact, no order.
func (r *postgresRepo) CreateFromCart(ctx context.Context, userID, cartID int64) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var locked int64
	err = tx.QueryRow(ctx, `
SELECT id FROM carts WHERE id = $1 AND user_id = $2 FOR UPDATE
`, cartID, userID).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	snapshots, err := snapshotLines(ctx, tx, cartID)
	if err != nil {
		return nil, err
	}

	total := 0.0
	for _, s := range snapshots {
		total += s.price * float64(s.quantity)
	}

	var orderID int64
	err = tx.QueryRow(ctx, `
INSERT INTO orders (user_id, status, total_price)
VALUES ($1, $2, $3)
RETURNING id
`, userID, domain.OrderStatusPending, total).Scan(&orderID)
	if err != nil {
		return nil, err
	}

	for _, s := range snapshots {
		if _, err := tx.Exec(ctx, `
INSERT INTO order_lines (order_id, item_id, quantity, price)
VALUES ($1, $2, $3, $4)
`, orderID, s.itemID, s.quantity, s.price); err != nil {
			return nil, err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE cart_id = $1`, cartID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: checkout user_id=%d cart_id=%d order_id=%d lines=%d", userID, cartID, orderID, len(snapshots))

	return r.getByID(ctx, orderID)
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, status, total_price, created_at
FROM orders
WHERE user_id = $1
ORDER BY created_at ASC, id ASC
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	index := map[int64]int{}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalPrice, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.Lines = []domain.OrderLine{}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	lineRows, err := r.pool.Query(ctx, linesQuery+`
WHERE o.user_id = $1
ORDER BY ol.order_id ASC, ol.id ASC
`, userID)
	if err != nil {
		return nil, err
	}
	defer lineRows.Close()

	for lineRows.Next() {
		line, err := scanLine(lineRows)
		if err != nil {
			return nil, err
		}
		if i, ok := index[line.OrderID]; ok {
			orders[i].Lines = append(orders[i].Lines, line)
		}
	}
	if err := lineRows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *postgresRepo) getByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := r.pool.QueryRow(ctx, `
SELECT id, user_id, status, total_price, created_at
FROM orders
WHERE id = $1
`, id).Scan(&o.ID, &o.UserID, &o.Status, &o.TotalPrice, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx, linesQuery+`
WHERE ol.order_id = $1
ORDER BY ol.id ASC
`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	o.Lines = []domain.OrderLine{}
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		o.Lines = append(o.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

func snapshotLines(ctx context.Context, tx pgx.Tx, cartID int64) ([]lineSnapshot, error) {
	rows, err := tx.Query(ctx, `
SELECT cl.item_id, cl.quantity, i.price
FROM cart_lines cl
JOIN items i ON i.id = cl.item_id
WHERE cl.cart_id = $1
ORDER BY cl.id ASC
`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []lineSnapshot
	for rows.Next() {
		var s lineSnapshot
		if err := rows.Scan(&s.itemID, &s.quantity, &s.price); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snapshots, nil
}

const linesQuery = `
SELECT ol.id, ol.order_id, ol.item_id, ol.quantity, ol.price, ol.created_at,
       i.id, i.name, i.description, i.price, i.created_at
FROM order_lines ol
JOIN orders o ON o.id = ol.order_id
JOIN items i ON i.id = ol.item_id
`

func scanLine(rows pgx.Rows) (domain.OrderLine, error) {
	var line domain.OrderLine
	var it domain.Item
	if err := rows.Scan(
		&line.ID,
		&line.OrderID,
		&line.ItemID,
		&line.Quantity,
		&line.Price,
		&line.CreatedAt,
		&it.ID,
		&it.Name,
		&it.Description,
		&it.Price,
		&it.CreatedAt,
	); err != nil {
		return domain.OrderLine{}, err
	}
	line.Item = &it
	return line, nil
}
