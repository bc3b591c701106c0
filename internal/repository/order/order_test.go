package order

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"shopd/internal/domain"
	"shopd/internal/migrate"
)

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE order_lines, orders, cart_lines, carts, items, users RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

type fixture struct {
	userID int64
	cartID int64
	items  map[string]int64
}

func seedCheckout(ctx context.Context, t *testing.T, pool *pgxpool.Pool) fixture {
	t.Helper()
	f := fixture{items: map[string]int64{}}

	if err := pool.QueryRow(ctx, `INSERT INTO users (username, password_hash) VALUES ('john', 'x') RETURNING id`).Scan(&f.userID); err != nil {
		t.Fatalf("insert user: %v", err)
	}
	if err := pool.QueryRow(ctx, `INSERT INTO carts (user_id) VALUES ($1) RETURNING id`, f.userID).Scan(&f.cartID); err != nil {
		t.Fatalf("insert cart: %v", err)
	}
	for name, price := range map[string]float64{"Laptop": 999.99, "Mouse": 29.99} {
		var id int64
		if err := pool.QueryRow(ctx, `INSERT INTO items (name, price) VALUES ($1, $2) RETURNING id`, name, price).Scan(&id); err != nil {
			t.Fatalf("insert item: %v", err)
		}
		f.items[name] = id
	}
	return f
}

func addCartLine(ctx context.Context, t *testing.T, pool *pgxpool.Pool, cartID, itemID int64, qty int) {
	t.Helper()
	if _, err := pool.Exec(ctx, `INSERT INTO cart_lines (cart_id, item_id, quantity) VALUES ($1, $2, $3)`, cartID, itemID, qty); err != nil {
		t.Fatalf("insert cart line: %v", err)
	}
}

func countCartLines(ctx context.Context, t *testing.T, pool *pgxpool.Pool, cartID int64) int {
	t.Helper()
	var n int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM cart_lines WHERE cart_id = $1`, cartID).Scan(&n); err != nil {
		t.Fatalf("count cart lines: %v", err)
	}
	return n
}

func TestPostgres_CreateFromCart(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()
	resetTables(ctx, t, pool)

	f := seedCheckout(ctx, t, pool)
	addCartLine(ctx, t, pool, f.cartID, f.items["Laptop"], 1)
	addCartLine(ctx, t, pool, f.cartID, f.items["Mouse"], 2)

	repo := NewPostgres(pool, nil)
	placed, err := repo.CreateFromCart(ctx, f.userID, f.cartID)
	if err != nil {
		t.Fatalf("CreateFromCart: %v", err)
	}
	if placed.Status != domain.OrderStatusPending {
		t.Fatalf("status = %q, want pending", placed.Status)
	}
	if len(placed.Lines) != 2 {
		t.Fatalf("got %d order lines, want 2", len(placed.Lines))
	}
	wantTotal := 999.99 + 2*29.99
	if placed.TotalPrice != wantTotal {
		t.Fatalf("total = %v, want %v", placed.TotalPrice, wantTotal)
	}

	// The cart is drained but the cart row survives for reuse.
	if n := countCartLines(ctx, t, pool, f.cartID); n != 0 {
		t.Fatalf("cart still has %d lines", n)
	}
	var cartCount int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM carts WHERE id = $1`, f.cartID).Scan(&cartCount); err != nil {
		t.Fatalf("count carts: %v", err)
	}
	if cartCount != 1 {
		t.Fatal("cart row was deleted by checkout")
	}
}

func TestPostgres_CreateFromCartSnapshotsPrices(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()
	resetTables(ctx, t, pool)

	f := seedCheckout(ctx, t, pool)
	addCartLine(ctx, t, pool, f.cartID, f.items["Mouse"], 1)

	repo := NewPostgres(pool, nil)
	placed, err := repo.CreateFromCart(ctx, f.userID, f.cartID)
	if err != nil {
		t.Fatalf("CreateFromCart: %v", err)
	}

	// A later catalog price change must not touch the recorded order.
	if _, err := pool.Exec(ctx, `UPDATE items SET price = 99.99 WHERE id = $1`, f.items["Mouse"]); err != nil {
		t.Fatalf("update price: %v", err)
	}

	orders, err := repo.ListByUser(ctx, f.userID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != placed.ID {
		t.Fatalf("unexpected orders %+v", orders)
	}
	if got := orders[0].Lines[0].Price; got != 29.99 {
		t.Fatalf("line price = %v, want snapshot 29.99", got)
	}
	if orders[0].TotalPrice != 29.99 {
		t.Fatalf("total = %v, want snapshot 29.99", orders[0].TotalPrice)
	}
}

func TestPostgres_CreateFromCartNotOwned(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()
	resetTables(ctx, t, pool)

	f := seedCheckout(ctx, t, pool)
	addCartLine(ctx, t, pool, f.cartID, f.items["Mouse"], 1)

	var otherID int64
	if err := pool.QueryRow(ctx, `INSERT INTO users (username, password_hash) VALUES ('jane', 'x') RETURNING id`).Scan(&otherID); err != nil {
		t.Fatalf("insert user: %v", err)
	}

	repo := NewPostgres(pool, nil)
	if _, err := repo.CreateFromCart(ctx, otherID, f.cartID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// A rejected checkout must leave the cart untouched.
	if n := countCartLines(ctx, t, pool, f.cartID); n != 1 {
		t.Fatalf("cart lines = %d, want 1", n)
	}
	var orderCount int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM orders`).Scan(&orderCount); err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("orders created = %d, want 0", orderCount)
	}
}

func TestPostgres_CreateFromCartEmptyCart(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()
	resetTables(ctx, t, pool)

	f := seedCheckout(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	placed, err := repo.CreateFromCart(ctx, f.userID, f.cartID)
	if err != nil {
		t.Fatalf("CreateFromCart: %v", err)
	}
	if len(placed.Lines) != 0 || placed.TotalPrice != 0 {
		t.Fatalf("empty checkout produced %+v", placed)
	}
}

func TestPostgres_ListByUserOrdering(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()
	resetTables(ctx, t, pool)

	f := seedCheckout(ctx, t, pool)
	repo := NewPostgres(pool, nil)

	addCartLine(ctx, t, pool, f.cartID, f.items["Mouse"], 1)
	first, err := repo.CreateFromCart(ctx, f.userID, f.cartID)
	if err != nil {
		t.Fatalf("first checkout: %v", err)
	}
	addCartLine(ctx, t, pool, f.cartID, f.items["Laptop"], 1)
	second, err := repo.CreateFromCart(ctx, f.userID, f.cartID)
	if err != nil {
		t.Fatalf("second checkout: %v", err)
	}

	orders, err := repo.ListByUser(ctx, f.userID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(orders) != 2 || orders[0].ID != first.ID || orders[1].ID != second.ID {
		t.Fatalf("unexpected order listing %+v", orders)
	}
	if orders[1].Lines[0].Item == nil || orders[1].Lines[0].Item.Name != "Laptop" {
		t.Fatalf("item not resolved on line %+v", orders[1].Lines[0])
	}
}
