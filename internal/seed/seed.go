package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type itemSeed struct {
	Name  string
	Price float64
}

type userSeed struct {
	Username string
	Password string
}

// Apply inserts basic seed data for manual testing. It is idempotent via
// ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	items := []itemSeed{
		{Name: "Laptop", Price: 999.99},
		{Name: "Mouse", Price: 29.99},
		{Name: "Keyboard", Price: 79.99},
		{Name: "Monitor", Price: 299.99},
		{Name: "Headphones", Price: 149.99},
		{Name: "USB Cable", Price: 9.99},
		{Name: "Webcam", Price: 89.99},
		{Name: "Desk Lamp", Price: 39.99},
	}

	users := []userSeed{
		{Username: "john", Password: "demo123"},
		{Username: "jane", Password: "demo456"},
		{Username: "bob", Password: "demo789"},
	}

	for _, it := range items {
		if err := upsertItem(ctx, pool, it); err != nil {
			return fmt.Errorf("upsert item %s: %w", it.Name, err)
		}
	}

	for _, u := range users {
		if err := ensureUser(ctx, pool, u); err != nil {
			return fmt.Errorf("ensure user %s: %w", u.Username, err)
		}
	}

	return nil
}

func upsertItem(ctx context.Context, pool *pgxpool.Pool, it itemSeed) error {
	const q = `
INSERT INTO items (name, price)
VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET price = EXCLUDED.price
`
	_, err := pool.Exec(ctx, q, it.Name, it.Price)
	return err
}

// ensureUser creates the user with a hashed password and an empty cart.
// Existing users keep their current credentials and token.
func ensureUser(ctx context.Context, pool *pgxpool.Pool, u userSeed) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO users (username, password_hash)
VALUES ($1, $2)
ON CONFLICT (username) DO UPDATE SET username = EXCLUDED.username
RETURNING id
`
	var userID int64
	if err := pool.QueryRow(ctx, q, u.Username, string(hash)).Scan(&userID); err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
INSERT INTO carts (user_id)
VALUES ($1)
ON CONFLICT (user_id) DO NOTHING
`, userID)
	return err
}
