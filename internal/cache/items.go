// Package cache provides Redis-backed caching decorators for repository
// interfaces.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"shopd/internal/domain"
	itemrepo "shopd/internal/repository/item"
)

const defaultListKey = "items:all"

// CachingItemRepository decorates an item Repository with a read-through
// Redis cache over the catalog list. The catalog is read-mostly and items
// are immutable once created, so a single list key with invalidation on
// create is enough.
type CachingItemRepository struct {
	inner   itemrepo.Repository
	rdb     *redis.Client
	ttl     time.Duration
	listKey string
}

// NewCachingItemRepository wraps inner with Redis caching. A nil client
// makes the decorator a transparent passthrough. If ttl is 0 it defaults
// to 5 minutes.
func NewCachingItemRepository(rdb *redis.Client, ttl time.Duration, inner itemrepo.Repository) *CachingItemRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachingItemRepository{
		inner:   inner,
		rdb:     rdb,
		ttl:     ttl,
		listKey: defaultListKey,
	}
}

// Create inserts through the underlying repository and invalidates the
// cached list. Cache deletion is best effort.
func (c *CachingItemRepository) Create(ctx context.Context, in itemrepo.CreateItemInput) (*domain.Item, error) {
	it, err := c.inner.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	if c.rdb != nil {
		_ = c.rdb.Del(ctx, c.listKey).Err()
	}
	return it, nil
}

// GetByID always hits the underlying repository; single-item lookups are
// already indexed point reads.
func (c *CachingItemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	return c.inner.GetByID(ctx, id)
}

// List retrieves the catalog, checking the cache first and falling back to
// the database.
func (c *CachingItemRepository) List(ctx context.Context) ([]domain.Item, error) {
	if c.rdb == nil {
		return c.inner.List(ctx)
	}

	if b, err := c.rdb.Get(ctx, c.listKey).Bytes(); err == nil && len(b) > 0 {
		var out []domain.Item
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		_ = c.rdb.Del(ctx, c.listKey).Err()
	}

	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, c.listKey, b, c.ttl).Err()
	}

	return out, nil
}
