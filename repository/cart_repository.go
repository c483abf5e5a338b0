package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"kisanagro-backend/cache"
	"kisanagro-backend/cart"
)

// Session carts live only as long as a visitor keeps browsing. The TTL is the
// "session ends" condition: an untouched cart simply expires.
const (
	cartKeyPrefix = "inquiry_cart:"
	cartTTL       = 24 * time.Hour
)

// CartRepository stores session inquiry carts in redis
type CartRepository struct{}

// NewCartRepository creates a new CartRepository
func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

// Ensure CartRepository implements CartRepositoryInterface
var _ CartRepositoryInterface = (*CartRepository)(nil)

// Get loads the cart for a session. A missing key yields a fresh empty cart,
// never an error: an expired session and a new session look the same.
func (r *CartRepository) Get(ctx context.Context, sessionID string) (*cart.Cart, error) {
	data, err := cache.Client.Get(ctx, cartKeyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return cart.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}
	return &c, nil
}

// Save writes the cart back and refreshes its TTL
func (r *CartRepository) Save(ctx context.Context, sessionID string, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	if err := cache.Client.Set(ctx, cartKeyPrefix+sessionID, data, cartTTL).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Delete discards a session's cart (cancelled flow or successful submission)
func (r *CartRepository) Delete(ctx context.Context, sessionID string) error {
	if err := cache.Client.Del(ctx, cartKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
