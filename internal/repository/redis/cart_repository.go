package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"rajwen/domain"

	"github.com/redis/go-redis/v9"
)

// cartTTL keeps abandoned carts from piling up; every write refreshes it.
const cartTTL = 24 * time.Hour

type CartRepository struct {
	client *redis.Client
}

func NewCartRepository(client *redis.Client) *CartRepository {
	return &CartRepository{
		client: client,
	}
}

func cartKey(userID uint) string {
	return fmt.Sprintf("cart:user:%d", userID)
}

// Get returns the stored cart, or an empty cart when none exists.
func (r *CartRepository) Get(ctx context.Context, userID uint) (domain.Cart, error) {
	val, err := r.client.Get(ctx, cartKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Cart{}, nil
		}
		return domain.Cart{}, fmt.Errorf("failed to get cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal([]byte(val), &cart); err != nil {
		return domain.Cart{}, fmt.Errorf("failed to unmarshal cart: %w", err)
	}

	return cart, nil
}

func (r *CartRepository) Save(ctx context.Context, userID uint, cart domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	if err := r.client.Set(ctx, cartKey(userID), data, cartTTL).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}

	return nil
}

func (r *CartRepository) Delete(ctx context.Context, userID uint) error {
	if err := r.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	return nil
}
