package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/feyerinaGO/RestaurantVoting/internal/core/domain"
	"github.com/feyerinaGO/RestaurantVoting/internal/core/ports"
)

// listingTTL bounds staleness if an invalidation is ever missed.
const listingTTL = 10 * time.Minute

type restaurantCache struct {
	client *redis.Client
}

func NewRestaurantCache(client *redis.Client) ports.RestaurantCache {
	return &restaurantCache{
		client: client,
	}
}

func (c *restaurantCache) GetListing(ctx context.Context, date time.Time) ([]*domain.Restaurant, bool, error) {
	payload, err := c.client.Get(ctx, listingKey(date)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cached listing: %w", err)
	}

	var restaurants []*domain.Restaurant
	if err := json.Unmarshal(payload, &restaurants); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached listing: %w", err)
	}
	return restaurants, true, nil
}

func (c *restaurantCache) SetListing(ctx context.Context, date time.Time, restaurants []*domain.Restaurant) error {
	payload, err := json.Marshal(restaurants)
	if err != nil {
		return fmt.Errorf("failed to encode listing: %w", err)
	}

	if err := c.client.Set(ctx, listingKey(date), payload, listingTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache listing: %w", err)
	}
	return nil
}

func (c *restaurantCache) InvalidateListing(ctx context.Context, date time.Time) error {
	if err := c.client.Del(ctx, listingKey(date)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached listing: %w", err)
	}
	return nil
}

func listingKey(date time.Time) string {
	return "restaurants:listing:" + date.Format(time.DateOnly)
}
