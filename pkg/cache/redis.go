// Package cache connects to the Redis instance that backs shopper carts.
package cache

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/storefront-checkout/pkg/retry"
)

// Options are the connection settings for NewRedisClient.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient creates a Redis client and verifies it with a PING,
// retrying with exponential backoff (see retry.Do).
func NewRedisClient(ctx context.Context, opts Options, maxRetries int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	err := retry.Do(ctx, "redis", maxRetries, func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("ping failed: %w", err)
		}
		return nil
	})
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	log.Info().Str("addr", opts.Addr).Int("db", opts.DB).Msg("redis connection established")
	return client, nil
}

// Pinger adapts a Redis client to the health check's Ping(ctx) error shape.
type Pinger struct {
	Client *redis.Client
}

// Ping issues a Redis PING.
func (p Pinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx).Err()
}
