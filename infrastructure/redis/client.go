// Package redis opens verified go-redis clients.
package redis

import (
	"context"
	"errors"
	"fmt"

	infracontext "github.com/Odelf18/career-maps/infrastructure/context"
	"github.com/redis/go-redis/v9"
)

// Config holds connection settings.
type Config struct {
	Address  string `env:"REDIS_ADDRESS"  yaml:"address"`
	Password string `env:"REDIS_PASSWORD" yaml:"password"`
	DB       int    `env:"REDIS_DB"       yaml:"db"`
}

// ErrEmptyAddress is returned when no address is configured.
var ErrEmptyAddress = errors.New("redis address is required")

// NewClient connects and pings. The client is closed if the ping fails.
func NewClient(cfg Config) (*redis.Client, error) {
	if cfg.Address == "" {
		return nil, ErrEmptyAddress
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := infracontext.WithPingTimeout()
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Address, err)
	}
	return client, nil
}

// Pinger returns a func suitable for a health check.
func Pinger(client *redis.Client) func() error {
	return func() error {
		ctx, cancel := infracontext.WithPingTimeout()
		defer cancel()
		return client.Ping(ctx).Err()
	}
}

// Ping checks client within ctx.
func Ping(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}
