package bootstrap

import (
	"context"
	"fmt"

	infralogger "github.com/Odelf18/career-maps/infrastructure/logger"
	infraredis "github.com/Odelf18/career-maps/infrastructure/redis"
	"github.com/Odelf18/career-maps/internal/config"
	"github.com/Odelf18/career-maps/internal/session"
	"github.com/redis/go-redis/v9"
)

// Sessions is the configured session store and its connection.
type Sessions struct {
	Store session.Store
	// RedisPing is set when sessions live in Redis.
	RedisPing func() error

	client *redis.Client
	log    infralogger.Logger
}

// Close releases the Redis connection, if any.
func (s *Sessions) Close() {
	if s.client == nil {
		return
	}
	if err := s.client.Close(); err != nil {
		s.log.Error("Failed to close redis client", infralogger.Error(err))
	}
}

// SetupSessions creates the store selected by session.store. The memory
// store is swept in the background until ctx is cancelled.
func SetupSessions(ctx context.Context, cfg *config.Config, log infralogger.Logger) (*Sessions, error) {
	sc := cfg.Session

	switch sc.Store {
	case config.StoreRedis:
		client, err := infraredis.NewClient(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("redis connection: %w", err)
		}
		log.Info("Session store initialized",
			infralogger.String("store", config.StoreRedis),
			infralogger.String("redis_address", cfg.Redis.Address),
		)
		return &Sessions{
			Store:     session.NewRedisStore(client, sc.RedisPrefix, sc.TTL),
			RedisPing: infraredis.Pinger(client),
			client:    client,
			log:       log,
		}, nil
	default:
		store := session.NewMemoryStore(sc.TTL, log)
		go store.Run(ctx, sc.SweepInterval)
		log.Info("Session store initialized", infralogger.String("store", config.StoreMemory))
		return &Sessions{Store: store, log: log}, nil
	}
}
