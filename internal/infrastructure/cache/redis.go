package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/johnquangdev/team-pulse/pkg/config"
)

const keyPrefix = "teampulse:"

// RedisStore is a Store backed by Redis
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisStore connects to Redis and verifies the connection
func NewRedisStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	if logger != nil {
		logger.Info("✅ Redis connected", zap.String("addr", cfg.GetRedisAddr()))
	}

	return &RedisStore{client: client, logger: logger}, nil
}

func redisKey(key string) string {
	return keyPrefix + key
}

// Get retrieves a value by key
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cache key: %w", err)
	}

	if s.logger != nil {
		s.logger.Debug("cache hit", zap.String("key", key))
	}
	return data, true, nil
}

// Set stores a value; a non-positive ttl keeps it until deleted
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, redisKey(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache key: %w", err)
	}
	return nil
}

// Delete removes a key
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, redisKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete cache key: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// New returns a Redis store when REDIS_ENABLED is set and reachable, otherwise an
// in-memory store. An unreachable Redis is logged and never fatal.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) Store {
	if !cfg.Redis.Enabled {
		return NewMemoryStore()
	}

	store, err := NewRedisStore(ctx, cfg, logger)
	if err != nil {
		if logger != nil {
			logger.Warn("⚠️ Redis unavailable, falling back to in-memory cache", zap.Error(err))
		}
		return NewMemoryStore()
	}
	return store
}
