package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists entries in Redis for shared deployments where multiple
// processes should see one response cache. Keys follow
// "opendota:<family>:<digest>" and are stored without expiry, matching the
// file store's never-expires contract.
type RedisStore struct {
	client *redis.Client
}

// RedisConfig holds connection settings for a redis-backed store.
type RedisConfig struct {
	Addr     string // host:port, defaults to "localhost:6379"
	Password string // optional
	DB       int    // redis database number
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if cfg.Addr == "" {
		cfg.Addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connect: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// Load retrieves the entry for (family, digest).
func (s *RedisStore) Load(ctx context.Context, family, digest string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, redisKey(family, digest)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Save stores the entry for (family, digest).
func (s *RedisStore) Save(ctx context.Context, family, digest string, data []byte) error {
	return s.client.Set(ctx, redisKey(family, digest), data, 0).Err()
}

// Close closes the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func redisKey(family, digest string) string {
	return "opendota:" + family + ":" + digest
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
