package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/acgithubb/final-react-apacelogs-analyse/internal/pkg/pkgerror"
)

const (
	defaultRedisPrefix = "accesslogs:blob:"
	defaultRedisTTL    = 24 * time.Hour
)

type RedisDriver struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedis connects to redis and verifies the connection with a ping.
func NewRedis(cfg *RedisConfig) (*RedisDriver, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis configuration missing")
	}
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = defaultRedisPrefix
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultRedisTTL
	}

	return &RedisDriver{client: client, ttl: ttl, prefix: prefix}, nil
}

func (s *RedisDriver) key(k string) string {
	return s.prefix + k
}

func (s *RedisDriver) Put(ctx context.Context, key string, data []byte) error {
	return s.client.Set(ctx, s.key(key), data, s.ttl).Err()
}

func (s *RedisDriver) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: blob %s", pkgerror.ErrNotFound, key)
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (s *RedisDriver) Close(context.Context) error {
	return s.client.Close()
}
