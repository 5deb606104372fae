package reactions

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/unforum-dev/unforum/shared/domain"
)

const keyPrefix = "unforum:like:"

// RedisGuard stores one expiring key per (thread, visitor) pair.
type RedisGuard struct {
	client *redis.Client
	hasher *Hasher
	ttl    time.Duration
}

func NewRedisGuard(redisURL string, hasher *Hasher, ttl time.Duration) (*RedisGuard, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return NewRedisGuardWithClient(client, hasher, ttl), nil
}

func NewRedisGuardWithClient(client *redis.Client, hasher *Hasher, ttl time.Duration) *RedisGuard {
	return &RedisGuard{client: client, hasher: hasher, ttl: ttl}
}

func (g *RedisGuard) key(threadId domain.ThreadId, visitor string) string {
	return keyPrefix + g.hasher.Sum(threadId, visitor)
}

func (g *RedisGuard) FirstLike(ctx context.Context, threadId domain.ThreadId, visitor string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(threadId, visitor), 1, g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("record like: %w", err)
	}
	return ok, nil
}

func (g *RedisGuard) Ping(ctx context.Context) error {
	return g.client.Ping(ctx).Err()
}

func (g *RedisGuard) Close() error {
	return g.client.Close()
}
