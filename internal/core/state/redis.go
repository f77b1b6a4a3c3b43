package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/f9-o/hotkeys/pkg/netutil"
)

// RedisOptions configures the Redis backend.
type RedisOptions struct {
	Host     string
	Port     int
	DB       int
	Username string
	Password string
	// Prefix is prepended to every key, e.g. "hotkeys:".
	Prefix string
}

// RedisKV stores settings as plain Redis strings.
type RedisKV struct {
	client *redis.Client
	prefix string
}

// OpenRedis connects to Redis and verifies the connection with PING.
// Host may carry its own port, which then wins over Port.
func OpenRedis(opts RedisOptions) (*RedisKV, error) {
	host, port, err := netutil.SplitHostPort(opts.Host, opts.Port)
	if err != nil {
		return nil, fmt.Errorf("redis address: %w", err)
	}
	client := redis.NewClient(&redis.Options{
		Addr:     netutil.JoinHostPort(host, port),
		DB:       opts.DB,
		Username: opts.Username,
		Password: opts.Password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisKV{client: client, prefix: opts.Prefix}, nil
}

// Get implements KV.
func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %q: %w", key, err)
	}
	return value, true, nil
}

// Put implements KV.
func (r *RedisKV) Put(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Delete implements KV.
func (r *RedisKV) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

// Close implements KV.
func (r *RedisKV) Close() error {
	return r.client.Close()
}
