// Package redis holds the process-wide redis client. The platform uses it
// for one thing: the idempotency cache guarding startup submissions.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// pingTimeout bounds the connectivity check at startup.
const pingTimeout = 5 * time.Second

var client *redis.Client

// Init parses the redis URL, connects, and verifies the connection with a
// ping. Must run before any handler that touches the idempotency cache.
func Init(url, password string) error {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return err
	}
	if password != "" {
		opts.Password = password
	}

	c := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		return err
	}

	client = c
	return nil
}

// SetClient swaps the package client; tests point it at miniredis.
func SetClient(c *redis.Client) {
	client = c
}

// GetClient exposes the raw client.
func GetClient() *redis.Client {
	return client
}

// Set stores a value under key for the given TTL.
func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return client.Set(ctx, key, value, expiration).Err()
}

// Get returns the value stored under key. Missing keys surface go-redis's
// redis.Nil error.
func Get(ctx context.Context, key string) (string, error) {
	return client.Get(ctx, key).Result()
}

// Del drops a key.
func Del(ctx context.Context, key string) error {
	return client.Del(ctx, key).Err()
}

// SetNX stores the value only when the key is absent. Used as the
// idempotency lock.
func SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return client.SetNX(ctx, key, value, expiration).Result()
}
