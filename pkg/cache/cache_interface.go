package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by GetBytes when the key does not exist.
var ErrCacheMiss = errors.New("cache: key not found")

// Cache is the key-value contract shared by the Redis adapter and test fakes.
type Cache interface {
	// Get loads the JSON value stored at key into dest.
	// found = false on a miss, dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value as JSON with a TTL (0 = no expiry).
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// GetBytes / SetBytes skip the JSON round trip for callers that own the encoding.
	GetBytes(ctx context.Context, key string) ([]byte, error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	Ping(ctx context.Context) error
}
