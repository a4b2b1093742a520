package db

import (
	"context"
	"time"
)

// Cache is the Redis facade combining the sub-interfaces consumers depend on.
type Cache interface {
	Pinger
	KVStore
	Publisher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Publisher fans a message out to channel subscribers.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}
