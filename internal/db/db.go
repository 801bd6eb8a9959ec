package db

import (
	"context"
	"time"
)

// Store is the database facade combining all sub-interfaces.
// Consumers depend on the narrow sub-interfaces.
type Store interface {
	Pinger
	Counter
	ListStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Counter provides atomic counters.
type Counter interface {
	// Incr atomically increments key by one and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)
}

// ListStore provides list operations.
type ListStore interface {
	// LPushTrim prepends value and trims the list to its first maxLen elements (maxLen <= 0 keeps everything).
	LPushTrim(ctx context.Context, key string, value []byte, maxLen int64) error
	// LRange returns elements start..stop inclusive; negative indexes count from the tail.
	LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error)
}
