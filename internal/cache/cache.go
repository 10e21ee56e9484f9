// Package cache holds short-lived copies of public result views, backed by
// either redis or process memory.
package cache

import (
	"context"
	"errors"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Store is a JSON value cache with a store-wide TTL.
type Store interface {
	// Get decodes the cached value for key into dest.
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}

const resultKeyPrefix = "result:"

// ResultKey is the key a shared result is cached under.
func ResultKey(resultID string) string {
	return resultKeyPrefix + resultID
}
