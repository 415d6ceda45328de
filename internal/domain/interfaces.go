package domain

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss indicates no cached entry was found.
var ErrCacheMiss = errors.New("cache miss")

// CacheKey identifies a calculation independent of which alias token selected it.
type CacheKey struct {
	Operation string
	A         float64
	B         float64
}

// ResultCache memoizes raw results of pure operations.
type ResultCache interface {
	// Get returns a cached result or ErrCacheMiss.
	Get(ctx context.Context, key CacheKey) (float64, error)

	// Set stores a result for the given ttl.
	Set(ctx context.Context, key CacheKey, result float64, ttl time.Duration) error
}

// EventPublisher publishes events for observability.
type EventPublisher interface {
	// Publish publishes an event with the given type and data.
	Publish(ctx context.Context, eventType string, data map[string]interface{})
}

// NoopCache is a ResultCache that never stores anything.
type NoopCache struct{}

// Get always misses.
func (NoopCache) Get(_ context.Context, _ CacheKey) (float64, error) {
	return 0, ErrCacheMiss
}

// Set discards the result.
func (NoopCache) Set(_ context.Context, _ CacheKey, _ float64, _ time.Duration) error {
	return nil
}
