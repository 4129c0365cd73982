package domain

import (
	"context"
	"time"
)

// CacheError is a failure reported by a Cache implementation.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss means the question set of a paper is not cached and must be
// read from the store.
const ErrCacheMiss = CacheError("cache: key not found")

// Cache holds the serialized question set (options, answer key, max score) of
// each test paper under one key per paper. Grading reads through it; any
// question or paper write deletes the keys of the papers it touched. Entries
// are only an optimization, so callers treat every error as a miss.
type Cache interface {
	// Get returns ErrCacheMiss when the paper's set is not cached.
	Get(ctx context.Context, key string) (string, error)

	// Set stores a paper's set until expiration.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Delete drops the sets of several papers at once, e.g. both ends of a
	// question move. Keys that are not cached are ignored.
	Delete(ctx context.Context, keys ...string) error

	// Ping backs the readiness check.
	Ping(ctx context.Context) error
}
