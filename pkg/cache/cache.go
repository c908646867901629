// Package cache stores run checkpoints between invocations.
//
// A checkpoint is the coordinate-record export of a finished grid plus a
// small JSON summary. Checkpoints are keyed by a hash of everything that
// determines a run: the problem file, the initial coordinates, and the run
// options. See [Keyer].
//
// Backends:
//   - [FileCache]: one JSON file per entry under a cache directory (CLI)
//   - [RedisCache]: a shared Redis instance
//   - [NullCache]: stores nothing
//
// Wrap any backend with [Instrument] to report hits, misses and writes to
// the registered observability cache hooks.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long checkpoints are kept unless told otherwise.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte store with expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
