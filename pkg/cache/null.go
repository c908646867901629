package cache

import (
	"context"
	"time"
)

// NullCache keeps no checkpoints, so every run searches from its start
// grid. It backs --cache none and runners created without a store.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return NullCache{}
}

// Get never finds a checkpoint.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set drops the checkpoint.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete has nothing to remove.
func (NullCache) Delete(context.Context, string) error { return nil }

// Close releases nothing.
func (NullCache) Close() error { return nil }

var _ Cache = NullCache{}
