// Package cache stores rendered artifacts so unchanged scenes are not
// rendered twice.
//
// Entries are opaque bytes addressed by string keys. A [Keyer] derives keys
// from a scene's content hash and the render options, so editing the scene
// or changing the output format misses the cache naturally. Overlay state is
// never cached.
//
// Two backends are provided:
//   - [FileCache]: JSON envelopes with an optional expiry under a directory,
//     for the CLI
//   - [NullCache]: stores nothing, for --no-cache and tests
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// NullCache misses on every Get and discards every Set. It backs --no-cache
// and stands in when the cache directory cannot be created.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
