// Package cache stores rendered artifacts keyed by their input.
//
// Rendering a constraint graph to SVG runs Graphviz, which dominates the
// cost of `stratum graph` and POST /v1/graph. Keys are derived from the DOT
// source, so an entry never goes stale: the same graph always produces the
// same drawing.
//
// Three implementations are provided:
//   - [FileCache] persists entries under a directory, for the CLI
//   - [MemoryCache] keeps a bounded number of entries, for the server
//   - [NullCache] stores nothing, for --no-cache and tests
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
