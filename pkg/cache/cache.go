// Package cache stores rendered artifacts keyed by tree content and render
// options.
//
// # Backends
//
//   - [NullCache]: never stores anything (--no-cache)
//   - [FileCache]: one JSON entry file per key under a local directory, used
//     by the CLI (~/.cache/bstviz)
//   - [RedisCache]: shared cache for the HTTP service, backed by go-redis
//
// # Keys
//
// A [Keyer] derives keys from a content hash and the options that affect the
// output, so that changing the distance scale or the format never returns a
// stale artifact:
//
//	key := keyer.ArtifactKey(cache.Hash(treeJSON), cache.ArtifactKeyOpts{Format: "tikz", Scale: 1.65, Base: 7})
//
// [ScopedKeyer] prefixes every key, which lets several services share one
// redis database.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
//
// Get reports a miss with ok == false and a nil error. Implementations must
// be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop all of their entries.
type Clearer interface {
	// Clear removes every entry and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}

// DefaultTTL is the artifact lifetime used when none is configured.
const DefaultTTL = 7 * 24 * time.Hour
