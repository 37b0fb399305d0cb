// Package cache provides the render-result cache.
//
// A rendered output is a pure function of the source code, the art
// image, and the render options, so results are cached under a content
// hash of those inputs. Three backends are provided:
//
//   - FileCache: file-per-entry cache for CLI usage (XDG cache dir)
//   - RedisCache: shared cache for server deployments
//   - NullCache: caching disabled
//
// Keys are produced by a Keyer so that callers never concatenate hash
// inputs by hand.
package cache

import (
	"context"
	"time"
)

// Cache is the interface all cache backends implement.
type Cache interface {
	// Get retrieves a value. The second result reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys for the render pipeline.
type Keyer interface {
	// RenderKey returns the key for a rendered output, derived from the
	// code text, the art text, and the serialized render options.
	RenderKey(code, art []byte, opts any) string
}

// DefaultKeyer hashes all key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// RenderKey implements Keyer.
func (DefaultKeyer) RenderKey(code, art []byte, opts any) string {
	return hashKey("render", string(code), string(art), opts)
}

// DefaultTTL is the default lifetime of cached render results.
const DefaultTTL = 7 * 24 * time.Hour
