// Package cache provides byte-level caching for computed diagrams and
// rendered artifacts, with file, Redis, and no-op backends.
//
// Callers serialize what they cache; the backends only see opaque bytes
// plus a TTL. Key construction is centralized in [Keyer] so every layer
// of the pipeline derives keys the same way.
package cache

import (
	"context"
	"time"
)

// Default TTLs for the pipeline's cached stages.
const (
	// DiagramTTL is how long a computed diagram snapshot stays cached.
	// Layout is cheap to recompute, so this mainly absorbs bursts of
	// identical requests.
	DiagramTTL = 1 * time.Hour

	// RenderTTL is how long a rendered artifact (SVG, DOT) stays
	// cached. Artifacts are keyed by a content hash, so a long TTL is
	// safe.
	RenderTTL = 24 * time.Hour
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return value reports whether
	// the key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// DiagramKeyOpts are the layout inputs that participate in a diagram
// cache key. Two requests share a key only when every field matches.
type DiagramKeyOpts struct {
	CanvasW     float64
	CanvasH     float64
	NodeWidth   float64
	NodePadding float64
	FlowScale   float64
	Align       string
}

// RenderKeyOpts are the rendering inputs that participate in an
// artifact cache key.
type RenderKeyOpts struct {
	Format string
	Style  string
}

// Keyer generates cache keys for the pipeline's stages.
type Keyer interface {
	// DiagramKey keys a computed diagram: the year, a hash of the
	// year's flow row and override snapshot, and the layout options.
	DiagramKey(year int, stateHash string, opts DiagramKeyOpts) string

	// RenderKey keys a rendered artifact by the diagram's content hash
	// and the render options.
	RenderKey(diagramHash string, opts RenderKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DiagramKey generates a key for diagram snapshot caching.
func (k *DefaultKeyer) DiagramKey(year int, stateHash string, opts DiagramKeyOpts) string {
	return hashKey("diagram", year, stateHash, opts)
}

// RenderKey generates a key for artifact caching.
func (k *DefaultKeyer) RenderKey(diagramHash string, opts RenderKeyOpts) string {
	return hashKey("render", diagramHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
