package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Useful when several datasets share one cache backend: each dataset
// gets its own key namespace.
//
// Example usage:
//
//	// Dataset-specific keys
//	dsKeyer := NewScopedKeyer(NewDefaultKeyer(), "dataset:ree2024:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DiagramKey generates a prefixed key for diagram snapshot caching.
func (k *ScopedKeyer) DiagramKey(year int, stateHash string, opts DiagramKeyOpts) string {
	return k.prefix + k.inner.DiagramKey(year, stateHash, opts)
}

// RenderKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) RenderKey(diagramHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(diagramHash, opts)
}
