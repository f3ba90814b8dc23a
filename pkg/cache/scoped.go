package cache

// ScopedKeyer wraps a Keyer with a prefix, giving each user of a shared
// backend its own namespace:
//
//	serveKeyer := NewScopedKeyer(NewDefaultKeyer(), "bstviz:serve:")
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

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(inputHash, opts)
}

// Prefix returns the namespace prefix.
func (k *ScopedKeyer) Prefix() string { return k.prefix }
