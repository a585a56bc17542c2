package cache

// ScopedKeyer wraps a Keyer with a prefix so that several tenants can share
// one backend without colliding, for example the CLI and a server pointed
// at the same Redis.
//
//	serverKeyer := NewScopedKeyer(NewDefaultKeyer(), "serve:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// OrderKey generates a prefixed ordering key.
func (k *ScopedKeyer) OrderKey(layerHash string, opts OrderKeyOpts) string {
	return k.prefix + k.inner.OrderKey(layerHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(hash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(hash, opts)
}
