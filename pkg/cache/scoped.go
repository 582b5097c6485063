package cache

// ScopedKeyer wraps a Keyer with a prefix, giving callers that share one
// cache directory separate key namespaces. Used by tests and by callers
// running several independent configurations against the same cache.
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

// TermKey generates a prefixed key for canonicalization results.
func (k *ScopedKeyer) TermKey(contentHash string, opts TermKeyOpts) string {
	return k.prefix + k.inner.TermKey(contentHash, opts)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(resultHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(resultHash, opts)
}
