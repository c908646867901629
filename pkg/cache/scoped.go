package cache

import "strings"

// ScopedKeyer wraps a Keyer with a prefix, giving separate namespaces to
// caches that share a backend, such as several projects on one Redis.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "europe:")
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

// CheckpointKey generates a prefixed checkpoint key.
func (k *ScopedKeyer) CheckpointKey(problemHash string, opts CheckpointKeyOpts) string {
	return k.prefix + k.inner.CheckpointKey(problemHash, opts)
}

// SummaryKey generates a prefixed summary key. checkpointKey may carry the
// prefix already.
func (k *ScopedKeyer) SummaryKey(checkpointKey string) string {
	return k.prefix + k.inner.SummaryKey(strings.TrimPrefix(checkpointKey, k.prefix))
}
