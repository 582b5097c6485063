// Package cache provides result caching for canonicalization runs.
//
// Canonicalizing a term is deterministic, so a term file's content hash
// fully identifies its result. The CLI uses a [FileCache] to skip repeat
// runs over unchanged inputs; [NullCache] disables caching entirely.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per entry kind. Results are pure functions of their
// key, so the TTLs only bound cache growth.
const (
	TTLResult   = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte blobs under string keys.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Keyer builds cache keys for the pipeline's cacheable stages.
type Keyer interface {
	// TermKey identifies a canonicalization result by the term file's
	// content hash and the options that influence the result.
	TermKey(contentHash string, opts TermKeyOpts) string

	// ArtifactKey identifies a rendered artifact by the canonical result's
	// hash and the render options.
	ArtifactKey(resultHash string, opts ArtifactKeyOpts) string
}

// TermKeyOpts are the canonicalization options that affect cache identity.
type TermKeyOpts struct {
	MaxCandidates int `json:"max_candidates"`
}

// ArtifactKeyOpts are the render options that affect cache identity.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// DefaultKeyer is the standard key scheme: a stage prefix plus a SHA-256
// over the identifying parts.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// TermKey implements [Keyer].
func (k *DefaultKeyer) TermKey(contentHash string, opts TermKeyOpts) string {
	return hashKey("term", contentHash, opts)
}

// ArtifactKey implements [Keyer].
func (k *DefaultKeyer) ArtifactKey(resultHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", resultHash, opts)
}
