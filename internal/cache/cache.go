package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache stores final answers per (question, store generation).
type Cache interface {
	// GetAnswer retrieves a cached answer by key. Returns nil on miss.
	GetAnswer(ctx context.Context, key string) (*Answer, error)

	// SetAnswer stores an answer with TTL.
	SetAnswer(ctx context.Context, key string, ans *Answer, ttl time.Duration) error

	// Invalidate removes all cached answers. Called on upload and reset;
	// generation-scoped keys would expire anyway, this just frees them early.
	Invalidate(ctx context.Context) error

	// Close closes the cache connection.
	Close() error
}

// Answer is a cached answer payload. Sources is pre-marshaled JSON so the
// cache stays decoupled from the service's response types.
type Answer struct {
	Answer   string `json:"answer"`
	Fallback bool   `json:"fallback"`
	Sources  []byte `json:"sources,omitempty"`
}

// Key derives a cache key from the question and the document store
// generation, so answers computed against superseded chunks never resurface.
func Key(question string, generation uint64) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%d:%s", generation, question))
	return hex.EncodeToString(sum[:])
}
