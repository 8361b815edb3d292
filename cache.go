package fingov

import "context"

// Cache is the optional result cache collaborator. Entries are scoped to
// a session and keyed by category and normalized query; a hit short-
// circuits the fallback chain but still runs the full scoring, decision
// and rendering pipeline.
type Cache interface {
	// Get returns the cached sample for a key, if present and fresh.
	Get(ctx context.Context, sessionID, key string) (ContentSample, bool, error)

	// Put stores a successfully accepted sample.
	Put(ctx context.Context, sessionID, key string, sample ContentSample) error

	// ClearSession drops all entries for a session. Returns the number
	// of entries removed.
	ClearSession(ctx context.Context, sessionID string) (int, error)
}
