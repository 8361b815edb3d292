package fingov

import "context"

// Fetcher is the external content-fetch collaborator. The governor never
// performs network I/O itself; it hands locators to a Fetcher and
// consumes the raw samples that come back.
type Fetcher interface {
	// Name returns the fetcher identifier, e.g. "unlocker" or "mock".
	Name() string

	// Fetch retrieves raw content for a locator. Errors advance the
	// fallback chain; they are never surfaced per-candidate.
	Fetch(ctx context.Context, locator string) (ContentSample, error)
}
