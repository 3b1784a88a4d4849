package recipeset

import "context"

// Fetcher retrieves the HTML of a recipe page.
// Browser-backed implementations return the markup after scripts have run,
// which matters for recipe cards injected client-side.
type Fetcher interface {
	// Fetch loads the URL and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any browser or connection resources.
	Close() error
}
