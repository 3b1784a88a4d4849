package recipeset

import "context"

// ScrapeResult describes the outcome of processing one page.
type ScrapeResult struct {
	URL         string
	Ingredients int
	Positive    int
	Negative    int
}

// ScrapeProgress reports progress while scraping a list of pages.
type ScrapeProgress struct {
	URL       string
	Completed int
	Total     int
	Result    *ScrapeResult
	Error     error
}

// ScrapeProgressFunc is called as pages are processed.
type ScrapeProgressFunc func(ScrapeProgress)

// ScrapeSummary totals a scrape run.
type ScrapeSummary struct {
	Total     int
	Succeeded int
	Failed    int
	Positive  int
	Negative  int
}

// DomainLimiter rate limits requests per domain.
type DomainLimiter interface {
	// Wait blocks until a request to the domain is allowed.
	// Returns an error if the context is canceled before the wait completes.
	Wait(ctx context.Context, domain string) error
}
