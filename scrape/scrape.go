// Package scrape runs the fetch, window, extract and record pipeline over
// recipe pages.
package scrape

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"

	"github.com/fwojciec/recipeset"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages processed at once by ScrapeAll.
const DefaultConcurrency = 1

// Scraper turns recipe pages into training records.
type Scraper struct {
	Fetcher     recipeset.Fetcher
	Windower    recipeset.Windower
	Extractor   recipeset.Extractor
	Writer      recipeset.RecordWriter
	RateLimiter recipeset.DomainLimiter

	// SystemPrompt is sent to the extractor and embedded in every record.
	// Defaults to recipeset.SystemPrompt.
	SystemPrompt string

	// Concurrency bounds the number of pages processed at once by ScrapeAll.
	Concurrency int
}

// pageResult holds the outcome of processing a single URL.
type pageResult struct {
	url    string
	result *recipeset.ScrapeResult
	err    error
}

// ScrapeURL processes one page. Nothing is written unless every step before
// the write succeeds.
func (s *Scraper) ScrapeURL(ctx context.Context, rawURL string) (*recipeset.ScrapeResult, error) {
	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, domain(rawURL)); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	html, err := s.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	windows, err := s.Windower.Window(html)
	if err != nil {
		return nil, fmt.Errorf("window %s: %w", rawURL, err)
	}

	prompt := s.systemPrompt()
	recipe, err := s.Extractor.Extract(ctx, prompt, windows.WithIngredients)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", rawURL, err)
	}

	records := recipeset.BuildRecords(prompt, windows, recipe)
	if err := s.Writer.WriteRecords(ctx, records); err != nil {
		return nil, fmt.Errorf("write records %s: %w", rawURL, err)
	}

	result := &recipeset.ScrapeResult{
		URL:         rawURL,
		Ingredients: len(recipe.Ingredients),
	}
	for _, r := range records {
		switch r.Label {
		case recipeset.LabelPositive:
			result.Positive++
		case recipeset.LabelNegative:
			result.Negative++
		}
	}
	return result, nil
}

// ScrapeAll processes every URL. A failing page is reported through progress
// and counted in the summary without stopping the others. Returns the
// context error if the run is canceled.
func (s *Scraper) ScrapeAll(ctx context.Context, urls []string, progress recipeset.ScrapeProgressFunc) (*recipeset.ScrapeSummary, error) {
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	summary := &recipeset.ScrapeSummary{Total: len(urls)}
	resultCh := make(chan pageResult, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, u := range urls {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				result, err := s.ScrapeURL(gctx, u)
				resultCh <- pageResult{url: u, result: result, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	for r := range resultCh {
		completed.Add(1)

		if r.err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
			summary.Positive += r.result.Positive
			summary.Negative += r.result.Negative
		}

		if progress != nil {
			progress(recipeset.ScrapeProgress{
				URL:       r.url,
				Completed: int(completed.Load()),
				Total:     summary.Total,
				Result:    r.result,
				Error:     r.err,
			})
		}
	}

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

func (s *Scraper) systemPrompt() string {
	if s.SystemPrompt == "" {
		return recipeset.SystemPrompt
	}
	return s.SystemPrompt
}

// domain returns the host of rawURL, or rawURL itself if it does not parse.
func domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Hostname()
}
