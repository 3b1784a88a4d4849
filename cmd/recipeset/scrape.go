package main

import (
	"fmt"

	"github.com/fwojciec/recipeset"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	urls, err := resolveURLs(c.URLs, c.URLsFile)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	if len(urls) == 0 {
		err := recipeset.Errorf(recipeset.EINVALID, "no URLs to scrape")
		fmt.Fprintf(deps.Stderr, "error: %s\n", recipeset.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Scraping %d pages\n", len(urls))

	progress := func(p recipeset.ScrapeProgress) {
		if p.Error != nil {
			fmt.Fprintf(deps.Stderr, "  [%d/%d] skip %s: %v\n", p.Completed, p.Total, p.URL, p.Error)
			return
		}
		fmt.Fprintf(deps.Stdout, "  [%d/%d] %s: %d ingredients\n", p.Completed, p.Total, p.URL, p.Result.Ingredients)
	}

	summary, err := deps.Scraper.ScrapeAll(deps.Ctx, urls, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error scraping: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Done: %d succeeded, %d failed (%d positive, %d negative records)\n",
		summary.Succeeded, summary.Failed, summary.Positive, summary.Negative)

	if summary.Succeeded == 0 {
		return fmt.Errorf("all %d pages failed", summary.Total)
	}
	return nil
}
