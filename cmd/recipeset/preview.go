package main

import (
	"fmt"
	"unicode/utf8"

	"github.com/fwojciec/recipeset"
	"github.com/fwojciec/recipeset/goquery"
)

// Run executes the preview command. Nothing is sent to a model and no
// files are written.
func (c *PreviewCmd) Run(deps *Dependencies) error {
	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	meta := pageMetadata(deps, c.URL, html)

	markup, offsets, err := goquery.Locate(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", recipeset.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Title:    %s\n", orUnknown(meta.Title))
	fmt.Fprintf(deps.Stdout, "Site:     %s\n", orUnknown(meta.Sitename))
	fmt.Fprintf(deps.Stdout, "Markup:   %d characters\n", utf8.RuneCountInString(markup))
	fmt.Fprintf(deps.Stdout, "Headings: %d at %v\n", len(offsets), offsets)

	windows, err := deps.Windower.Cut(markup, offsets)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", recipeset.ErrorMessage(err))
		return err
	}

	if err := c.printWindow(deps, "Before ingredients", windows.BeforeIngredients); err != nil {
		return err
	}
	return c.printWindow(deps, "With ingredients", windows.WithIngredients)
}

func (c *PreviewCmd) printWindow(deps *Dependencies, name, window string) error {
	size := fmt.Sprintf("%d characters", utf8.RuneCountInString(window))
	if deps.Tokens != nil {
		tokens, err := deps.Tokens.CountTokens(deps.Ctx, window)
		if err != nil {
			deps.Logger.Warn("count tokens", "window", name, "err", err)
		} else {
			size += fmt.Sprintf(", %d tokens", tokens)
		}
	}
	fmt.Fprintf(deps.Stdout, "\n== %s (%s) ==\n", name, size)

	if c.Raw {
		fmt.Fprintln(deps.Stdout, window)
		return nil
	}

	md, err := deps.Converter.Convert(window)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	fmt.Fprintln(deps.Stdout, md)
	return nil
}

// pageMetadata tries each extractor in order and returns the first result
// with a title, else the first successful one.
func pageMetadata(deps *Dependencies, url, html string) *recipeset.PageMetadata {
	var found *recipeset.PageMetadata
	for _, ext := range deps.Metadata {
		meta, err := ext.ExtractMetadata(html)
		if err != nil {
			deps.Logger.Warn("metadata", "url", url, "err", err)
			continue
		}
		if meta.Title != "" {
			return meta
		}
		if found == nil {
			found = meta
		}
	}
	if found == nil {
		return &recipeset.PageMetadata{}
	}
	return found
}

func orUnknown(s string) string {
	if s == "" {
		return "(unknown)"
	}
	return s
}
