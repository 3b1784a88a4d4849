package main

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/recipeset"
	"github.com/fwojciec/recipeset/goquery"
	"github.com/fwojciec/recipeset/scrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Scraper   *scrape.Scraper
	Fetcher   recipeset.Fetcher
	Windower  *goquery.Windower
	Converter recipeset.Converter
	Metadata  []recipeset.MetadataExtractor
	Tokens    recipeset.TokenCounter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool       `short:"v" help:"Enable debug logging"`
	Scrape  ScrapeCmd  `cmd:"" help:"Scrape recipe pages into training files"`
	Preview PreviewCmd `cmd:"" help:"Show the windows cut from a page without calling the model"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URLs        []string      `arg:"" optional:"" name:"url" help:"Recipe page URLs (default: built-in reference list)"`
	URLsFile    string        `name:"urls-file" help:"Read URLs from a file, one per line"`
	DataDir     string        `name:"data-dir" default:"data" env:"RECIPESET_DATA_DIR" help:"Directory holding the training files"`
	Provider    string        `enum:"openai,gemini" default:"openai" env:"RECIPESET_PROVIDER" help:"LLM provider (openai, gemini)"`
	Model       string        `env:"RECIPESET_MODEL" help:"Model name (default depends on provider)"`
	Fetcher     string        `enum:"rod,http" default:"rod" help:"Page fetcher (rod, http)"`
	Width       int           `default:"${width}" help:"Window width in characters"`
	Concurrency int           `short:"c" default:"1" help:"Pages processed at once"`
	Rate        float64       `default:"${rate}" help:"Requests per second per host, 0 disables"`
	Timeout     time.Duration `short:"t" default:"30s" help:"Fetch timeout per page"`
}

// PreviewCmd is the "preview" subcommand.
type PreviewCmd struct {
	URL     string        `arg:"" help:"Recipe page URL"`
	Fetcher string        `enum:"rod,http" default:"rod" help:"Page fetcher (rod, http)"`
	Width   int           `default:"${width}" help:"Window width in characters"`
	Timeout time.Duration `short:"t" default:"30s" help:"Fetch timeout"`
	Raw     bool          `help:"Print raw markup instead of Markdown"`
	Tokens  bool          `help:"Count window tokens with the local Gemini tokenizer"`
}

// Validate rejects widths that would produce empty windows.
func (c *ScrapeCmd) Validate() error {
	return validateWidth(c.Width)
}

// Validate rejects widths that would produce empty windows.
func (c *PreviewCmd) Validate() error {
	return validateWidth(c.Width)
}

func validateWidth(width int) error {
	if width < 1 {
		return recipeset.Errorf(recipeset.EINVALID, "width must be at least 1, got %d", width)
	}
	return nil
}

// Vars returns the values interpolated into flag defaults.
func Vars() kong.Vars {
	return kong.Vars{
		"width": strconv.Itoa(recipeset.DefaultWindowWidth),
		"rate":  strconv.FormatFloat(scrape.DefaultRate, 'g', -1, 64),
	}
}
