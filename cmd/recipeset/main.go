package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/recipeset"
	"github.com/fwojciec/recipeset/fs"
	"github.com/fwojciec/recipeset/gemini"
	"github.com/fwojciec/recipeset/goquery"
	"github.com/fwojciec/recipeset/htmltomarkdown"
	rshttp "github.com/fwojciec/recipeset/http"
	"github.com/fwojciec/recipeset/openai"
	"github.com/fwojciec/recipeset/readability"
	"github.com/fwojciec/recipeset/rod"
	"github.com/fwojciec/recipeset/scrape"
	rsslog "github.com/fwojciec/recipeset/slog"
	"github.com/fwojciec/recipeset/trafilatura"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: failed to load .env: %v\n", err)
	}

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Getenv looks up API keys. Defaults to os.Getenv.
	Getenv func(key string) string

	// Fetcher and Extractor replace the implementations selected by flags
	// for end-to-end testing. Injected services are not closed by Run.
	Fetcher   recipeset.Fetcher
	Extractor recipeset.Extractor
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Getenv: os.Getenv,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("recipeset"),
		kong.Description("Build an ingredient extraction training set from recipe pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		Vars(),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'recipeset --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)

	switch strings.Fields(kongCtx.Command())[0] {
	case "scrape":
		c := &cli.Scrape

		// Resolve the extractor first so a missing key fails before a
		// browser is started.
		extractor, err := m.extractor(ctx, c.Provider, c.Model, stderr)
		if err != nil {
			return err
		}

		fetcher, err := m.fetcher(c.Fetcher, c.Timeout, stderr)
		if err != nil {
			return err
		}
		if m.Fetcher == nil {
			defer fetcher.Close()
		}

		deps.Scraper = &scrape.Scraper{
			Fetcher:     rsslog.NewLoggingFetcher(fetcher, deps.Logger),
			Windower:    goquery.NewWindower(goquery.WithWidth(c.Width)),
			Extractor:   rsslog.NewLoggingExtractor(extractor, deps.Logger),
			Writer:      rsslog.NewLoggingRecordWriter(fs.NewRecordWriter(c.DataDir), deps.Logger),
			RateLimiter: scrape.NewDomainLimiter(c.Rate),
			Concurrency: c.Concurrency,
		}

	case "preview":
		c := &cli.Preview

		fetcher, err := m.fetcher(c.Fetcher, c.Timeout, stderr)
		if err != nil {
			return err
		}
		if m.Fetcher == nil {
			defer fetcher.Close()
		}

		deps.Fetcher = rsslog.NewLoggingFetcher(fetcher, deps.Logger)
		deps.Windower = goquery.NewWindower(goquery.WithWidth(c.Width))
		deps.Converter = htmltomarkdown.NewConverter()
		deps.Metadata = []recipeset.MetadataExtractor{
			trafilatura.NewMetadataExtractor(),
			readability.NewMetadataExtractor(),
		}

		if c.Tokens {
			tokens, err := gemini.NewTokenCounter(gemini.TokenizerModel)
			if err != nil {
				deps.Logger.Warn("token counter unavailable", "err", err)
			} else {
				deps.Tokens = tokens
			}
		}
	}

	return kongCtx.Run(deps)
}

// newLogger returns a text logger on w tagged with a fresh run id.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("run", uuid.NewString())
}

func (m *Main) fetcher(kind string, timeout time.Duration, stderr io.Writer) (recipeset.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}

	switch kind {
	case "http":
		return rshttp.NewFetcher(rshttp.WithTimeout(timeout)), nil
	default:
		fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(timeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or use --fetcher=http")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return fetcher, nil
	}
}

func (m *Main) extractor(ctx context.Context, provider, model string, stderr io.Writer) (recipeset.Extractor, error) {
	if m.Extractor != nil {
		return m.Extractor, nil
	}

	switch provider {
	case "gemini":
		apiKey := m.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, fmt.Errorf("GEMINI_API_KEY not set")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		if model == "" {
			model = gemini.DefaultModel
		}
		return gemini.NewExtractor(client, model), nil

	default:
		apiKey := m.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "OPENAI_API_KEY environment variable not set. Add it to the environment or a .env file")
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}

		if model == "" {
			model = openai.DefaultModel
		}
		return openai.NewExtractor(openai.NewClient(apiKey), model), nil
	}
}
