package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/recipeset"
)

// Ensure LoggingExtractor implements recipeset.Extractor.
var _ recipeset.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   recipeset.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next recipeset.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract logs the window size and ingredient count and delegates to the
// wrapped extractor. The ingredients themselves are logged at debug level.
func (e *LoggingExtractor) Extract(ctx context.Context, systemPrompt, window string) (recipe *recipeset.Recipe, err error) {
	defer func(begin time.Time) {
		ingredients := 0
		if recipe != nil {
			ingredients = len(recipe.Ingredients)
			e.logger.DebugContext(ctx, "extracted ingredients", "items", recipe.Ingredients)
		}
		e.logger.Info("extract",
			"window", len(window),
			"ingredients", ingredients,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(ctx, systemPrompt, window)
}
