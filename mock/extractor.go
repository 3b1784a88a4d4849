package mock

import (
	"context"

	"github.com/fwojciec/recipeset"
)

var _ recipeset.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of recipeset.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, systemPrompt, window string) (*recipeset.Recipe, error)
}

func (e *Extractor) Extract(ctx context.Context, systemPrompt, window string) (*recipeset.Recipe, error) {
	return e.ExtractFn(ctx, systemPrompt, window)
}
