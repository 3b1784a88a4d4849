package gemini

import (
	"context"
	"fmt"

	"github.com/fwojciec/recipeset"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ recipeset.TokenCounter = (*TokenCounter)(nil)

// TokenizerModel is the model whose local tokenizer sizes windows. The
// local tokenizer does not cover every generation model.
const TokenizerModel = "gemini-2.5-flash"

// TokenCounter counts window tokens locally using the Gemini tokenizer.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a new TokenCounter for the given model. The
// tokenizer model is downloaded on first use.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer for %s: %w", model, err)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens counts the tokens of text sent as a user message.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}

	result, err := tc.tok.CountTokens(contents, nil)
	if err != nil {
		return 0, err
	}

	return int(result.TotalTokens), nil
}
