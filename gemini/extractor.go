// Package gemini implements recipeset.Extractor with Google Gemini
// structured JSON output.
package gemini

import (
	"context"

	"github.com/fwojciec/recipeset"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Extractor implements recipeset.Extractor at compile time.
var _ recipeset.Extractor = (*Extractor)(nil)

// Extractor implements recipeset.Extractor using Google Gemini.
type Extractor struct {
	client *genai.Client
	model  string
}

// NewExtractor creates a new Extractor. An empty model selects DefaultModel.
func NewExtractor(client *genai.Client, model string) *Extractor {
	if model == "" {
		model = DefaultModel
	}
	return &Extractor{client: client, model: model}
}

// Model returns the configured model name.
func (e *Extractor) Model() string {
	return e.model
}

// Extract asks the model for the ingredients in the window.
func (e *Extractor) Extract(ctx context.Context, systemPrompt, window string) (*recipeset.Recipe, error) {
	if e.client == nil {
		return nil, recipeset.Errorf(recipeset.EINTERNAL, "gemini client required")
	}

	result, err := e.client.Models.GenerateContent(ctx, e.model,
		[]*genai.Content{
			genai.NewContentFromText(recipeset.UserPrompt(systemPrompt, window), genai.RoleUser),
		},
		BuildConfig(),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, recipeset.Errorf(recipeset.EINTERNAL, "gemini returned nil result")
	}

	return recipeset.DecodeRecipe([]byte(result.Text()))
}

// BuildConfig returns the GenerateContentConfig requesting JSON output that
// conforms to the recipe schema.
func BuildConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   RecipeSchema(),
	}
}

// RecipeSchema returns the response schema for recipeset.Recipe.
func RecipeSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"ingredients": {
				Type:        genai.TypeArray,
				Description: "Ingredients with quantities, in page order",
				Items:       &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"ingredients"},
	}
}
