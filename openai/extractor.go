// Package openai implements recipeset.Extractor with OpenAI chat completions
// and strict JSON-schema structured outputs.
package openai

import (
	"context"

	"github.com/fwojciec/recipeset"
	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gpt-4o"

// schemaName names the response format sent with every request.
const schemaName = "recipe"

// Ensure Extractor implements recipeset.Extractor at compile time.
var _ recipeset.Extractor = (*Extractor)(nil)

// Extractor implements recipeset.Extractor using OpenAI.
type Extractor struct {
	client openaisdk.Client
	model  string
}

// NewClient creates an OpenAI client with SDK retries disabled.
// Extra options (base URL, HTTP client) are applied after the defaults.
func NewClient(apiKey string, opts ...option.RequestOption) openaisdk.Client {
	defaults := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	return openaisdk.NewClient(append(defaults, opts...)...)
}

// NewExtractor creates a new Extractor. An empty model selects DefaultModel.
func NewExtractor(client openaisdk.Client, model string) *Extractor {
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
	resp, err := e.client.Chat.Completions.New(ctx, BuildParams(e.model, systemPrompt, window))
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, recipeset.Errorf(recipeset.EINTERNAL, "openai returned no choices")
	}

	msg := resp.Choices[0].Message
	if msg.Refusal != "" {
		return nil, recipeset.Errorf(recipeset.EINVALID, "model refused: %s", msg.Refusal)
	}
	return recipeset.DecodeRecipe([]byte(msg.Content))
}

// BuildParams returns the chat completion request for one window.
func BuildParams(model, systemPrompt, window string) openaisdk.ChatCompletionNewParams {
	return openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.UserMessage(recipeset.UserPrompt(systemPrompt, window)),
		},
		ResponseFormat: openaisdk.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openaisdk.ResponseFormatJSONSchemaParam{
				JSONSchema: openaisdk.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        schemaName,
					Description: openaisdk.String("Ingredients listed in the recipe input"),
					Schema:      RecipeSchema(),
					Strict:      openaisdk.Bool(true),
				},
			},
		},
	}
}

// RecipeSchema returns the JSON schema for recipeset.Recipe.
func RecipeSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"ingredients": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required":             []string{"ingredients"},
		"additionalProperties": false,
	}
}
