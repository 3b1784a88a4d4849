package gemini_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/recipeset"
	"github.com/fwojciec/recipeset/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// Ensure Extractor implements recipeset.Extractor at compile time.
var _ recipeset.Extractor = (*gemini.Extractor)(nil)

func newClient(t *testing.T, text string, bodies chan<- []byte) *genai.Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if bodies != nil {
			data, _ := io.ReadAll(r.Body)
			select {
			case bodies <- data:
			default:
			}
		}
		resp, _ := json.Marshal(map[string]any{
			"candidates": []any{
				map[string]any{
					"content": map[string]any{
						"role":  "model",
						"parts": []any{map[string]any{"text": text}},
					},
					"finishReason": "STOP",
				},
			},
		})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(resp)
	}))
	t.Cleanup(srv.Close)

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL},
	})
	require.NoError(t, err)
	return client
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("returns decoded ingredients", func(t *testing.T) {
		t.Parallel()

		bodies := make(chan []byte, 1)
		ext := gemini.NewExtractor(newClient(t, `{"ingredients":["2 eggs","1 cup flour"]}`, bodies), "")

		recipe, err := ext.Extract(context.Background(), "Extract.", "<h2>Ingredients</h2>")

		require.NoError(t, err)
		assert.Equal(t, []string{"2 eggs", "1 cup flour"}, recipe.Ingredients)
		assert.Contains(t, string(<-bodies), "application/json")
	})

	t.Run("rejects non-conforming response", func(t *testing.T) {
		t.Parallel()

		ext := gemini.NewExtractor(newClient(t, `{"items":[]}`, nil), "")

		_, err := ext.Extract(context.Background(), "Extract.", "window")

		require.Error(t, err)
		assert.Equal(t, recipeset.EINVALID, recipeset.ErrorCode(err))
	})

	t.Run("returns error without client", func(t *testing.T) {
		t.Parallel()

		ext := gemini.NewExtractor(nil, "")

		_, err := ext.Extract(context.Background(), "Extract.", "window")

		require.Error(t, err)
		assert.Equal(t, recipeset.EINTERNAL, recipeset.ErrorCode(err))
	})
}

func TestNewExtractor_DefaultModel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, gemini.DefaultModel, gemini.NewExtractor(nil, "").Model())
	assert.Equal(t, "gemini-2.5-pro", gemini.NewExtractor(nil, "gemini-2.5-pro").Model())
}

func TestBuildConfig_RequestsJSON(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	assert.Equal(t, "application/json", config.ResponseMIMEType)
	require.NotNil(t, config.ResponseSchema)
	assert.Equal(t, []string{"ingredients"}, config.ResponseSchema.Required)
}

func TestRecipeSchema(t *testing.T) {
	t.Parallel()

	schema := gemini.RecipeSchema()

	require.Contains(t, schema.Properties, "ingredients")
	assert.Equal(t, genai.TypeArray, schema.Properties["ingredients"].Type)
	assert.Equal(t, genai.TypeString, schema.Properties["ingredients"].Items.Type)
}
