package recipeset

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SystemPrompt is the instruction placed before every window, both in the
// extraction request and in the recorded training text.
const SystemPrompt = "You will be provided HTML from a recipe website. Extract the ingredients from the HTML. Include the quantity with each ingredient name if it is present. If there are no ingredients, respond with 'none'.\n\nRecipe input:"

// NoneTarget is the response recorded for windows without ingredients.
const NoneTarget = "none"

// Recipe is the structured result of an extraction call.
type Recipe struct {
	// Ingredients lists the ingredients in page order. An empty list means
	// the model found no ingredients; a missing list is invalid.
	Ingredients []string `json:"ingredients" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate returns an EINVALID error if the recipe does not conform to the
// response schema.
func (r *Recipe) Validate() error {
	if r == nil {
		return Errorf(EINVALID, "recipe required")
	}
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return Errorf(EINVALID, "recipe field %q failed %q validation", verrs[0].Field(), verrs[0].Tag())
	}
	return Errorf(EINVALID, "invalid recipe: %v", err)
}

// CleanIngredients returns a copy of the ingredients with commas removed.
func (r *Recipe) CleanIngredients() []string {
	cleaned := make([]string, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		cleaned[i] = strings.ReplaceAll(ing, ",", "")
	}
	return cleaned
}

// Target returns the training response for the recipe: the cleaned
// ingredients joined by ", ", or NoneTarget when there are none.
func (r *Recipe) Target() string {
	if len(r.Ingredients) == 0 {
		return NoneTarget
	}
	return strings.Join(r.CleanIngredients(), ", ")
}

// DecodeRecipe parses a model response and validates it against the schema.
func DecodeRecipe(data []byte) (*Recipe, error) {
	var r Recipe
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, Errorf(EINVALID, "model response is not valid JSON: %v", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Extractor asks a language model for the ingredients in a window.
type Extractor interface {
	// Extract sends the system prompt and window to the model and returns
	// the structured result. Returns EINVALID if the model response does
	// not conform to the Recipe schema.
	Extract(ctx context.Context, systemPrompt, window string) (*Recipe, error)
}

// UserPrompt builds the single user message sent to the model.
func UserPrompt(systemPrompt, window string) string {
	return systemPrompt + "\n\n" + window
}
