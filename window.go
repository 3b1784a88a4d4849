package recipeset

// DefaultWindowWidth is the number of characters kept on each side of the
// ingredients heading.
const DefaultWindowWidth = 2500

// ExtractedHTML holds the two markup windows cut from a recipe page.
type ExtractedHTML struct {
	// BeforeIngredients is the markup preceding the first ingredients
	// heading, truncated to the window width.
	BeforeIngredients string

	// WithIngredients is the markup starting at the last ingredients
	// heading, truncated to the window width.
	WithIngredients string
}

// Windower cuts a page into the windows used as model input.
type Windower interface {
	// Window cleans the HTML and returns the windows around the ingredients
	// heading. Returns ENOTFOUND if the page has no ingredients heading.
	Window(html string) (*ExtractedHTML, error)
}
