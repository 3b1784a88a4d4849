package goquery_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/recipeset"
	"github.com/fwojciec/recipeset/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Windower implements recipeset.Windower at compile time.
var _ recipeset.Windower = (*goquery.Windower)(nil)

func TestWindower_Window(t *testing.T) {
	t.Parallel()

	t.Run("single heading anchors both windows", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p></p><h2>Ingredients</h2><ul><li>2 eggs</li></ul></body></html>`

		got, err := goquery.NewWindower().Window(html)

		require.NoError(t, err)
		assert.Equal(t, "<h2>Ingredients</h2><ul><li>2 eggs</li></ul></body>", got.WithIngredients)
		assert.Equal(t, "<body>", got.BeforeIngredients)
	})

	t.Run("returns not found without heading", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><h1>Ingredients</h1><h5>Ingredients</h5><p>2 eggs</p></body></html>`

		_, err := goquery.NewWindower().Window(html)

		require.Error(t, err)
		assert.Equal(t, recipeset.ENOTFOUND, recipeset.ErrorCode(err))
		assert.Contains(t, recipeset.ErrorMessage(err), "does not seem to have ingredients")
	})

	t.Run("returns not found for empty document", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewWindower().Window("")

		require.Error(t, err)
		assert.Equal(t, recipeset.ENOTFOUND, recipeset.ErrorCode(err))
	})

	t.Run("first heading bounds before window and last starts with window", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Jump to</p><h3>Ingredients</h3><p>story</p><h2>Ingredients</h2><ul><li>1 cup rice</li></ul></body></html>`

		got, err := goquery.NewWindower().Window(html)

		require.NoError(t, err)
		assert.Equal(t, "<body><p>Jump to</p>", got.BeforeIngredients)
		assert.Equal(t, "<h2>Ingredients</h2><ul><li>1 cup rice</li></ul></body>", got.WithIngredients)
	})

	t.Run("matches case-insensitively with leading whitespace", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><h4>  INGREDIENTS List</h4><p>salt</p></body></html>`

		got, err := goquery.NewWindower().Window(html)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got.WithIngredients, "<h4>  INGREDIENTS List</h4>"))
	})

	t.Run("matches headings that had attributes", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><h2 class="wprm-recipe-header" id="ing">Ingredients</h2><p>salt</p></body></html>`

		got, err := goquery.NewWindower().Window(html)

		require.NoError(t, err)
		assert.Equal(t, "<h2>Ingredients</h2><p>salt</p></body>", got.WithIngredients)
	})

	t.Run("ignores headings inside pruned elements", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><nav><h2>Ingredients</h2></nav><footer><h3>Ingredients</h3></footer><p>text</p></body></html>`

		_, err := goquery.NewWindower().Window(html)

		require.Error(t, err)
		assert.Equal(t, recipeset.ENOTFOUND, recipeset.ErrorCode(err))
	})

	t.Run("windows are bounded by width", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>` + strings.Repeat("a", 100) + `</p><h2>Ingredients</h2><p>` + strings.Repeat("b", 100) + `</p></body></html>`

		got, err := goquery.NewWindower(goquery.WithWidth(20)).Window(html)

		require.NoError(t, err)
		assert.Equal(t, "<body><p>"+strings.Repeat("a", 11), got.BeforeIngredients)
		assert.Equal(t, "<h2>Ingredients</h2>", got.WithIngredients)
	})

	t.Run("with window is clamped at end of markup", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><h2>Ingredients</h2><p>x</p></body></html>`

		got, err := goquery.NewWindower(goquery.WithWidth(1000)).Window(html)

		require.NoError(t, err)
		assert.Equal(t, "<h2>Ingredients</h2><p>x</p></body>", got.WithIngredients)
	})

	t.Run("widths count characters not bytes", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>` + strings.Repeat("é", 50) + `</p><h2>Ingredients</h2><p>` + strings.Repeat("ñ", 50) + `</p></body></html>`

		got, err := goquery.NewWindower(goquery.WithWidth(30)).Window(html)

		require.NoError(t, err)
		assert.Equal(t, 30, utf8.RuneCountInString(got.BeforeIngredients))
		assert.Equal(t, 30, utf8.RuneCountInString(got.WithIngredients))
		assert.True(t, utf8.ValidString(got.BeforeIngredients))
		assert.True(t, utf8.ValidString(got.WithIngredients))
		assert.True(t, strings.HasPrefix(got.WithIngredients, "<h2>Ingredients</h2>"))
	})

	t.Run("width below one keeps default", func(t *testing.T) {
		t.Parallel()

		for _, width := range []int{-1, 0} {
			w := goquery.NewWindower(goquery.WithWidth(width))

			assert.Equal(t, recipeset.DefaultWindowWidth, w.Width())
		}
	})

	t.Run("quotes in text are kept literal in both windows", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Mom's "best" sauce</p><h2>Ingredients</h2><ul><li>2 cups O'Brien "frozen" potatoes</li></ul></body></html>`

		got, err := goquery.NewWindower().Window(html)

		require.NoError(t, err)
		assert.Equal(t, `<body><p>Mom's "best" sauce</p>`, got.BeforeIngredients)
		assert.Equal(t, `<h2>Ingredients</h2><ul><li>2 cups O'Brien "frozen" potatoes</li></ul></body>`, got.WithIngredients)
	})
}

func TestWindower_Window_LengthBounds(t *testing.T) {
	t.Parallel()

	pages := []string{
		`<html><body><h2>Ingredients</h2></body></html>`,
		`<html><body><p>` + strings.Repeat("intro ", 900) + `</p><h3>Ingredients</h3><ul>` + strings.Repeat("<li>1 tsp salt</li>", 400) + `</ul></body></html>`,
		`<html><body><h2>Ingredients</h2><p>` + strings.Repeat("z", 5000) + `</p><h4>ingredients</h4><p>tail</p></body></html>`,
	}

	for _, width := range []int{1, 50, recipeset.DefaultWindowWidth} {
		w := goquery.NewWindower(goquery.WithWidth(width))
		for _, page := range pages {
			got, err := w.Window(page)
			require.NoError(t, err)
			assert.LessOrEqual(t, utf8.RuneCountInString(got.BeforeIngredients), width)
			assert.LessOrEqual(t, utf8.RuneCountInString(got.WithIngredients), width)
		}
	}
}

func TestClean(t *testing.T) {
	t.Parallel()

	t.Run("removes noise elements with descendants", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><header><p>Site</p></header><script>var x = 1;</script><style>p{}</style><p>kept</p><form><input><p>Search</p></form><iframe></iframe><svg><text>icon</text></svg><img src="a.png"></body></html>`

		got, err := goquery.Clean(html)

		require.NoError(t, err)
		assert.Equal(t, "<body><p>kept</p></body>", got)
	})

	t.Run("removes elements without text and strips attributes", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="wrap"><span>  </span><div><br></div><p style="color:red">text</p></div></body></html>`

		got, err := goquery.Clean(html)

		require.NoError(t, err)
		assert.Equal(t, "<body><div><p>text</p></div></body>", got)
	})

	t.Run("escapes markup characters but not quotes", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Salt &amp; pepper, 1 &lt; 2, it's "fine", literal &amp;#39;</p></body></html>`

		got, err := goquery.Clean(html)

		require.NoError(t, err)
		assert.Equal(t, `<body><p>Salt &amp; pepper, 1 &lt; 2, it's "fine", literal &amp;#39;</p></body>`, got)
	})

	t.Run("returns empty markup when nothing has text", func(t *testing.T) {
		t.Parallel()

		got, err := goquery.Clean(`<html><body><div><img src="x.png"></div></body></html>`)

		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestLocate(t *testing.T) {
	t.Parallel()

	html := `<html><body><p>é</p><h2>Ingredients</h2><h3>ingredients</h3></body></html>`

	markup, offsets, err := goquery.Locate(html)

	require.NoError(t, err)
	assert.Equal(t, "<body><p>é</p><h2>Ingredients</h2><h3>ingredients</h3></body>", markup)
	assert.Equal(t, []int{14, 34}, offsets)
}

func TestWindower_Cut(t *testing.T) {
	t.Parallel()

	t.Run("cuts windows from located markup", func(t *testing.T) {
		t.Parallel()

		markup, offsets, err := goquery.Locate(`<html><body><p>intro</p><h2>Ingredients</h2><ul><li>rice</li></ul></body></html>`)
		require.NoError(t, err)

		got, err := goquery.NewWindower(goquery.WithWidth(20)).Cut(markup, offsets)

		require.NoError(t, err)
		assert.Equal(t, "<body><p>intro</p>", got.BeforeIngredients)
		assert.Equal(t, "<h2>Ingredients</h2>", got.WithIngredients)
	})

	t.Run("returns not found without offsets", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewWindower().Cut("<body><p>x</p></body>", nil)

		require.Error(t, err)
		assert.Equal(t, recipeset.ENOTFOUND, recipeset.ErrorCode(err))
	})
}
