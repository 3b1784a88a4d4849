package goquery

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/recipeset"
)

// noiseSelector matches elements pruned before windowing, descendants included.
const noiseSelector = "svg, img, style, script, iframe, header, nav, form, footer"

// textUnescaper undoes the quote escaping html.Render applies to text.
// Attributes are stripped, so quotes only occur in text, and a literal
// "&#39;" in the page is rendered as "&amp;#39;" and left alone.
var textUnescaper = strings.NewReplacer("&#39;", "'", "&#34;", `"`)

// headingPattern matches an attribute-free h2-h4 opening tag whose text
// starts with "ingredients". Attributes are stripped before matching.
var headingPattern = regexp.MustCompile(`(?i)<h(?:2|3|4)>\s*ingredients`)

// Ensure Windower implements recipeset.Windower at compile time.
var _ recipeset.Windower = (*Windower)(nil)

// Windower cuts cleaned page markup into windows anchored on the
// ingredients heading.
type Windower struct {
	width int
}

// WindowerOption configures a Windower.
type WindowerOption func(*Windower)

// WithWidth sets the window width in characters.
// Defaults to recipeset.DefaultWindowWidth; widths below 1 are ignored.
func WithWidth(n int) WindowerOption {
	return func(w *Windower) {
		if n >= 1 {
			w.width = n
		}
	}
}

// NewWindower creates a new Windower.
func NewWindower(opts ...WindowerOption) *Windower {
	w := &Windower{width: recipeset.DefaultWindowWidth}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Width returns the configured window width.
func (w *Windower) Width() int {
	return w.width
}

// Window returns the markup before the first ingredients heading and the
// markup starting at the last one, each at most Width characters long.
func (w *Windower) Window(html string) (*recipeset.ExtractedHTML, error) {
	markup, offsets, err := Locate(html)
	if err != nil {
		return nil, err
	}
	return w.Cut(markup, offsets)
}

// Cut slices markup already returned by Locate into the two windows.
func (w *Windower) Cut(markup string, offsets []int) (*recipeset.ExtractedHTML, error) {
	if len(offsets) == 0 {
		return nil, recipeset.Errorf(recipeset.ENOTFOUND, "this site does not seem to have ingredients")
	}

	runes := []rune(markup)
	first := offsets[0]
	last := offsets[len(offsets)-1]

	return &recipeset.ExtractedHTML{
		BeforeIngredients: string(runes[:min(first, w.width)]),
		WithIngredients:   string(runes[last:min(last+w.width, len(runes))]),
	}, nil
}

// Locate cleans the HTML and returns the serialized body together with the
// character offsets of every ingredients heading in it.
func Locate(html string) (markup string, offsets []int, err error) {
	markup, err = Clean(html)
	if err != nil {
		return "", nil, err
	}

	// Regexp offsets are byte offsets; windows are cut on characters.
	prevByte, prevRune := 0, 0
	for _, loc := range headingPattern.FindAllStringIndex(markup, -1) {
		prevRune += utf8.RuneCountInString(markup[prevByte:loc[0]])
		prevByte = loc[0]
		offsets = append(offsets, prevRune)
	}
	return markup, offsets, nil
}

// Clean prunes noise elements, drops elements without visible text, strips
// all attributes and returns the outer markup of the body element. Returns
// an empty string if nothing with text survives.
func Clean(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", recipeset.Errorf(recipeset.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(noiseSelector).Remove()

	// Removing a textless element never changes the text of its ancestors,
	// so one pass in document order reaches the fixed point.
	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		if strings.TrimSpace(sel.Text()) == "" {
			sel.Remove()
			return
		}
		for _, n := range sel.Nodes {
			n.Attr = nil
		}
	})

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return "", nil
	}
	markup, err := goquery.OuterHtml(body)
	if err != nil {
		return "", fmt.Errorf("render body: %w", err)
	}
	return textUnescaper.Replace(markup), nil
}
