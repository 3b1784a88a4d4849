package recipeset

// Converter renders markup windows as Markdown for human review.
type Converter interface {
	// Convert transforms an HTML fragment into Markdown.
	Convert(html string) (string, error)
}

// PageMetadata holds descriptive metadata read from a recipe page.
type PageMetadata struct {
	Title    string
	Author   string
	Sitename string
}

// MetadataExtractor reads page metadata (title, author, site name) from raw HTML.
type MetadataExtractor interface {
	ExtractMetadata(html string) (*PageMetadata, error)
}
