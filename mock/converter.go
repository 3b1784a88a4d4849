package mock

import "github.com/fwojciec/recipeset"

var _ recipeset.Converter = (*Converter)(nil)

// Converter is a mock implementation of recipeset.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ recipeset.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor is a mock implementation of recipeset.MetadataExtractor.
type MetadataExtractor struct {
	ExtractMetadataFn func(html string) (*recipeset.PageMetadata, error)
}

func (e *MetadataExtractor) ExtractMetadata(html string) (*recipeset.PageMetadata, error) {
	return e.ExtractMetadataFn(html)
}
