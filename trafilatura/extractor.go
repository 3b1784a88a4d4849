// Package trafilatura reads page metadata using go-trafilatura.
package trafilatura

import (
	"fmt"
	"strings"

	"github.com/fwojciec/recipeset"
	"github.com/markusmobius/go-trafilatura"
)

var _ recipeset.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor reads the title, author and site name of a recipe page.
type MetadataExtractor struct{}

// NewMetadataExtractor creates a new MetadataExtractor.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{}
}

// ExtractMetadata returns the metadata of rawHTML. Returns EINVALID for
// empty input.
func (e *MetadataExtractor) ExtractMetadata(rawHTML string) (*recipeset.PageMetadata, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, recipeset.Errorf(recipeset.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, fmt.Errorf("extract metadata: %w", err)
	}

	return &recipeset.PageMetadata{
		Title:    result.Metadata.Title,
		Author:   result.Metadata.Author,
		Sitename: result.Metadata.Sitename,
	}, nil
}
