// Package readability reads page metadata using go-readability.
package readability

import (
	"fmt"
	"strings"

	"github.com/fwojciec/recipeset"
	"github.com/go-shiori/go-readability"
)

var _ recipeset.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor reads the title, byline and site name of a page.
type MetadataExtractor struct{}

// NewMetadataExtractor creates a new MetadataExtractor.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{}
}

// ExtractMetadata returns the metadata of rawHTML.
func (e *MetadataExtractor) ExtractMetadata(rawHTML string) (*recipeset.PageMetadata, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, recipeset.Errorf(recipeset.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, fmt.Errorf("readability: %w", err)
	}

	return &recipeset.PageMetadata{
		Title:    article.Title,
		Author:   article.Byline,
		Sitename: article.SiteName,
	}, nil
}
