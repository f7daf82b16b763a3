// Package catalog turns authored course content into a fully-populated [models.Catalog].
//
// Content may be partial: any lesson field can be omitted and [Normalize] fills it with a fixed default,
// so a half-written document never breaks the tracker. The package also embeds a small sample course
// used when no content source is configured.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/coursetrack/internal/models"
	"github.com/desertthunder/coursetrack/internal/shared"
)

//go:embed sample.json
var sampleDocument []byte

// Decode parses a content document. A null or missing "sections" member decodes to no sections.
func Decode(data []byte) (*models.RawDocument, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", shared.ErrContentLoad)
	}

	var doc models.RawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to decode document: %v", shared.ErrContentLoad, err)
	}

	return &doc, nil
}

// Sample returns the raw sections of the embedded sample course.
func Sample() []models.RawSection {
	doc, err := Decode(sampleDocument)
	if err != nil {
		panic(fmt.Sprintf("failed to parse embedded sample catalog: %v", err))
	}
	return doc.Sections
}

// SampleDocument returns the embedded sample course as raw JSON bytes.
func SampleDocument() []byte {
	return bytes.Clone(sampleDocument)
}
