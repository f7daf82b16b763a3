package services

import (
	"context"

	"github.com/desertthunder/coursetrack/internal/catalog"
	"github.com/desertthunder/coursetrack/internal/models"
	"github.com/desertthunder/coursetrack/internal/shared"
)

// ContentSource provides the read-only course catalog document.
type ContentSource interface {
	// FetchCatalog retrieves the document. Partial lesson data is allowed.
	FetchCatalog(ctx context.Context) (*models.RawDocument, error)

	// Name describes the source for logs (e.g., a URL or file path).
	Name() string
}

var (
	_ ContentSource = (*HTTPSource)(nil)
	_ ContentSource = (*FileSource)(nil)
	_ ContentSource = EmbeddedSource{}
)

// EmbeddedSource serves the sample course compiled into the binary.
type EmbeddedSource struct{}

func (EmbeddedSource) FetchCatalog(ctx context.Context) (*models.RawDocument, error) {
	return &models.RawDocument{Sections: catalog.Sample()}, nil
}

func (EmbeddedSource) Name() string { return "embedded sample" }

// NewSource selects a [ContentSource] from configuration.
func NewSource(cfg shared.ContentConfig, opts ...HTTPOption) ContentSource {
	switch {
	case cfg.URL != "":
		return NewHTTPSource(cfg.URL, opts...)
	case cfg.Path != "":
		return NewFileSource(cfg.Path)
	default:
		return EmbeddedSource{}
	}
}
