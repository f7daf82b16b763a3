package services

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/coursetrack/internal/catalog"
	"github.com/desertthunder/coursetrack/internal/models"
	"github.com/desertthunder/coursetrack/internal/shared"
)

// FileSource reads the catalog document from disk.
type FileSource struct {
	path string
}

// NewFileSource creates a source for the document at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string { return s.path }

func (s *FileSource) FetchCatalog(ctx context.Context) (*models.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrContentLoad, err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", shared.ErrContentLoad, s.path, err)
	}

	return catalog.Decode(data)
}
