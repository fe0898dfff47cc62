package dataset

import (
	"context"
	"fmt"
	"os"

	"carmarket/internal/domain"
)

// FileSource reads a JSON file from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Load(ctx context.Context) ([]domain.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer f.Close()
	return Decode(f)
}
