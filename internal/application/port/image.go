package port

import (
	"context"
	"image"
	"io"

	"github.com/bnema/areashot/internal/domain/entity"
)

// ImageEncoder serialises a raster in one of the output formats.
type ImageEncoder interface {
	Encode(w io.Writer, img image.Image, format entity.OutputFormat) error
}

// ImageStore persists encoded captures.
type ImageStore interface {
	// Save writes img into dir and returns the file path.
	Save(ctx context.Context, dir, name string, img image.Image, format entity.OutputFormat) (string, error)
}
