// Package imaging encodes captured rasters as PNG, JPEG or single-page PDF.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/bnema/areashot/internal/application/port"
	"github.com/bnema/areashot/internal/domain/entity"
)

const (
	defaultJPEGQuality = 90
	defaultPDFDPI      = 96
	mmPerInch          = 25.4
)

// Options tunes lossy and paged output.
type Options struct {
	JPEGQuality int
	// PDFDPI maps output pixels to page millimetres.
	PDFDPI float64
	// PNGCompression trades speed for size; clipboard writes use BestSpeed.
	PNGCompression png.CompressionLevel
}

// Encoder implements port.ImageEncoder.
type Encoder struct {
	opts Options
}

var _ port.ImageEncoder = (*Encoder)(nil)

// NewEncoder creates an encoder, filling unset options with defaults.
func NewEncoder(opts Options) *Encoder {
	if opts.JPEGQuality <= 0 || opts.JPEGQuality > 100 {
		opts.JPEGQuality = defaultJPEGQuality
	}
	if opts.PDFDPI <= 0 {
		opts.PDFDPI = defaultPDFDPI
	}
	return &Encoder{opts: opts}
}

// Encode writes img to w in the given format.
func (e *Encoder) Encode(w io.Writer, img image.Image, format entity.OutputFormat) error {
	switch format {
	case entity.FormatPNG, "":
		enc := png.Encoder{CompressionLevel: e.opts.PNGCompression}
		return enc.Encode(w, img)
	case entity.FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: e.opts.JPEGQuality})
	case entity.FormatPDF:
		return e.encodePDF(w, img)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func (e *Encoder) pixelsToMm(px int) float64 {
	return float64(px) * mmPerInch / e.opts.PDFDPI
}

// encodePDF places the raster on one page sized to it.
func (e *Encoder) encodePDF(w io.Writer, img image.Image) error {
	b := img.Bounds()
	if b.Empty() {
		return fmt.Errorf("encode pdf: empty image")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode pdf page: %w", err)
	}

	wMm, hMm := e.pixelsToMm(b.Dx()), e.pixelsToMm(b.Dy())
	orientation := "P"
	if wMm > hMm {
		orientation = "L"
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: wMm, Ht: hMm},
	})
	pdf.SetTitle("areashot capture", true)
	pdf.SetCreator("areashot", true)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("capture", opt, &buf)
	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()
	pdf.ImageOptions("capture", 0, 0, pageW, pageH, false, opt, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("encode pdf: %w", err)
	}
	return nil
}
