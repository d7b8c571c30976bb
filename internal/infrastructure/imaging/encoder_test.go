package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/areashot/internal/domain/entity"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0x40, A: 0xff})
		}
	}
	return img
}

func TestEncoder_PNGIsLossless(t *testing.T) {
	src := testImage(64, 32)
	var buf bytes.Buffer

	require.NoError(t, NewEncoder(Options{}).Encode(&buf, src, entity.FormatPNG))

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), decoded.Bounds())
	r, g, b, a := decoded.At(10, 20).RGBA()
	assert.Equal(t, [4]uint32{10 * 0x101, 20 * 0x101, 0x40 * 0x101, 0xffff}, [4]uint32{r, g, b, a})
}

func TestEncoder_JPEG(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewEncoder(Options{JPEGQuality: 70}).Encode(&buf, testImage(40, 30), entity.FormatJPEG))

	cfg, err := jpeg.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 30, cfg.Height)
}

func TestEncoder_PDF(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewEncoder(Options{}).Encode(&buf, testImage(200, 100), entity.FormatPDF))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "/Subtype /Image")
}

func TestEncoder_Rejects(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(Options{})

	assert.Error(t, enc.Encode(&buf, testImage(1, 1), entity.OutputFormat("gif")))
	assert.Error(t, enc.Encode(&buf, image.NewRGBA(image.Rectangle{}), entity.FormatPDF))
}

func TestNewEncoder_Defaults(t *testing.T) {
	enc := NewEncoder(Options{JPEGQuality: 150})

	assert.Equal(t, defaultJPEGQuality, enc.opts.JPEGQuality)
	assert.Equal(t, float64(defaultPDFDPI), enc.opts.PDFDPI)
	assert.InDelta(t, 25.4, enc.pixelsToMm(96), 1e-9)
}
