package entity

import (
	"fmt"
	"strings"
	"time"
)

// OutputFormat is the encoding of a saved capture.
type OutputFormat string

const (
	FormatPNG  OutputFormat = "png"
	FormatJPEG OutputFormat = "jpeg"
	FormatPDF  OutputFormat = "pdf"
)

// ParseOutputFormat maps a user-supplied name to a format.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Extension returns the file extension including the dot.
func (f OutputFormat) Extension() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatPDF:
		return ".pdf"
	default:
		return ".png"
	}
}

// CaptureStatus records how a capture run ended.
type CaptureStatus string

const (
	CaptureSucceeded CaptureStatus = "succeeded"
	CaptureFailed    CaptureStatus = "failed"
)

// Frame is one encoded still of the visible viewport with its declared device-pixel size.
type Frame struct {
	Data   []byte
	Width  int
	Height int
}

// CaptureRecord is one entry of the capture history.
type CaptureRecord struct {
	ID           string
	PageURL      string
	Rect         DocumentRect
	OutputWidth  int
	OutputHeight int
	Tiles        int
	Format       OutputFormat
	FilePath     string
	Clipboard    bool
	Status       CaptureStatus
	Error        string
	Duration     time.Duration
	CreatedAt    time.Time
}

// Succeeded reports whether the run produced an image.
func (r *CaptureRecord) Succeeded() bool {
	return r != nil && r.Status == CaptureSucceeded
}

// CaptureStats summarises one compositor run.
type CaptureStats struct {
	Tiles        int
	Skipped      int
	Overlays     int
	BlockedMoves int
	Scale        float64
}

// CaptureHistoryStats summarises the history table.
type CaptureHistoryStats struct {
	Total     int64
	Succeeded int64
	Failed    int64
	LastAt    *time.Time
}
