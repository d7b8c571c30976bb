package port

import "context"

// ImageClipboard defines the port interface for image clipboard writes.
// This abstracts the execution context that performs the write (page, desktop session).
type ImageClipboard interface {
	// Name identifies the clipboard in logs.
	Name() string

	// WriteImage copies PNG-encoded image data to the clipboard.
	WriteImage(ctx context.Context, png []byte) error
}
