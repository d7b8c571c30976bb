package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrSelectionTooSmall marks a gesture discarded below the minimum size. It is not reported to the user.
	ErrSelectionTooSmall = errors.New("selection too small")
	// ErrScrollBlocked means no scroll mechanism moved the page.
	ErrScrollBlocked = errors.New("scroll blocked")
	// ErrTileCaptureFailed means a frame could not be captured or decoded.
	ErrTileCaptureFailed = errors.New("tile capture failed")
	// ErrOverlayElementUnreadable means a media element's frame could not be read.
	ErrOverlayElementUnreadable = errors.New("overlay element unreadable")
	// ErrClipboardWriteFailed means no clipboard accepted the image.
	ErrClipboardWriteFailed = errors.New("clipboard write failed")
	// ErrCaptureInProgress is returned when a capture is already running.
	ErrCaptureInProgress = errors.New("capture already in progress")
	// ErrSessionClosed is returned when dispatching to a finished selection session.
	ErrSessionClosed = errors.New("selection session closed")
	// ErrEmptyTarget is returned when asked to capture a rectangle without area.
	ErrEmptyTarget = errors.New("capture target is empty")
)

// CaptureError wraps a failure that aborted a whole capture.
type CaptureError struct {
	Op   string
	Tile int
	Err  error
}

func (e *CaptureError) Error() string {
	if e.Tile >= 0 {
		return fmt.Sprintf("capture %s (tile %d): %v", e.Op, e.Tile, e.Err)
	}
	return fmt.Sprintf("capture %s: %v", e.Op, e.Err)
}

func (e *CaptureError) Unwrap() error {
	return e.Err
}
