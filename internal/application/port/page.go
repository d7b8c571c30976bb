// Package port defines application-layer interfaces for external capabilities.
// Ports abstract infrastructure concerns, allowing the application layer to
// remain independent of specific implementations (Chrome DevTools, D-Bus, etc.).
package port

import (
	"context"

	"github.com/bnema/areashot/internal/domain/entity"
)

// ScrollMechanism is one way of moving the active scroll target.
type ScrollMechanism int

const (
	// ScrollRelative scrolls by a delta (window.scrollBy / element.scrollBy).
	ScrollRelative ScrollMechanism = iota
	// ScrollAbsolute scrolls to a position (window.scrollTo / element.scrollTo).
	ScrollAbsolute
	// ScrollRootOffset assigns the scrolling root's offsets directly.
	ScrollRootOffset
	// ScrollFallbackOffset assigns offsets on the legacy fallback elements.
	ScrollFallbackOffset
)

// ScrollMechanisms is the order in which mechanisms are attempted.
var ScrollMechanisms = []ScrollMechanism{
	ScrollRelative,
	ScrollAbsolute,
	ScrollRootOffset,
	ScrollFallbackOffset,
}

// String returns a human-readable representation of the mechanism.
func (m ScrollMechanism) String() string {
	switch m {
	case ScrollRelative:
		return "relative"
	case ScrollAbsolute:
		return "absolute"
	case ScrollRootOffset:
		return "root-offset"
	case ScrollFallbackOffset:
		return "fallback-offset"
	default:
		return "unknown"
	}
}

// ScrollReadings holds every equivalent scroll property of the active target,
// in preference order. A nil entry means the property is undefined on this page.
type ScrollReadings struct {
	X []*float64
	Y []*float64
}

// ScrollExtent bounds the positions the active target can reach.
type ScrollExtent struct {
	Min entity.ScrollPosition
	Max entity.ScrollPosition
}

// Clamp limits p to the extent.
func (e ScrollExtent) Clamp(p entity.ScrollPosition) entity.ScrollPosition {
	return entity.ScrollPosition{
		X: clamp(p.X, e.Min.X, e.Max.X),
		Y: clamp(p.Y, e.Min.Y, e.Max.Y),
	}
}

// Overflow returns how far content exceeds the visible area per axis.
func (e ScrollExtent) Overflow() entity.ScrollPosition {
	return e.Max.Sub(e.Min)
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ScrollContainer describes an inner element that could act as the scroll target.
type ScrollContainer struct {
	// ID is an adapter-assigned handle for UseScrollTarget.
	ID       string
	Tag      string
	Area     float64
	Overflow entity.ScrollPosition
}

// RootScrollTarget selects the page root.
const RootScrollTarget = ""

// ScrollHost is the page surface the scroll controller drives.
// Positions are in document space for the active target.
type ScrollHost interface {
	// ReadScroll returns the raw scroll readings of the active target.
	ReadScroll(ctx context.Context) (ScrollReadings, error)

	// ScrollExtent returns the reachable positions of the active target.
	ScrollExtent(ctx context.Context) (ScrollExtent, error)

	// ApplyScroll moves the active target using one mechanism. Relative
	// mechanisms use delta, the others use to.
	ApplyScroll(ctx context.Context, m ScrollMechanism, to, delta entity.ScrollPosition) error

	// ScrollContainers lists inner elements whose content overflows.
	ScrollContainers(ctx context.Context) ([]ScrollContainer, error)

	// RootExtent returns the extent of the page root regardless of the active target.
	RootExtent(ctx context.Context) (ScrollExtent, error)

	// UseScrollTarget switches the active target. RootScrollTarget selects the page root.
	UseScrollTarget(ctx context.Context, id string) error
}

// FrameCapturer snapshots the visible viewport.
type FrameCapturer interface {
	// Viewport returns the CSS size and device pixel ratio of the visible window.
	Viewport(ctx context.Context) (entity.Viewport, error)

	// CaptureFrame returns one encoded still of what is currently visible.
	CaptureFrame(ctx context.Context) (entity.Frame, error)
}

// MediaKind distinguishes media elements the frame capturer cannot see.
type MediaKind string

const (
	MediaVideo      MediaKind = "video"
	MediaCanvas     MediaKind = "canvas"
	MediaFrameVideo MediaKind = "iframe-video"
)

// InternalElementPrefix marks element ids owned by the selection overlay.
const InternalElementPrefix = "__areashot_"

// MediaElement is a visible media element and its viewport box.
type MediaElement struct {
	ID   string
	Kind MediaKind
	Box  entity.ViewportRect
}

// MediaSource reads media elements of the current page.
type MediaSource interface {
	// MediaElements lists media elements, excluding internal overlay elements.
	MediaElements(ctx context.Context) ([]MediaElement, error)

	// MediaFrame returns the current rendered frame of one element as PNG bytes.
	MediaFrame(ctx context.Context, id string) ([]byte, error)
}

// SelectionOverlay is the on-page selection UI.
type SelectionOverlay interface {
	// Show installs the overlay that intercepts pointer input.
	Show(ctx context.Context) error

	// Render draws the live selection box.
	Render(ctx context.Context, box entity.ViewportRect) error

	// Hide removes the overlay and returns once the page has repainted without it.
	Hide(ctx context.Context) error
}

// InputSource delivers overlay input events in order.
type InputSource interface {
	// Next blocks until an event arrives or ctx is done.
	Next(ctx context.Context) (entity.InputEvent, error)
}

// Page bundles every page-facing port implemented by one browser tab.
type Page interface {
	ScrollHost
	FrameCapturer
	MediaSource
	SelectionOverlay
	InputSource

	// URL returns the address of the loaded document.
	URL(ctx context.Context) (string, error)
}
