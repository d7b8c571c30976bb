package entity

// SelectionState is the phase of one selection gesture.
type SelectionState int

const (
	SelectionIdle SelectionState = iota
	SelectionDragging
	SelectionCompleted
	SelectionCancelled
)

func (s SelectionState) String() string {
	switch s {
	case SelectionIdle:
		return "idle"
	case SelectionDragging:
		return "dragging"
	case SelectionCompleted:
		return "completed"
	case SelectionCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether the gesture has finished.
func (s SelectionState) Terminal() bool {
	return s == SelectionCompleted || s == SelectionCancelled
}

// InputEventKind identifies an inbound selection event.
type InputEventKind int

const (
	// EventStart is the payload-free selection-start signal.
	EventStart InputEventKind = iota
	EventPointerDown
	EventPointerMove
	EventPointerUp
	EventKeyDown
)

func (k InputEventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventPointerDown:
		return "pointerdown"
	case EventPointerMove:
		return "pointermove"
	case EventPointerUp:
		return "pointerup"
	case EventKeyDown:
		return "keydown"
	default:
		return "unknown"
	}
}

// PrimaryButton is the DOM button index of the main pointer button.
const PrimaryButton = 0

// KeyEscape is the DOM key name that cancels a selection.
const KeyEscape = "Escape"

// InputEvent is one pointer or keyboard event from the selection overlay.
type InputEvent struct {
	Kind   InputEventKind
	Point  ViewportPoint
	Button int
	Key    string
}

// IsEscape reports whether the event is an Escape key press.
func (e InputEvent) IsEscape() bool {
	return e.Kind == EventKeyDown && e.Key == KeyEscape
}

// SelectionResult is the outcome of dispatching an event.
// Rect and Scroll are set only when State is SelectionCompleted.
type SelectionResult struct {
	State  SelectionState
	Rect   DocumentRect
	Scroll ScrollPosition
}

// Velocity is the per-axis auto-scroll speed in CSS pixels per tick.
type Velocity struct {
	X, Y float64
}

// IsZero reports whether both axes are idle.
func (v Velocity) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Direction names one of the four scroll directions.
type Direction int

const (
	DirectionLeft Direction = iota
	DirectionRight
	DirectionUp
	DirectionDown
)

func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return "unknown"
	}
}
