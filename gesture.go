package gesture

import (
	"math"
	"time"
)

// Point is a single canonical pointer position in surface coordinates. The
// origin is the top-left, with Y increasing downward.
type Point struct {
	X, Y float64
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Mid returns the midpoint of p and q.
func (p Point) Mid(q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Direction is the dominant axis direction of a movement.
type Direction uint8

const (
	DirectionNone  Direction = iota // no movement
	DirectionLeft                   // negative X
	DirectionRight                  // positive X
	DirectionUp                     // negative Y
	DirectionDown                   // positive Y
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
		return "none"
	}
}

// Directions is a bitmask of enabled swipe directions.
// Values can be combined with bitwise OR (e.g. SwipeLeft | SwipeRight).
type Directions uint8

const (
	SwipeLeft Directions = 1 << iota
	SwipeRight
	SwipeUp
	SwipeDown

	SwipeHorizontal = SwipeLeft | SwipeRight
	SwipeVertical   = SwipeUp | SwipeDown
	SwipeAll        = SwipeHorizontal | SwipeVertical
)

// Has reports whether d is enabled in the mask.
func (m Directions) Has(d Direction) bool {
	switch d {
	case DirectionLeft:
		return m&SwipeLeft != 0
	case DirectionRight:
		return m&SwipeRight != 0
	case DirectionUp:
		return m&SwipeUp != 0
	case DirectionDown:
		return m&SwipeDown != 0
	}
	return false
}

// dominantDirection resolves a delta to its dominant axis. Equal magnitudes
// resolve to the horizontal axis.
func dominantDirection(dx, dy float64) Direction {
	if dx == 0 && dy == 0 {
		return DirectionNone
	}
	if math.Abs(dx) >= math.Abs(dy) {
		if dx < 0 {
			return DirectionLeft
		}
		return DirectionRight
	}
	if dy < 0 {
		return DirectionUp
	}
	return DirectionDown
}

// EventType identifies a kind of gesture event.
type EventType uint8

const (
	EventTap       EventType = iota // terminal: short press without movement
	EventDoubleTap                  // terminal: second tap inside DoubleTapTime
	EventLongPress                  // interim: pointer held for LongPressTime
	EventDrag                       // interim: single pointer moved past DragThreshold
	EventSwipe                      // terminal: fast movement past SwipeThreshold
	EventPinch                      // interim: two-pointer spread changed
	EventPreview                    // onMove only: raw drag offset for live feedback
)

func (t EventType) String() string {
	switch t {
	case EventTap:
		return "tap"
	case EventDoubleTap:
		return "doubletap"
	case EventLongPress:
		return "longpress"
	case EventDrag:
		return "drag"
	case EventSwipe:
		return "swipe"
	case EventPinch:
		return "pinch"
	case EventPreview:
		return "preview"
	default:
		return "unknown"
	}
}

// Terminal reports whether the event type concludes a cycle.
func (t EventType) Terminal() bool {
	switch t {
	case EventTap, EventDoubleTap, EventSwipe:
		return true
	}
	return false
}

// Event is a recognized gesture. The common fields are always set; the
// variant fields are valid only for the Type noted beside them.
type Event struct {
	Type      EventType
	ZoneID    string
	Start     Point
	Current   Point
	DeltaX    float64
	DeltaY    float64
	Distance  float64
	Velocity  float64 // px/ms
	Direction Direction
	Timestamp time.Time

	// LongPress
	Duration time.Duration
	// Drag
	IsDragging bool
	// Swipe
	SwipeDirection Direction
	// Pinch
	Scale         float64
	PreviousScale float64
	Center        Point
}

// FrameKind is the logical phase of a pointer frame.
type FrameKind uint8

const (
	FrameStart  FrameKind = iota // pointer(s) went down
	FrameMove                    // pointer(s) moved while down
	FrameEnd                     // pointer(s) lifted
	FrameCancel                  // platform aborted the interaction
)

func (k FrameKind) String() string {
	switch k {
	case FrameStart:
		return "start"
	case FrameMove:
		return "move"
	case FrameEnd:
		return "end"
	case FrameCancel:
		return "cancel"
	default:
		return "unknown"
	}
}
