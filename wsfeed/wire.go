package wsfeed

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/phanxgames/gesture"
)

// ErrUnknownFrameKind is returned when an inbound frame names a phase other
// than start, move, end or cancel.
var ErrUnknownFrameKind = errors.New("wsfeed: unknown frame kind")

// wirePoint is the JSON form of a gesture.Point.
type wirePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// frameMessage is an inbound pointer frame:
//
//	{"kind":"move","target":"card-1","points":[{"x":10,"y":20}]}
type frameMessage struct {
	Kind   string      `json:"kind"`
	Target string      `json:"target"`
	Points []wirePoint `json:"points"`
}

// Frame is a decoded inbound pointer frame.
type Frame struct {
	Kind   gesture.FrameKind
	Target string
	Points []gesture.Point
}

// DecodeFrame parses one inbound JSON pointer frame.
func DecodeFrame(data []byte) (Frame, error) {
	var m frameMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return Frame{}, fmt.Errorf("wsfeed: decode frame: %w", err)
	}
	kind, err := parseKind(m.Kind)
	if err != nil {
		return Frame{}, err
	}
	f := Frame{Kind: kind, Target: m.Target}
	if len(m.Points) > 0 {
		f.Points = make([]gesture.Point, len(m.Points))
		for i, p := range m.Points {
			f.Points[i] = gesture.Point{X: p.X, Y: p.Y}
		}
	}
	return f, nil
}

func parseKind(s string) (gesture.FrameKind, error) {
	switch s {
	case "start":
		return gesture.FrameStart, nil
	case "move":
		return gesture.FrameMove, nil
	case "end":
		return gesture.FrameEnd, nil
	case "cancel":
		return gesture.FrameCancel, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFrameKind, s)
}

// envelope is the wire format envelope for outbound WS messages.
type envelope struct {
	Type string     `json:"type"`
	Ts   *time.Time `json:"ts,omitempty"`
	Data any        `json:"data,omitempty"`
}

// wireEvent is the JSON `data` payload of a "gesture" message. Variant
// fields are omitted when they do not apply.
type wireEvent struct {
	Type      string    `json:"type"`
	Zone      string    `json:"zone"`
	Start     wirePoint `json:"start"`
	Current   wirePoint `json:"current"`
	DeltaX    float64   `json:"delta_x"`
	DeltaY    float64   `json:"delta_y"`
	Distance  float64   `json:"distance"`
	Velocity  *float64  `json:"velocity,omitempty"`
	Direction string    `json:"direction"`

	DurationMS     *int64     `json:"duration_ms,omitempty"`
	IsDragging     *bool      `json:"is_dragging,omitempty"`
	SwipeDirection string     `json:"swipe_direction,omitempty"`
	Scale          *float64   `json:"scale,omitempty"`
	PreviousScale  *float64   `json:"previous_scale,omitempty"`
	Center         *wirePoint `json:"center,omitempty"`
}

// EncodeEvent serializes ev as a "gesture" envelope.
func EncodeEvent(ev gesture.Event) ([]byte, error) {
	w := wireEvent{
		Type:      ev.Type.String(),
		Zone:      ev.ZoneID,
		Start:     wirePoint(ev.Start),
		Current:   wirePoint(ev.Current),
		DeltaX:    ev.DeltaX,
		DeltaY:    ev.DeltaY,
		Distance:  ev.Distance,
		Direction: ev.Direction.String(),
	}
	// MaxVelocity marks a zero-duration cycle and is omitted.
	if ev.Velocity != gesture.MaxVelocity {
		v := ev.Velocity
		w.Velocity = &v
	}

	switch ev.Type {
	case gesture.EventLongPress:
		ms := ev.Duration.Milliseconds()
		w.DurationMS = &ms
	case gesture.EventDrag:
		d := ev.IsDragging
		w.IsDragging = &d
	case gesture.EventSwipe:
		w.SwipeDirection = ev.SwipeDirection.String()
	case gesture.EventPinch:
		scale, prev := ev.Scale, ev.PreviousScale
		center := wirePoint(ev.Center)
		w.Scale, w.PreviousScale, w.Center = &scale, &prev, &center
	}

	ts := ev.Timestamp.UTC()
	out, err := json.Marshal(envelope{Type: "gesture", Ts: &ts, Data: w})
	if err != nil {
		return nil, fmt.Errorf("wsfeed: encode event: %w", err)
	}
	return out, nil
}
