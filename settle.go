package gesture

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Settle eases a drag offset back to rest after release. Feed it the last
// EventPreview a zone delivered to onMove and call Update each frame; the
// returned offset is what the surface should be translated by.
//
// There is no global animation manager; callers own the Settle and drive it.
type Settle struct {
	x, y   *gween.Tween
	offset Point
	Done   bool
}

// NewSettle creates a Settle that moves from offset to the origin over d.
// A nil fn uses ease.OutCubic.
func NewSettle(offset Point, d time.Duration, fn ease.TweenFunc) *Settle {
	if fn == nil {
		fn = ease.OutCubic
	}
	secs := float32(d.Seconds())
	return &Settle{
		x:      gween.New(float32(offset.X), 0, secs, fn),
		y:      gween.New(float32(offset.Y), 0, secs, fn),
		offset: offset,
		Done:   d <= 0,
	}
}

// SettleFrom starts a Settle from a preview or drag event's offset.
func SettleFrom(ev Event, d time.Duration, fn ease.TweenFunc) *Settle {
	return NewSettle(Point{X: ev.DeltaX, Y: ev.DeltaY}, d, fn)
}

// Update advances the tween by dt seconds and returns the current offset.
func (s *Settle) Update(dt float32) Point {
	if s.Done {
		s.offset = Point{}
		return s.offset
	}
	x, doneX := s.x.Update(dt)
	y, doneY := s.y.Update(dt)
	s.offset = Point{X: float64(x), Y: float64(y)}
	s.Done = doneX && doneY
	if s.Done {
		s.offset = Point{}
	}
	return s.offset
}

// Offset returns the offset computed by the last Update.
func (s *Settle) Offset() Point {
	return s.offset
}
