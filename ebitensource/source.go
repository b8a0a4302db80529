// Package ebitensource polls Ebitengine mouse and touch state and turns it
// into gesture pointer frames.
//
// Call [Source.Poll] once per Update, before the engine's Update:
//
//	func (g *Game) Update() error {
//		g.input.Poll()
//		g.engine.Update()
//		return nil
//	}
package ebitensource

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/gesture"
)

// Submitter receives normalized frames. *gesture.Engine satisfies it.
type Submitter interface {
	SubmitPointerFrame(kind gesture.FrameKind, target any, points []gesture.Point, raw any) bool
}

// Resolver maps a screen position to the target under it, or nil for none.
type Resolver func(p gesture.Point) any

// Source converts per-frame Ebitengine input into start, move and end
// frames. The target is resolved once, at press time, and captured until
// every pointer is released.
//
// Touch input takes precedence: while any finger is down the mouse is
// ignored.
type Source struct {
	sub     Submitter
	resolve Resolver

	mouseDown bool
	mouseLast gesture.Point

	touches []gesture.Touch // active contacts, primary first
	target  any

	idBuf []ebiten.TouchID
}

// New creates a Source feeding sub. A nil resolve addresses every frame to
// the nil target.
func New(sub Submitter, resolve Resolver) *Source {
	if resolve == nil {
		resolve = func(gesture.Point) any { return nil }
	}
	return &Source{sub: sub, resolve: resolve}
}

// Poll reads the current cursor, mouse button and touch state from
// Ebitengine and submits whatever frames changed since the last call.
func (s *Source) Poll() {
	s.idBuf = ebiten.AppendTouchIDs(s.idBuf[:0])
	touches := make([]gesture.Touch, 0, len(s.idBuf))
	for _, id := range s.idBuf {
		x, y := ebiten.TouchPosition(id)
		touches = append(touches, gesture.Touch{ID: int(id), X: float64(x), Y: float64(y)})
	}
	if len(touches) > 0 || len(s.touches) > 0 {
		s.feedTouches(touches)
		return
	}

	mx, my := ebiten.CursorPosition()
	s.feedMouse(gesture.Point{X: float64(mx), Y: float64(my)},
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// feedMouse runs the single-pointer press/move/release transitions.
func (s *Source) feedMouse(p gesture.Point, pressed bool) {
	raw := gesture.MouseEvent{X: p.X, Y: p.Y}
	pts := []gesture.Point{p}

	switch {
	case pressed && !s.mouseDown:
		s.mouseDown = true
		s.target = s.resolve(p)
		s.sub.SubmitPointerFrame(gesture.FrameStart, s.target, pts, raw)
	case pressed && s.mouseDown:
		if p != s.mouseLast {
			s.sub.SubmitPointerFrame(gesture.FrameMove, s.target, pts, raw)
		}
	case !pressed && s.mouseDown:
		s.mouseDown = false
		s.sub.SubmitPointerFrame(gesture.FrameEnd, s.target, pts, raw)
		s.target = nil
	}
	s.mouseLast = p
}

// feedTouches diffs the current contacts against the previous poll.
func (s *Source) feedTouches(current []gesture.Touch) {
	ordered := s.order(current)
	prev := s.touches

	switch {
	case len(prev) == 0 && len(ordered) > 0:
		s.target = s.resolve(gesture.Point{X: ordered[0].X, Y: ordered[0].Y})
		s.submit(gesture.FrameStart, ordered)

	case len(ordered) == 0:
		s.submit(gesture.FrameEnd, prev)
		s.target = nil

	case len(ordered) > len(prev):
		s.submit(gesture.FrameStart, ordered)

	case len(ordered) < len(prev):
		s.submit(gesture.FrameEnd, []gesture.Touch{primary(prev, ordered)})

	case moved(prev, ordered):
		s.submit(gesture.FrameMove, ordered)
	}
	s.touches = ordered
}

func (s *Source) submit(kind gesture.FrameKind, touches []gesture.Touch) {
	tf := gesture.TouchFrame{Touches: touches}
	s.sub.SubmitPointerFrame(kind, s.target, gesture.Normalize(tf).Points, tf)
}

// order sorts current so that contacts seen last poll keep their relative
// order and new contacts follow. The primary contact stays first while it
// is down.
func (s *Source) order(current []gesture.Touch) []gesture.Touch {
	out := make([]gesture.Touch, 0, len(current))
	seen := make(map[int]bool, len(current))
	for _, p := range s.touches {
		for _, c := range current {
			if c.ID == p.ID {
				out = append(out, c)
				seen[c.ID] = true
				break
			}
		}
	}
	for _, c := range current {
		if !seen[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

// primary returns the latest position of the cycle's primary contact: its
// current sample while it is still down, else where it was last seen.
func primary(prev, current []gesture.Touch) gesture.Touch {
	p := prev[0]
	if len(current) > 0 && current[0].ID == p.ID {
		return current[0]
	}
	return p
}

func moved(prev, current []gesture.Touch) bool {
	for i := range current {
		if current[i] != prev[i] {
			return true
		}
	}
	return false
}
