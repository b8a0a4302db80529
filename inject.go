package gesture

import "time"

// Injector feeds synthetic pointer frames to an Engine whose clock it
// controls. It is the programmatic counterpart of real input, used by tests
// and scripted replays: every frame goes through SubmitPointerFrame exactly
// as host input would.
type Injector struct {
	engine *Engine
	clock  *ManualClock
	target any
}

// NewInjector returns an Injector addressing target. The engine must have
// been created with clock as its Clock.
func NewInjector(e *Engine, clock *ManualClock, target any) *Injector {
	return &Injector{engine: e, clock: clock, target: target}
}

// Target changes the target subsequent frames are addressed to.
func (in *Injector) Target(target any) {
	in.target = target
}

// Press submits a single-pointer start frame at (x, y).
func (in *Injector) Press(x, y float64) bool {
	return in.engine.SubmitPointerFrame(FrameStart, in.target, []Point{{X: x, Y: y}}, nil)
}

// Move submits a single-pointer move frame at (x, y).
func (in *Injector) Move(x, y float64) bool {
	return in.engine.SubmitPointerFrame(FrameMove, in.target, []Point{{X: x, Y: y}}, nil)
}

// Release submits an end frame at (x, y).
func (in *Injector) Release(x, y float64) bool {
	return in.engine.SubmitPointerFrame(FrameEnd, in.target, []Point{{X: x, Y: y}}, nil)
}

// Cancel submits a cancel frame.
func (in *Injector) Cancel() bool {
	return in.engine.SubmitPointerFrame(FrameCancel, in.target, nil, nil)
}

// Frame submits an arbitrary frame.
func (in *Injector) Frame(kind FrameKind, points ...Point) bool {
	return in.engine.SubmitPointerFrame(kind, in.target, points, nil)
}

// Wait advances the clock by d and fires any timers that came due.
func (in *Injector) Wait(d time.Duration) {
	in.clock.Advance(d)
	in.engine.Update()
}

// Tap presses and releases at (x, y) after hold.
func (in *Injector) Tap(x, y float64, hold time.Duration) {
	in.Press(x, y)
	in.Wait(hold)
	in.Release(x, y)
}

// Drag presses at from, moves in a straight line through steps evenly
// spaced intermediate points, and releases at to. The whole gesture takes
// d, split evenly between the frames.
func (in *Injector) Drag(from, to Point, steps int, d time.Duration) {
	if steps < 0 {
		steps = 0
	}
	interval := d / time.Duration(steps+1)

	in.Press(from.X, from.Y)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		in.Wait(interval)
		in.Move(from.X+(to.X-from.X)*t, from.Y+(to.Y-from.Y)*t)
	}
	in.Wait(interval)
	in.Move(to.X, to.Y)
	in.Release(to.X, to.Y)
}

// Pinch places two pointers spread apart horizontally around center, then
// moves them to toSpread over steps frames in d, and releases. The primary
// pointer is the left one.
func (in *Injector) Pinch(center Point, fromSpread, toSpread float64, steps int, d time.Duration) {
	if steps < 1 {
		steps = 1
	}
	pair := func(spread float64) []Point {
		return []Point{
			{X: center.X - spread/2, Y: center.Y},
			{X: center.X + spread/2, Y: center.Y},
		}
	}
	interval := d / time.Duration(steps)

	in.engine.SubmitPointerFrame(FrameStart, in.target, pair(fromSpread), nil)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		in.Wait(interval)
		in.engine.SubmitPointerFrame(FrameMove, in.target, pair(fromSpread+(toSpread-fromSpread)*t), nil)
	}
	end := pair(toSpread)
	in.engine.SubmitPointerFrame(FrameEnd, in.target, end[:1], nil)
}
