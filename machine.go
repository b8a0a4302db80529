package gesture

import "time"

// cycle is the in-flight state of one start→end interaction on a zone. It
// is owned by its zone and replaced, never reused, between cycles.
type cycle struct {
	cfg Config // zone config at cycle start

	start     Point
	startTime time.Time
	last      Point
	lastTime  time.Time

	totalDistance float64 // straight line, start to last
	pointerCount  int

	pinchDist float64 // initial spread; zero means not pinching
	lastScale float64

	longPress TimerHandle
}

func (c *cycle) pinching() bool {
	return c.pointerCount == 2 && c.pinchDist > 0
}

// step runs one frame through z's state machine and reports whether the
// frame was consumed.
func (e *Engine) step(z *zone, kind FrameKind, points []Point, now time.Time) bool {
	switch kind {
	case FrameStart:
		if len(points) == 0 {
			return false
		}
		if z.cycle != nil {
			return e.addPointer(z, z.cycle, points)
		}
		if !z.enabled {
			return false
		}
		e.begin(z, points, now)
		return true

	case FrameMove:
		if z.cycle == nil || len(points) == 0 {
			return false
		}
		e.move(z, z.cycle, points, now)
		return true

	case FrameEnd:
		if z.cycle == nil {
			return false
		}
		e.end(z, z.cycle, points, now)
		return true

	case FrameCancel:
		if z.cycle == nil {
			return false
		}
		e.timers.cancel(z.cycle.longPress)
		z.cycle = nil
		e.log.Debug("gesture: cycle cancelled", "zone", z.id)
		return true
	}
	return false
}

func (e *Engine) begin(z *zone, points []Point, now time.Time) {
	c := &cycle{
		cfg:          z.cfg,
		start:        points[0],
		startTime:    now,
		last:         points[0],
		lastTime:     now,
		pointerCount: len(points),
	}
	z.cycle = c

	switch c.pointerCount {
	case 1:
		c.longPress = e.timers.schedule(z.id, now, c.cfg.LongPressTime, func(fired time.Time) {
			e.fireLongPress(z, c, fired)
		})
	case 2:
		c.startPinch(points)
	}
}

func (c *cycle) startPinch(points []Point) {
	c.pinchDist = points[0].Dist(points[1])
	c.lastScale = 1
}

// addPointer handles a start frame that arrives mid-cycle. A single-pointer
// cycle joined by a second contact becomes a pinch; anything else is
// ignored.
func (e *Engine) addPointer(z *zone, c *cycle, points []Point) bool {
	if c.pointerCount != 1 || len(points) != 2 {
		return false
	}
	e.timers.cancel(c.longPress)
	c.longPress = 0
	c.pointerCount = 2
	c.startPinch(points)
	e.log.Debug("gesture: cycle upgraded to pinch", "zone", z.id)
	return true
}

func (e *Engine) fireLongPress(z *zone, c *cycle, fired time.Time) {
	if e.zones[z.id] != z || z.cycle != c {
		return
	}
	c.longPress = 0
	ev := measure(c.start, c.last, c.startTime, fired).event(EventLongPress)
	ev.Duration = c.cfg.LongPressTime
	e.dispatch(z, ev)
}

func (e *Engine) move(z *zone, c *cycle, points []Point, now time.Time) {
	c.last = points[0]
	c.lastTime = now
	c.totalDistance = c.start.Dist(c.last)

	if c.longPress != 0 && c.totalDistance > c.cfg.LongPressMoveThreshold {
		e.timers.cancel(c.longPress)
		c.longPress = 0
	}

	k := measure(c.start, c.last, c.startTime, now)

	switch {
	case c.pinching():
		if len(points) < 2 {
			return
		}
		ev := k.event(EventPinch)
		ev.Scale = points[0].Dist(points[1]) / c.pinchDist
		ev.PreviousScale = c.lastScale
		ev.Center = points[0].Mid(points[1])
		c.lastScale = ev.Scale
		e.dispatch(z, ev)

	case c.pointerCount == 1 && c.totalDistance > c.cfg.DragThreshold:
		ev := k.event(EventDrag)
		ev.IsDragging = true
		e.dispatch(z, ev)
		if z.onMove != nil && z.cycle == c {
			e.dispatch(z, k.event(EventPreview))
		}
	}
}

// end finishes the cycle and dispatches its terminal classification, if
// any. The zone is idle again before any callback runs.
func (e *Engine) end(z *zone, c *cycle, points []Point, now time.Time) {
	if len(points) > 0 {
		c.last = points[0]
		c.lastTime = now
		c.totalDistance = c.start.Dist(c.last)
	}
	e.timers.cancel(c.longPress)
	c.longPress = 0
	z.cycle = nil

	k := measure(c.start, c.last, c.startTime, now)
	var lastTap *time.Time
	if z.tapped {
		lastTap = &z.lastTap
	}
	ev, ok := Classify(k, c.cfg, lastTap)
	if !ok {
		e.log.Debug("gesture: cycle ended unclassified", "zone", z.id, "distance", k.Distance, "velocity", k.Velocity)
		return
	}
	if ev.Type == EventTap {
		z.lastTap = now
		z.tapped = true
	}
	e.dispatch(z, ev)
}
