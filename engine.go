package gesture

import (
	"log/slog"
	"time"
)

// Options configures a new Engine. The zero value is usable.
type Options struct {
	// Clock supplies timestamps and drives timers. Defaults to wall time.
	Clock Clock
	// Logger receives debug-level lifecycle logs. Defaults to discarding.
	Logger *slog.Logger
	// Sink, if set, receives every dispatched gesture event.
	Sink Sink
}

// Engine turns pointer frames into gesture events for a set of zones.
//
// An Engine is single-threaded: every method, callback and timer runs on
// the caller's goroutine and none of them may be called concurrently. Use
// a Loop to drive an Engine from several goroutines.
type Engine struct {
	clock  Clock
	log    *slog.Logger
	sink   Sink
	zones  map[string]*zone
	order  []*zone // registration order
	timers *timerManager
	stream *Stream
	closed bool
}

// New creates an Engine with no zones.
func New(opts Options) *Engine {
	e := &Engine{
		clock:  opts.Clock,
		log:    opts.Logger,
		sink:   opts.Sink,
		zones:  make(map[string]*zone),
		timers: newTimerManager(),
	}
	if e.clock == nil {
		e.clock = systemClock{}
	}
	if e.log == nil {
		e.log = slog.New(slog.DiscardHandler)
	}
	return e
}

// SetSink attaches (or with nil, detaches) the event sink.
func (e *Engine) SetSink(s Sink) {
	e.sink = s
}

// Events returns the engine-wide event stream. The stream is created on the
// first call and the same Stream is returned afterwards; events dispatched
// before the first call are not recorded.
func (e *Engine) Events() *Stream {
	if e.stream == nil {
		e.stream = newStream()
		if e.closed {
			e.stream.close()
		}
	}
	return e.stream
}

// SubmitPointerFrame feeds one normalized frame addressed to target. Every
// zone bound to target processes it in registration order. Timers due at or
// before the frame's time fire first.
//
// The result reports whether some zone consumed the frame with
// PreventDefaultEvents set, i.e. whether the host should suppress its
// default handling of the raw event.
func (e *Engine) SubmitPointerFrame(kind FrameKind, target any, points []Point, raw any) bool {
	if e.closed {
		return false
	}
	now := e.clock.Now()
	e.timers.advance(now)

	prevent := false
	for _, z := range e.zonesFor(target) {
		if e.zones[z.id] != z {
			continue // removed by an earlier callback
		}
		if e.step(z, kind, points, now) && z.cfg.PreventDefaultEvents {
			prevent = true
		}
	}
	return prevent
}

// SubmitRaw normalizes raw (see Normalize) and submits the result.
func (e *Engine) SubmitRaw(kind FrameKind, target any, raw any) bool {
	f := Normalize(raw)
	return e.SubmitPointerFrame(kind, target, f.Points, f.Raw)
}

// Update fires every timer that is due. Hosts that poll input once per
// frame call this each frame so long presses fire without further input.
func (e *Engine) Update() {
	if e.closed {
		return
	}
	e.timers.advance(e.clock.Now())
}

// NextDeadline reports when the earliest pending timer is due.
func (e *Engine) NextDeadline() (time.Time, bool) {
	return e.timers.next()
}

// PendingTimers returns the number of scheduled timers.
func (e *Engine) PendingTimers() int {
	return e.timers.pending()
}

// Close unregisters every zone and closes the event stream. Later calls
// are no-ops.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	for len(e.order) > 0 {
		e.teardown(e.order[len(e.order)-1])
	}
	e.closed = true
	if e.stream != nil {
		e.stream.close()
	}
	e.log.Debug("gesture: engine closed")
}
