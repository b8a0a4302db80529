package gesture

import (
	"context"
	"errors"
	"time"
)

// ErrLoopStopped is returned when work is submitted to a Loop that has
// returned from Run.
var ErrLoopStopped = errors.New("gesture: loop stopped")

const defaultLoopQueue = 256

// Loop owns an Engine on a single goroutine. Input frames, registry changes
// and timer expirations are all serialized through one queue, so whichever
// is enqueued first is processed first.
type Loop struct {
	engine *Engine
	queue  chan func(*Engine)
	done   chan struct{}
}

// NewLoop wraps e. queueSize bounds pending work; zero picks a default.
// The Engine must not be used directly once Run has started.
//
// Timers are armed against the engine's Clock. With a ManualClock they only
// fire once work run through the loop has advanced the clock past them.
func NewLoop(e *Engine, queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = defaultLoopQueue
	}
	return &Loop{
		engine: e,
		queue:  make(chan func(*Engine), queueSize),
		done:   make(chan struct{}),
	}
}

// Run processes queued work and fires timers until ctx ends, then closes
// the engine.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	defer l.engine.Close()

	var (
		timer  *time.Timer
		timerC <-chan time.Time
		// stalled is set when a fire left the earliest deadline pending,
		// i.e. the clock has not reached it. Queued work clears it.
		stalled bool
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		timerC = nil
		if due, ok := l.engine.NextDeadline(); ok && !stalled {
			wait := max(due.Sub(l.engine.clock.Now()), 0)
			if timer == nil {
				timer = time.NewTimer(wait)
			} else {
				timer.Reset(wait)
			}
			timerC = timer.C
		} else if timer != nil {
			timer.Stop()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			fn(l.engine)
			stalled = false
		case <-timerC:
			due, _ := l.engine.NextDeadline()
			l.engine.Update()
			next, ok := l.engine.NextDeadline()
			stalled = ok && next.Equal(due)
		}
	}
}

// Do enqueues fn to run on the loop goroutine without waiting for it.
func (l *Loop) Do(ctx context.Context, fn func(*Engine)) error {
	select {
	case <-l.done:
		return ErrLoopStopped
	default:
	}
	select {
	case l.queue <- fn:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrLoopStopped
	}
}

// Sync runs fn on the loop goroutine and waits for it to return.
func (l *Loop) Sync(ctx context.Context, fn func(*Engine)) error {
	finished := make(chan struct{})
	if err := l.Do(ctx, func(e *Engine) {
		defer close(finished)
		fn(e)
	}); err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrLoopStopped
	}
}

// Submit enqueues a raw pointer frame for target.
func (l *Loop) Submit(ctx context.Context, kind FrameKind, target any, raw any) error {
	return l.Do(ctx, func(e *Engine) {
		e.SubmitRaw(kind, target, raw)
	})
}
