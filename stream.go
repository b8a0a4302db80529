package gesture

import (
	"context"
	"errors"
	"iter"
	"sync"
)

// ErrStreamClosed is returned by Stream.Next once the engine has been
// closed and every buffered event has been consumed.
var ErrStreamClosed = errors.New("gesture: event stream closed")

// Stream is the engine-wide ordered sequence of gesture events. Pushes never
// block the engine; events are buffered until a consumer reads them. A
// Stream cannot be restarted once closed.
type Stream struct {
	mu     sync.Mutex
	buf    []Event
	wake   chan struct{} // closed and replaced on every push
	closed bool
}

func newStream() *Stream {
	return &Stream{wake: make(chan struct{})}
}

func (s *Stream) push(ev Event) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.buf = append(s.buf, ev)
	close(s.wake)
	s.wake = make(chan struct{})
	s.mu.Unlock()
}

func (s *Stream) close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.wake)
	}
	s.mu.Unlock()
}

// TryNext pops the oldest buffered event without waiting.
func (s *Stream) TryNext() (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.popLocked()
}

func (s *Stream) popLocked() (Event, bool) {
	if len(s.buf) == 0 {
		return Event{}, false
	}
	ev := s.buf[0]
	s.buf[0] = Event{}
	s.buf = s.buf[1:]
	return ev, true
}

// Next waits for the next event. It returns ctx.Err() if ctx ends first and
// ErrStreamClosed when the stream is closed and drained.
func (s *Stream) Next(ctx context.Context) (Event, error) {
	for {
		s.mu.Lock()
		if ev, ok := s.popLocked(); ok {
			s.mu.Unlock()
			return ev, nil
		}
		if s.closed {
			s.mu.Unlock()
			return Event{}, ErrStreamClosed
		}
		wake := s.wake
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return Event{}, ctx.Err()
		case <-wake:
		}
	}
}

// All yields events until ctx ends or the stream closes.
func (s *Stream) All(ctx context.Context) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		for {
			ev, err := s.Next(ctx)
			if err != nil {
				return
			}
			if !yield(ev) {
				return
			}
		}
	}
}

// Len returns the number of buffered events.
func (s *Stream) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buf)
}
