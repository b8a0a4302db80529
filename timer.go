package gesture

import (
	"sort"
	"time"
)

// Clock supplies the current time to an Engine.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// ManualClock is a Clock that only moves when told to. It drives timers
// deterministically in tests and scripted replays.
type ManualClock struct {
	now time.Time
}

// NewManualClock returns a ManualClock reading start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the clock's current reading.
func (c *ManualClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// Set moves the clock to t.
func (c *ManualClock) Set(t time.Time) { c.now = t }

// TimerHandle identifies a scheduled callback. The zero handle is never
// issued and cancelling it is a no-op.
type TimerHandle uint64

type timerTask struct {
	handle TimerHandle
	zoneID string
	due    time.Time
	fn     func(fired time.Time)
}

// timerManager is a deadline queue of deferred callbacks. It never spawns
// goroutines: callbacks run from advance, on the caller's goroutine, so they
// share ordering with input frames.
type timerManager struct {
	nextID TimerHandle
	tasks  []*timerTask // ordered by due, then by handle
	byZone map[string]TimerHandle
}

func newTimerManager() *timerManager {
	return &timerManager{byZone: make(map[string]TimerHandle)}
}

// schedule queues fn to run delay after now. A zone holds at most one live
// handle; scheduling replaces (and cancels) the zone's previous one.
func (m *timerManager) schedule(zoneID string, now time.Time, delay time.Duration, fn func(fired time.Time)) TimerHandle {
	if old, ok := m.byZone[zoneID]; ok {
		m.cancel(old)
	}
	m.nextID++
	t := &timerTask{handle: m.nextID, zoneID: zoneID, due: now.Add(delay), fn: fn}

	i := sort.Search(len(m.tasks), func(i int) bool {
		return m.tasks[i].due.After(t.due)
	})
	m.tasks = append(m.tasks, nil)
	copy(m.tasks[i+1:], m.tasks[i:])
	m.tasks[i] = t

	m.byZone[zoneID] = t.handle
	return t.handle
}

// cancel removes a pending callback. Unknown, fired and already-cancelled
// handles are ignored.
func (m *timerManager) cancel(h TimerHandle) {
	if h == 0 {
		return
	}
	for i, t := range m.tasks {
		if t.handle != h {
			continue
		}
		copy(m.tasks[i:], m.tasks[i+1:])
		m.tasks[len(m.tasks)-1] = nil
		m.tasks = m.tasks[:len(m.tasks)-1]
		if m.byZone[t.zoneID] == h {
			delete(m.byZone, t.zoneID)
		}
		return
	}
}

// cancelZone cancels whatever handle the zone currently holds.
func (m *timerManager) cancelZone(zoneID string) {
	if h, ok := m.byZone[zoneID]; ok {
		m.cancel(h)
	}
}

// advance runs every callback due at or before now, earliest first, and
// returns how many ran. Callbacks may schedule further timers.
func (m *timerManager) advance(now time.Time) int {
	n := 0
	for len(m.tasks) > 0 && !m.tasks[0].due.After(now) {
		t := m.tasks[0]
		copy(m.tasks, m.tasks[1:])
		m.tasks[len(m.tasks)-1] = nil
		m.tasks = m.tasks[:len(m.tasks)-1]
		if m.byZone[t.zoneID] == t.handle {
			delete(m.byZone, t.zoneID)
		}
		t.fn(t.due)
		n++
	}
	return n
}

// next reports the earliest pending deadline.
func (m *timerManager) next() (time.Time, bool) {
	if len(m.tasks) == 0 {
		return time.Time{}, false
	}
	return m.tasks[0].due, true
}

func (m *timerManager) pending() int {
	return len(m.tasks)
}
