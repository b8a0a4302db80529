package gesture

import (
	"slices"
	"testing"
	"time"
)

func TestTimerManager_FiresInDueOrder(t *testing.T) {
	m := newTimerManager()
	var fired []string
	record := func(name string) func(time.Time) {
		return func(time.Time) { fired = append(fired, name) }
	}

	m.schedule("c", testEpoch, 300*time.Millisecond, record("c"))
	m.schedule("a", testEpoch, 100*time.Millisecond, record("a"))
	m.schedule("b", testEpoch, 200*time.Millisecond, record("b"))

	if due, ok := m.next(); !ok || !due.Equal(testEpoch.Add(100*time.Millisecond)) {
		t.Errorf("next = %v, %v; want epoch+100ms", due, ok)
	}
	if n := m.advance(testEpoch.Add(250 * time.Millisecond)); n != 2 {
		t.Errorf("advance ran %d, want 2", n)
	}
	if !slices.Equal(fired, []string{"a", "b"}) {
		t.Errorf("fired = %v, want [a b]", fired)
	}
	if m.pending() != 1 {
		t.Errorf("pending = %d, want 1", m.pending())
	}
}

func TestTimerManager_EqualDeadlinesKeepScheduleOrder(t *testing.T) {
	m := newTimerManager()
	var fired []string
	for _, z := range []string{"x", "y", "z"} {
		m.schedule(z, testEpoch, time.Second, func(time.Time) { fired = append(fired, z) })
	}
	m.advance(testEpoch.Add(time.Second))
	if !slices.Equal(fired, []string{"x", "y", "z"}) {
		t.Errorf("fired = %v, want [x y z]", fired)
	}
}

func TestTimerManager_FiredAtDueTime(t *testing.T) {
	m := newTimerManager()
	var at time.Time
	m.schedule("z", testEpoch, 500*time.Millisecond, func(fired time.Time) { at = fired })

	m.advance(testEpoch.Add(2 * time.Second))
	if !at.Equal(testEpoch.Add(500 * time.Millisecond)) {
		t.Errorf("fired at %v, want epoch+500ms", at)
	}
}

func TestTimerManager_CancelIsIdempotent(t *testing.T) {
	m := newTimerManager()
	ran := false
	h := m.schedule("z", testEpoch, time.Millisecond, func(time.Time) { ran = true })

	m.cancel(h)
	m.cancel(h)
	m.cancel(0)
	m.cancel(12345)

	if m.advance(testEpoch.Add(time.Second)); ran {
		t.Error("cancelled timer ran")
	}
	if m.pending() != 0 {
		t.Errorf("pending = %d, want 0", m.pending())
	}
}

func TestTimerManager_OneHandlePerZone(t *testing.T) {
	m := newTimerManager()
	var fired []int
	first := m.schedule("z", testEpoch, 100*time.Millisecond, func(time.Time) { fired = append(fired, 1) })
	second := m.schedule("z", testEpoch, 200*time.Millisecond, func(time.Time) { fired = append(fired, 2) })

	if first == second {
		t.Fatal("handles should be distinct")
	}
	if m.pending() != 1 {
		t.Errorf("pending = %d, want 1", m.pending())
	}
	m.advance(testEpoch.Add(time.Second))
	if !slices.Equal(fired, []int{2}) {
		t.Errorf("fired = %v, want [2]", fired)
	}
}

func TestTimerManager_CancelZone(t *testing.T) {
	m := newTimerManager()
	m.schedule("a", testEpoch, time.Second, func(time.Time) { t.Error("a should not fire") })
	ranB := false
	m.schedule("b", testEpoch, time.Second, func(time.Time) { ranB = true })

	m.cancelZone("a")
	m.cancelZone("a")
	m.cancelZone("unknown")
	m.advance(testEpoch.Add(time.Second))

	if !ranB {
		t.Error("b should still fire")
	}
}

func TestTimerManager_CallbackSchedules(t *testing.T) {
	m := newTimerManager()
	count := 0
	var tick func(time.Time)
	tick = func(fired time.Time) {
		count++
		if count < 3 {
			m.schedule("z", fired, 100*time.Millisecond, tick)
		}
	}
	m.schedule("z", testEpoch, 100*time.Millisecond, tick)

	// All three deadlines (100, 200, 300ms) are due by 350ms.
	if n := m.advance(testEpoch.Add(350 * time.Millisecond)); n != 3 {
		t.Errorf("advance ran %d, want 3", n)
	}
	if _, ok := m.next(); ok {
		t.Error("no timers should remain")
	}
}

func TestManualClock(t *testing.T) {
	c := NewManualClock(testEpoch)
	c.Advance(time.Second)
	if !c.Now().Equal(testEpoch.Add(time.Second)) {
		t.Errorf("Now = %v after Advance", c.Now())
	}
	c.Set(testEpoch)
	if !c.Now().Equal(testEpoch) {
		t.Errorf("Now = %v after Set", c.Now())
	}
}
