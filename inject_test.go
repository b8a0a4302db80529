package gesture

import (
	"testing"
	"time"
)

// frameLog is a zone-less view of what an Injector submits: it registers a
// zone whose onMove records previews so each move is visible.
func frameLog(t *testing.T) (*Engine, *ManualClock, *recorder) {
	t.Helper()
	clock := NewManualClock(testEpoch)
	e := New(Options{Clock: clock})
	rec := &recorder{}
	e.RegisterZone("z", "t", rec.onResult, &ConfigPatch{DragThreshold: Ptr(0.0)}, rec.onMove)
	return e, clock, rec
}

func TestInjectTap(t *testing.T) {
	e, clock, rec := frameLog(t)
	in := NewInjector(e, clock, "t")

	in.Tap(5, 5, 80*time.Millisecond)

	if got := clock.Now().Sub(testEpoch); got != 80*time.Millisecond {
		t.Errorf("clock advanced %v, want 80ms", got)
	}
	wantTypes(t, rec, EventTap)
	if rec.events[0].Duration != 80*time.Millisecond {
		t.Errorf("Duration = %v, want 80ms", rec.events[0].Duration)
	}
}

func TestInjectDrag(t *testing.T) {
	e, clock, rec := frameLog(t)
	in := NewInjector(e, clock, "t")

	in.Drag(Point{X: 0, Y: 0}, Point{X: 40, Y: 0}, 3, 400*time.Millisecond)

	if got := clock.Now().Sub(testEpoch); got != 400*time.Millisecond {
		t.Errorf("clock advanced %v, want 400ms", got)
	}
	wantX := []float64{10, 20, 30, 40}
	if len(rec.previews) != len(wantX) {
		t.Fatalf("previews = %d, want %d", len(rec.previews), len(wantX))
	}
	for i, pv := range rec.previews {
		if pv.DeltaX != wantX[i] {
			t.Errorf("preview %d DeltaX = %v, want %v", i, pv.DeltaX, wantX[i])
		}
		wantT := testEpoch.Add(time.Duration(i+1) * 100 * time.Millisecond)
		if !pv.Timestamp.Equal(wantT) {
			t.Errorf("preview %d Timestamp = %v, want %v", i, pv.Timestamp, wantT)
		}
	}
}

func TestInjectDragNoSteps(t *testing.T) {
	e, clock, rec := frameLog(t)
	in := NewInjector(e, clock, "t")

	in.Drag(Point{}, Point{X: 20}, -1, 100*time.Millisecond)

	if len(rec.previews) != 1 || rec.previews[0].DeltaX != 20 {
		t.Errorf("previews = %+v, want a single move to 20", rec.previews)
	}
}

func TestInjectPinch(t *testing.T) {
	e, clock, rec := frameLog(t)
	in := NewInjector(e, clock, "t")

	in.Pinch(Point{X: 100, Y: 100}, 100, 200, 2, 100*time.Millisecond)

	var scales []float64
	for _, ev := range rec.events {
		if ev.Type == EventPinch {
			scales = append(scales, ev.Scale)
			if ev.Center != (Point{X: 100, Y: 100}) {
				t.Errorf("Center = %v, want (100, 100)", ev.Center)
			}
		}
	}
	if len(scales) != 2 || scales[0] != 1.5 || scales[1] != 2 {
		t.Errorf("scales = %v, want [1.5 2]", scales)
	}
	if info, _ := e.Zone("z"); info.Active {
		t.Error("pinch should end the cycle")
	}
}

func TestInjectTarget(t *testing.T) {
	clock := NewManualClock(testEpoch)
	e := New(Options{Clock: clock})
	a, b := &recorder{}, &recorder{}
	e.RegisterZone("a", "a", a.onResult, nil, nil)
	e.RegisterZone("b", "b", b.onResult, nil, nil)

	in := NewInjector(e, clock, "a")
	in.Tap(0, 0, 10*time.Millisecond)
	in.Target("b")
	in.Tap(0, 0, 10*time.Millisecond)

	if len(a.events) != 1 || len(b.events) != 1 {
		t.Errorf("a got %d, b got %d; want one tap each", len(a.events), len(b.events))
	}
}
