package ecs

import (
	"testing"
	"time"

	"github.com/phanxgames/gesture"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []gesture.Event
	GestureEventType.Subscribe(world, func(w donburi.World, e gesture.Event) {
		received = append(received, e)
	})

	sink.EmitEvent(gesture.Event{
		Type:    gesture.EventTap,
		ZoneID:  "card",
		Current: gesture.Point{X: 100, Y: 200},
	})
	sink.EmitEvent(gesture.Event{
		Type:          gesture.EventPinch,
		Scale:         2.0,
		PreviousScale: 1.5,
	})

	// Events are queued until ProcessEvents runs.
	GestureEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}

	e0 := received[0]
	if e0.Type != gesture.EventTap || e0.ZoneID != "card" {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.Current.X != 100 || e0.Current.Y != 200 {
		t.Errorf("event 0 position: (%v,%v)", e0.Current.X, e0.Current.Y)
	}

	e1 := received[1]
	if e1.Type != gesture.EventPinch || e1.Scale != 2.0 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiSink_ImplementsSink(t *testing.T) {
	world := donburi.NewWorld()
	var sink gesture.Sink = NewDonburiSink(world)
	_ = sink // compile-time interface check
}

func TestDonburiSink_FromEngine(t *testing.T) {
	world := donburi.NewWorld()
	clock := gesture.NewManualClock(time.Unix(0, 0))
	e := gesture.New(gesture.Options{Clock: clock, Sink: NewDonburiSink(world)})
	e.RegisterZone("button", "button", nil, nil, nil)

	var got []gesture.EventType
	GestureEventType.Subscribe(world, func(w donburi.World, ev gesture.Event) {
		got = append(got, ev.Type)
	})

	in := gesture.NewInjector(e, clock, "button")
	in.Tap(5, 5, 20*time.Millisecond)
	in.Wait(100 * time.Millisecond)
	in.Tap(5, 5, 20*time.Millisecond)
	events.ProcessAllEvents(world)

	if len(got) != 2 || got[0] != gesture.EventTap || got[1] != gesture.EventDoubleTap {
		t.Errorf("got %v, want [tap doubletap]", got)
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	GestureEventType.Subscribe(world, func(w donburi.World, e gesture.Event) {
		count1++
	})
	GestureEventType.Subscribe(world, func(w donburi.World, e gesture.Event) {
		count2++
	})

	sink.EmitEvent(gesture.Event{Type: gesture.EventSwipe})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
