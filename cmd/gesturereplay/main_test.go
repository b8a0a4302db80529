package main

import (
	"testing"
	"time"

	"github.com/phanxgames/gesture"
)

func TestEventTable(t *testing.T) {
	t0 := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	events := []gesture.Event{
		{Type: gesture.EventLongPress, ZoneID: "card", Timestamp: t0, Duration: 500 * time.Millisecond},
		{Type: gesture.EventSwipe, ZoneID: "card", Timestamp: t0.Add(250 * time.Millisecond),
			Distance: 120, Velocity: gesture.MaxVelocity, Direction: gesture.DirectionLeft, SwipeDirection: gesture.DirectionLeft},
	}

	data := eventTable(events)
	if len(data) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(data))
	}
	if data[0][0] != "t" {
		t.Errorf("header = %v", data[0])
	}

	row := data[2]
	want := []string{"+250ms", "card", "swipe", "120.0", "max", "left", "swipe left"}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("column %d = %q, want %q", i, row[i], want[i])
		}
	}
	if data[1][6] != "held 500ms" {
		t.Errorf("long press detail = %q, want %q", data[1][6], "held 500ms")
	}
}

func TestEventTable_Empty(t *testing.T) {
	if data := eventTable(nil); len(data) != 1 {
		t.Errorf("rows = %d, want header only", len(data))
	}
}
