package ecs

import (
	"github.com/phanxgames/gesture"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType is the Donburi event type for gesture events.
// Subscribe to this in your ECS systems to receive tap, swipe, drag,
// longpress and pinch events from every zone.
var GestureEventType = events.NewEventType[gesture.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates a gesture.Sink backed by a Donburi world.
// Events are published to GestureEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) gesture.Sink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event gesture.Event) {
	GestureEventType.Publish(s.world, event)
}
