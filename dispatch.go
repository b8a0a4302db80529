package gesture

// Sink receives every gesture event the engine dispatches, after the zone's
// own callback. Attach one with Engine.SetSink to bridge events into another
// system (see the ecs package for a Donburi adapter).
type Sink interface {
	EmitEvent(event Event)
}

// dispatch delivers ev for zone z. Preview events go only to the zone's
// onMove callback; every other event goes to onResult, the global stream
// and the sink, in that order.
func (e *Engine) dispatch(z *zone, ev Event) {
	ev.ZoneID = z.id

	if ev.Type == EventPreview {
		if z.onMove != nil {
			z.onMove(ev)
		}
		return
	}

	e.log.Debug("gesture: event",
		"zone", z.id,
		"type", ev.Type.String(),
		"distance", ev.Distance,
		"direction", ev.Direction.String())

	if z.onResult != nil {
		z.onResult(ev)
	}
	if e.stream != nil {
		e.stream.push(ev)
	}
	if e.sink != nil {
		e.sink.EmitEvent(ev)
	}
}
