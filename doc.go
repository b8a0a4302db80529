// Package gesture recognizes touch and mouse gestures from raw pointer
// frames.
//
// An [Engine] owns a set of zones. A zone binds an opaque target (whatever
// the host uses to identify a surface) to a [Config] of thresholds and a
// callback. The host feeds pointer frames with [Engine.SubmitPointerFrame]
// and the engine emits typed [Event] values: tap, doubletap, longpress,
// drag, swipe and pinch.
//
// # Quick start
//
//	e := gesture.New(gesture.Options{})
//	e.RegisterZone("card", cardID, func(ev gesture.Event) {
//		if ev.Type == gesture.EventSwipe {
//			dismiss(ev.SwipeDirection)
//		}
//	}, &gesture.ConfigPatch{EnabledDirections: gesture.Ptr(gesture.SwipeHorizontal)}, nil)
//
//	// from the host's input handlers:
//	e.SubmitRaw(gesture.FrameStart, cardID, gesture.MouseEvent{X: x, Y: y})
//	e.SubmitRaw(gesture.FrameMove, cardID, gesture.MouseEvent{X: x, Y: y})
//	e.SubmitRaw(gesture.FrameEnd, cardID, gesture.MouseEvent{X: x, Y: y})
//
//	// once per frame, so long presses fire without further input:
//	e.Update()
//
// # Cycles
//
// A cycle runs from a start frame to an end frame. While it is active the
// engine emits interim events eagerly: longpress when the pointer is held
// still for LongPressTime, drag on every move past DragThreshold, pinch on
// every two-pointer move. When the cycle ends, [Classify] picks at most one
// terminal event: swipe, then tap or doubletap. Interim and terminal events
// are not exclusive; a held press that is released in place yields both
// longpress and tap.
//
// # Threading
//
// An Engine is single-threaded and never blocks. Timers are entries in a
// deadline queue that fire from [Engine.Update] or before the next frame is
// processed. [Loop] runs an Engine on its own goroutine for hosts that
// receive input concurrently, such as the wsfeed server.
//
// # Consuming events
//
// Besides per-zone callbacks, every gesture event is appended to the
// engine-wide [Stream] returned by [Engine.Events], and forwarded to an
// optional [Sink]. The ecs package provides a Sink that publishes into a
// [Donburi] world.
//
// [Donburi]: https://github.com/yohamta/donburi
package gesture
