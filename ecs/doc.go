// Package ecs provides ECS adapters for gesture's event dispatch.
//
// The primary adapter is [NewDonburiSink], which bridges gesture events
// (tap, doubletap, longpress, drag, swipe, pinch) into a [Donburi] world as
// typed events. Subscribe to [GestureEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	engine.SetSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
