package gesture

import (
	"math"
	"time"
)

// MaxVelocity is the velocity reported for a zero-duration cycle. It passes
// any velocity threshold while keeping comparisons free of Inf and NaN.
const MaxVelocity = math.MaxFloat64

// Kinematics is the motion of a cycle from its start sample to its latest
// sample.
type Kinematics struct {
	Start     Point
	Current   Point
	DeltaX    float64
	DeltaY    float64
	Distance  float64 // straight-line, start to current
	Duration  time.Duration
	Velocity  float64 // px/ms
	Direction Direction
	Now       time.Time
}

// measure derives kinematics between two samples.
func measure(start, current Point, startTime, now time.Time) Kinematics {
	k := Kinematics{
		Start:    start,
		Current:  current,
		DeltaX:   current.X - start.X,
		DeltaY:   current.Y - start.Y,
		Distance: start.Dist(current),
		Duration: now.Sub(startTime),
		Now:      now,
	}
	k.Direction = dominantDirection(k.DeltaX, k.DeltaY)
	k.Velocity = velocity(k.Distance, k.Duration)
	return k
}

func velocity(distance float64, d time.Duration) float64 {
	ms := float64(d) / float64(time.Millisecond)
	if ms <= 0 {
		return MaxVelocity
	}
	return distance / ms
}

// event fills the common Event fields from k.
func (k Kinematics) event(t EventType) Event {
	return Event{
		Type:      t,
		Start:     k.Start,
		Current:   k.Current,
		DeltaX:    k.DeltaX,
		DeltaY:    k.DeltaY,
		Distance:  k.Distance,
		Velocity:  k.Velocity,
		Direction: k.Direction,
		Timestamp: k.Now,
		Duration:  k.Duration,
	}
}

// Classify decides the terminal gesture of a finished cycle. Rules are tried
// in order and the first match wins:
//
//  1. swipe: distance, velocity and duration inside the swipe thresholds and
//     the dominant direction enabled;
//  2. tap, or doubletap when the previous tap is within DoubleTapTime
//     (duration is not considered);
//  3. otherwise nothing, reported as ok == false.
//
// lastTap is the zone's previous tap time, or nil if the zone has not
// tapped yet.
func Classify(k Kinematics, cfg Config, lastTap *time.Time) (ev Event, ok bool) {
	if k.Distance > cfg.SwipeThreshold &&
		k.Velocity > cfg.SwipeVelocityThreshold &&
		k.Duration < cfg.SwipeMaxTime &&
		cfg.EnabledDirections.Has(k.Direction) {
		ev = k.event(EventSwipe)
		ev.SwipeDirection = k.Direction
		return ev, true
	}

	if k.Distance < cfg.TapThreshold {
		if lastTap != nil && k.Now.Sub(*lastTap) < cfg.DoubleTapTime {
			return k.event(EventDoubleTap), true
		}
		return k.event(EventTap), true
	}

	return Event{}, false
}
