package gesture

import (
	"reflect"
	"time"
)

// zone is a registered target with its configuration and callbacks. At most
// one cycle is in flight per zone.
type zone struct {
	id       string
	target   any
	cfg      Config
	enabled  bool
	onResult func(Event)
	onMove   func(Event)

	cycle   *cycle
	lastTap time.Time // survives cycles for doubletap detection
	tapped  bool      // lastTap is set
}

// ZoneInfo is a read-only snapshot of a registered zone.
type ZoneInfo struct {
	ID      string
	Target  any
	Config  Config
	Enabled bool
	Active  bool // a cycle is in flight
	LastTap time.Time
	Tapped  bool // LastTap is valid
}

// RegisterZone binds target to a new zone. The zone's config is
// DefaultConfig with patch applied; patch may be nil. onMove, when non-nil,
// receives EventPreview offsets while the zone is dragged.
//
// Registering an id that is already in use replaces the old zone: its
// pending timer is cancelled and its in-flight cycle is dropped without an
// event.
func (e *Engine) RegisterZone(id string, target any, onResult func(Event), patch *ConfigPatch, onMove func(Event)) {
	if e.closed {
		return
	}
	if old, ok := e.zones[id]; ok {
		e.log.Debug("gesture: replacing zone", "zone", id, "active", old.cycle != nil)
		e.teardown(old)
	}

	cfg := DefaultConfig()
	if patch != nil {
		cfg = cfg.Merge(*patch)
	}
	z := &zone{
		id:       id,
		target:   target,
		cfg:      cfg,
		enabled:  true,
		onResult: onResult,
		onMove:   onMove,
	}
	e.zones[id] = z
	e.order = append(e.order, z)
	e.log.Debug("gesture: zone registered", "zone", id)
}

// UnregisterZone removes a zone, cancelling its timer and dropping any
// in-flight cycle without an event. Unknown ids are ignored.
func (e *Engine) UnregisterZone(id string) {
	z, ok := e.zones[id]
	if !ok {
		return
	}
	e.teardown(z)
	e.log.Debug("gesture: zone unregistered", "zone", id)
}

// teardown cancels z's timer and removes it from the registry.
func (e *Engine) teardown(z *zone) {
	e.timers.cancelZone(z.id)
	z.cycle = nil
	delete(e.zones, z.id)
	for i, o := range e.order {
		if o == z {
			copy(e.order[i:], e.order[i+1:])
			e.order[len(e.order)-1] = nil
			e.order = e.order[:len(e.order)-1]
			break
		}
	}
}

// SetZoneEnabled toggles whether a zone starts new cycles. Disabling does
// not interrupt a cycle already in flight.
func (e *Engine) SetZoneEnabled(id string, enabled bool) {
	if z, ok := e.zones[id]; ok {
		z.enabled = enabled
	}
}

// UpdateZoneConfig merges patch into a zone's config. The change applies
// from the zone's next cycle; a cycle in flight keeps the config it started
// with.
func (e *Engine) UpdateZoneConfig(id string, patch ConfigPatch) {
	if z, ok := e.zones[id]; ok {
		z.cfg = z.cfg.Merge(patch)
	}
}

// Zone returns a snapshot of the zone registered under id.
func (e *Engine) Zone(id string) (ZoneInfo, bool) {
	z, ok := e.zones[id]
	if !ok {
		return ZoneInfo{}, false
	}
	return ZoneInfo{
		ID:      z.id,
		Target:  z.target,
		Config:  z.cfg,
		Enabled: z.enabled,
		Active:  z.cycle != nil,
		LastTap: z.lastTap,
		Tapped:  z.tapped,
	}, true
}

// ZoneIDs returns the registered zone ids in registration order.
func (e *Engine) ZoneIDs() []string {
	ids := make([]string, len(e.order))
	for i, z := range e.order {
		ids[i] = z.id
	}
	return ids
}

// zonesFor collects the zones bound to target in registration order. The
// result is a copy so callbacks may register or unregister while it is
// walked.
func (e *Engine) zonesFor(target any) []*zone {
	var out []*zone
	for _, z := range e.order {
		if sameTarget(z.target, target) {
			out = append(out, z)
		}
	}
	return out
}

// sameTarget compares two opaque targets without panicking on
// non-comparable dynamic types, which never match.
func sameTarget(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}
