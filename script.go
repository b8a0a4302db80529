package gesture

import (
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"
)

// ScriptZone declares a zone registered before a script's steps run.
type ScriptZone struct {
	ID      string      `yaml:"id"`
	Target  string      `yaml:"target"`
	Preset  string      `yaml:"preset,omitempty"`
	Config  ConfigPatch `yaml:"config,omitempty"`
	Preview bool        `yaml:"preview,omitempty"` // record EventPreview too
}

// ScriptStep is one action of a script.
type ScriptStep struct {
	Action   string        `yaml:"action"`
	Target   string        `yaml:"target,omitempty"`
	Zone     string        `yaml:"zone,omitempty"`
	X        float64       `yaml:"x,omitempty"`
	Y        float64       `yaml:"y,omitempty"`
	ToX      float64       `yaml:"to_x,omitempty"`
	ToY      float64       `yaml:"to_y,omitempty"`
	Spread   float64       `yaml:"spread,omitempty"`
	ToSpread float64       `yaml:"to_spread,omitempty"`
	Steps    int           `yaml:"steps,omitempty"`
	Duration time.Duration `yaml:"duration,omitempty"`
	Config   ConfigPatch   `yaml:"config,omitempty"`
}

// Script is a replayable sequence of zones and input steps. Scripts are
// written in YAML or JSON:
//
//	zones:
//	  - {id: card, target: card}
//	steps:
//	  - {action: tap, x: 10, y: 10, duration: 50ms}
//	  - {action: wait, duration: 100ms}
//	  - {action: drag, x: 0, y: 0, to_x: 120, to_y: 0, steps: 4, duration: 200ms}
type Script struct {
	Presets Presets      `yaml:"presets,omitempty"`
	Zones   []ScriptZone `yaml:"zones"`
	Steps   []ScriptStep `yaml:"steps"`
}

// LoadScript parses a YAML or JSON script.
func LoadScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("gesture: parse script: %w", err)
	}
	if len(s.Zones) == 0 {
		return nil, fmt.Errorf("gesture: parse script: no zones")
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("gesture: parse script: no steps")
	}
	for i, st := range s.Steps {
		if !knownAction(st.Action) {
			return nil, fmt.Errorf("gesture: parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &s, nil
}

func knownAction(a string) bool {
	switch a {
	case "press", "move", "release", "cancel", "wait", "tap", "drag", "pinch",
		"enable", "disable", "configure", "unregister":
		return true
	}
	return false
}

// scriptEpoch is the fixed start time of every replay, so recorded
// timestamps are reproducible.
var scriptEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Replay runs the script against a fresh Engine on a manual clock and
// returns every event the zones received, in delivery order.
func (s *Script) Replay(logger *slog.Logger) ([]Event, error) {
	clock := NewManualClock(scriptEpoch)
	e := New(Options{Clock: clock, Logger: logger})
	defer e.Close()

	var events []Event
	record := func(ev Event) { events = append(events, ev) }

	for _, z := range s.Zones {
		if z.ID == "" {
			return nil, fmt.Errorf("gesture: replay: zone without id")
		}
		var preset ConfigPatch
		if z.Preset != "" {
			var ok bool
			if preset, ok = s.Presets[z.Preset]; !ok {
				return nil, fmt.Errorf("gesture: replay: zone %q: unknown preset %q", z.ID, z.Preset)
			}
		}
		target := z.Target
		if target == "" {
			target = z.ID
		}
		var onMove func(Event)
		if z.Preview {
			onMove = record
		}
		e.RegisterZone(z.ID, target, record, &preset, onMove)
		e.UpdateZoneConfig(z.ID, z.Config)
	}

	in := NewInjector(e, clock, defaultScriptTarget(s.Zones[0]))
	for _, st := range s.Steps {
		if st.Target != "" {
			in.Target(st.Target)
		}
		switch st.Action {
		case "press":
			in.Press(st.X, st.Y)
		case "move":
			in.Move(st.X, st.Y)
		case "release":
			in.Release(st.X, st.Y)
		case "cancel":
			in.Cancel()
		case "wait":
			in.Wait(st.Duration)
		case "tap":
			in.Tap(st.X, st.Y, st.Duration)
		case "drag":
			in.Drag(Point{X: st.X, Y: st.Y}, Point{X: st.ToX, Y: st.ToY}, st.Steps, st.Duration)
		case "pinch":
			in.Pinch(Point{X: st.X, Y: st.Y}, st.Spread, st.ToSpread, st.Steps, st.Duration)
		case "enable", "disable":
			e.SetZoneEnabled(st.Zone, st.Action == "enable")
		case "configure":
			e.UpdateZoneConfig(st.Zone, st.Config)
		case "unregister":
			e.UnregisterZone(st.Zone)
		}
	}
	return events, nil
}

func defaultScriptTarget(z ScriptZone) string {
	if z.Target != "" {
		return z.Target
	}
	return z.ID
}
