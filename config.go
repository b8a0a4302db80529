package gesture

import (
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the thresholds a zone classifies with. Distances are in
// pixels and velocities in pixels per millisecond.
type Config struct {
	SwipeThreshold         float64
	SwipeVelocityThreshold float64
	SwipeMaxTime           time.Duration
	// PinchThreshold is carried for consumers that want a dead zone on
	// scale; the engine emits pinch on every two-pointer move.
	PinchThreshold         float64
	LongPressTime          time.Duration
	LongPressMoveThreshold float64
	DragThreshold          float64
	TapThreshold           float64
	DoubleTapTime          time.Duration
	PreventDefaultEvents   bool
	EnabledDirections      Directions
	// HapticFeedback is a hint for consumers; the engine never triggers haptics.
	HapticFeedback bool
}

// DefaultConfig returns the thresholds used for any field a zone does not
// override.
func DefaultConfig() Config {
	return Config{
		SwipeThreshold:         50,
		SwipeVelocityThreshold: 0.3,
		SwipeMaxTime:           300 * time.Millisecond,
		PinchThreshold:         10,
		LongPressTime:          500 * time.Millisecond,
		LongPressMoveThreshold: 10,
		DragThreshold:          10,
		TapThreshold:           10,
		DoubleTapTime:          300 * time.Millisecond,
		PreventDefaultEvents:   true,
		EnabledDirections:      SwipeAll,
		HapticFeedback:         true,
	}
}

// ConfigPatch is a partial Config. Nil fields leave the base value alone.
// Durations are written in YAML as Go duration strings ("300ms").
type ConfigPatch struct {
	SwipeThreshold         *float64       `yaml:"swipe_threshold,omitempty"`
	SwipeVelocityThreshold *float64       `yaml:"swipe_velocity_threshold,omitempty"`
	SwipeMaxTime           *time.Duration `yaml:"swipe_max_time,omitempty"`
	PinchThreshold         *float64       `yaml:"pinch_threshold,omitempty"`
	LongPressTime          *time.Duration `yaml:"long_press_time,omitempty"`
	LongPressMoveThreshold *float64       `yaml:"long_press_move_threshold,omitempty"`
	DragThreshold          *float64       `yaml:"drag_threshold,omitempty"`
	TapThreshold           *float64       `yaml:"tap_threshold,omitempty"`
	DoubleTapTime          *time.Duration `yaml:"double_tap_time,omitempty"`
	PreventDefaultEvents   *bool          `yaml:"prevent_default_events,omitempty"`
	EnabledDirections      *Directions    `yaml:"enabled_directions,omitempty"`
	HapticFeedback         *bool          `yaml:"haptic_feedback,omitempty"`
}

// Ptr returns a pointer to v. It keeps ConfigPatch literals short:
//
//	gesture.ConfigPatch{TapThreshold: gesture.Ptr(20.0)}
func Ptr[T any](v T) *T {
	return &v
}

// Merge returns c with every non-nil field of p applied.
func (c Config) Merge(p ConfigPatch) Config {
	if p.SwipeThreshold != nil {
		c.SwipeThreshold = *p.SwipeThreshold
	}
	if p.SwipeVelocityThreshold != nil {
		c.SwipeVelocityThreshold = *p.SwipeVelocityThreshold
	}
	if p.SwipeMaxTime != nil {
		c.SwipeMaxTime = *p.SwipeMaxTime
	}
	if p.PinchThreshold != nil {
		c.PinchThreshold = *p.PinchThreshold
	}
	if p.LongPressTime != nil {
		c.LongPressTime = *p.LongPressTime
	}
	if p.LongPressMoveThreshold != nil {
		c.LongPressMoveThreshold = *p.LongPressMoveThreshold
	}
	if p.DragThreshold != nil {
		c.DragThreshold = *p.DragThreshold
	}
	if p.TapThreshold != nil {
		c.TapThreshold = *p.TapThreshold
	}
	if p.DoubleTapTime != nil {
		c.DoubleTapTime = *p.DoubleTapTime
	}
	if p.PreventDefaultEvents != nil {
		c.PreventDefaultEvents = *p.PreventDefaultEvents
	}
	if p.EnabledDirections != nil {
		c.EnabledDirections = *p.EnabledDirections
	}
	if p.HapticFeedback != nil {
		c.HapticFeedback = *p.HapticFeedback
	}
	return c
}

// UnmarshalYAML accepts either a single direction name or a list of them.
// "all", "horizontal" and "vertical" expand to their groups.
func (m *Directions) UnmarshalYAML(value *yaml.Node) error {
	var names []string
	switch value.Kind {
	case yaml.ScalarNode:
		names = []string{value.Value}
	case yaml.SequenceNode:
		if err := value.Decode(&names); err != nil {
			return fmt.Errorf("gesture: enabled_directions: %w", err)
		}
	default:
		return fmt.Errorf("gesture: enabled_directions: line %d: expected name or list", value.Line)
	}

	var out Directions
	for _, name := range names {
		d, err := parseDirections(name)
		if err != nil {
			return fmt.Errorf("gesture: enabled_directions: line %d: %w", value.Line, err)
		}
		out |= d
	}
	*m = out
	return nil
}

func parseDirections(name string) (Directions, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "left":
		return SwipeLeft, nil
	case "right":
		return SwipeRight, nil
	case "up":
		return SwipeUp, nil
	case "down":
		return SwipeDown, nil
	case "horizontal":
		return SwipeHorizontal, nil
	case "vertical":
		return SwipeVertical, nil
	case "all":
		return SwipeAll, nil
	case "none", "":
		return 0, nil
	}
	return 0, fmt.Errorf("unknown direction %q", name)
}

// Presets maps a preset name to the patch it applies over DefaultConfig.
type Presets map[string]ConfigPatch

// LoadPresets decodes a YAML document of named ConfigPatch values:
//
//	carousel:
//	  swipe_threshold: 80
//	  enabled_directions: horizontal
//	card:
//	  long_press_time: 700ms
func LoadPresets(r io.Reader) (Presets, error) {
	var p Presets
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if err == io.EOF {
			return Presets{}, nil
		}
		return nil, fmt.Errorf("gesture: failed to parse presets: %w", err)
	}
	if p == nil {
		p = Presets{}
	}
	return p, nil
}

// Config resolves a preset against DefaultConfig. Unknown names yield the
// defaults and false.
func (p Presets) Config(name string) (Config, bool) {
	patch, ok := p[name]
	return DefaultConfig().Merge(patch), ok
}
