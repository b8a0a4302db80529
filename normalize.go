package gesture

// Touch is one active contact in a multi-touch frame.
type Touch struct {
	ID   int
	X, Y float64
}

// TouchFrame is a platform multi-touch report. Touches are listed in the
// order the platform reports them; the first is treated as primary.
type TouchFrame struct {
	Touches []Touch
}

// MouseEvent is a single-point, mouse-equivalent report.
type MouseEvent struct {
	X, Y   float64
	Button int
}

// Frame is a normalized pointer frame: the canonical sample list plus the
// raw platform event it came from.
type Frame struct {
	Points []Point
	Raw    any
}

// Normalize converts a raw platform event into canonical samples. Unknown or
// empty input produces an empty sample list, which the engine ignores.
func Normalize(raw any) Frame {
	f := Frame{Raw: raw}
	switch v := raw.(type) {
	case TouchFrame:
		f.Points = touchPoints(v.Touches)
	case *TouchFrame:
		if v != nil {
			f.Points = touchPoints(v.Touches)
		}
	case MouseEvent:
		f.Points = []Point{{X: v.X, Y: v.Y}}
	case *MouseEvent:
		if v != nil {
			f.Points = []Point{{X: v.X, Y: v.Y}}
		}
	case Point:
		f.Points = []Point{v}
	case []Point:
		if len(v) > 0 {
			f.Points = append([]Point(nil), v...)
		}
	}
	return f
}

func touchPoints(touches []Touch) []Point {
	if len(touches) == 0 {
		return nil
	}
	pts := make([]Point, len(touches))
	for i, t := range touches {
		pts[i] = Point{X: t.X, Y: t.Y}
	}
	return pts
}
