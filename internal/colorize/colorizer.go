package colorize

import (
	"slices"
	"strings"
)

// Threshold selects which values get highlighted. The zero Threshold
// highlights nothing.
type Threshold struct {
	levels   []float64
	gradient bool
}

// Above highlights values strictly greater than v with a flat color.
func Above(v float64) Threshold {
	return Threshold{levels: []float64{v}}
}

// Levels highlights values with a gradient step chosen by how many of the
// thresholds they strictly exceed. Input order does not matter.
func Levels(vs ...float64) Threshold {
	levels := slices.Clone(vs)
	slices.Sort(levels)
	return Threshold{levels: levels, gradient: true}
}

// IsZero reports whether t highlights nothing.
func (t Threshold) IsZero() bool {
	return len(t.levels) == 0
}

// Step returns the gradient step for v and whether v is highlighted at all.
// For a flat threshold the step is meaningless.
func (t Threshold) Step(v float64) (step int, ok bool) {
	if !t.gradient {
		return 0, len(t.levels) == 1 && v > t.levels[0]
	}
	level := 0
	for i, lv := range t.levels {
		if v > lv {
			level = i + 1
		}
	}
	if level == 0 {
		return 0, false
	}
	return clampStep(level), true
}

// Colorizer wraps strings in the colors of one scheme at the depth reported
// by its Detector. The depth is looked up at call time, so resetting the
// detector takes effect immediately.
type Colorizer struct {
	scheme   Scheme
	detector *Detector
}

// Option configures a Colorizer.
type Option func(*Colorizer)

// WithDetector uses d instead of DefaultDetector.
func WithDetector(d *Detector) Option {
	return func(c *Colorizer) {
		c.detector = d
	}
}

// New creates a Colorizer for scheme.
func New(scheme Scheme, opts ...Option) *Colorizer {
	c := &Colorizer{scheme: scheme, detector: DefaultDetector}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Scheme returns the colorizer's gradient family.
func (c *Colorizer) Scheme() Scheme { return c.scheme }

// Depth returns the color depth currently in effect.
func (c *Colorizer) Depth() Depth { return c.detector.Depth() }

// Gradient wraps s in gradient step step (0 palest, 7 most intense).
// Out-of-range steps clamp.
func (c *Colorizer) Gradient(step int, s string) string {
	return paint(s, c.scheme.palette().color(step, c.Depth()))
}

// Flat wraps s in the scheme's plain highlight color.
func (c *Colorizer) Flat(s string) string {
	if c.Depth() == DepthNone {
		return s
	}
	return paint(s, c.scheme.palette().normal)
}

// ApplyHighlighting joins symbols, wrapping each one whose data value passes
// t. When symbols and data differ in length, symbol i takes the value at the
// same relative position in data.
func (c *Colorizer) ApplyHighlighting(symbols []string, data []float64, t Threshold) string {
	var b strings.Builder
	for i, sym := range symbols {
		if len(data) == 0 || t.IsZero() {
			b.WriteString(sym)
			continue
		}
		v := data[i*len(data)/len(symbols)]
		step, ok := t.Step(v)
		switch {
		case !ok:
			b.WriteString(sym)
		case t.gradient:
			b.WriteString(c.Gradient(step, sym))
		default:
			b.WriteString(c.Flat(sym))
		}
	}
	return b.String()
}
