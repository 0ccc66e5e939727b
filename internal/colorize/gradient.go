package colorize

import (
	"strings"

	"github.com/muesli/termenv"
)

// Scheme names a gradient family.
type Scheme int

const (
	SchemeRed Scheme = iota
	SchemeBlue
	SchemeGreen
)

// Steps is the number of gradient intensities in every scheme.
const Steps = 8

func (s Scheme) String() string {
	switch s {
	case SchemeBlue:
		return "blue"
	case SchemeGreen:
		return "green"
	}
	return "red"
}

// ParseScheme maps a scheme name to a Scheme. Unknown names fall back to red.
func ParseScheme(name string) Scheme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "blue":
		return SchemeBlue
	case "green":
		return SchemeGreen
	}
	return SchemeRed
}

// palette holds one scheme in each rendering tier, palest first.
type palette struct {
	rgb    [Steps]string
	xterm  [Steps]int
	bright termenv.ANSIColor // 16-color steps 0..3
	normal termenv.ANSIColor // 16-color steps 4..7 and flat highlights
}

var palettes = [...]palette{
	SchemeRed: {
		rgb:    [Steps]string{"#FFCDD2", "#EF9A9A", "#E57373", "#EF5350", "#F44336", "#E53935", "#C62828", "#B71C1C"},
		xterm:  [Steps]int{224, 217, 210, 203, 196, 160, 124, 88},
		bright: termenv.ANSIBrightRed,
		normal: termenv.ANSIRed,
	},
	SchemeBlue: {
		rgb:    [Steps]string{"#BBDEFB", "#90CAF9", "#64B5F6", "#42A5F5", "#2196F3", "#1E88E5", "#1565C0", "#0D47A1"},
		xterm:  [Steps]int{153, 117, 111, 75, 33, 27, 25, 18},
		bright: termenv.ANSIBrightBlue,
		normal: termenv.ANSIBlue,
	},
	SchemeGreen: {
		rgb:    [Steps]string{"#C8E6C9", "#A5D6A7", "#81C784", "#66BB6A", "#4CAF50", "#43A047", "#2E7D32", "#1B5E20"},
		xterm:  [Steps]int{194, 157, 120, 83, 46, 40, 28, 22},
		bright: termenv.ANSIBrightGreen,
		normal: termenv.ANSIGreen,
	},
}

func (s Scheme) palette() *palette {
	if s < SchemeRed || s > SchemeGreen {
		s = SchemeRed
	}
	return &palettes[s]
}

// color returns the termenv color for a gradient step at the given depth, or
// nil when color is disabled.
func (p *palette) color(step int, depth Depth) termenv.Color {
	step = clampStep(step)
	switch depth {
	case DepthTrueColor:
		return termenv.RGBColor(p.rgb[step])
	case Depth256:
		return termenv.ANSI256Color(p.xterm[step])
	case Depth16:
		if step < Steps/2 {
			return p.bright
		}
		return p.normal
	}
	return nil
}

func clampStep(step int) int {
	if step < 0 {
		return 0
	}
	if step > Steps-1 {
		return Steps - 1
	}
	return step
}

func paint(s string, c termenv.Color) string {
	if c == nil {
		return s
	}
	return termenv.String(s).Foreground(c).String()
}
