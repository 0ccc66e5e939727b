// Package colorize wraps glyphs in ANSI color sequences chosen by threshold,
// degrading from 24-bit color to the 256 and 16 color palettes as the
// terminal allows.
package colorize

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Depth is the color capability of the output terminal.
type Depth int

const (
	DepthNone Depth = iota
	Depth16
	Depth256
	DepthTrueColor
)

func (d Depth) String() string {
	switch d {
	case DepthNone:
		return "none"
	case Depth16:
		return "16"
	case Depth256:
		return "256"
	case DepthTrueColor:
		return "truecolor"
	}
	return "unknown"
}

// OverrideEnv forces a color depth regardless of the terminal. Accepts
// none|16|256|truecolor or the levels 0..3.
const OverrideEnv = "GLANCE_COLOR_DEPTH"

// ParseDepth parses an override value. ok is false for values that should be
// ignored.
func ParseDepth(s string) (d Depth, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "none", "false":
		return DepthNone, true
	case "1", "16", "true":
		return Depth16, true
	case "2", "256":
		return Depth256, true
	case "3", "truecolor", "24bit", "16m":
		return DepthTrueColor, true
	}
	return DepthNone, false
}

// Detect resolves the color depth from environment variables looked up
// through getenv.
func Detect(getenv func(string) string) Depth {
	if d, ok := ParseDepth(getenv(OverrideEnv)); ok {
		return d
	}
	if d, ok := ParseDepth(getenv("FORCE_COLOR")); ok {
		return d
	}
	if getenv("NO_COLOR") != "" {
		return DepthNone
	}

	colorterm := strings.ToLower(getenv("COLORTERM"))
	if colorterm == "truecolor" || colorterm == "24bit" {
		return DepthTrueColor
	}
	for _, v := range []string{
		"KITTY_WINDOW_ID", "KONSOLE_VERSION", "ITERM_SESSION_ID",
		"ALACRITTY_WINDOW_ID", "WEZTERM_PANE", "WT_SESSION",
	} {
		if getenv(v) != "" {
			return DepthTrueColor
		}
	}

	term := strings.ToLower(getenv("TERM"))
	switch {
	case term == "dumb":
		return DepthNone
	case strings.Contains(term, "truecolor"),
		strings.Contains(term, "24bit"),
		strings.Contains(term, "direct"):
		return DepthTrueColor
	case strings.Contains(term, "256"):
		return Depth256
	}
	return Depth16
}

// Detector caches the result of Detect until Reset is called.
type Detector struct {
	getenv func(string) string

	mu       sync.Mutex
	depth    Depth
	resolved bool
}

// NewDetector creates a Detector reading the environment through getenv, or
// os.Getenv when getenv is nil.
func NewDetector(getenv func(string) string) *Detector {
	if getenv == nil {
		getenv = os.Getenv
	}
	return &Detector{getenv: getenv}
}

// DefaultDetector is the process-wide detector used by colorizers created
// without WithDetector.
var DefaultDetector = NewDetector(nil)

// Depth returns the cached depth, detecting it on first use.
func (d *Detector) Depth() Depth {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.resolved {
		d.depth = Detect(d.getenv)
		d.resolved = true
		slog.Debug("color depth resolved", "depth", d.depth.String())
	}
	return d.depth
}

// Reset discards the cached depth so the next call re-reads the environment.
func (d *Detector) Reset() {
	d.mu.Lock()
	d.resolved = false
	d.mu.Unlock()
}
