package scale

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownMode is returned by ParseMode for names other than block and braille.
var ErrUnknownMode = errors.New("unknown symbol mode")

// Mode selects the glyph family used for magnitudes.
type Mode int

const (
	ModeBlock Mode = iota
	ModeBraille
)

var glyphs = [...][8]string{
	ModeBlock:   {"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"},
	ModeBraille: {"⡀", "⡄", "⡆", "⡇", "⣇", "⣧", "⣷", "⣿"},
}

func (m Mode) String() string {
	switch m {
	case ModeBlock:
		return "block"
	case ModeBraille:
		return "braille"
	}
	return "unknown"
}

// ParseMode parses a mode name as used on the command line and in config.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "block":
		return ModeBlock, nil
	case "braille":
		return ModeBraille, nil
	}
	return ModeBlock, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

func (m Mode) table() *[8]string {
	if m == ModeBraille {
		return &glyphs[ModeBraille]
	}
	return &glyphs[ModeBlock]
}

// Symbol returns the glyph for a value in [0,1]. Values outside the unit
// range are clamped; NaN is treated as 0.
func Symbol(v float64, mode Mode) string {
	switch {
	case math.IsNaN(v), v < 0:
		v = 0
	case v > 1:
		v = 1
	}
	return mode.table()[int(math.Floor(v*7))]
}

// ValuesToSymbols maps each value to a glyph. Unless preNormalized is set the
// values are first scaled linearly between their own minimum and maximum.
// A series with no spread renders as a row of middle glyphs so flat data
// reads as level rather than empty.
func ValuesToSymbols(values []float64, mode Mode, preNormalized bool) []string {
	out := make([]string, len(values))
	if preNormalized {
		for i, v := range values {
			out[i] = Symbol(v, mode)
		}
		return out
	}

	lo, hi, ok := extent(values)
	if !ok {
		return out
	}
	if lo == hi {
		t := mode.table()
		for i := range out {
			out[i] = t[len(t)/2]
		}
		return out
	}
	span := hi - lo
	for i, v := range values {
		out[i] = Symbol((v-lo)/span, mode)
	}
	return out
}
