package textwidth

import (
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

// Cluster is a run of code points that occupies a single visual unit: one
// character, or a wide character joined by ZWJ to further wide characters.
// Zero-width and combining code points form their own zero-width clusters.
type Cluster struct {
	Text  string
	Width int
}

// RuneWidth returns the column contribution of a single code point.
func RuneWidth(r rune) int {
	switch {
	case r == '\t':
		return 1
	case r == '\n', r == '\r':
		return 0
	case IsZeroWidth(r), IsCombining(r):
		return 0
	case IsWide(r):
		return 2
	}
	return 1
}

// nextCluster returns the byte length and width of the cluster at the start
// of s. s must be non-empty.
func nextCluster(s string) (size, width int) {
	r, size := utf8.DecodeRuneInString(s)
	width = RuneWidth(r)
	if width != 2 {
		return size, width
	}
	// Emoji ZWJ sequences render as one glyph: swallow ZWJ+wide pairs.
	for {
		j, js := utf8.DecodeRuneInString(s[size:])
		if js == 0 || j != zwj {
			return size, width
		}
		k, ks := utf8.DecodeRuneInString(s[size+js:])
		if ks == 0 || !IsWide(k) {
			return size, width
		}
		size += js + ks
	}
}

// Clusters splits s into width units, left to right.
func Clusters(s string) []Cluster {
	var out []Cluster
	for len(s) > 0 {
		n, w := nextCluster(s)
		out = append(out, Cluster{Text: s[:n], Width: w})
		s = s[n:]
	}
	return out
}

// Measure returns the number of terminal columns s occupies.
func Measure(s string) int {
	if w, ok := asciiWidth(s); ok {
		return w
	}
	total := 0
	for len(s) > 0 {
		n, w := nextCluster(s)
		total += w
		s = s[n:]
	}
	return total
}

// MeasureStyled is Measure for strings that may carry ANSI escape sequences.
func MeasureStyled(s string) int {
	return Measure(ansi.Strip(s))
}

// asciiWidth handles the common all-ASCII case without decoding runes.
func asciiWidth(s string) (int, bool) {
	w := 0
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b >= utf8.RuneSelf {
			return 0, false
		}
		if b != '\n' && b != '\r' {
			w++
		}
	}
	return w, true
}
