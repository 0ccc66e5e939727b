package chart

import (
	"fmt"
	"math"
	"strings"
)

// FormatValue renders a data value compactly: integers as is, fractions to
// one decimal, and thousands and above with k/M/G/T suffixes.
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	case v < 0:
		return "-" + FormatValue(-v)
	}

	// Round before picking the unit so 999.95 reads 1k rather than 1000.
	units := []string{"", "k", "M", "G", "T"}
	val := v
	for i, u := range units {
		rounded := math.Round(val*10) / 10
		if rounded < 1000 || i == len(units)-1 {
			if i == 0 && rounded == math.Trunc(rounded) {
				return fmt.Sprintf("%.0f", rounded)
			}
			return trimZero(fmt.Sprintf("%.1f", rounded)) + u
		}
		val /= 1000
	}
	return fmt.Sprintf("%g", v)
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}
