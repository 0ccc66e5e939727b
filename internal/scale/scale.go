// Package scale maps data values onto unit ranges, discrete buckets and the
// glyphs that represent relative magnitude.
package scale

import "math"

// extent returns the smallest and largest value in domain.
func extent(domain []float64) (lo, hi float64, ok bool) {
	if len(domain) == 0 {
		return 0, 0, false
	}
	lo, hi = domain[0], domain[0]
	for _, v := range domain[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi, true
}

// Normalize returns a linear map from domain onto [0,1]. Values outside the
// domain extrapolate. An empty or single-valued domain maps everything to 0.
func Normalize(domain []float64) func(float64) float64 {
	lo, hi, ok := extent(domain)
	if !ok || lo == hi {
		return func(float64) float64 { return 0 }
	}
	span := hi - lo
	return func(v float64) float64 {
		return (v - lo) / span
	}
}

// Quantize returns a map from domain onto the integer buckets 0..steps-1.
// The domain maximum always lands in the last bucket; values outside the
// domain are not clamped. With fewer than two steps or a single-valued
// domain every value maps to 0.
func Quantize(domain []float64, steps int) func(float64) int {
	lo, hi, ok := extent(domain)
	if !ok || lo == hi || steps <= 1 {
		return func(float64) int { return 0 }
	}
	bucket := (hi - lo) / float64(steps)
	return func(v float64) int {
		if v == hi {
			return steps - 1
		}
		i := int(math.Floor((v - lo) / bucket))
		// Rounding just below the maximum can reach steps.
		if v < hi && i >= steps {
			i = steps - 1
		}
		return i
	}
}
