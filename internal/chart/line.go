package chart

import (
	"math"
	"strings"

	"github.com/bamsammich/glance/internal/layout"
	"github.com/bamsammich/glance/internal/scale"
	"github.com/bamsammich/glance/internal/textwidth"
)

// DefaultHeight is the number of plot rows used when LineConfig.Height is unset.
const DefaultHeight = 8

const (
	point     = '•'
	connector = '│'
)

// LineConfig configures LineGraph.
type LineConfig struct {
	Width  int
	Height int
	Title  string
	Styles *Styles
}

// LineGraph plots values on a grid of Height rows with a labeled y axis.
// Each column holds one (possibly resampled) value; steep steps between
// neighbours are joined with vertical connectors.
func LineGraph(values []float64, cfg LineConfig) string {
	width := widthOrDefault(cfg.Width)
	height := cfg.Height
	if height <= 0 {
		height = DefaultHeight
	}

	lo, hi, ok := finiteExtent(values)
	if !ok {
		var b strings.Builder
		writeTitle(&b, cfg.Title, width, cfg.Styles)
		return strings.TrimSuffix(b.String(), "\n")
	}

	top, bottom := FormatValue(hi), FormatValue(lo)
	alloc := layout.Calculate(layout.Config{
		TotalWidth:  width,
		LabelWidth:  max(textwidth.Measure(top), textwidth.Measure(bottom)) + 1,
		MinBarWidth: 2,
	})

	sampled := resample(values, alloc.BarWidth)
	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", len(sampled)))
	}

	q := scale.Quantize([]float64{lo, hi}, height)
	prev := -1
	for x, v := range sampled {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			prev = -1
			continue
		}
		level := min(max(q(v), 0), height-1)
		grid[level][x] = point
		if prev >= 0 {
			for y := min(prev, level) + 1; y < max(prev, level); y++ {
				grid[y][x] = connector
			}
		}
		prev = level
	}

	var b strings.Builder
	writeTitle(&b, cfg.Title, width, cfg.Styles)
	for row := height - 1; row >= 0; row-- {
		label := ""
		switch row {
		case height - 1:
			label = top
		case 0:
			label = bottom
		}
		b.WriteString(cfg.Styles.axis(axisCell(label, alloc.LabelWidth)))
		b.WriteString(string(grid[row]))
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// axisCell renders a right-aligned tick label followed by the axis line.
func axisCell(label string, w int) string {
	if w <= 0 {
		return ""
	}
	tick := "│"
	if label != "" {
		tick = "┤"
	}
	return textwidth.PadLeft(label, w-1) + tick
}

func finiteExtent(values []float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		ok = true
	}
	return lo, hi, ok
}
