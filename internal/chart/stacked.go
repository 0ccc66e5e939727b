package chart

import (
	"math"
	"strings"

	"github.com/bamsammich/glance/internal/colorize"
	"github.com/bamsammich/glance/internal/layout"
	"github.com/bamsammich/glance/internal/textwidth"
)

var segmentGlyphs = []string{"█", "▓", "▒", "░"}

// StackedItem is one row of a stacked bar chart.
type StackedItem struct {
	Label    string
	Segments []float64
}

// StackedConfig configures StackedBarChart.
type StackedConfig struct {
	Width       int
	MinBarWidth int
	ShowValues  bool
	Title       string
	// Legend names the segments in order.
	Legend []string
	// Colorizer shades segments along its gradient; nil renders glyphs only.
	Colorizer *colorize.Colorizer
	Styles    *Styles
}

// StackedBarChart renders one bar per row split into segments. All rows share
// the scale of the largest row total; segment boundaries are rounded from
// running sums so segment widths always add up to the row's bar.
func StackedBarChart(items []StackedItem, cfg StackedConfig) string {
	width := widthOrDefault(cfg.Width)
	minBar := cfg.MinBarWidth
	if minBar <= 0 {
		minBar = DefaultMinBarWidth
	}

	segments := 0
	labelW, valueW, maxTotal := 0, 0, 0.0
	totals := make([]float64, len(items))
	values := make([]string, len(items))
	for i, it := range items {
		labelW = max(labelW, textwidth.Measure(it.Label))
		segments = max(segments, len(it.Segments))
		for _, v := range it.Segments {
			if v > 0 {
				totals[i] += v
			}
		}
		maxTotal = math.Max(maxTotal, totals[i])
		if cfg.ShowValues {
			values[i] = FormatValue(totals[i])
			valueW = max(valueW, textwidth.Measure(values[i]))
		}
	}

	alloc := layout.Calculate(layout.Config{
		TotalWidth:  width,
		LabelWidth:  gutter(labelW),
		ValueWidth:  gutter(valueW),
		MinBarWidth: minBar,
	})

	var b strings.Builder
	writeTitle(&b, cfg.Title, width, cfg.Styles)
	for i, it := range items {
		b.WriteString(cfg.Styles.label(labelCell(it.Label, alloc.LabelWidth)))
		b.WriteString(cfg.stackedBar(it.Segments, maxTotal, alloc.BarWidth, segments))
		if cfg.ShowValues {
			b.WriteString(cfg.Styles.value(valueCell(values[i], alloc.ValueWidth)))
		}
		b.WriteByte('\n')
	}
	if legend := cfg.legend(width, segments); legend != "" {
		b.WriteString(legend)
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (cfg StackedConfig) segment(i, n, cols int) string {
	text := strings.Repeat(segmentGlyphs[i%len(segmentGlyphs)], cols)
	if cfg.Colorizer == nil {
		return text
	}
	// Spread the segments over the gradient, most intense first.
	step := colorize.Steps - 1
	if n > 1 {
		step -= i * (colorize.Steps - 1) / (n - 1)
	}
	return cfg.Colorizer.Gradient(step, text)
}

func (cfg StackedConfig) stackedBar(segs []float64, maxTotal float64, width, n int) string {
	var b strings.Builder
	used := 0
	if maxTotal > 0 && width > 0 {
		cum := 0.0
		for i, v := range segs {
			if v <= 0 {
				continue
			}
			cum += v
			end := int(math.Round(cum / maxTotal * float64(width)))
			if end > used {
				b.WriteString(cfg.segment(i, n, end-used))
				used = end
			}
		}
	}
	if used < width {
		b.WriteString(strings.Repeat(" ", width-used))
	}
	return b.String()
}

func (cfg StackedConfig) legend(width, n int) string {
	if len(cfg.Legend) == 0 {
		return ""
	}
	parts := make([]string, 0, len(cfg.Legend))
	for i, name := range cfg.Legend {
		parts = append(parts, cfg.segment(i, max(n, len(cfg.Legend)), 1)+" "+name)
	}
	line := strings.Join(parts, "  ")
	if textwidth.MeasureStyled(line) <= width {
		return line
	}
	// Colors would be cut mid-sequence; fall back to plain glyphs.
	plain := make([]string, 0, len(cfg.Legend))
	for i, name := range cfg.Legend {
		plain = append(plain, segmentGlyphs[i%len(segmentGlyphs)]+" "+name)
	}
	return textwidth.Truncate(strings.Join(plain, "  "), width)
}
