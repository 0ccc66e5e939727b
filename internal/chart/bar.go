package chart

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/bamsammich/glance/internal/layout"
	"github.com/bamsammich/glance/internal/textwidth"
)

// DefaultMinBarWidth is the narrowest bar a chart will squeeze to before
// shrinking labels and values.
const DefaultMinBarWidth = 10

var eighths = []string{"", "▏", "▎", "▍", "▌", "▋", "▊", "▉"}

// Item is one labeled value.
type Item struct {
	Label string
	Value float64
}

// BarConfig configures BarChart.
type BarConfig struct {
	Width       int
	MinBarWidth int
	ShowValues  bool
	// Sort orders rows by descending value.
	Sort   bool
	Title  string
	Color  Color
	Styles *Styles
}

// BarChart renders one horizontal bar per item, scaled to the largest value.
// Labels and values share the row with the bar according to
// layout.Calculate; labels that do not fit are truncated with an ellipsis.
func BarChart(items []Item, cfg BarConfig) string {
	width := widthOrDefault(cfg.Width)
	minBar := cfg.MinBarWidth
	if minBar <= 0 {
		minBar = DefaultMinBarWidth
	}
	if cfg.Sort {
		items = slices.Clone(items)
		slices.SortStableFunc(items, func(a, b Item) int { return cmp.Compare(b.Value, a.Value) })
	}

	labelW, valueW, maxVal := 0, 0, 0.0
	values := make([]string, len(items))
	for i, it := range items {
		labelW = max(labelW, textwidth.Measure(it.Label))
		if cfg.ShowValues {
			values[i] = FormatValue(it.Value)
			valueW = max(valueW, textwidth.Measure(values[i]))
		}
		if it.Value > maxVal {
			maxVal = it.Value
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
		bar := hbar(it.Value, maxVal, alloc.BarWidth)
		b.WriteString(cfg.Color.highlight([]string{bar}, []float64{it.Value}))
		b.WriteString(strings.Repeat(" ", alloc.BarWidth-textwidth.Measure(bar)))
		if cfg.ShowValues {
			b.WriteString(cfg.Styles.value(valueCell(values[i], alloc.ValueWidth)))
		}
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// gutter reserves one separator column next to non-empty content.
func gutter(w int) int {
	if w == 0 {
		return 0
	}
	return w + 1
}

// labelCell renders s left-aligned in w columns with a trailing separator.
func labelCell(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return textwidth.PadRight(s, w-1) + " "
}

// valueCell renders s right-aligned in w columns after a leading separator.
func valueCell(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return " " + textwidth.PadLeft(s, w-1)
}

// hbar draws v relative to maxVal in at most width columns, using eighth
// blocks for the fractional tail.
func hbar(v, maxVal float64, width int) string {
	if width <= 0 || maxVal <= 0 || !(v > 0) {
		return ""
	}
	units := int(math.Round(math.Min(v/maxVal, 1) * float64(width) * 8))
	if units == 0 {
		units = 1
	}
	full, rem := units/8, units%8
	return strings.Repeat("█", full) + eighths[rem]
}

func writeTitle(b *strings.Builder, title string, width int, st *Styles) {
	if title == "" {
		return
	}
	b.WriteString(st.title(textwidth.Truncate(title, width)))
	b.WriteByte('\n')
}
