// Package chart renders sparklines, bar charts, stacked bar charts and line
// graphs as terminal text.
package chart

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bamsammich/glance/internal/colorize"
	"github.com/bamsammich/glance/internal/config"
)

// DefaultWidth is used when a chart is rendered without a width budget.
const DefaultWidth = 60

// Styles decorates the non-data parts of a chart. A nil *Styles renders
// text undecorated.
type Styles struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Value lipgloss.Style
	Axis  lipgloss.Style
}

// DefaultStyles returns plain styles with a bold title.
func DefaultStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().Bold(true),
		Label: lipgloss.NewStyle(),
		Value: lipgloss.NewStyle(),
		Axis:  lipgloss.NewStyle(),
	}
}

// ThemedStyles applies config color overrides on top of DefaultStyles.
func ThemedStyles(tc config.ThemeConfig) *Styles {
	s := DefaultStyles()
	if tc.Title != nil {
		s.Title = s.Title.Foreground(lipgloss.Color(*tc.Title))
	}
	if tc.Label != nil {
		s.Label = s.Label.Foreground(lipgloss.Color(*tc.Label))
	}
	if tc.Value != nil {
		s.Value = s.Value.Foreground(lipgloss.Color(*tc.Value))
	}
	if tc.Axis != nil {
		s.Axis = s.Axis.Foreground(lipgloss.Color(*tc.Axis))
	}
	return s
}

func (s *Styles) title(text string) string {
	if s == nil {
		return text
	}
	return s.Title.Render(text)
}

func (s *Styles) label(text string) string {
	if s == nil {
		return text
	}
	return s.Label.Render(text)
}

func (s *Styles) value(text string) string {
	if s == nil {
		return text
	}
	return s.Value.Render(text)
}

func (s *Styles) axis(text string) string {
	if s == nil {
		return text
	}
	return s.Axis.Render(text)
}

// Color controls highlighting of data glyphs. A nil Colorizer or a zero
// Threshold leaves glyphs uncolored.
type Color struct {
	Colorizer *colorize.Colorizer
	Threshold colorize.Threshold
}

func (c Color) highlight(symbols []string, data []float64) string {
	if c.Colorizer == nil {
		return strings.Join(symbols, "")
	}
	return c.Colorizer.ApplyHighlighting(symbols, data, c.Threshold)
}

func widthOrDefault(w int) int {
	if w <= 0 {
		return DefaultWidth
	}
	return w
}

// resample picks n values spread evenly over values. Series that already fit
// are returned as is.
func resample(values []float64, n int) []float64 {
	if n <= 0 || len(values) <= n {
		return values
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = values[i*len(values)/n]
	}
	return out
}
