package tui

import (
	"fmt"
	"strings"

	"github.com/bamsammich/glance/internal/chart"
	"github.com/bamsammich/glance/internal/scale"
	"github.com/bamsammich/glance/internal/series"
	"github.com/bamsammich/glance/internal/ui"
)

// chartView shows the latest value, a full-width sparkline, summary cells
// and a line graph filling the remaining height.
type chartView struct {
	title string
	mode  scale.Mode
	color chart.Color
}

const chartIndent = "  "

func (c *chartView) view(width, height int, values []float64, s series.Stats) string {
	inner := max(width-2*len(chartIndent), 10)

	var b strings.Builder

	// Big latest value.
	last := "--"
	if s.Held > 0 {
		last = chart.FormatValue(s.Last)
	}
	b.WriteString(chartIndent + styleBigNumber.Render(last))
	b.WriteString("  " + styleStatCell.Render(ui.FormatRate(ui.SampleRate(s))))
	b.WriteString("\n\n")

	// Full-width sparkline.
	spark := chart.Sparkline(values, chart.SparkConfig{
		Width:  inner,
		Label:  c.title,
		Mode:   c.mode,
		Color:  c.color,
		Styles: chartStyles,
	})
	b.WriteString(chartIndent + spark)
	b.WriteString("\n\n")

	// Stats cells.
	cells := fmt.Sprintf("min %s   max %s   %s samples",
		chart.FormatValue(s.Min),
		chart.FormatValue(s.Max),
		ui.FormatCount(s.Accepted))
	if s.Rejected > 0 {
		cells += fmt.Sprintf("   %s rejected", ui.FormatCount(s.Rejected))
	}
	b.WriteString(chartIndent + styleStatCell.Render(cells))
	b.WriteString("\n\n")

	// Line graph: header, spark and stats take 6 lines.
	if graphHeight := height - 6; graphHeight >= 3 && len(values) > 0 {
		graph := chart.LineGraph(values, chart.LineConfig{
			Width:  inner,
			Height: graphHeight,
			Styles: chartStyles,
		})
		for _, line := range strings.Split(graph, "\n") {
			b.WriteString(chartIndent + line)
			b.WriteByte('\n')
		}
	}

	return b.String()
}
