package ui

import (
	"fmt"

	"github.com/bamsammich/glance/internal/chart"
	"github.com/bamsammich/glance/internal/series"
)

// CompletionSummary builds a final summary line from window stats.
// Format: done ✓  samples 1,204  rate 12.0/s  time 1m 40s  min 0.2  max 98  last 41  rejected 0
func CompletionSummary(s series.Stats) string {
	icon := "✓"
	if s.Accepted == 0 {
		icon = "✗"
	}

	base := fmt.Sprintf("done %s  samples %s  rate %s  time %s",
		icon,
		FormatCount(s.Accepted),
		FormatRate(SampleRate(s)),
		FormatDuration(s.Elapsed),
	)

	if s.Held > 0 {
		base += fmt.Sprintf("  min %s  max %s  last %s",
			chart.FormatValue(s.Min),
			chart.FormatValue(s.Max),
			chart.FormatValue(s.Last),
		)
	}

	base += fmt.Sprintf("  rejected %d", s.Rejected)

	return base
}

// SampleRate returns the average number of accepted samples per second.
func SampleRate(s series.Stats) float64 {
	if s.Elapsed.Seconds() <= 0 {
		return 0
	}
	return float64(s.Accepted) / s.Elapsed.Seconds()
}
