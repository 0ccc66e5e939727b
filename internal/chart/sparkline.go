package chart

import (
	"github.com/bamsammich/glance/internal/scale"
	"github.com/bamsammich/glance/internal/textwidth"
)

// SparkConfig configures Sparkline.
type SparkConfig struct {
	// Width is the total width including the label. Zero renders one glyph
	// per value.
	Width int
	Label string
	Mode  scale.Mode
	Color Color
	// PreNormalized marks values already scaled to [0,1].
	PreNormalized bool
	Styles        *Styles
}

// Sparkline renders values as a single row of magnitude glyphs. When there
// are more values than columns the series is resampled; highlighting still
// reads the original values.
func Sparkline(values []float64, cfg SparkConfig) string {
	prefix := ""
	avail := cfg.Width
	if cfg.Label != "" {
		label := cfg.Label
		if cfg.Width > 0 {
			// Leave at least one column for data.
			label = textwidth.Truncate(label, cfg.Width-2)
		}
		if label != "" {
			prefix = cfg.Styles.label(label) + " "
			avail -= textwidth.Measure(label) + 1
		}
	}
	if cfg.Width > 0 && avail <= 0 {
		return prefix
	}

	sampled := resample(values, avail)
	symbols := scale.ValuesToSymbols(sampled, cfg.Mode, cfg.PreNormalized)
	return prefix + cfg.Color.highlight(symbols, values)
}
