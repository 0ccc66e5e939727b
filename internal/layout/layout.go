// Package layout splits a row of fixed width between a label column, a bar
// and a value column.
package layout

// Config is a layout request. LabelWidth and ValueWidth are the widths the
// caller would like; MinBarWidth is the narrowest acceptable bar.
type Config struct {
	TotalWidth  int
	LabelWidth  int
	ValueWidth  int
	MinBarWidth int
}

// Allocation is a resolved layout. The three widths never sum to more than
// the requested total.
type Allocation struct {
	LabelWidth int
	BarWidth   int
	ValueWidth int
}

// Total returns the combined width of the allocation.
func (a Allocation) Total() int {
	return a.LabelWidth + a.BarWidth + a.ValueWidth
}

// Calculate resolves cfg in priority order: grant everything when it fits;
// otherwise keep the minimum bar and shrink label and value in proportion to
// what they asked for. A minimum bar at least as wide as the row takes the
// whole row.
func Calculate(cfg Config) Allocation {
	total := cfg.TotalWidth
	if total <= 0 {
		return Allocation{}
	}
	label := max(cfg.LabelWidth, 0)
	value := max(cfg.ValueWidth, 0)
	minBar := max(cfg.MinBarWidth, 0)

	if label+value+minBar <= total {
		return Allocation{
			LabelWidth: label,
			BarWidth:   total - label - value,
			ValueWidth: value,
		}
	}

	if minBar >= total {
		return Allocation{BarWidth: total}
	}

	// label+value > 0 here: with both zero one of the returns above applies.
	remainder := total - minBar
	labelShare := remainder * label / (label + value)
	return Allocation{
		LabelWidth: labelShare,
		BarWidth:   minBar,
		ValueWidth: remainder - labelShare,
	}
}
