package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bamsammich/glance/internal/colorize"
	"github.com/bamsammich/glance/internal/dataset"
)

// thresholdFlag implements pflag.Value for the repeatable --threshold flag.
// Each occurrence may carry a comma-separated list.
type thresholdFlag struct {
	values []float64
}

var _ pflag.Value = (*thresholdFlag)(nil)

func (f *thresholdFlag) String() string {
	parts := make([]string, len(f.values))
	for i, v := range f.values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (f *thresholdFlag) Set(val string) error {
	for _, tok := range strings.Split(val, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		v, err := dataset.ParseValue(tok)
		if err != nil {
			return fmt.Errorf("invalid threshold %q: %w", tok, err)
		}
		f.values = append(f.values, v)
	}
	return nil
}

func (f *thresholdFlag) Type() string {
	return "float"
}

// threshold converts the collected values: none disables highlighting, one
// highlights everything above it, several form a gradient.
func (f *thresholdFlag) threshold() colorize.Threshold {
	switch len(f.values) {
	case 0:
		return colorize.Threshold{}
	case 1:
		return colorize.Above(f.values[0])
	default:
		return colorize.Levels(f.values...)
	}
}
