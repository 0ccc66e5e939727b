// Package dataset parses chart input from command-line tokens, streams and
// YAML or JSON files.
package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bamsammich/glance/internal/chart"
)

// ErrNoValues is returned when input contains nothing to chart.
var ErrNoValues = errors.New("no values")

// File is the on-disk dataset format. JSON files are read through the same
// YAML decoder.
type File struct {
	Title   string        `yaml:"title"`
	Values  []float64     `yaml:"values"`
	Items   []FileItem    `yaml:"items"`
	Stacked []FileStacked `yaml:"stacked"`
	Legend  []string      `yaml:"legend"`
}

// FileItem is one labeled value in a dataset file.
type FileItem struct {
	Label string  `yaml:"label"`
	Value float64 `yaml:"value"`
}

// FileStacked is one stacked row in a dataset file.
type FileStacked struct {
	Label  string    `yaml:"label"`
	Values []float64 `yaml:"values"`
}

// ChartItems converts the file's items for chart.BarChart.
func (f File) ChartItems() []chart.Item {
	out := make([]chart.Item, len(f.Items))
	for i, it := range f.Items {
		out[i] = chart.Item{Label: it.Label, Value: it.Value}
	}
	return out
}

// ChartStacked converts the file's stacked rows for chart.StackedBarChart.
func (f File) ChartStacked() []chart.StackedItem {
	out := make([]chart.StackedItem, len(f.Stacked))
	for i, row := range f.Stacked {
		out[i] = chart.StackedItem{Label: row.Label, Segments: row.Values}
	}
	return out
}

// Load reads a dataset file.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read dataset: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	if len(f.Values) == 0 && len(f.Items) == 0 && len(f.Stacked) == 0 {
		return f, fmt.Errorf("%s: %w", path, ErrNoValues)
	}
	return f, nil
}

// ParseValue parses a single number. NaN and infinities are rejected.
func ParseValue(token string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q", token)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid value %q: not finite", token)
	}
	return v, nil
}

// ParseValues parses numbers from tokens. Each token may itself hold several
// numbers separated by commas or whitespace.
func ParseValues(tokens []string) ([]float64, error) {
	var out []float64
	for _, tok := range tokens {
		for _, field := range splitList(tok) {
			v, err := ParseValue(field)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoValues
	}
	return out, nil
}

// ParseItems parses label=value tokens. The label is everything before the
// last '=' so labels may contain '='.
func ParseItems(tokens []string) ([]chart.Item, error) {
	out := make([]chart.Item, 0, len(tokens))
	for _, tok := range tokens {
		label, raw, err := splitPair(tok)
		if err != nil {
			return nil, err
		}
		v, err := ParseValue(raw)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", label, err)
		}
		out = append(out, chart.Item{Label: label, Value: v})
	}
	if len(out) == 0 {
		return nil, ErrNoValues
	}
	return out, nil
}

// ParseStacked parses label=v1,v2,... tokens.
func ParseStacked(tokens []string) ([]chart.StackedItem, error) {
	out := make([]chart.StackedItem, 0, len(tokens))
	for _, tok := range tokens {
		label, raw, err := splitPair(tok)
		if err != nil {
			return nil, err
		}
		segs, err := ParseValues([]string{raw})
		if err != nil {
			return nil, fmt.Errorf("row %q: %w", label, err)
		}
		out = append(out, chart.StackedItem{Label: label, Segments: segs})
	}
	if len(out) == 0 {
		return nil, ErrNoValues
	}
	return out, nil
}

// ReadValues reads every number from r.
func ReadValues(r io.Reader) ([]float64, error) {
	var out []float64
	sc := Scanner(r)
	for sc.Scan() {
		v, err := ParseValue(sc.Text())
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrNoValues
	}
	return out, nil
}

// Scanner returns a scanner that yields one number token at a time from r.
// Tokens are separated by whitespace, commas or semicolons.
func Scanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Split(scanFields)
	return sc
}

func splitPair(tok string) (label, value string, err error) {
	i := strings.LastIndexByte(tok, '=')
	if i < 0 {
		return "", "", fmt.Errorf("invalid item %q: want label=value", tok)
	}
	return tok[:i], tok[i+1:], nil
}

func isSep(r rune) bool {
	return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, isSep)
}

// scanFields is bufio.ScanWords that also splits on commas and semicolons.
func scanFields(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) && isSep(rune(data[start])) {
		start++
	}
	for i := start; i < len(data); i++ {
		if isSep(rune(data[i])) {
			return i + 1, data[start:i], nil
		}
	}
	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	return start, nil, nil
}
