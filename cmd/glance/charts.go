package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bamsammich/glance/internal/chart"
	"github.com/bamsammich/glance/internal/dataset"
	"github.com/bamsammich/glance/internal/ui"
)

var errNoInput = errors.New("no input: pass values as arguments, use --file, or pipe them on stdin")

// chartInput is the data source shared by the one-shot chart commands.
type chartInput struct {
	file  string
	title string
}

func (in *chartInput) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&in.file, "file", "f", "", "read data from a YAML or JSON dataset `FILE`")
	cmd.Flags().StringVar(&in.title, "title", "", "chart title")
}

// load reads the dataset file when --file is set. The file's title fills in
// for an unset --title.
func (in *chartInput) load() (dataset.File, bool, error) {
	if in.file == "" {
		return dataset.File{}, false, nil
	}
	f, err := dataset.Load(in.file)
	if err != nil {
		return f, true, badInput(err)
	}
	if in.title == "" {
		in.title = f.Title
	}
	return f, true, nil
}

// stdin returns the command's input unless it is an interactive terminal.
func stdin(cmd *cobra.Command) (io.Reader, error) {
	r := cmd.InOrStdin()
	if f, ok := r.(*os.File); ok && ui.IsTTY(f.Fd()) {
		return nil, badInput(errNoInput)
	}
	return r, nil
}

// readNumbers resolves numeric input from the file, args or stdin in that
// order of precedence.
func (in *chartInput) readNumbers(cmd *cobra.Command, args []string) ([]float64, error) {
	f, ok, err := in.load()
	if err != nil {
		return nil, err
	}
	var values []float64
	switch {
	case ok:
		if len(f.Values) == 0 {
			return nil, badInput(fmt.Errorf("%s: %w", in.file, dataset.ErrNoValues))
		}
		values = f.Values
	case len(args) > 0:
		values, err = dataset.ParseValues(args)
	default:
		var r io.Reader
		if r, err = stdin(cmd); err != nil {
			return nil, err
		}
		values, err = dataset.ReadValues(r)
	}
	if err != nil {
		return nil, badInput(err)
	}
	return values, nil
}

// readTokens returns args, or the whitespace-separated words of stdin when no
// args are given.
func readTokens(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	r, err := stdin(cmd)
	if err != nil {
		return nil, err
	}
	var tokens []string
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		tokens = append(tokens, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return tokens, nil
}

func newSparkCmd(a *app) *cobra.Command {
	var (
		in         chartInput
		label      string
		normalized bool
	)
	cmd := &cobra.Command{
		Use:   "spark [values...]",
		Short: "Draw a sparkline",
		Example: `  glance spark 1 5 2 8 3
  seq 1 20 | glance spark --label load
  glance spark --threshold 50,75,90 --scheme blue 12 48 77 95`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := in.readNumbers(cmd, args)
			if err != nil {
				return err
			}
			mode, err := a.symbolMode()
			if err != nil {
				return err
			}
			if label == "" {
				label = in.title
			}
			out := chart.Sparkline(values, chart.SparkConfig{
				Width:         a.chartWidth(),
				Label:         label,
				Mode:          mode,
				Color:         a.color(),
				PreNormalized: normalized,
				Styles:        a.styles(),
			})
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().StringVarP(&label, "label", "l", "", "label printed before the sparkline")
	cmd.Flags().BoolVar(&normalized, "normalized", false, "values are already scaled to [0,1]")
	return cmd
}

func newBarCmd(a *app) *cobra.Command {
	var (
		in     chartInput
		sorted bool
	)
	cmd := &cobra.Command{
		Use:   "bar [label=value...]",
		Short: "Draw a horizontal bar chart",
		Example: `  glance bar cpu=73 mem=41 disk=12
  glance bar --sort --show-values --file usage.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, ok, err := in.load()
			if err != nil {
				return err
			}
			var items []chart.Item
			if ok {
				items = f.ChartItems()
				if len(items) == 0 {
					return badInput(fmt.Errorf("%s: no items: %w", in.file, dataset.ErrNoValues))
				}
			} else {
				tokens, err := readTokens(cmd, args)
				if err != nil {
					return err
				}
				if items, err = dataset.ParseItems(tokens); err != nil {
					return badInput(err)
				}
			}
			out := chart.BarChart(items, chart.BarConfig{
				Width:       a.chartWidth(),
				MinBarWidth: a.opts.minBarWidth,
				ShowValues:  a.opts.showValues,
				Sort:        sorted,
				Title:       in.title,
				Color:       a.color(),
				Styles:      a.styles(),
			})
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	in.register(cmd)
	registerBarFlags(cmd, a)
	cmd.Flags().BoolVar(&sorted, "sort", false, "sort bars by descending value")
	return cmd
}

func newStackedCmd(a *app) *cobra.Command {
	var (
		in     chartInput
		legend []string
	)
	cmd := &cobra.Command{
		Use:   "stacked [label=v1,v2,...]",
		Short: "Draw a stacked bar chart",
		Example: `  glance stacked --legend user,sys,io web=40,10,5 db=20,30,25`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, ok, err := in.load()
			if err != nil {
				return err
			}
			var rows []chart.StackedItem
			if ok {
				rows = f.ChartStacked()
				if len(rows) == 0 {
					return badInput(fmt.Errorf("%s: no stacked rows: %w", in.file, dataset.ErrNoValues))
				}
				if !cmd.Flags().Changed("legend") {
					legend = f.Legend
				}
			} else {
				tokens, err := readTokens(cmd, args)
				if err != nil {
					return err
				}
				if rows, err = dataset.ParseStacked(tokens); err != nil {
					return badInput(err)
				}
			}
			out := chart.StackedBarChart(rows, chart.StackedConfig{
				Width:       a.chartWidth(),
				MinBarWidth: a.opts.minBarWidth,
				ShowValues:  a.opts.showValues,
				Title:       in.title,
				Legend:      legend,
				Colorizer:   a.colorizer(),
				Styles:      a.styles(),
			})
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	in.register(cmd)
	registerBarFlags(cmd, a)
	cmd.Flags().StringSliceVar(&legend, "legend", nil, "segment names, comma-separated")
	return cmd
}

func registerBarFlags(cmd *cobra.Command, a *app) {
	cmd.Flags().IntVar(&a.opts.minBarWidth, "min-bar-width", chart.DefaultMinBarWidth,
		"narrowest bar before labels are truncated")
	cmd.Flags().BoolVar(&a.opts.showValues, "show-values", false, "print each value after its bar")
}

func newLineCmd(a *app) *cobra.Command {
	var (
		in     chartInput
		height int
	)
	cmd := &cobra.Command{
		Use:   "line [values...]",
		Short: "Draw a line graph with a labeled y axis",
		Example: `  glance line --height 10 3 1 4 1 5 9 2 6
  glance line --file latency.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := in.readNumbers(cmd, args)
			if err != nil {
				return err
			}
			if height < 1 {
				return badInput(fmt.Errorf("--height must be at least 1, got %d", height))
			}
			out := chart.LineGraph(values, chart.LineConfig{
				Width:  a.chartWidth(),
				Height: height,
				Title:  in.title,
				Styles: a.styles(),
			})
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().IntVar(&height, "height", chart.DefaultHeight, "graph height in rows")
	return cmd
}
