package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bamsammich/glance/internal/chart"
	"github.com/bamsammich/glance/internal/colorize"
	"github.com/bamsammich/glance/internal/config"
	"github.com/bamsammich/glance/internal/scale"
	"github.com/bamsammich/glance/internal/termwidth"
	"github.com/bamsammich/glance/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

// options holds the persistent flags shared by every chart command.
type options struct {
	verbose     bool
	quiet       bool
	logFile     string
	width       int
	scheme      string
	mode        string
	thresholds  thresholdFlag
	noColor     bool
	showVersion bool

	// Bar chart flags, registered only by the commands that draw bars.
	minBarWidth int
	showValues  bool
}

// app is the state shared between the root command and its subcommands.
type app struct {
	opts   options
	cfg    config.Config
	closer func()
}

func run(args []string) int {
	a := &app{}
	defer a.close()

	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			if exitErr.err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr.err)
			}
			return exitErr.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "glance",
		Short:         "Text-mode charts for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.opts.showVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "glance %s\n", version)
				return nil
			}
			return cmd.Help()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&a.opts.verbose, "verbose", "v", false, "verbose output")
	pf.BoolVarP(&a.opts.quiet, "quiet", "q", false, "suppress progress and summary output")
	pf.StringVar(&a.opts.logFile, "log", "", "write structured JSON log to FILE")
	pf.IntVarP(&a.opts.width, "width", "w", 0, "chart width in columns (default: terminal width)")
	pf.StringVar(&a.opts.scheme, "scheme", "red", "highlight color scheme (red, blue or green)")
	pf.StringVar(&a.opts.mode, "mode", "block", "symbol mode (block or braille)")
	pf.Var(&a.opts.thresholds, "threshold",
		"highlight values above N; repeat or comma-separate for a gradient (repeatable)")
	pf.BoolVar(&a.opts.noColor, "no-color", false, "disable color output")
	rootCmd.Flags().BoolVar(&a.opts.showVersion, "version", false, "print version and exit")

	rootCmd.AddCommand(
		newSparkCmd(a),
		newBarCmd(a),
		newStackedCmd(a),
		newLineCmd(a),
		newWatchCmd(a),
		newDocsCmd(),
	)
	return rootCmd
}

// setup configures logging and applies config file defaults. It runs before
// every command.
func (a *app) setup(cmd *cobra.Command) error {
	logLevel := slog.LevelWarn
	if a.opts.verbose {
		logLevel = slog.LevelDebug
	} else if !a.opts.quiet {
		logLevel = slog.LevelInfo
	}

	textHandler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	var logHandler slog.Handler = textHandler
	if a.opts.logFile != "" {
		lf, err := os.Create(a.opts.logFile)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.closer = func() { lf.Close() }
		jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
		logHandler = ui.NewMultiHandler(textHandler, jsonHandler)
	}
	slog.SetDefault(slog.New(logHandler))

	// Load optional config file.
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config", "path", config.Path(), "error", err)
	}
	a.cfg = cfg

	// Apply config defaults for flags not explicitly set on CLI.
	applyConfigDefaults(cmd, cfg.Defaults, &a.opts)
	return nil
}

func (a *app) close() {
	if a.closer != nil {
		a.closer()
	}
}

// applyConfigDefaults applies config file defaults for flags not explicitly
// set on the CLI. Flags the command does not define are left alone.
func applyConfigDefaults(cmd *cobra.Command, defaults config.DefaultsConfig, opts *options) {
	flags := cmd.Flags()
	unset := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && !f.Changed
	}

	if unset("scheme") && defaults.Scheme != nil {
		opts.scheme = *defaults.Scheme
	}
	if unset("mode") && defaults.Mode != nil {
		opts.mode = *defaults.Mode
	}
	if unset("width") && defaults.Width != nil {
		opts.width = *defaults.Width
	}
	if unset("min-bar-width") && defaults.MinBarWidth != nil {
		opts.minBarWidth = *defaults.MinBarWidth
	}
	if unset("show-values") && defaults.ShowValues != nil {
		opts.showValues = *defaults.ShowValues
	}
}

// symbolMode parses --mode.
func (a *app) symbolMode() (scale.Mode, error) {
	m, err := scale.ParseMode(a.opts.mode)
	if err != nil {
		return m, badInput(fmt.Errorf("invalid --mode: %w", err))
	}
	return m, nil
}

// colorizer builds the highlight colorizer. --no-color pins the depth to none
// regardless of the environment.
func (a *app) colorizer() *colorize.Colorizer {
	scheme := colorize.ParseScheme(a.opts.scheme)
	if !a.opts.noColor {
		return colorize.New(scheme)
	}
	d := colorize.NewDetector(func(key string) string {
		if key == colorize.OverrideEnv {
			return colorize.DepthNone.String()
		}
		return os.Getenv(key)
	})
	return colorize.New(scheme, colorize.WithDetector(d))
}

func (a *app) color() chart.Color {
	return chart.Color{Colorizer: a.colorizer(), Threshold: a.opts.thresholds.threshold()}
}

func (a *app) styles() *chart.Styles {
	return chart.ThemedStyles(a.cfg.Theme)
}

// tracker returns a width tracker for stdout. A fixed --width pins it;
// otherwise resizes arrive from src, which may be nil for one-shot output.
func (a *app) tracker(src termwidth.ResizeSource) *termwidth.Tracker {
	if a.opts.width > 0 {
		return termwidth.New(nil, nil, termwidth.WithFixedWidth(a.opts.width))
	}
	return termwidth.New(src, termwidth.TermSize(os.Stdout.Fd()),
		termwidth.WithLogger(slog.Default()))
}

// chartWidth is the width for a one-shot chart.
func (a *app) chartWidth() int {
	t := a.tracker(nil)
	defer t.Dispose()
	return t.Width()
}

// exitError carries a process exit code: 1 for bad input, 2 for runtime
// failures.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit code %d", e.code)
}

func (e *exitError) Unwrap() error { return e.err }

func badInput(err error) error {
	return &exitError{code: 1, err: err}
}
