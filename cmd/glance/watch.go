package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bamsammich/glance/internal/chart"
	"github.com/bamsammich/glance/internal/dataset"
	"github.com/bamsammich/glance/internal/event"
	"github.com/bamsammich/glance/internal/series"
	"github.com/bamsammich/glance/internal/termwidth"
	"github.com/bamsammich/glance/internal/ui"
	"github.com/bamsammich/glance/internal/ui/tui"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		label    string
		capacity int
		tuiFlag  bool
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream numbers from stdin into a live sparkline",
		Long: `Read numbers from stdin as they arrive and redraw a sparkline of the
most recent samples. The chart follows terminal resizes. Tokens that are not
finite numbers are skipped and counted.`,
		Example: `  vmstat 1 | awk '{print $15; fflush()}' | glance watch --label idle
  ping host | grep -o 'time=[0-9.]*' | cut -d= -f2 | glance watch --tui`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := a.symbolMode()
			if err != nil {
				return err
			}
			if capacity < 1 {
				return badInput(fmt.Errorf("--window must be at least 1, got %d", capacity))
			}
			r, err := stdin(cmd)
			if err != nil {
				return err
			}

			// Set up context with signal handling.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			window := series.NewWindow(capacity)
			tracker := a.tracker(termwidth.NewSignalSource())
			defer tracker.Dispose()

			color := a.color()
			styles := a.styles()
			render := func(values []float64, width int) string {
				return chart.Sparkline(values, chart.SparkConfig{
					Width:  width,
					Label:  label,
					Mode:   mode,
					Color:  color,
					Styles: styles,
				})
			}

			events := make(chan event.Event, 256)
			// presenterDone stops the log tee once nothing reads its output.
			presenterDone := make(chan struct{})
			presenterEvents := a.teeEvents(presenterDone, events)

			out := cmd.OutOrStdout()
			isTTY := isTerminal(out)
			useTUI := tuiFlag && isTTY

			var presenter ui.Presenter
			if useTUI {
				var trackerOpts []termwidth.Option
				if a.opts.width > 0 {
					trackerOpts = append(trackerOpts, termwidth.WithFixedWidth(a.opts.width))
				}
				presenter = tui.NewPresenter(tui.Config{
					Window:         window,
					Title:          label,
					Mode:           mode,
					Color:          color,
					Theme:          a.cfg.Theme,
					TrackerOptions: trackerOpts,
				})
			} else {
				presenter = ui.NewPresenter(ui.Config{
					Writer:    out,
					ErrWriter: cmd.ErrOrStderr(),
					Window:    window,
					Render:    render,
					Width:     tracker.Width(),
					IsTTY:     isTTY,
					Quiet:     a.opts.quiet,
				})
			}

			slog.Debug("watching stdin",
				"window", capacity,
				"mode", mode.String(),
				"width", tracker.Width(),
				"tui", useTUI,
			)

			var streamErr error
			if useTUI {
				// TUI mode: stream in background, TUI in foreground so
				// Bubble Tea owns the terminal.
				streamCtx, streamCancel := context.WithCancel(ctx)
				defer streamCancel()

				var streamWg sync.WaitGroup
				streamWg.Add(1)
				go func() {
					defer streamWg.Done()
					streamErr = stream(streamCtx, r, window, tracker, events)
					close(events)
				}()

				_ = presenter.Run(presenterEvents) //nolint:errcheck // presenter error is non-fatal
				close(presenterDone)

				// User quit the TUI; stop reading if input is still open.
				streamCancel()
				streamWg.Wait()
				stop()
			} else {
				// Inline mode: presenter in background, stream in foreground.
				var presenterErr error
				var presenterWg sync.WaitGroup
				presenterWg.Add(1)
				go func() {
					defer presenterWg.Done()
					defer close(presenterDone)
					presenterErr = presenter.Run(presenterEvents)
				}()

				streamErr = stream(ctx, r, window, tracker, events)
				stop()
				close(events)
				presenterWg.Wait()
				if presenterErr != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "presenter: %v\n", presenterErr)
				}
			}

			if !a.opts.quiet {
				if summary := presenter.Summary(); summary != "" {
					fmt.Fprintln(cmd.ErrOrStderr(), summary)
				}
			}

			switch {
			case errors.Is(streamErr, context.Canceled):
				return nil
			case streamErr != nil:
				slog.Error("watch failed", "error", streamErr)
				return &exitError{code: 2}
			case window.Stats().Accepted == 0:
				return badInput(fmt.Errorf("stdin: %w", dataset.ErrNoValues))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "label printed before the sparkline")
	cmd.Flags().IntVar(&capacity, "window", series.DefaultCapacity, "number of recent samples to chart")
	cmd.Flags().BoolVar(&tuiFlag, "tui", false, "full-screen interactive view")
	return cmd
}

// stream feeds number tokens read from r into the window and emits one event
// per token and per width change. It is the only sender on events and returns
// when r is exhausted or ctx is done; the caller closes events afterwards.
func stream(
	ctx context.Context,
	r io.Reader,
	window *series.Window,
	tracker *termwidth.Tracker,
	events chan<- event.Event,
) error {
	tokens := make(chan string, 256)
	readErr := make(chan error, 1)
	go func() {
		defer close(tokens)
		sc := dataset.Scanner(r)
		for sc.Scan() {
			select {
			case tokens <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	resized := make(chan struct{}, 1)
	cancel := tracker.OnChange(func(termwidth.Snapshot) {
		select {
		case resized <- struct{}{}:
		default:
		}
	})
	defer cancel()

	send := func(ev event.Event) bool {
		select {
		case events <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-resized:
			ev := event.Event{
				Type:      event.WidthChanged,
				Timestamp: time.Now(),
				Width:     tracker.Width(),
			}
			if !send(ev) {
				return ctx.Err()
			}

		case tok, ok := <-tokens:
			if !ok {
				var err error
				select {
				case err = <-readErr:
				default:
				}
				if err != nil {
					err = fmt.Errorf("read stdin: %w", err)
				}
				send(event.Event{Type: event.StreamClosed, Timestamp: time.Now(), Error: err})
				return err
			}
			if !send(sample(window, tok)) {
				return ctx.Err()
			}
		}
	}
}

// sample records one token in the window and describes it as an event.
func sample(window *series.Window, tok string) event.Event {
	ev := event.Event{Timestamp: time.Now(), Raw: tok}
	v, err := dataset.ParseValue(tok)
	if err != nil {
		window.Reject()
		ev.Type = event.SampleRejected
		ev.Error = err
		return ev
	}
	window.Push(v)
	ev.Type = event.SampleReceived
	ev.Value = v
	return ev
}

// teeEvents logs every event as a structured record when --log is set,
// forwarding it unchanged to the returned channel. Forwarding stops when done
// is closed, so a presenter that quits early does not strand the goroutine.
func (a *app) teeEvents(done <-chan struct{}, events <-chan event.Event) <-chan event.Event {
	if a.opts.logFile == "" {
		return events
	}
	teed := make(chan event.Event, 256)
	go func() {
		defer close(teed)
		for {
			var ev event.Event
			select {
			case e, ok := <-events:
				if !ok {
					return
				}
				ev = e
			case <-done:
				return
			}

			attrs := []slog.Attr{slog.String("type", ev.Type.String())}
			switch ev.Type {
			case event.SampleReceived:
				attrs = append(attrs, slog.Float64("value", ev.Value))
			case event.SampleRejected:
				attrs = append(attrs, slog.String("raw", ev.Raw))
			case event.WidthChanged:
				attrs = append(attrs, slog.Int("width", ev.Width))
			}
			if ev.Error != nil {
				attrs = append(attrs, slog.String("error", ev.Error.Error()))
			}
			slog.LogAttrs(context.Background(), slog.LevelDebug, "glance.event", attrs...)

			select {
			case teed <- ev:
			case <-done:
				return
			}
		}
	}()
	return teed
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && ui.IsTTY(f.Fd())
}
