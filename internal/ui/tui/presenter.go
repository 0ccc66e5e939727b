package tui

import (
	"log/slog"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bamsammich/glance/internal/chart"
	"github.com/bamsammich/glance/internal/config"
	"github.com/bamsammich/glance/internal/event"
	"github.com/bamsammich/glance/internal/scale"
	"github.com/bamsammich/glance/internal/series"
	"github.com/bamsammich/glance/internal/termwidth"
	"github.com/bamsammich/glance/internal/ui"
)

// Config configures the TUI presenter.
type Config struct {
	Window *series.Window
	Title  string
	Mode   scale.Mode
	Color  chart.Color
	Theme  config.ThemeConfig
	// TrackerOptions are passed to the width tracker fed by window-size
	// messages.
	TrackerOptions []termwidth.Option
}

// Presenter wraps a Bubble Tea program and implements ui.Presenter.
type Presenter struct {
	cfg   Config
	model Model
}

// NewPresenter creates a new TUI presenter.
func NewPresenter(cfg Config) *Presenter {
	ApplyTheme(cfg.Theme)
	return &Presenter{cfg: cfg}
}

// Run starts the Bubble Tea program and blocks until done.
func (p *Presenter) Run(events <-chan event.Event) error {
	// Bubble Tea reports window sizes itself; route them through a tracker
	// so the TUI sees the same debounced, margin-adjusted width as the
	// line-mode presenters.
	var cols atomic.Int64
	src := termwidth.NewManualSource()
	size := func() (int, bool) {
		c := int(cols.Load())
		return c, c > 0
	}
	opts := append([]termwidth.Option{termwidth.WithLogger(slog.Default())}, p.cfg.TrackerOptions...)
	tracker := termwidth.New(src, size, opts...)
	defer tracker.Dispose()

	p.model = NewModel(ModelConfig{
		Events: events,
		Window: p.cfg.Window,
		Title:  p.cfg.Title,
		Mode:   p.cfg.Mode,
		Color:  p.cfg.Color,
		Width:  tracker.Width(),
		Resize: func(c int) {
			cols.Store(int64(c))
			src.Notify()
		},
	})
	prog := tea.NewProgram(
		p.model,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
		tea.WithInputTTY(),
	)
	cancel := tracker.OnChange(func(s termwidth.Snapshot) {
		prog.Send(widthMsg(s))
	})
	defer cancel()

	finalModel, err := prog.Run()
	if err != nil {
		return err
	}
	p.model = finalModel.(Model)
	return nil
}

// Summary returns the final completion summary line.
func (p *Presenter) Summary() string {
	return ui.CompletionSummary(p.cfg.Window.Stats())
}
