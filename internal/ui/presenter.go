package ui

import (
	"io"

	"github.com/bamsammich/glance/internal/series"
)

// Presenter consumes stream events and displays the watched series.
type Presenter interface {
	// Run consumes events until the channel closes. Blocks until done.
	Run(events <-chan Event) error
	// Summary returns the final summary line.
	Summary() string
}

// RenderFunc draws values in at most width columns.
type RenderFunc func(values []float64, width int) string

// Config configures a Presenter.
type Config struct {
	Writer    io.Writer
	ErrWriter io.Writer
	Window    *series.Window
	Render    RenderFunc
	// Width is the usable width until the first WidthChanged event.
	Width int
	IsTTY bool
	Quiet bool
}

// NewPresenter creates the appropriate presenter based on configuration.
//
//nolint:ireturn // factory returns the interface
func NewPresenter(
	cfg Config,
) Presenter {
	if cfg.Quiet {
		return &quietPresenter{window: cfg.Window}
	}
	if !cfg.IsTTY {
		return &plainPresenter{
			w:      cfg.Writer,
			errW:   cfg.ErrWriter,
			window: cfg.Window,
			render: cfg.Render,
			width:  cfg.Width,
		}
	}
	return &livePresenter{
		w:      cfg.Writer,
		window: cfg.Window,
		render: cfg.Render,
		width:  cfg.Width,
	}
}
