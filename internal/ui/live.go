package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/bamsammich/glance/internal/chart"
	"github.com/bamsammich/glance/internal/series"
)

// ANSI escape sequences.
const (
	ansiDim   = "\033[2m"
	ansiReset = "\033[0m"
)

const (
	liveMinInterval    = 50 * time.Millisecond // don't redraw faster than this
	liveRedrawInterval = 100 * time.Millisecond
)

// livePresenter redraws the chart and a stats line in place on a TTY.
// Rejected tokens scroll above it.
type livePresenter struct {
	w      io.Writer
	window *series.Window
	render RenderFunc
	width  int

	drawn     bool
	lineCount int
	dirty     bool
	lastDraw  time.Time
}

func (p *livePresenter) Run(events <-chan Event) error {
	ticker := time.NewTicker(liveRedrawInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				p.finish()
				return nil
			}
			p.handleEvent(ev)
			p.maybeDraw()

		case <-ticker.C:
			if p.dirty {
				p.draw()
			}
		}
	}
}

func (p *livePresenter) handleEvent(ev Event) {
	switch ev.Type {
	case SampleReceived:
		p.dirty = true

	case SampleRejected:
		p.clear()
		fmt.Fprintf(p.w, "✗  %sskipping %q%s\n", ansiDim, ev.Raw, ansiReset)
		p.draw()

	case WidthChanged:
		p.width = ev.Width
		p.clear()
		p.draw()

	case StreamClosed:
		p.dirty = true
	}
}

// maybeDraw redraws if enough time has passed since the last draw.
func (p *livePresenter) maybeDraw() {
	if !p.dirty || time.Since(p.lastDraw) < liveMinInterval {
		return
	}
	p.draw()
}

func (p *livePresenter) draw() {
	p.clear()
	values := p.window.Values()
	if len(values) == 0 || p.render == nil {
		p.dirty = false
		return
	}

	fmt.Fprintln(p.w, p.render(values, p.width))
	fmt.Fprintf(p.w, "%s%s%s\n", ansiDim, statsLine(p.window.Stats()), ansiReset)

	p.drawn = true
	p.lineCount = 2
	p.dirty = false
	p.lastDraw = time.Now()
}

func (p *livePresenter) clear() {
	if !p.drawn {
		return
	}
	// Move cursor up N lines and clear to end of screen.
	fmt.Fprintf(p.w, "\033[%dA\033[J", p.lineCount)
	p.drawn = false
}

// finish leaves the last chart on screen without the stats line.
func (p *livePresenter) finish() {
	p.clear()
	values := p.window.Values()
	if len(values) == 0 || p.render == nil {
		return
	}
	fmt.Fprintln(p.w, p.render(values, p.width))
}

func (p *livePresenter) Summary() string {
	return CompletionSummary(p.window.Stats())
}

func statsLine(s series.Stats) string {
	return fmt.Sprintf("n %s  min %s  max %s  last %s  %s",
		FormatCount(s.Accepted),
		chart.FormatValue(s.Min),
		chart.FormatValue(s.Max),
		chart.FormatValue(s.Last),
		FormatRate(SampleRate(s)),
	)
}
