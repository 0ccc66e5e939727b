package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/bamsammich/glance/internal/chart"
	"github.com/bamsammich/glance/internal/series"
)

const plainProgressInterval = 5 * time.Second

// plainPresenter writes the final chart to stdout once the stream ends, and
// periodic progress plus rejected tokens to stderr.
type plainPresenter struct {
	w      io.Writer
	errW   io.Writer
	window *series.Window
	render RenderFunc
	width  int
}

func (p *plainPresenter) Run(events <-chan Event) error {
	ticker := time.NewTicker(plainProgressInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				p.printChart()
				return nil
			}
			p.handleEvent(ev)
		case <-ticker.C:
			p.printProgress()
		}
	}
}

func (p *plainPresenter) handleEvent(ev Event) {
	switch ev.Type {
	case SampleRejected:
		errMsg := "invalid value"
		if ev.Error != nil {
			errMsg = ev.Error.Error()
		}
		fmt.Fprintf(p.errW, "skipping %q: %s\n", ev.Raw, errMsg)
	case WidthChanged:
		p.width = ev.Width
	case SampleReceived, StreamClosed:
		// drawn once at the end
	}
}

func (p *plainPresenter) printChart() {
	values := p.window.Values()
	if len(values) == 0 || p.render == nil {
		return
	}
	fmt.Fprintln(p.w, p.render(values, p.width))
}

func (p *plainPresenter) printProgress() {
	s := p.window.Stats()
	if s.Held == 0 {
		fmt.Fprintf(p.errW, "progress: waiting for samples\n")
		return
	}
	fmt.Fprintf(p.errW, "progress: %s samples %s last %s\n",
		FormatCount(s.Accepted),
		FormatRate(SampleRate(s)),
		chart.FormatValue(s.Last),
	)
}

func (p *plainPresenter) Summary() string {
	return CompletionSummary(p.window.Stats())
}
