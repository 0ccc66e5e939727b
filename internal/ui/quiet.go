package ui

import "github.com/bamsammich/glance/internal/series"

// quietPresenter consumes events but produces no output.
type quietPresenter struct {
	window *series.Window
}

func (p *quietPresenter) Run(events <-chan Event) error {
	for ev := range events {
		p.handleEvent(ev)
	}
	return nil
}

func (p *quietPresenter) handleEvent(_ Event) {
	// Samples are pushed into the window by the reader;
	// presenters only read from it.
}

func (p *quietPresenter) Summary() string {
	return ""
}
