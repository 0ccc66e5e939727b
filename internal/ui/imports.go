package ui

import "github.com/bamsammich/glance/internal/event"

// Event is re-exported for convenience.
type Event = event.Event

// Re-export event types for convenience.
const (
	SampleReceived = event.SampleReceived
	SampleRejected = event.SampleRejected
	WidthChanged   = event.WidthChanged
	StreamClosed   = event.StreamClosed
)
