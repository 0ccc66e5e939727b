package event

import "time"

// Type identifies the kind of event.
type Type int

const (
	SampleReceived Type = iota + 1
	SampleRejected
	WidthChanged
	StreamClosed
)

var typeNames = [...]string{
	SampleReceived: "SampleReceived",
	SampleRejected: "SampleRejected",
	WidthChanged:   "WidthChanged",
	StreamClosed:   "StreamClosed",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Event is one step of a watched stream.
type Event struct {
	Type      Type
	Timestamp time.Time
	Value     float64 // parsed sample (SampleReceived)
	Raw       string  // offending token (SampleRejected)
	Width     int     // usable columns (WidthChanged)
	Error     error
}
