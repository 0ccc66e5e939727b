//go:build !unix

package termwidth

// SignalSource never fires on platforms without SIGWINCH; the width is read
// once at startup.
type SignalSource struct{}

// NewSignalSource creates a SignalSource.
func NewSignalSource() *SignalSource {
	return &SignalSource{}
}

// Subscribe implements ResizeSource.
func (*SignalSource) Subscribe(func()) func() {
	return func() {}
}
