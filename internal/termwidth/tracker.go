// Package termwidth tracks the usable width of the output terminal,
// collapsing bursts of resize notifications into a single update.
package termwidth

import (
	"log/slog"
	"sync"
	"time"
)

const (
	// DefaultDebounce is how long the tracker waits after the last resize
	// notification before re-reading the terminal size.
	DefaultDebounce = 120 * time.Millisecond
	// FallbackColumns is assumed when the terminal size is unavailable.
	FallbackColumns = 80
	// SafetyMargin is subtracted from the column count so output never
	// touches the last column and triggers an auto-wrap.
	SafetyMargin = 2
	// MinWidth is the narrowest width the tracker will publish.
	MinWidth = 10
)

// ResizeSource delivers terminal resize notifications. Subscribe registers fn
// and returns a function that removes it.
type ResizeSource interface {
	Subscribe(fn func()) (unsubscribe func())
}

// SizeFunc reports the current terminal column count. ok is false when the
// size cannot be determined.
type SizeFunc func() (cols int, ok bool)

// Snapshot is the published width state.
type Snapshot struct {
	Width       int
	IsAutoWidth bool
}

// stopFunc cancels a scheduled callback; it reports whether the callback was
// still pending.
type stopFunc func() bool

// afterFunc schedules fn after d. time.AfterFunc in production.
type afterFunc func(d time.Duration, fn func()) stopFunc

func realAfterFunc(d time.Duration, fn func()) stopFunc {
	return time.AfterFunc(d, fn).Stop
}

// Usable converts a raw column count into a publishable width.
func Usable(cols int, ok bool) int {
	if !ok || cols <= 0 {
		cols = FallbackColumns
	}
	return max(cols-SafetyMargin, MinWidth)
}

// Tracker publishes the terminal width. It is Stable when no resize is
// pending and Pending while its debounce timer runs; every notification
// restarts the timer, so a burst yields one update after the last event.
type Tracker struct {
	size     SizeFunc
	debounce time.Duration
	after    afterFunc
	logger   *slog.Logger
	fixed    int

	mu          sync.Mutex
	width       int
	pending     stopFunc
	generation  uint64
	listeners   map[int]func(Snapshot)
	nextID      int
	unsubscribe func()
	disposed    bool
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(t *Tracker) { t.debounce = d }
}

// WithFixedWidth pins the width. The tracker then ignores resizes and
// reports IsAutoWidth false.
func WithFixedWidth(w int) Option {
	return func(t *Tracker) { t.fixed = w }
}

// WithLogger sets the logger used for width change records.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// WithAfterFunc replaces the timer used for debouncing.
func WithAfterFunc(fn func(d time.Duration, f func()) (stop func() bool)) Option {
	return func(t *Tracker) {
		t.after = func(d time.Duration, f func()) stopFunc { return fn(d, f) }
	}
}

// New creates a Tracker reading sizes from size and listening to src. The
// initial width is read immediately. src may be nil when the width is fixed
// or resizes are not observable.
func New(src ResizeSource, size SizeFunc, opts ...Option) *Tracker {
	t := &Tracker{
		size:      size,
		debounce:  DefaultDebounce,
		after:     realAfterFunc,
		logger:    slog.Default(),
		listeners: make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.fixed > 0 {
		t.width = t.fixed
		return t
	}

	t.width = t.measure()
	if src != nil {
		t.unsubscribe = src.Subscribe(t.handleResize)
	}
	return t
}

func (t *Tracker) measure() int {
	if t.size == nil {
		return Usable(0, false)
	}
	return Usable(t.size())
}

// Width returns the last published width.
func (t *Tracker) Width() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.width
}

// Snapshot returns the published state for one render pass.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{Width: t.width, IsAutoWidth: t.fixed <= 0}
}

// Pending reports whether a resize is waiting for its debounce timer.
func (t *Tracker) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending != nil
}

// OnChange registers fn to be called with each newly published width. The
// returned function removes it.
func (t *Tracker) OnChange(fn func(Snapshot)) (cancel func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextID
	t.nextID++
	t.listeners[id] = fn
	return func() {
		t.mu.Lock()
		delete(t.listeners, id)
		t.mu.Unlock()
	}
}

// handleResize moves the tracker to Pending and (re)arms the timer.
func (t *Tracker) handleResize() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.disposed {
		return
	}
	if t.pending != nil {
		t.pending()
	}
	t.generation++
	gen := t.generation
	t.pending = t.after(t.debounce, func() { t.fire(gen) })
}

// fire publishes the current width if gen is still the latest timer.
func (t *Tracker) fire(gen uint64) {
	width := t.measure()

	t.mu.Lock()
	if t.disposed || gen != t.generation {
		t.mu.Unlock()
		return
	}
	t.pending = nil
	prev := t.width
	t.width = width
	snap := Snapshot{Width: width, IsAutoWidth: true}
	ids := make([]int, 0, len(t.listeners))
	for id := range t.listeners {
		ids = append(ids, id)
	}
	t.mu.Unlock()

	t.logger.Debug("terminal width published", "width", width, "previous", prev)
	for _, id := range ids {
		// A listener may dispose the tracker or cancel another listener.
		t.mu.Lock()
		fn, ok := t.listeners[id]
		disposed := t.disposed
		t.mu.Unlock()
		if disposed {
			return
		}
		if ok {
			fn(snap)
		}
	}
}

// Dispose stops listening for resizes and cancels any pending update. No
// listener call starts after Dispose returns; a call already in progress
// runs to completion.
func (t *Tracker) Dispose() {
	t.mu.Lock()
	if t.disposed {
		t.mu.Unlock()
		return
	}
	t.disposed = true
	if t.pending != nil {
		t.pending()
		t.pending = nil
	}
	unsubscribe := t.unsubscribe
	t.unsubscribe = nil
	clear(t.listeners)
	t.mu.Unlock()

	// The source may wait for an in-flight notification, which needs t.mu.
	if unsubscribe != nil {
		unsubscribe()
	}
}
