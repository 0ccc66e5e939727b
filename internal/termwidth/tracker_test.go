package termwidth

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock hands out timers that only fire when the test says so.
type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	d       time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (c *fakeClock) afterFunc(d time.Duration, fn func()) func() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	ft := &fakeTimer{d: d, fn: fn}
	c.timers = append(c.timers, ft)
	return func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		wasPending := !ft.stopped && !ft.fired
		ft.stopped = true
		return wasPending
	}
}

// fire runs every live timer.
func (c *fakeClock) fire() {
	c.mu.Lock()
	var due []func()
	for _, ft := range c.timers {
		if !ft.stopped && !ft.fired {
			ft.fired = true
			due = append(due, ft.fn)
		}
	}
	c.mu.Unlock()
	for _, fn := range due {
		fn()
	}
}

func (c *fakeClock) live() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, ft := range c.timers {
		if !ft.stopped && !ft.fired {
			n++
		}
	}
	return n
}

// fakeTerm is a terminal whose column count the test controls.
type fakeTerm struct {
	cols atomic.Int64
	ok   atomic.Bool
}

func newFakeTerm(cols int) *fakeTerm {
	ft := &fakeTerm{}
	ft.cols.Store(int64(cols))
	ft.ok.Store(true)
	return ft
}

func (f *fakeTerm) size() (int, bool) {
	return int(f.cols.Load()), f.ok.Load()
}

func newTestTracker(t *testing.T, cols int, opts ...Option) (*Tracker, *ManualSource, *fakeClock, *fakeTerm) {
	t.Helper()
	src := NewManualSource()
	clock := &fakeClock{}
	term := newFakeTerm(cols)
	opts = append([]Option{WithAfterFunc(clock.afterFunc)}, opts...)
	tr := New(src, term.size, opts...)
	t.Cleanup(tr.Dispose)
	return tr, src, clock, term
}

func TestUsable(t *testing.T) {
	tests := []struct {
		name string
		cols int
		ok   bool
		want int
	}{
		{name: "normal", cols: 100, ok: true, want: 98},
		{name: "unavailable", cols: 0, ok: false, want: 78},
		{name: "zero columns", cols: 0, ok: true, want: 78},
		{name: "floor", cols: 5, ok: true, want: MinWidth},
		{name: "exactly floor plus margin", cols: 12, ok: true, want: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Usable(tt.cols, tt.ok))
		})
	}
}

func TestTrackerInitialWidth(t *testing.T) {
	tr, _, _, _ := newTestTracker(t, 100)
	assert.Equal(t, 98, tr.Width())
	assert.Equal(t, Snapshot{Width: 98, IsAutoWidth: true}, tr.Snapshot())
	assert.False(t, tr.Pending())
}

func TestTrackerNilSizeFallsBack(t *testing.T) {
	tr := New(nil, nil)
	assert.Equal(t, FallbackColumns-SafetyMargin, tr.Width())
}

func TestTrackerBurstPublishesOnce(t *testing.T) {
	tr, src, clock, term := newTestTracker(t, 100)

	var calls []Snapshot
	tr.OnChange(func(s Snapshot) { calls = append(calls, s) })

	term.cols.Store(120)
	src.Notify()
	assert.True(t, tr.Pending())
	term.cols.Store(130)
	src.Notify()

	assert.Equal(t, 1, clock.live(), "second resize should replace the first timer")
	assert.Empty(t, calls)
	assert.Equal(t, 98, tr.Width(), "width must not change before the timer fires")

	term.cols.Store(140)
	clock.fire()

	require.Len(t, calls, 1)
	assert.Equal(t, Snapshot{Width: 138, IsAutoWidth: true}, calls[0])
	assert.Equal(t, 138, tr.Width())
	assert.False(t, tr.Pending())
}

func TestTrackerUsesConfiguredDebounce(t *testing.T) {
	_, src, clock, _ := newTestTracker(t, 100)
	src.Notify()
	require.Len(t, clock.timers, 1)
	assert.Equal(t, DefaultDebounce, clock.timers[0].d)

	_, src2, clock2, _ := newTestTracker(t, 100, WithDebounce(time.Second))
	src2.Notify()
	require.Len(t, clock2.timers, 1)
	assert.Equal(t, time.Second, clock2.timers[0].d)
}

func TestTrackerIgnoresStaleTimer(t *testing.T) {
	tr, src, clock, term := newTestTracker(t, 100)
	var calls int
	tr.OnChange(func(Snapshot) { calls++ })

	src.Notify()
	src.Notify()
	require.Len(t, clock.timers, 2)

	// A stopped timer that raced past Stop must not publish.
	term.cols.Store(60)
	clock.timers[0].fn()
	assert.Zero(t, calls)
	assert.Equal(t, 98, tr.Width())

	clock.fire()
	assert.Equal(t, 1, calls)
	assert.Equal(t, 58, tr.Width())
}

func TestTrackerFallbackOnFire(t *testing.T) {
	tr, src, clock, term := newTestTracker(t, 100)
	term.ok.Store(false)
	src.Notify()
	clock.fire()
	assert.Equal(t, 78, tr.Width())
}

func TestTrackerDisposeCancelsPending(t *testing.T) {
	tr, src, clock, term := newTestTracker(t, 100)
	var calls int
	tr.OnChange(func(Snapshot) { calls++ })

	src.Notify()
	require.Len(t, clock.timers, 1)
	tr.Dispose()

	assert.Zero(t, clock.live(), "pending timer should be stopped")
	term.cols.Store(50)
	clock.timers[0].fn() // even a late fire is ignored
	assert.Zero(t, calls)
	assert.Equal(t, 98, tr.Width())

	src.Notify()
	assert.Len(t, clock.timers, 1, "no new timers after dispose")
	assert.Empty(t, src.subs.fns, "dispose should unsubscribe from the source")

	tr.Dispose() // idempotent
}

func TestTrackerDisposeDuringPublish(t *testing.T) {
	tr, src, clock, term := newTestTracker(t, 100)

	var calls atomic.Int32
	entered := make(chan struct{}, 2)
	release := make(chan struct{})
	listener := func(Snapshot) {
		calls.Add(1)
		entered <- struct{}{}
		<-release
	}
	tr.OnChange(listener)
	tr.OnChange(listener)

	term.cols.Store(60)
	src.Notify()
	done := make(chan struct{})
	go func() {
		clock.fire()
		close(done)
	}()

	<-entered
	tr.Dispose()
	close(release)
	<-done

	assert.Equal(t, int32(1), calls.Load(), "no listener may start after Dispose returns")
}

func TestTrackerOnChangeCancel(t *testing.T) {
	tr, src, clock, _ := newTestTracker(t, 100)
	var a, b int
	cancelA := tr.OnChange(func(Snapshot) { a++ })
	tr.OnChange(func(Snapshot) { b++ })

	cancelA()
	src.Notify()
	clock.fire()

	assert.Zero(t, a)
	assert.Equal(t, 1, b)
}

func TestTrackerFixedWidth(t *testing.T) {
	src := NewManualSource()
	clock := &fakeClock{}
	tr := New(src, newFakeTerm(200).size, WithFixedWidth(40), WithAfterFunc(clock.afterFunc))
	defer tr.Dispose()

	assert.Equal(t, Snapshot{Width: 40, IsAutoWidth: false}, tr.Snapshot())
	src.Notify()
	assert.Empty(t, clock.timers)
	assert.Empty(t, src.subs.fns)
}

func TestTrackerRealTimerDebounce(t *testing.T) {
	src := NewManualSource()
	term := newFakeTerm(100)
	tr := New(src, term.size, WithDebounce(20*time.Millisecond))
	defer tr.Dispose()

	updates := make(chan Snapshot, 4)
	tr.OnChange(func(s Snapshot) { updates <- s })

	term.cols.Store(90)
	src.Notify()
	term.cols.Store(70)
	src.Notify()

	select {
	case s := <-updates:
		assert.Equal(t, 68, s.Width)
	case <-time.After(2 * time.Second):
		t.Fatal("no width update published")
	}

	select {
	case s := <-updates:
		t.Fatalf("unexpected second update: %+v", s)
	case <-time.After(100 * time.Millisecond):
	}
}
