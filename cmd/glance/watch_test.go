package main

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/glance/internal/dataset"
	"github.com/bamsammich/glance/internal/event"
	"github.com/bamsammich/glance/internal/series"
	"github.com/bamsammich/glance/internal/termwidth"
)

func fixedTracker(t *testing.T, w int) *termwidth.Tracker {
	t.Helper()
	tr := termwidth.New(nil, nil, termwidth.WithFixedWidth(w))
	t.Cleanup(tr.Dispose)
	return tr
}

func drain(events <-chan event.Event) []event.Event {
	var out []event.Event
	for ev := range events {
		out = append(out, ev)
	}
	return out
}

func nextEvent(t *testing.T, events <-chan event.Event) event.Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return event.Event{}
	}
}

func TestStreamRecordsSamples(t *testing.T) {
	window := series.NewWindow(10)
	events := make(chan event.Event, 16)

	err := stream(context.Background(), strings.NewReader("1 2, x\n3"), window, fixedTracker(t, 40), events)
	require.NoError(t, err)
	close(events)

	got := drain(events)
	types := make([]event.Type, len(got))
	for i, ev := range got {
		types[i] = ev.Type
	}
	assert.Equal(t, []event.Type{
		event.SampleReceived,
		event.SampleReceived,
		event.SampleRejected,
		event.SampleReceived,
		event.StreamClosed,
	}, types)

	assert.Equal(t, "x", got[2].Raw)
	require.Error(t, got[2].Error)
	assert.Equal(t, 3.0, got[3].Value)
	require.NoError(t, got[4].Error)

	assert.Equal(t, []float64{1, 2, 3}, window.Values())
	s := window.Stats()
	assert.Equal(t, int64(3), s.Accepted)
	assert.Equal(t, int64(1), s.Rejected)
}

func TestStreamWidthChange(t *testing.T) {
	var cols atomic.Int64
	cols.Store(100)
	src := termwidth.NewManualSource()
	tracker := termwidth.New(src, func() (int, bool) { return int(cols.Load()), true },
		termwidth.WithDebounce(time.Millisecond))
	t.Cleanup(tracker.Dispose)

	pr, pw := io.Pipe()
	events := make(chan event.Event, 16)
	done := make(chan error, 1)
	go func() {
		done <- stream(context.Background(), pr, series.NewWindow(10), tracker, events)
	}()

	// A delivered sample means the stream is subscribed to width changes.
	_, err := pw.Write([]byte("7\n"))
	require.NoError(t, err)
	assert.Equal(t, event.SampleReceived, nextEvent(t, events).Type)

	cols.Store(60)
	src.Notify()
	ev := nextEvent(t, events)
	assert.Equal(t, event.WidthChanged, ev.Type)
	assert.Equal(t, 60-termwidth.SafetyMargin, ev.Width)

	require.NoError(t, pw.Close())
	assert.Equal(t, event.StreamClosed, nextEvent(t, events).Type)
	require.NoError(t, <-done)
}

func TestStreamCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- stream(ctx, pr, series.NewWindow(10), fixedTracker(t, 40), make(chan event.Event))
	}()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not stop on cancel")
	}
}

func TestStreamReadError(t *testing.T) {
	boom := errors.New("boom")
	pr, pw := io.Pipe()
	events := make(chan event.Event, 16)
	done := make(chan error, 1)
	go func() {
		done <- stream(context.Background(), pr, series.NewWindow(10), fixedTracker(t, 40), events)
	}()

	pw.CloseWithError(boom)
	ev := nextEvent(t, events)
	assert.Equal(t, event.StreamClosed, ev.Type)
	assert.ErrorIs(t, ev.Error, boom)
	assert.ErrorIs(t, <-done, boom)
}

func TestTeeEventsForwardsUnchanged(t *testing.T) {
	a := &app{opts: options{logFile: "events.json"}}
	events := make(chan event.Event, 4)
	teed := a.teeEvents(make(chan struct{}), events)

	in := []event.Event{
		{Type: event.SampleReceived, Value: 4},
		{Type: event.SampleRejected, Raw: "x", Error: errors.New("bad")},
		{Type: event.WidthChanged, Width: 30},
	}
	for _, ev := range in {
		events <- ev
	}
	close(events)
	assert.Equal(t, in, drain(teed))
}

func TestTeeEventsStopsWhenPresenterQuits(t *testing.T) {
	a := &app{opts: options{logFile: "events.json"}}
	events := make(chan event.Event, 512)
	done := make(chan struct{})
	teed := a.teeEvents(done, events)

	// More events than the tee buffers, and nobody reading them.
	for i := range 300 {
		events <- event.Event{Type: event.SampleReceived, Value: float64(i)}
	}
	close(done)

	// events stays open; the tee must still shut down and close its output.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-teed:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("tee goroutine did not stop after done was closed")
		}
	}
}

func TestTeeEventsWithoutLog(t *testing.T) {
	a := &app{}
	events := make(chan event.Event)
	assert.Equal(t, (<-chan event.Event)(events), a.teeEvents(make(chan struct{}), events))
}

func TestWatchCommand(t *testing.T) {
	out, errOut, err := execute(t, "1 2 3 4 x 5 6 7 8\n", "watch", "-w", "20", "--no-color")
	require.NoError(t, err)
	assert.Equal(t, "▁▂▃▄▅▆▇█\n", out)
	assert.Contains(t, errOut, `skipping "x"`)
	assert.Contains(t, errOut, "done ✓")
	assert.Contains(t, errOut, "rejected 1")
}

func TestWatchCommandWindow(t *testing.T) {
	out, _, err := execute(t, "9 9 1 2 3 4 5 6 7 8", "watch", "-w", "20", "--no-color", "--window", "8")
	require.NoError(t, err)
	assert.Equal(t, "▁▂▃▄▅▆▇█\n", out)
}

func TestWatchCommandQuiet(t *testing.T) {
	out, errOut, err := execute(t, "1 2 3", "watch", "-q")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NotContains(t, errOut, "done")
}

func TestWatchCommandNoSamples(t *testing.T) {
	_, _, err := execute(t, "x y\n", "watch", "-w", "20")
	var exitErr *exitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.code)
	assert.ErrorIs(t, err, dataset.ErrNoValues)
}
