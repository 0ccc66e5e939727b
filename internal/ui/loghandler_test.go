package ui_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/glance/internal/ui"
)

func TestMultiHandler_FansOut(t *testing.T) {
	t.Parallel()

	var textBuf, jsonBuf bytes.Buffer
	textH := slog.NewTextHandler(&textBuf, &slog.HandlerOptions{Level: slog.LevelInfo})
	jsonH := slog.NewJSONHandler(&jsonBuf, &slog.HandlerOptions{Level: slog.LevelInfo})

	logger := slog.New(ui.NewMultiHandler(textH, jsonH))
	logger.Info("test message", "key", "value")

	// Text handler output.
	assert.Contains(t, textBuf.String(), "test message")
	assert.Contains(t, textBuf.String(), "key=value")

	// JSON handler output.
	var rec map[string]any
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &rec))
	assert.Equal(t, "test message", rec["msg"])
	assert.Equal(t, "value", rec["key"])
}

func TestMultiHandler_LevelFiltering(t *testing.T) {
	t.Parallel()

	var debugBuf, warnBuf bytes.Buffer
	debugH := slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug})
	warnH := slog.NewTextHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn})

	logger := slog.New(ui.NewMultiHandler(debugH, warnH))
	logger.Info("info msg")
	logger.Warn("warn msg")

	// Debug handler sees both.
	assert.Contains(t, debugBuf.String(), "info msg")
	assert.Contains(t, debugBuf.String(), "warn msg")

	// Warn handler sees only warn.
	assert.NotContains(t, warnBuf.String(), "info msg")
	assert.Contains(t, warnBuf.String(), "warn msg")
}

func TestMultiHandler_Enabled(t *testing.T) {
	t.Parallel()

	warnH := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	errH := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError})

	m := ui.NewMultiHandler(warnH, errH)

	// Enabled if ANY handler accepts the level.
	assert.True(t, m.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, m.Enabled(context.Background(), slog.LevelError))
	assert.False(t, m.Enabled(context.Background(), slog.LevelInfo))
}

func TestMultiHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	m := ui.NewMultiHandler(h)
	logger := slog.New(m.WithAttrs([]slog.Attr{slog.String("component", "tracker")}))

	logger.Info("hello")
	assert.Contains(t, buf.String(), "component=tracker")
}

func TestMultiHandler_WithGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	m := ui.NewMultiHandler(h)
	logger := slog.New(m.WithGroup("glance"))

	logger.Info("event", "type", "WidthChanged")

	lines := strings.TrimSpace(buf.String())
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines), &rec))

	group, ok := rec["glance"].(map[string]any)
	require.True(t, ok, "expected group 'glance' in JSON output")
	assert.Equal(t, "WidthChanged", group["type"])
}

// failingWriter rejects every write, like a log file on a full disk.
type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestMultiHandler_HandleJoinsErrors(t *testing.T) {
	t.Parallel()

	diskFull := errors.New("no space left on device")
	var textBuf bytes.Buffer
	textH := slog.NewTextHandler(&textBuf, &slog.HandlerOptions{Level: slog.LevelInfo})
	jsonH := slog.NewJSONHandler(failingWriter{err: diskFull}, &slog.HandlerOptions{Level: slog.LevelDebug})
	m := ui.NewMultiHandler(jsonH, textH)

	r := slog.NewRecord(time.Now(), slog.LevelWarn, "width unavailable", 0)
	err := m.Handle(context.Background(), r)

	require.Error(t, err)
	assert.ErrorIs(t, err, diskFull)
	// A failing handler does not stop the others.
	assert.Contains(t, textBuf.String(), "width unavailable")
}

func TestMultiHandler_HandleSkipsDisabled(t *testing.T) {
	t.Parallel()

	var warnBuf bytes.Buffer
	warnH := slog.NewTextHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn})
	failH := slog.NewJSONHandler(failingWriter{err: errors.New("closed")}, &slog.HandlerOptions{Level: slog.LevelError})
	m := ui.NewMultiHandler(warnH, failH)

	r := slog.NewRecord(time.Now(), slog.LevelWarn, "skipping token", 0)
	r.AddAttrs(slog.String("raw", "abc"))

	require.NoError(t, m.Handle(context.Background(), r))
	assert.Contains(t, warnBuf.String(), "raw=abc")
}

func TestMultiHandler_SampleEventRecord(t *testing.T) {
	t.Parallel()

	var jsonBuf bytes.Buffer
	jsonH := slog.NewJSONHandler(&jsonBuf, &slog.HandlerOptions{Level: slog.LevelDebug})
	textH := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	logger := slog.New(ui.NewMultiHandler(textH, jsonH))

	logger.LogAttrs(context.Background(), slog.LevelDebug, "glance.event",
		slog.String("type", ui.SampleReceived.String()),
		slog.Float64("value", 41.5),
	)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &rec))
	assert.Equal(t, "glance.event", rec["msg"])
	assert.Equal(t, "SampleReceived", rec["type"])
	assert.InDelta(t, 41.5, rec["value"], 1e-9)
}
