package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/bamsammich/glance/internal/chart"
	"github.com/bamsammich/glance/internal/event"
	"github.com/bamsammich/glance/internal/textwidth"
)

// maxFeedEntries bounds the sample history kept for scrolling.
const maxFeedEntries = 1000

type feedEntry struct {
	at       time.Time
	value    float64
	raw      string
	rejected bool
	errMsg   string
}

// feedView is a scrollable log of every token read from the stream.
type feedView struct {
	entries      []feedEntry
	rejected     int
	scrollOffset int  // viewport offset into entries
	autoScroll   bool // follow new entries
}

func newFeedView() feedView {
	return feedView{autoScroll: true}
}

func (f *feedView) handleEvent(ev event.Event) {
	switch ev.Type {
	case event.SampleReceived:
		f.add(feedEntry{at: ev.Timestamp, value: ev.Value})

	case event.SampleRejected:
		errMsg := "invalid value"
		if ev.Error != nil {
			errMsg = ev.Error.Error()
		}
		f.rejected++
		f.add(feedEntry{at: ev.Timestamp, raw: ev.Raw, rejected: true, errMsg: errMsg})

	case event.WidthChanged, event.StreamClosed:
	}
}

func (f *feedView) add(e feedEntry) {
	f.entries = append(f.entries, e)
	if over := len(f.entries) - maxFeedEntries; over > 0 {
		f.entries = f.entries[over:]
		f.scrollOffset = max(f.scrollOffset-over, 0)
	}
	// The actual clamping happens in view().
}

// scrollDown moves the viewport down one line and disables autoScroll.
func (f *feedView) scrollDown() {
	f.autoScroll = false
	f.scrollOffset++
}

// scrollUp moves the viewport up one line and disables autoScroll.
func (f *feedView) scrollUp() {
	f.autoScroll = false
	if f.scrollOffset > 0 {
		f.scrollOffset--
	}
}

// scrollToTop jumps to the oldest entry.
func (f *feedView) scrollToTop() {
	f.autoScroll = false
	f.scrollOffset = 0
}

// scrollToBottom jumps to the newest entry and re-enables autoScroll.
func (f *feedView) scrollToBottom() {
	f.autoScroll = true
}

func (f *feedView) view(width, height int) string {
	if width < 20 {
		width = 20
	}
	rows := max(height-1, 1) // divider

	maxOffset := max(len(f.entries)-rows, 0)
	if f.autoScroll {
		f.scrollOffset = maxOffset
	}
	f.scrollOffset = min(max(f.scrollOffset, 0), maxOffset)

	var b strings.Builder
	label := fmt.Sprintf("─ samples (%d)", len(f.entries)-f.rejected)
	if f.rejected > 0 {
		label += fmt.Sprintf("  rejected (%d)", f.rejected)
	}
	b.WriteString(styleDivider.Render(label))
	b.WriteByte('\n')

	end := min(f.scrollOffset+rows, len(f.entries))
	for _, e := range f.entries[f.scrollOffset:end] {
		b.WriteString(renderFeedLine(e, width))
		b.WriteByte('\n')
	}
	return b.String()
}

func renderFeedLine(e feedEntry, width int) string {
	ts := "--:--:--"
	if !e.at.IsZero() {
		ts = e.at.Format("15:04:05")
	}
	if e.rejected {
		// icon, timestamp and separators take 15 columns
		msg := textwidth.Truncate(fmt.Sprintf("%q  %s", e.raw, e.errMsg), width-15)
		return fmt.Sprintf("  %s  %s  %s",
			styleIconFailed.Render("✗"), styleTimestamp.Render(ts), styleError.Render(msg))
	}
	return fmt.Sprintf("  %s  %s  %s",
		styleIconDone.Render("✓"), styleTimestamp.Render(ts), styleValue.Render(chart.FormatValue(e.value)))
}
