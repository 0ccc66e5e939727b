package tui

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bamsammich/glance/internal/chart"
	"github.com/bamsammich/glance/internal/event"
	"github.com/bamsammich/glance/internal/scale"
	"github.com/bamsammich/glance/internal/series"
	"github.com/bamsammich/glance/internal/termwidth"
	"github.com/bamsammich/glance/internal/ui"
)

type viewMode int

const (
	viewChart viewMode = iota
	viewFeed
)

// Bubble Tea messages.
type streamEventMsg event.Event
type channelDoneMsg struct{}
type tickMsg time.Time
type saveResultMsg struct{ err error }

// widthMsg carries a width published by the termwidth tracker.
type widthMsg termwidth.Snapshot

// readNextEvent returns a tea.Cmd that blocks on the event channel.
func readNextEvent(ch <-chan event.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return channelDoneMsg{}
		}
		return streamEventMsg(ev)
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// saveModal manages the text input overlay for saving the window.
type saveModal struct {
	active bool
	input  []rune
	cursor int
}

func (s *saveModal) reset(text string) {
	s.active = true
	s.input = []rune(text)
	s.cursor = len(s.input)
}

func (s *saveModal) path() string {
	return string(s.input)
}

func (s *saveModal) insertRune(r rune) {
	s.input = append(s.input[:s.cursor], append([]rune{r}, s.input[s.cursor:]...)...)
	s.cursor++
}

func (s *saveModal) backspace() {
	if s.cursor > 0 {
		s.input = append(s.input[:s.cursor-1], s.input[s.cursor:]...)
		s.cursor--
	}
}

func (s *saveModal) moveLeft() {
	if s.cursor > 0 {
		s.cursor--
	}
}

func (s *saveModal) moveRight() {
	if s.cursor < len(s.input) {
		s.cursor++
	}
}

func (s *saveModal) render() string {
	prompt := styleSavePrompt.Render("Save to: ")
	before := string(s.input[:s.cursor])
	after := string(s.input[s.cursor:])
	cursor := styleSaveInput.Render("█")
	return "  " + prompt + styleSaveInput.Render(before) + cursor + styleSaveInput.Render(after)
}

// ModelConfig configures NewModel.
type ModelConfig struct {
	Events <-chan event.Event
	Window *series.Window
	Title  string
	Mode   scale.Mode
	Color  chart.Color
	// Width is the usable width until the tracker publishes one.
	Width int
	// Resize receives raw terminal columns from window-size messages. The
	// tracker debounces them and answers with a widthMsg. When nil, window
	// sizes apply immediately.
	Resize func(cols int)
}

// Model is the root Bubble Tea model.
type Model struct {
	events <-chan event.Event
	window *series.Window
	resize func(cols int)

	mode      viewMode
	chart     chartView
	feed      feedView
	width     int
	height    int
	statusMsg string // transient notification
	done      bool   // stream closed
	paused    bool
	quitting  bool

	frozen    []float64 // values shown while paused
	lastStats series.Stats

	save saveModal
}

// NewModel creates a new TUI model.
func NewModel(cfg ModelConfig) Model {
	width := cfg.Width
	if width <= 0 {
		width = termwidth.Usable(0, false)
	}
	return Model{
		events: cfg.Events,
		window: cfg.Window,
		resize: cfg.Resize,
		chart:  chartView{title: cfg.Title, mode: cfg.Mode, color: cfg.Color},
		feed:   newFeedView(),
		width:  width,
		height: 24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		readNextEvent(m.events),
		tickCmd(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.height = msg.Height
		if m.resize != nil {
			m.resize(msg.Width)
		} else {
			m.width = termwidth.Usable(msg.Width, true)
		}
		return m, nil

	case widthMsg:
		m.width = msg.Width
		return m, nil

	case streamEventMsg:
		m.feed.handleEvent(event.Event(msg))
		return m, readNextEvent(m.events)

	case channelDoneMsg:
		m.done = true
		m.lastStats = m.window.Stats()
		return m, nil

	case tickMsg:
		if !m.done {
			m.lastStats = m.window.Stats()
		}
		return m, tickCmd()

	case saveResultMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("save failed: %v", msg.err)
		} else {
			m.statusMsg = fmt.Sprintf("saved to %s", m.save.path())
		}
		m.save.active = false
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// When save modal is active, capture all input.
	if m.save.active {
		return m.handleSaveKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "c":
		m.mode = viewChart
		m.statusMsg = ""
		return m, nil

	case "l":
		m.mode = viewFeed
		m.statusMsg = ""
		return m, nil

	case "p", " ":
		m.paused = !m.paused
		if m.paused {
			m.frozen = m.window.Values()
			m.statusMsg = "paused"
		} else {
			m.frozen = nil
			m.statusMsg = ""
		}
		return m, nil

	case "b":
		if m.chart.mode == scale.ModeBlock {
			m.chart.mode = scale.ModeBraille
		} else {
			m.chart.mode = scale.ModeBlock
		}
		m.statusMsg = "symbols: " + m.chart.mode.String()
		return m, nil

	// Scroll keys for feed view.
	case "j", "down":
		if m.mode == viewFeed {
			m.feed.scrollDown()
		}
		return m, nil

	case "k", "up":
		if m.mode == viewFeed {
			m.feed.scrollUp()
		}
		return m, nil

	case "G":
		if m.mode == viewFeed {
			m.feed.scrollToBottom()
		}
		return m, nil

	case "g":
		if m.mode == viewFeed {
			m.feed.scrollToTop()
		}
		return m, nil

	case "s":
		m.save.reset(fmt.Sprintf("glance-%s.txt", time.Now().Format("2006-01-02-150405")))
		m.statusMsg = ""
		return m, nil
	}

	return m, nil
}

func (m Model) handleSaveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.save.active = false
		m.statusMsg = ""
		return m, nil

	case tea.KeyEnter:
		return m, m.writeValues(m.save.path())

	case tea.KeyBackspace:
		m.save.backspace()
		return m, nil

	case tea.KeyLeft:
		m.save.moveLeft()
		return m, nil

	case tea.KeyRight:
		m.save.moveRight()
		return m, nil

	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.save.insertRune(r)
		}
		return m, nil
	}

	return m, nil
}

// values returns the samples to draw.
func (m Model) values() []float64 {
	if m.paused {
		return m.frozen
	}
	return m.window.Values()
}

// writeValues saves the displayed samples one per line, oldest first, in a
// form `glance spark --file` can read back.
func (m Model) writeValues(path string) tea.Cmd {
	values := m.values()

	return func() tea.Msg {
		var b strings.Builder
		for _, v := range values {
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
			b.WriteByte('\n')
		}
		err := os.WriteFile(path, []byte(b.String()), 0o644) //nolint:gosec // user-chosen path for saved samples
		return saveResultMsg{err: err}
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Header (1 line).
	b.WriteString(m.renderHeader())
	b.WriteByte('\n')

	// Content area.
	contentHeight := m.height - 3 // header (1) + footer (1) + save/status (1)
	if contentHeight < 3 {
		contentHeight = 3
	}

	switch m.mode {
	case viewChart:
		stats := m.lastStats
		if !m.done && !m.paused {
			stats = m.window.Stats()
		}
		b.WriteString(m.chart.view(m.width, contentHeight, m.values(), stats))
	case viewFeed:
		b.WriteString(m.feed.view(m.width, contentHeight))
	}

	// Save modal or status message.
	switch {
	case m.save.active:
		b.WriteString(m.save.render())
	case m.statusMsg != "":
		b.WriteString(styleStatus.Render("  " + m.statusMsg))
	}
	b.WriteByte('\n')

	// Footer.
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m Model) renderHeader() string {
	s := m.lastStats
	state := "watching"
	switch {
	case m.done:
		state = styleIconDone.Render("done")
	case m.paused:
		state = "paused"
	}

	header := fmt.Sprintf("  %s  %s  %s samples  %s  %dcols",
		styleHeaderLabel.Render("glance"),
		state,
		ui.FormatCount(s.Accepted),
		ui.FormatDuration(s.Elapsed),
		m.width,
	)
	return styleHeader.Render(header)
}

func (m Model) renderFooter() string {
	type keybind struct {
		key   string
		label string
	}

	binds := []keybind{
		{"q", "quit"},
		{"c", "chart"},
		{"l", "log"},
		{"p", "pause"},
		{"b", "symbols"},
		{"s", "save"},
	}
	if m.mode == viewFeed {
		binds = append(binds, keybind{"j/k", "scroll"})
	}

	var parts []string
	for _, kb := range binds {
		parts = append(parts,
			styleKeybindKey.Render(kb.key)+" "+styleKeybindLabel.Render(kb.label))
	}

	return "  " + strings.Join(parts, "   ")
}
