package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bamsammich/glance/internal/chart"
	"github.com/bamsammich/glance/internal/config"
)

// Catppuccin Mocha palette. ApplyTheme overrides entries from config.
var (
	ColorGreen  = lipgloss.Color("#a6e3a1")
	ColorBlue   = lipgloss.Color("#89b4fa")
	ColorYellow = lipgloss.Color("#f9e2af")
	ColorRed    = lipgloss.Color("#f38ba8")
	ColorTeal   = lipgloss.Color("#94e2d5")
	ColorMauve  = lipgloss.Color("#cba6f7")
	ColorMuted  = lipgloss.Color("#5a6278")
	ColorDim    = lipgloss.Color("#3a4055")
	ColorBright = lipgloss.Color("#cdd6f4")
)

// Pre-built styles, rebuilt by rebuildStyles() after color changes.
var (
	styleHeader       lipgloss.Style
	styleHeaderLabel  lipgloss.Style
	styleDivider      lipgloss.Style
	styleIconDone     lipgloss.Style
	styleIconFailed   lipgloss.Style
	styleTimestamp    lipgloss.Style
	styleValue        lipgloss.Style
	styleError        lipgloss.Style
	styleKeybindKey   lipgloss.Style
	styleKeybindLabel lipgloss.Style
	styleBigNumber    lipgloss.Style
	styleStatCell     lipgloss.Style
	styleStatus       lipgloss.Style
	styleSavePrompt   lipgloss.Style
	styleSaveInput    lipgloss.Style
	chartStyles       *chart.Styles
)

func init() {
	rebuildStyles()
}

// rebuildStyles reconstructs all lipgloss styles from the current color vars.
func rebuildStyles() {
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(ColorBright)
	styleHeaderLabel = lipgloss.NewStyle().Bold(true).Foreground(ColorMauve)
	styleDivider = lipgloss.NewStyle().Foreground(ColorDim)
	styleIconDone = lipgloss.NewStyle().Foreground(ColorGreen)
	styleIconFailed = lipgloss.NewStyle().Foreground(ColorRed)
	styleTimestamp = lipgloss.NewStyle().Foreground(ColorMuted)
	styleValue = lipgloss.NewStyle().Foreground(ColorBright)
	styleError = lipgloss.NewStyle().Foreground(ColorRed)
	styleKeybindKey = lipgloss.NewStyle().Foreground(ColorMauve).Bold(true)
	styleKeybindLabel = lipgloss.NewStyle().Foreground(ColorMuted)
	styleBigNumber = lipgloss.NewStyle().Bold(true).Foreground(ColorGreen)
	styleStatCell = lipgloss.NewStyle().Foreground(ColorTeal)
	styleStatus = lipgloss.NewStyle().Foreground(ColorYellow).Italic(true)
	styleSavePrompt = lipgloss.NewStyle().Foreground(ColorMuted)
	styleSaveInput = lipgloss.NewStyle().Foreground(ColorBright)
	chartStyles = &chart.Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(ColorMauve),
		Label: lipgloss.NewStyle().Foreground(ColorBright),
		Value: lipgloss.NewStyle().Foreground(ColorTeal),
		Axis:  lipgloss.NewStyle().Foreground(ColorMuted),
	}
}

// ApplyTheme overrides colors from a config ThemeConfig and rebuilds all styles.
func ApplyTheme(tc config.ThemeConfig) {
	if tc.Title != nil {
		ColorMauve = lipgloss.Color(*tc.Title)
	}
	if tc.Label != nil {
		ColorBright = lipgloss.Color(*tc.Label)
	}
	if tc.Value != nil {
		ColorTeal = lipgloss.Color(*tc.Value)
	}
	if tc.Axis != nil {
		ColorMuted = lipgloss.Color(*tc.Axis)
	}
	rebuildStyles()
}
