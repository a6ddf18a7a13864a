// Package tui renders the calculator as an interactive terminal keypad.
package tui

import "github.com/charmbracelet/lipgloss"

// Palette taken from the handheld keypad: black body, green display.
var (
	ColorBackground = lipgloss.Color("#000000")
	ColorScreen     = lipgloss.Color("#1C1C1C")
	ColorKey        = lipgloss.Color("#2C2C2C")
	ColorDisplay    = lipgloss.Color("#00FF00")
	ColorOperator   = lipgloss.Color("#00C853")
	ColorFocus      = lipgloss.Color("#00FF6A")
	ColorText       = lipgloss.Color("#FFFFFF")
	ColorMuted      = lipgloss.Color("#8A8A8A")
)

// keyWidth is the inner width of one keypad button.
const keyWidth = 5

// Styles groups the lipgloss styles used by View.
type Styles struct {
	Screen   lipgloss.Style
	Key      lipgloss.Style
	Operator lipgloss.Style
	Focused  lipgloss.Style
	Name     lipgloss.Style
	ID       lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the keypad styles.
func DefaultStyles() Styles {
	key := lipgloss.NewStyle().
		Width(keyWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(ColorText).
		Background(ColorKey).
		Margin(0, 1, 0, 0)

	return Styles{
		Screen: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorDisplay).
			Background(ColorScreen).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorOperator).
			Align(lipgloss.Right).
			Padding(1, 1),
		Key:      key,
		Operator: key.Foreground(ColorBackground).Background(ColorOperator),
		Focused:  key.Foreground(ColorBackground).Background(ColorFocus).Underline(true),
		Name:     lipgloss.NewStyle().Bold(true).Foreground(ColorDisplay),
		ID:       lipgloss.NewStyle().Foreground(ColorText),
		Help:     lipgloss.NewStyle().Foreground(ColorMuted),
	}
}
