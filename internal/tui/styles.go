package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary   = lipgloss.Color("#cba6f7") // Mauve
	colorSecondary = lipgloss.Color("#b4befe") // Lavender
	colorError     = lipgloss.Color("#f38ba8") // Red
	colorSubtext0  = lipgloss.Color("#a6adc8") // Subtext0
	colorSubtext1  = lipgloss.Color("#bac2de") // Subtext1
	colorSurface2  = lipgloss.Color("#585b70") // Surface2
)

var (
	styleTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleSection = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	styleLabel = lipgloss.NewStyle().
			Foreground(colorSubtext0)

	styleLabelFocused = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorSurface2)
)

var (
	styleHintKey = lipgloss.NewStyle().
			Foreground(colorSubtext1).
			Bold(true)

	styleHintDesc = lipgloss.NewStyle().
			Foreground(colorSubtext0)

	styleHintSeparator = lipgloss.NewStyle().
				Foreground(colorSurface2)
)

// renderHintBar renders key-description pairs, e.g.
// renderHintBar("enter", "next", "esc", "back") gives "enter next • esc back".
func renderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	var b strings.Builder
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString(" " + styleHintSeparator.Render("•") + " ")
		}
		b.WriteString(styleHintKey.Render(pairs[i]) + " " + styleHintDesc.Render(pairs[i+1]))
	}
	return b.String()
}
