package output

import "github.com/charmbracelet/lipgloss"

// Color palette (Catppuccin Mocha)
var (
	colorPrimary  = lipgloss.Color("#cba6f7") // Mauve
	colorSuccess  = lipgloss.Color("#a6e3a1") // Green
	colorError    = lipgloss.Color("#f38ba8") // Red
	colorWarning  = lipgloss.Color("#f9e2af") // Yellow
	colorText     = lipgloss.Color("#cdd6f4") // Text
	colorSubtext0 = lipgloss.Color("#a6adc8") // Subtext0
	colorSurface2 = lipgloss.Color("#585b70") // Surface2
)

// Step status markers.
const (
	markCompleted = "✓"
	markActive    = "●"
	markUnvisited = "○"
)

// styles holds every style bound to one renderer so colour detection follows
// the printer's writer rather than stdout.
type styles struct {
	title     lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	muted     lipgloss.Style
	completed lipgloss.Style
	active    lipgloss.Style
	unvisited lipgloss.Style
	success   lipgloss.Style
	err       lipgloss.Style
	warning   lipgloss.Style
	header    lipgloss.Style
	box       lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:     r.NewStyle().Foreground(colorPrimary).Bold(true),
		label:     r.NewStyle().Foreground(colorSubtext0),
		value:     r.NewStyle().Foreground(colorText),
		muted:     r.NewStyle().Foreground(colorSurface2),
		completed: r.NewStyle().Foreground(colorSuccess),
		active:    r.NewStyle().Foreground(colorPrimary).Bold(true),
		unvisited: r.NewStyle().Foreground(colorSurface2),
		success:   r.NewStyle().Foreground(colorSuccess).Bold(true),
		err:       r.NewStyle().Foreground(colorError).Bold(true),
		warning:   r.NewStyle().Foreground(colorWarning),
		header:    r.NewStyle().Foreground(colorSubtext0).Bold(true),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1),
	}
}
