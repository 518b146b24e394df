// Package display renders catalog and session state for the terminal. Static
// views (recipe lists, pantry tables, sufficiency reports) are plain styled
// strings; the cooking checklist is an interactive Bubble Tea model.
package display

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#a7f3d0"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#86efac"))

	shortStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	checkedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#86efac")).
			Strikethrough(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a")).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))
)

// Banner is the startup header printed by the CLI.
func Banner() string {
	return titleStyle.Render("cucina") + dimStyle.Render(" :: personal recipe organizer")
}
