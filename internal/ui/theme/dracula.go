package theme

import "github.com/charmbracelet/lipgloss"

// Dracula theme, https://draculatheme.com/
var Dracula = Theme{
	Name: "dracula",

	Background: lipgloss.Color("#282A36"),
	Foreground: lipgloss.Color("#F8F8F2"),
	Subtle:     lipgloss.Color("#6272A4"),
	Highlight:  lipgloss.Color("#44475A"),
	Border:     lipgloss.Color("#6272A4"),

	Primary:   lipgloss.Color("#BD93F9"),
	Secondary: lipgloss.Color("#8BE9FD"),
	Info:      lipgloss.Color("#8BE9FD"),

	Success: lipgloss.Color("#50FA7B"),
	Warning: lipgloss.Color("#F1FA8C"),
	Error:   lipgloss.Color("#FF5555"),

	Today: lipgloss.Color("#FFB86C"), // Orange

	Red:    lipgloss.Color("#FF5555"),
	Green:  lipgloss.Color("#50FA7B"),
	Blue:   lipgloss.Color("#8BE9FD"), // Cyan
	Yellow: lipgloss.Color("#F1FA8C"),
	Purple: lipgloss.Color("#BD93F9"),
}
