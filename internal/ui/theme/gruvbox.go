package theme

import "github.com/charmbracelet/lipgloss"

// Gruvbox dark, https://github.com/morhetz/gruvbox
var Gruvbox = Theme{
	Name: "gruvbox",

	Background: lipgloss.Color("#282828"),
	Foreground: lipgloss.Color("#EBDBB2"),
	Subtle:     lipgloss.Color("#928374"),
	Highlight:  lipgloss.Color("#3C3836"),
	Border:     lipgloss.Color("#504945"),

	Primary:   lipgloss.Color("#83A598"),
	Secondary: lipgloss.Color("#8EC07C"),
	Info:      lipgloss.Color("#83A598"),

	Success: lipgloss.Color("#B8BB26"),
	Warning: lipgloss.Color("#FABD2F"),
	Error:   lipgloss.Color("#FB4934"),

	Today: lipgloss.Color("#FE8019"),

	Red:    lipgloss.Color("#FB4934"),
	Green:  lipgloss.Color("#B8BB26"),
	Blue:   lipgloss.Color("#83A598"),
	Yellow: lipgloss.Color("#FABD2F"),
	Purple: lipgloss.Color("#D3869B"),
}
