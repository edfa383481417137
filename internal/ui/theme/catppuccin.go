package theme

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, https://catppuccin.com/
var Catppuccin = Theme{
	Name: "catppuccin",

	Background: lipgloss.Color("#1E1E2E"),
	Foreground: lipgloss.Color("#CDD6F4"),
	Subtle:     lipgloss.Color("#6C7086"),
	Highlight:  lipgloss.Color("#313244"),
	Border:     lipgloss.Color("#45475A"),

	Primary:   lipgloss.Color("#89B4FA"),
	Secondary: lipgloss.Color("#CBA6F7"),
	Info:      lipgloss.Color("#74C7EC"),

	Success: lipgloss.Color("#A6E3A1"),
	Warning: lipgloss.Color("#F9E2AF"),
	Error:   lipgloss.Color("#F38BA8"),

	Today: lipgloss.Color("#FAB387"), // Peach

	Red:    lipgloss.Color("#F38BA8"),
	Green:  lipgloss.Color("#A6E3A1"),
	Blue:   lipgloss.Color("#89B4FA"),
	Yellow: lipgloss.Color("#F9E2AF"),
	Purple: lipgloss.Color("#CBA6F7"), // Mauve
}
