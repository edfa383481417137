package ui

// View represents the current active view
type View int

const (
	ViewWeek View = iota
	ViewLists
)

// String returns the display name for a view
func (v View) String() string {
	switch v {
	case ViewWeek:
		return "Week"
	case ViewLists:
		return "Lists"
	default:
		return "Unknown"
	}
}

// ParseView maps a --view or start_view name to a View
func ParseView(name string) (View, bool) {
	switch name {
	case "week", "":
		return ViewWeek, true
	case "lists", "list":
		return ViewLists, true
	default:
		return ViewWeek, false
	}
}

// ErrorMsg contains an error to display
type ErrorMsg struct {
	Err error
}

// StatusMsg contains a status message to display
type StatusMsg struct {
	Message string
}
