// Package views holds the screens of the TUI. Each view calls the store
// synchronously and reports the outcome with a ChangedMsg.
package views

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/weekly/internal/model"
	"github.com/dori/weekly/internal/store"
	"github.com/dori/weekly/internal/ui/theme"
)

// ChangedMsg reports that a view ran a store mutation
type ChangedMsg struct {
	Err error
}

func changed(err error) tea.Cmd {
	return func() tea.Msg {
		return ChangedMsg{Err: err}
	}
}

// formError turns a rejected submit into text for the form
func formError(err error) string {
	if errors.Is(err, store.ErrValidation) {
		return "Title is required"
	}
	return err.Error()
}

// categoryDot renders the coloured tag marker for a task
func categoryDot(c model.Category) string {
	return lipgloss.NewStyle().Foreground(theme.Current.Theme.CategoryColor(c)).Render("●")
}

// truncate shortens s to at most n runes, marking the cut with "…"
func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// taskLine renders one task row: tag, checkbox, title
func taskLine(t model.Task, width int, selected bool) string {
	styles := theme.Current.Styles
	check := "[ ]"
	titleStyle := styles.TaskNormal
	if t.Completed {
		check = "[x]"
		titleStyle = styles.TaskDone
	}
	title := truncate(t.Title, width-6)
	line := fmt.Sprintf("%s %s %s", categoryDot(t.Category), check, titleStyle.Render(title))
	style := lipgloss.NewStyle().Width(width)
	if selected {
		style = style.Background(theme.Current.Theme.Highlight)
	}
	return style.Render(line)
}

// clamp keeps i within [0, n)
func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func confirmLine(format string, args ...any) string {
	return theme.Current.Styles.Error.Render(fmt.Sprintf(format, args...) + " (y/n)")
}

func hints(pairs ...string) string {
	styles := theme.Current.Styles
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, styles.HelpKey.Render(pairs[i])+styles.HelpDesc.Render(" "+pairs[i+1]))
	}
	return strings.Join(parts, styles.HelpSeparator.Render(" • "))
}
