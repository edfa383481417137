package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/weekly/internal/model"
	"github.com/dori/weekly/internal/ui/theme"
)

// FormField identifies the focused field of a TaskForm
type FormField int

const (
	FieldTitle FormField = iota
	FieldDescription
	FieldDay
	FieldCategory
)

// TaskForm collects the fields of a new or edited task
type TaskForm struct {
	title       textinput.Model
	description textinput.Model
	day         model.Weekday
	category    model.Category
	// showDay is false for list tasks, which have no day
	showDay bool
	focus   FormField
	err     string
}

// NewTaskForm starts an empty form. Day defaults to day, category to blue.
func NewTaskForm(day model.Weekday, showDay bool) TaskForm {
	title := textinput.New()
	title.Prompt = ""
	title.Placeholder = "What needs doing?"
	title.CharLimit = 200

	desc := textinput.New()
	desc.Prompt = ""
	desc.Placeholder = "Optional details"
	desc.CharLimit = 500

	f := TaskForm{
		title:       title,
		description: desc,
		day:         day,
		category:    model.DefaultCategory,
		showDay:     showDay,
	}
	f.title.Focus()
	return f
}

// EditTaskForm starts a form filled from t
func EditTaskForm(t model.Task, showDay bool) TaskForm {
	day := t.Day()
	if day == "" {
		day = model.Monday
	}
	f := NewTaskForm(day, showDay)
	f.title.SetValue(t.Title)
	f.title.CursorEnd()
	f.description.SetValue(t.Description)
	f.category = t.Category
	return f
}

// Title returns the trimmed title
func (f TaskForm) Title() string { return strings.TrimSpace(f.title.Value()) }

// Description returns the description as typed
func (f TaskForm) Description() string { return f.description.Value() }

// Day returns the chosen weekday
func (f TaskForm) Day() model.Weekday { return f.day }

// Category returns the chosen category
func (f TaskForm) Category() model.Category { return f.category }

// Focused returns the field with focus
func (f TaskForm) Focused() FormField { return f.focus }

// SetError shows a message under the form
func (f TaskForm) SetError(msg string) TaskForm {
	f.err = msg
	return f
}

func (f TaskForm) fields() []FormField {
	if f.showDay {
		return []FormField{FieldTitle, FieldDescription, FieldDay, FieldCategory}
	}
	return []FormField{FieldTitle, FieldDescription, FieldCategory}
}

func (f TaskForm) setFocus(field FormField) TaskForm {
	f.focus = field
	f.title.Blur()
	f.description.Blur()
	switch field {
	case FieldTitle:
		f.title.Focus()
	case FieldDescription:
		f.description.Focus()
	}
	return f
}

func (f TaskForm) step(delta int) TaskForm {
	fields := f.fields()
	idx := 0
	for i, fl := range fields {
		if fl == f.focus {
			idx = i
		}
	}
	idx = (idx + delta + len(fields)) % len(fields)
	return f.setFocus(fields[idx])
}

// Update handles keys other than submit and cancel, which the owning view reads
func (f TaskForm) Update(msg tea.KeyMsg) (TaskForm, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return f.step(1), nil
	case "shift+tab", "up":
		return f.step(-1), nil
	}

	switch f.focus {
	case FieldTitle:
		var cmd tea.Cmd
		f.title, cmd = f.title.Update(msg)
		f.err = ""
		return f, cmd
	case FieldDescription:
		var cmd tea.Cmd
		f.description, cmd = f.description.Update(msg)
		return f, cmd
	case FieldDay:
		switch msg.String() {
		case "h", "left":
			f.day = f.day.Shift(-1)
		case "l", "right", " ":
			f.day = f.day.Shift(1)
		}
	case FieldCategory:
		switch msg.String() {
		case "h", "left":
			f.category = prevCategory(f.category)
		case "l", "right", " ":
			f.category = f.category.Next()
		}
	}
	return f, nil
}

func prevCategory(c model.Category) model.Category {
	all := model.Categories()
	for i, cat := range all {
		if cat == c {
			return all[(i-1+len(all))%len(all)]
		}
	}
	return model.DefaultCategory
}

// View renders the form in a bordered box of the given width
func (f TaskForm) View(heading string, width int) string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	label := func(field FormField, name string) string {
		s := styles.Label
		if f.focus == field {
			s = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
		}
		return s.Width(13).Render(name)
	}

	var lines []string
	lines = append(lines, styles.PanelTitle.Render(heading))
	lines = append(lines, label(FieldTitle, "Title")+f.title.View())
	lines = append(lines, label(FieldDescription, "Description")+f.description.View())
	if f.showDay {
		lines = append(lines, label(FieldDay, "Day")+fmt.Sprintf("‹ %s ›", f.day))
	}

	var cats []string
	for _, c := range model.Categories() {
		mark := "○"
		if c == f.category {
			mark = "●"
		}
		cats = append(cats, lipgloss.NewStyle().Foreground(t.CategoryColor(c)).Render(mark+" "+string(c)))
	}
	lines = append(lines, label(FieldCategory, "Category")+strings.Join(cats, "  "))

	if f.err != "" {
		lines = append(lines, styles.Error.Render(f.err))
	}
	lines = append(lines, styles.HelpDesc.Render("tab: next field • h/l: change • enter: save • esc: cancel"))

	box := styles.InputFocused
	if width > 4 {
		box = box.Width(width - 4)
	}
	return box.Render(strings.Join(lines, "\n"))
}
