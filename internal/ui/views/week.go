package views

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/weekly/internal/model"
	"github.com/dori/weekly/internal/store"
	"github.com/dori/weekly/internal/ui/theme"
	"github.com/dori/weekly/internal/view"
)

// WeekMode represents the current input mode
type WeekMode int

const (
	WeekModeNormal WeekMode = iota
	WeekModeAdd
	WeekModeEdit
	WeekModeConfirmDelete
	WeekModeSelectList
)

// WeekView shows seven day columns for the week containing ref
type WeekView struct {
	store  *store.Store
	now    func() time.Time
	width  int
	height int

	// ref is any date inside the displayed week
	ref time.Time

	column int
	row    int
	scroll [7]int

	mode           WeekMode
	form           TaskForm
	editTaskID     string
	deleteTaskID   string
	selectorCursor int
}

// NewWeekView creates a week view starting on today's column
func NewWeekView(s *store.Store, now func() time.Time) WeekView {
	if now == nil {
		now = time.Now
	}
	today := now()
	return WeekView{
		store:  s,
		now:    now,
		ref:    today,
		column: view.Today(today).Index(),
	}
}

// Init initializes the week view
func (v WeekView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v WeekView) SetSize(width, height int) WeekView {
	v.width = width
	v.height = height
	return v
}

// Ref returns a date inside the displayed week
func (v WeekView) Ref() time.Time { return v.ref }

// Column returns the selected weekday
func (v WeekView) Column() model.Weekday { return model.Weekdays()[v.column] }

// Mode returns the current input mode
func (v WeekView) Mode() WeekMode { return v.mode }

// IsInputMode returns whether keys belong to a form or prompt
func (v WeekView) IsInputMode() bool {
	return v.mode != WeekModeNormal
}

// Selected returns the task under the cursor
func (v WeekView) Selected() (model.Task, bool) {
	tasks := v.columnTasks(v.column)
	if v.row < len(tasks) {
		return tasks[v.row], true
	}
	return model.Task{}, false
}

func (v WeekView) columnTasks(col int) []model.Task {
	return view.ByDay(v.store.Tasks(), model.Weekdays()[col])
}

// Update handles messages
func (v WeekView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}
	switch v.mode {
	case WeekModeAdd, WeekModeEdit:
		return v.handleFormMode(key)
	case WeekModeConfirmDelete:
		return v.handleConfirmDeleteMode(key)
	case WeekModeSelectList:
		return v.handleListSelector(key)
	default:
		return v.handleNormalMode(key)
	}
}

// handleNormalMode handles keys in normal mode
func (v WeekView) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		if v.column > 0 {
			v.column--
			v.clampCursor()
		}
	case "l", "right":
		if v.column < 6 {
			v.column++
			v.clampCursor()
		}
	case "j", "down":
		if v.row < len(v.columnTasks(v.column))-1 {
			v.row++
			v.ensureCursorVisible()
		}
	case "k", "up":
		if v.row > 0 {
			v.row--
			v.ensureCursorVisible()
		}

	// Move task to the neighbouring day
	case "H":
		return v.moveTask(-1)
	case "L":
		return v.moveTask(1)

	case "[":
		v.ref = view.ShiftWeek(v.ref, -1)
	case "]":
		v.ref = view.ShiftWeek(v.ref, 1)
	case "t":
		v.ref = v.now()
		v.column = view.Today(v.ref).Index()
		v.clampCursor()

	case "a":
		v.mode = WeekModeAdd
		v.form = NewTaskForm(model.Weekdays()[v.column], true)
	case "enter":
		if task, ok := v.Selected(); ok {
			v.mode = WeekModeEdit
			v.editTaskID = task.ID
			v.form = EditTaskForm(task, true)
		}
	case " ", "x":
		if task, ok := v.Selected(); ok {
			_, err := v.store.ToggleComplete(context.Background(), task.ID)
			return v, changed(err)
		}
	case "d":
		if task, ok := v.Selected(); ok {
			v.deleteTaskID = task.ID
			v.mode = WeekModeConfirmDelete
		}
	case "m":
		if _, ok := v.Selected(); ok && len(v.store.Lists()) > 0 {
			v.mode = WeekModeSelectList
			v.selectorCursor = 0
		}
	}
	return v, nil
}

// moveTask moves the selected task one day left or right and keeps it selected
func (v WeekView) moveTask(direction int) (tea.Model, tea.Cmd) {
	task, ok := v.Selected()
	if !ok {
		return v, nil
	}
	target := v.column + direction
	if target < 0 || target > 6 {
		return v, nil
	}

	moved, err := v.store.MoveTask(context.Background(), task.ID, model.Weekdays()[target])
	if err != nil {
		return v, changed(err)
	}
	v.column = target
	v.row = slices.IndexFunc(v.columnTasks(target), func(t model.Task) bool { return t.ID == moved.ID })
	v.clampCursor()
	return v, changed(nil)
}

func (v WeekView) handleFormMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.mode = WeekModeNormal
		v.editTaskID = ""
		return v, nil
	case "enter":
		return v.submitForm()
	}
	var cmd tea.Cmd
	v.form, cmd = v.form.Update(msg)
	return v, cmd
}

func (v WeekView) submitForm() (tea.Model, tea.Cmd) {
	placement := model.OnDay(v.form.Day())
	var (
		task model.Task
		err  error
	)
	if v.mode == WeekModeEdit {
		current, ok := v.store.Task(v.editTaskID)
		if !ok {
			v.mode = WeekModeNormal
			return v, changed(fmt.Errorf("task %q: %w", v.editTaskID, store.ErrNotFound))
		}
		current.Title = v.form.Title()
		current.Description = v.form.Description()
		current.Category = v.form.Category()
		current.Placement = placement
		task, err = v.store.UpdateTask(context.Background(), current)
	} else {
		task, err = v.store.AddTask(context.Background(), model.Draft{
			Title:       v.form.Title(),
			Description: v.form.Description(),
			Category:    v.form.Category(),
			Placement:   placement,
		})
	}
	if err != nil {
		v.form = v.form.SetError(formError(err))
		return v, nil
	}

	v.mode = WeekModeNormal
	v.editTaskID = ""
	v.column = task.Day().Index()
	v.row = slices.IndexFunc(v.columnTasks(v.column), func(t model.Task) bool { return t.ID == task.ID })
	v.clampCursor()
	return v, changed(nil)
}

// handleConfirmDeleteMode handles keys in delete confirmation mode
func (v WeekView) handleConfirmDeleteMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.mode = WeekModeNormal
		taskID := v.deleteTaskID
		v.deleteTaskID = ""
		_, err := v.store.RemoveTask(context.Background(), taskID)
		v.clampCursor()
		return v, changed(err)
	case "n", "N", "esc":
		v.mode = WeekModeNormal
		v.deleteTaskID = ""
	}
	return v, nil
}

// handleListSelector moves the selected task into a chosen list
func (v WeekView) handleListSelector(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lists := v.store.Lists()
	switch msg.String() {
	case "j", "down":
		if v.selectorCursor < len(lists)-1 {
			v.selectorCursor++
		}
	case "k", "up":
		if v.selectorCursor > 0 {
			v.selectorCursor--
		}
	case "enter":
		v.mode = WeekModeNormal
		task, ok := v.Selected()
		if !ok || v.selectorCursor >= len(lists) {
			return v, nil
		}
		_, err := v.store.MoveTaskToList(context.Background(), task.ID, lists[v.selectorCursor].ID)
		v.clampCursor()
		return v, changed(err)
	case "esc":
		v.mode = WeekModeNormal
	}
	return v, nil
}

// clampCursor ensures cursor is valid for current column
func (v *WeekView) clampCursor() {
	v.row = clamp(v.row, len(v.columnTasks(v.column)))
	v.ensureCursorVisible()
}

// ensureCursorVisible adjusts scroll to keep cursor in view
func (v *WeekView) ensureCursorVisible() {
	visible := v.visibleItemCount()
	if v.row >= v.scroll[v.column]+visible {
		v.scroll[v.column] = v.row - visible + 1
	}
	if v.row < v.scroll[v.column] {
		v.scroll[v.column] = v.row
	}
}

// visibleItemCount is the column height minus borders, header and footer
func (v *WeekView) visibleItemCount() int {
	if n := v.height - 8; n > 0 {
		return n
	}
	return 1
}

// View renders the week view
func (v WeekView) View() string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	colWidth := (v.width - 2) / 7
	if colWidth < 16 {
		colWidth = 16
	}
	inner := colWidth - 2

	title := styles.Title.Render(view.RangeLabel(v.ref))
	tasks := v.store.Tasks()
	counts := view.Counts(tasks)
	days := view.Week(v.ref, v.now())

	var cols []string
	for i, day := range days {
		active := i == v.column

		header := fmt.Sprintf("%s %d", day.Short, day.Date.Day())
		if c := counts[day.Name]; c.Total > 0 {
			header += fmt.Sprintf(" %d/%d", c.Done, c.Total)
		}
		hs := lipgloss.NewStyle().Bold(true).Width(inner).Align(lipgloss.Center).Foreground(t.Secondary)
		if day.IsToday {
			hs = hs.Foreground(t.Today)
		}
		if active {
			hs = hs.Background(t.Highlight)
		}

		colTasks := view.ByDay(tasks, day.Name)
		visible := v.visibleItemCount()
		start := min(v.scroll[i], len(colTasks))
		end := min(start+visible, len(colTasks))

		items := []string{hs.Render(header)}
		if start > 0 {
			items = append(items, styles.Label.Render(fmt.Sprintf("↑ %d more", start)))
		}
		for j := start; j < end; j++ {
			items = append(items, taskLine(colTasks[j], inner, active && j == v.row))
		}
		if end < len(colTasks) {
			items = append(items, styles.Label.Render(fmt.Sprintf("↓ %d more", len(colTasks)-end)))
		}
		if len(colTasks) == 0 {
			items = append(items, styles.Empty.Render("(empty)"))
		}

		box := styles.Panel
		if active {
			box = styles.PanelActive
		}
		if v.height > 6 {
			box = box.Height(v.height - 6)
		}
		cols = append(cols, box.Width(inner).Render(strings.Join(items, "\n")))
	}
	grid := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	var footer string
	switch v.mode {
	case WeekModeAdd:
		footer = v.form.View("New task", v.width)
	case WeekModeEdit:
		footer = v.form.View("Edit task", v.width)
	case WeekModeConfirmDelete:
		name := ""
		if task, ok := v.store.Task(v.deleteTaskID); ok {
			name = task.Title
		}
		footer = confirmLine("Delete '%s'?", name)
	case WeekModeSelectList:
		footer = v.renderListSelector()
	default:
		footer = hints("h/l", "day", "j/k", "task", "H/L", "move", "[/]", "week", "a", "add", "space", "done", "d", "delete", "m", "to list")
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, grid, footer)
}

// renderListSelector renders the list picker popup
func (v WeekView) renderListSelector() string {
	t := theme.Current.Theme
	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render("Move to list:"))
	for i, l := range v.store.Lists() {
		style := lipgloss.NewStyle()
		if i == v.selectorCursor {
			style = style.Background(t.Highlight).Foreground(t.Foreground)
		}
		lines = append(lines, style.Render(" "+l.Name))
	}
	lines = append(lines, lipgloss.NewStyle().Foreground(t.Subtle).Render("j/k: navigate • enter: move • esc: cancel"))

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}
