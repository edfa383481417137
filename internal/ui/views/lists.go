package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/weekly/internal/model"
	"github.com/dori/weekly/internal/store"
	"github.com/dori/weekly/internal/ui/theme"
	"github.com/dori/weekly/internal/view"
)

// ListsMode represents the current input mode
type ListsMode int

const (
	ListsModeNormal ListsMode = iota
	ListsModeNewList
	ListsModeRenameList
	ListsModeAdd
	ListsModeEdit
	ListsModeConfirmDeleteTask
	ListsModeConfirmDeleteList
)

// ListsPane is the half of the screen that has focus
type ListsPane int

const (
	PaneLists ListsPane = iota
	PaneTasks
)

const sidebarWidth = 28

// ListsView shows custom lists on the left and the selected list's tasks on the right.
// Tasks whose list went missing on load appear under a trailing read-only entry.
type ListsView struct {
	store  *store.Store
	now    func() time.Time
	width  int
	height int

	listCursor int
	taskCursor int
	pane       ListsPane

	mode         ListsMode
	input        textinput.Model
	form         TaskForm
	editTaskID   string
	deleteTaskID string
	deleteListID string
}

// NewListsView creates a lists view
func NewListsView(s *store.Store, now func() time.Time) ListsView {
	if now == nil {
		now = time.Now
	}
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 100

	return ListsView{
		store: s,
		now:   now,
		input: ti,
	}
}

// Init initializes the lists view
func (v ListsView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v ListsView) SetSize(width, height int) ListsView {
	v.width = width
	v.height = height
	return v
}

// Mode returns the current input mode
func (v ListsView) Mode() ListsMode { return v.mode }

// Pane returns the focused pane
func (v ListsView) Pane() ListsPane { return v.pane }

// IsInputMode returns whether keys belong to a form or prompt
func (v ListsView) IsInputMode() bool {
	return v.mode != ListsModeNormal
}

// SelectedList returns the list under the sidebar cursor
func (v ListsView) SelectedList() (model.CustomList, bool) {
	lists := v.store.Lists()
	if v.listCursor < len(lists) {
		return lists[v.listCursor], true
	}
	return model.CustomList{}, false
}

// SelectedTask returns the task under the task cursor
func (v ListsView) SelectedTask() (model.Task, bool) {
	tasks := v.currentTasks()
	if v.taskCursor < len(tasks) {
		return tasks[v.taskCursor], true
	}
	return model.Task{}, false
}

// entryCount is the number of sidebar rows, including the orphan row when shown
func (v ListsView) entryCount() int {
	n := len(v.store.Lists())
	if len(v.orphans()) > 0 {
		n++
	}
	return n
}

func (v ListsView) orphans() []model.Task {
	return view.Orphans(v.store.Tasks(), v.store.Lists())
}

func (v ListsView) onOrphans() bool {
	return v.listCursor == len(v.store.Lists()) && len(v.orphans()) > 0
}

func (v ListsView) currentTasks() []model.Task {
	if l, ok := v.SelectedList(); ok {
		return view.ByList(v.store.Tasks(), l.ID)
	}
	if v.onOrphans() {
		return v.orphans()
	}
	return nil
}

// Update handles messages
func (v ListsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}
	switch v.mode {
	case ListsModeNewList, ListsModeRenameList:
		return v.handleNameMode(key)
	case ListsModeAdd, ListsModeEdit:
		return v.handleFormMode(key)
	case ListsModeConfirmDeleteTask, ListsModeConfirmDeleteList:
		return v.handleConfirmMode(key)
	default:
		return v.handleNormalMode(key)
	}
}

// handleNormalMode handles keys in normal mode
func (v ListsView) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if v.pane == PaneLists {
			v.pane = PaneTasks
		} else {
			v.pane = PaneLists
		}
	case "h", "left":
		v.pane = PaneLists
	case "l", "right":
		v.pane = PaneTasks

	case "j", "down":
		if v.pane == PaneLists {
			if v.listCursor < v.entryCount()-1 {
				v.listCursor++
				v.taskCursor = 0
			}
		} else if v.taskCursor < len(v.currentTasks())-1 {
			v.taskCursor++
		}
	case "k", "up":
		if v.pane == PaneLists {
			if v.listCursor > 0 {
				v.listCursor--
				v.taskCursor = 0
			}
		} else if v.taskCursor > 0 {
			v.taskCursor--
		}

	case "n":
		v.mode = ListsModeNewList
		v.input.SetValue("")
		v.input.Placeholder = "List name..."
		v.input.Focus()
	case "r":
		if l, ok := v.SelectedList(); ok {
			v.mode = ListsModeRenameList
			v.input.SetValue(l.Name)
			v.input.Placeholder = ""
			v.input.Focus()
			v.input.CursorEnd()
		}
	case "D":
		if l, ok := v.SelectedList(); ok {
			v.deleteListID = l.ID
			v.mode = ListsModeConfirmDeleteList
		}

	case "a":
		if _, ok := v.SelectedList(); ok {
			v.mode = ListsModeAdd
			v.form = NewTaskForm(view.Today(v.now()), false)
		}
	case "enter":
		if v.pane == PaneLists {
			v.pane = PaneTasks
			break
		}
		if task, ok := v.SelectedTask(); ok {
			v.mode = ListsModeEdit
			v.editTaskID = task.ID
			v.form = EditTaskForm(task, false)
		}
	case " ", "x":
		if task, ok := v.SelectedTask(); ok && v.pane == PaneTasks {
			_, err := v.store.ToggleComplete(context.Background(), task.ID)
			return v, changed(err)
		}
	case "d":
		if task, ok := v.SelectedTask(); ok && v.pane == PaneTasks {
			v.deleteTaskID = task.ID
			v.mode = ListsModeConfirmDeleteTask
		}
	case "m":
		// send to today's column in the week grid
		if task, ok := v.SelectedTask(); ok && v.pane == PaneTasks {
			_, err := v.store.MoveTask(context.Background(), task.ID, view.Today(v.now()))
			v.clampCursors()
			return v, changed(err)
		}
	}
	return v, nil
}

// handleNameMode edits a list name for create or rename
func (v ListsView) handleNameMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.mode = ListsModeNormal
		v.input.Blur()
		return v, nil
	case "enter":
		name := strings.TrimSpace(v.input.Value())
		if name == "" {
			return v, nil
		}
		var err error
		if v.mode == ListsModeRenameList {
			l, _ := v.SelectedList()
			_, err = v.store.RenameList(context.Background(), l.ID, name)
		} else {
			var l model.CustomList
			l, err = v.store.AddList(context.Background(), name)
			if err == nil {
				v.selectList(l.ID)
			}
		}
		v.mode = ListsModeNormal
		v.input.Blur()
		return v, changed(err)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// selectList moves the sidebar cursor onto the list with id
func (v *ListsView) selectList(id string) {
	for i, l := range v.store.Lists() {
		if l.ID == id {
			v.listCursor = i
			v.taskCursor = 0
			return
		}
	}
}

func (v ListsView) handleFormMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.mode = ListsModeNormal
		v.editTaskID = ""
		return v, nil
	case "enter":
		return v.submitForm()
	}
	var cmd tea.Cmd
	v.form, cmd = v.form.Update(msg)
	return v, cmd
}

func (v ListsView) submitForm() (tea.Model, tea.Cmd) {
	var err error
	if v.mode == ListsModeEdit {
		current, ok := v.store.Task(v.editTaskID)
		if !ok {
			v.mode = ListsModeNormal
			return v, changed(fmt.Errorf("task %q: %w", v.editTaskID, store.ErrNotFound))
		}
		current.Title = v.form.Title()
		current.Description = v.form.Description()
		current.Category = v.form.Category()
		_, err = v.store.UpdateTask(context.Background(), current)
	} else {
		l, ok := v.SelectedList()
		if !ok {
			v.mode = ListsModeNormal
			return v, nil
		}
		_, err = v.store.AddTask(context.Background(), model.Draft{
			Title:       v.form.Title(),
			Description: v.form.Description(),
			Category:    v.form.Category(),
			Placement:   model.InList(l.ID),
		})
		if err == nil {
			v.pane = PaneTasks
			v.taskCursor = len(v.currentTasks()) - 1
		}
	}
	if err != nil {
		v.form = v.form.SetError(formError(err))
		return v, nil
	}
	v.mode = ListsModeNormal
	v.editTaskID = ""
	return v, changed(nil)
}

// handleConfirmMode handles keys in both delete confirmations
func (v ListsView) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		var err error
		if v.mode == ListsModeConfirmDeleteList {
			_, _, err = v.store.RemoveList(context.Background(), v.deleteListID)
		} else {
			_, err = v.store.RemoveTask(context.Background(), v.deleteTaskID)
		}
		v.mode = ListsModeNormal
		v.deleteListID = ""
		v.deleteTaskID = ""
		v.clampCursors()
		return v, changed(err)
	case "n", "N", "esc":
		v.mode = ListsModeNormal
		v.deleteListID = ""
		v.deleteTaskID = ""
	}
	return v, nil
}

func (v *ListsView) clampCursors() {
	v.listCursor = clamp(v.listCursor, v.entryCount())
	v.taskCursor = clamp(v.taskCursor, len(v.currentTasks()))
}

// View renders the lists view
func (v ListsView) View() string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	lists := v.store.Lists()
	tasks := v.store.Tasks()
	orphans := v.orphans()

	// Sidebar
	var side []string
	side = append(side, styles.PanelTitle.Render("Lists"))
	if len(lists) == 0 {
		side = append(side, styles.Empty.Render("No lists yet, press n"))
	}
	for i, l := range lists {
		n := len(view.ByList(tasks, l.ID))
		line := fmt.Sprintf("%s (%d)", truncate(l.Name, sidebarWidth-8), n)
		style := lipgloss.NewStyle().Width(sidebarWidth - 2)
		if i == v.listCursor {
			style = style.Background(t.Highlight).Bold(v.pane == PaneLists)
		}
		side = append(side, style.Render(line))
	}
	if len(orphans) > 0 {
		style := lipgloss.NewStyle().Width(sidebarWidth - 2).Foreground(t.Warning)
		if v.listCursor == len(lists) {
			style = style.Background(t.Highlight)
		}
		side = append(side, style.Render(fmt.Sprintf("Missing list (%d)", len(orphans))))
	}

	sideBox := styles.Panel
	if v.pane == PaneLists {
		sideBox = styles.PanelActive
	}
	if v.height > 4 {
		sideBox = sideBox.Height(v.height - 4)
	}
	sidebar := sideBox.Width(sidebarWidth - 2).Render(strings.Join(side, "\n"))

	// Task pane
	mainWidth := v.width - sidebarWidth - 2
	if mainWidth < 20 {
		mainWidth = 20
	}
	var body []string
	heading := "Tasks"
	if l, ok := v.SelectedList(); ok {
		heading = l.Name
	} else if v.onOrphans() {
		heading = "Tasks whose list is gone"
	}
	body = append(body, styles.PanelTitle.Render(heading))
	current := v.currentTasks()
	if len(current) == 0 {
		msg := "Nothing here"
		if _, ok := v.SelectedList(); ok {
			msg = "Nothing here, press a to add"
		}
		body = append(body, styles.Empty.Render(msg))
	}
	for i, task := range current {
		body = append(body, taskLine(task, mainWidth-4, v.pane == PaneTasks && i == v.taskCursor))
		if task.Description != "" && v.pane == PaneTasks && i == v.taskCursor {
			body = append(body, styles.Subtitle.Render("    "+truncate(task.Description, mainWidth-8)))
		}
	}
	mainBox := styles.Panel
	if v.pane == PaneTasks {
		mainBox = styles.PanelActive
	}
	if v.height > 4 {
		mainBox = mainBox.Height(v.height - 4)
	}
	pane := mainBox.Width(mainWidth - 2).Render(strings.Join(body, "\n"))

	content := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, pane)

	var footer string
	switch v.mode {
	case ListsModeNewList:
		footer = styles.InputFocused.Render("New list: " + v.input.View())
	case ListsModeRenameList:
		footer = styles.InputFocused.Render("Rename: " + v.input.View())
	case ListsModeAdd:
		footer = v.form.View("New task", v.width)
	case ListsModeEdit:
		footer = v.form.View("Edit task", v.width)
	case ListsModeConfirmDeleteTask:
		name := ""
		if task, ok := v.store.Task(v.deleteTaskID); ok {
			name = task.Title
		}
		footer = confirmLine("Delete '%s'?", name)
	case ListsModeConfirmDeleteList:
		name := ""
		if l, ok := v.store.List(v.deleteListID); ok {
			name = l.Name
		}
		n := len(view.ByList(tasks, v.deleteListID))
		footer = confirmLine("Delete list '%s' and its %d task(s)?", name, n)
	default:
		footer = hints("tab", "pane", "j/k", "move", "n", "new list", "r", "rename", "D", "delete list", "a", "add", "space", "done", "d", "delete", "m", "to today")
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, footer)
}
