package views

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dori/weekly/internal/kv"
	"github.com/dori/weekly/internal/model"
	"github.com/dori/weekly/internal/persist"
	"github.com/dori/weekly/internal/store"
)

// Wednesday 6 March 2024
var fixedNow = time.Date(2024, time.March, 6, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(persist.New(kv.NewMemory()))
	require.NoError(t, s.Load(context.Background()))
	return s
}

func keyPress(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends keys in order and returns the final model and the last command
func press[M tea.Model](t *testing.T, m M, keys ...string) (M, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyPress(k))
		m = next.(M)
	}
	return m, cmd
}

func typeText[M tea.Model](t *testing.T, m M, text string) M {
	t.Helper()
	for _, r := range text {
		next, _ := m.Update(keyPress(string(r)))
		m = next.(M)
	}
	return m
}

func changedErr(t *testing.T, cmd tea.Cmd) error {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(ChangedMsg)
	require.True(t, ok)
	return msg.Err
}

func TestWeekViewStartsOnToday(t *testing.T) {
	v := NewWeekView(newTestStore(t), clock)
	assert.Equal(t, model.Wednesday, v.Column())
}

func TestWeekViewAddTask(t *testing.T) {
	s := newTestStore(t)
	v := NewWeekView(s, clock)

	v, _ = press(t, v, "a")
	require.Equal(t, WeekModeAdd, v.Mode())
	assert.True(t, v.IsInputMode())
	v = typeText(t, v, "Buy milk")
	v, cmd := press(t, v, "enter")

	require.NoError(t, changedErr(t, cmd))
	assert.Equal(t, WeekModeNormal, v.Mode())

	tasks := s.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Title)
	assert.Equal(t, model.Wednesday, tasks[0].Day())
	assert.Equal(t, model.CategoryBlue, tasks[0].Category)

	sel, ok := v.Selected()
	require.True(t, ok)
	assert.Equal(t, tasks[0].ID, sel.ID)
}

func TestWeekViewBlankTitleKeepsForm(t *testing.T) {
	s := newTestStore(t)
	v := NewWeekView(s, clock)

	v, _ = press(t, v, "a", " ", "enter")
	assert.Equal(t, WeekModeAdd, v.Mode())
	assert.Empty(t, s.Tasks())
	assert.Contains(t, v.View(), "Title is required")

	v, _ = press(t, v, "esc")
	assert.Equal(t, WeekModeNormal, v.Mode())
}

func TestWeekViewFormPicksDayAndCategory(t *testing.T) {
	s := newTestStore(t)
	v := NewWeekView(s, clock)

	v, _ = press(t, v, "a")
	v = typeText(t, v, "Gym")
	// two tabs reach the day field, a third the category
	v, _ = press(t, v, "tab", "tab", "l", "tab", "l", "l")
	v, cmd := press(t, v, "enter")
	require.NoError(t, changedErr(t, cmd))

	task := s.Tasks()[0]
	assert.Equal(t, model.Thursday, task.Day())
	assert.Equal(t, model.CategoryPurple, task.Category)
	assert.Equal(t, model.Thursday, v.Column())
}

func TestWeekViewMoveWithShiftKeys(t *testing.T) {
	s := newTestStore(t)
	task, err := s.AddTask(context.Background(), model.Draft{Title: "Buy milk", Category: model.CategoryBlue, Placement: model.OnDay(model.Tuesday)})
	require.NoError(t, err)

	v := NewWeekView(s, clock)
	v, _ = press(t, v, "h")
	require.Equal(t, model.Tuesday, v.Column())

	v, cmd := press(t, v, "L")
	require.NoError(t, changedErr(t, cmd))
	assert.Equal(t, model.Wednesday, v.Column(), "cursor follows the task")

	got, _ := s.Task(task.ID)
	assert.Equal(t, model.Wednesday, got.Day())

	// Monday has no left neighbour
	_, _ = s.MoveTask(context.Background(), task.ID, model.Monday)
	v, _ = press(t, v, "h", "h")
	require.Equal(t, model.Monday, v.Column())
	_, cmd = press(t, v, "H")
	assert.Nil(t, cmd)
	got, _ = s.Task(task.ID)
	assert.Equal(t, model.Monday, got.Day())
}

func TestWeekViewToggleAndDelete(t *testing.T) {
	s := newTestStore(t)
	task, _ := s.AddTask(context.Background(), model.Draft{Title: "Call mum", Category: model.CategoryGreen, Placement: model.OnDay(model.Wednesday)})

	v := NewWeekView(s, clock)
	v, cmd := press(t, v, " ")
	require.NoError(t, changedErr(t, cmd))
	got, _ := s.Task(task.ID)
	assert.True(t, got.Completed)

	v, _ = press(t, v, "d")
	require.Equal(t, WeekModeConfirmDelete, v.Mode())
	assert.Contains(t, v.View(), "Delete 'Call mum'?")
	v, _ = press(t, v, "n")
	assert.Len(t, s.Tasks(), 1)

	v, _ = press(t, v, "d", "y")
	assert.Equal(t, WeekModeNormal, v.Mode())
	assert.Empty(t, s.Tasks())
}

func TestWeekViewEdit(t *testing.T) {
	s := newTestStore(t)
	task, _ := s.AddTask(context.Background(), model.Draft{Title: "Draft", Category: model.CategoryRed, Placement: model.OnDay(model.Wednesday)})

	v := NewWeekView(s, clock)
	v, _ = press(t, v, "enter")
	require.Equal(t, WeekModeEdit, v.Mode())
	v = typeText(t, v, " v2")
	_, cmd := press(t, v, "enter")
	require.NoError(t, changedErr(t, cmd))

	got, _ := s.Task(task.ID)
	assert.Equal(t, "Draft v2", got.Title)
	assert.Equal(t, task.CreatedAt, got.CreatedAt)
	assert.Equal(t, model.CategoryRed, got.Category)
}

func TestWeekViewChangeWeek(t *testing.T) {
	v := NewWeekView(newTestStore(t), clock)
	v = v.SetSize(140, 30)
	assert.Contains(t, v.View(), "Mar 4 - Mar 10, 2024")

	v, _ = press(t, v, "]")
	assert.Contains(t, v.View(), "Mar 11 - Mar 17, 2024")

	v, _ = press(t, v, "[", "[")
	assert.Contains(t, v.View(), "Feb 26 - Mar 3, 2024")

	v, _ = press(t, v, "t")
	assert.True(t, v.Ref().Equal(fixedNow))
}

func TestWeekViewMoveToList(t *testing.T) {
	s := newTestStore(t)
	l, _ := s.AddList(context.Background(), "Errands")
	task, _ := s.AddTask(context.Background(), model.Draft{Title: "Post", Category: model.CategoryBlue, Placement: model.OnDay(model.Wednesday)})

	v := NewWeekView(s, clock)
	v, _ = press(t, v, "m")
	require.Equal(t, WeekModeSelectList, v.Mode())
	_, cmd := press(t, v, "enter")
	require.NoError(t, changedErr(t, cmd))

	got, _ := s.Task(task.ID)
	assert.Equal(t, l.ID, got.ListID())
}

func TestListsViewCreateListAndTask(t *testing.T) {
	s := newTestStore(t)
	v := NewListsView(s, clock)

	v, _ = press(t, v, "n")
	require.Equal(t, ListsModeNewList, v.Mode())
	v = typeText(t, v, "Groceries")
	v, cmd := press(t, v, "enter")
	require.NoError(t, changedErr(t, cmd))

	l, ok := v.SelectedList()
	require.True(t, ok)
	assert.Equal(t, "Groceries", l.Name)

	v, _ = press(t, v, "a")
	require.Equal(t, ListsModeAdd, v.Mode())
	v = typeText(t, v, "Eggs")
	v, cmd = press(t, v, "enter")
	require.NoError(t, changedErr(t, cmd))

	task, ok := v.SelectedTask()
	require.True(t, ok)
	assert.Equal(t, "Eggs", task.Title)
	assert.Equal(t, l.ID, task.ListID())
	assert.Equal(t, PaneTasks, v.Pane())
}

func TestListsViewSelectsNewList(t *testing.T) {
	s := newTestStore(t)
	_, _ = s.AddList(context.Background(), "Work")
	v := NewListsView(s, clock)

	v, _ = press(t, v, "n")
	v = typeText(t, v, "Home")
	v, _ = press(t, v, "enter")

	l, _ := v.SelectedList()
	assert.Equal(t, "Home", l.Name)
}

func TestListsViewDeleteListCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	work, _ := s.AddList(ctx, "Work")
	_, _ = s.AddTask(ctx, model.Draft{Title: "Report", Category: model.CategoryRed, Placement: model.InList(work.ID)})
	_, _ = s.AddTask(ctx, model.Draft{Title: "Slides", Category: model.CategoryRed, Placement: model.InList(work.ID)})
	keep, _ := s.AddTask(ctx, model.Draft{Title: "Gym", Category: model.CategoryGreen, Placement: model.OnDay(model.Monday)})

	v := NewListsView(s, clock)
	v, _ = press(t, v, "D")
	require.Equal(t, ListsModeConfirmDeleteList, v.Mode())
	assert.Contains(t, v.View(), "Delete list 'Work' and its 2 task(s)?")

	v, cmd := press(t, v, "y")
	require.NoError(t, changedErr(t, cmd))
	assert.Empty(t, s.Lists())
	assert.Equal(t, []model.Task{keep}, s.Tasks())
	_, ok := v.SelectedList()
	assert.False(t, ok)
}

func TestListsViewRename(t *testing.T) {
	s := newTestStore(t)
	l, _ := s.AddList(context.Background(), "Wrok")
	v := NewListsView(s, clock)

	v, _ = press(t, v, "r")
	require.Equal(t, ListsModeRenameList, v.Mode())
	v = typeText(t, v, "!")
	_, cmd := press(t, v, "enter")
	require.NoError(t, changedErr(t, cmd))

	got, _ := s.List(l.ID)
	assert.Equal(t, "Wrok!", got.Name)
}

func TestListsViewToggleDeleteAndMoveToToday(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	l, _ := s.AddList(ctx, "Work")
	a, _ := s.AddTask(ctx, model.Draft{Title: "a", Category: model.CategoryRed, Placement: model.InList(l.ID)})
	b, _ := s.AddTask(ctx, model.Draft{Title: "b", Category: model.CategoryRed, Placement: model.InList(l.ID)})

	v := NewListsView(s, clock)
	// keys act on tasks only once the task pane has focus
	_, cmd := press(t, v, " ")
	assert.Nil(t, cmd)

	v, cmd = press(t, v, "tab", " ")
	require.NoError(t, changedErr(t, cmd))
	got, _ := s.Task(a.ID)
	assert.True(t, got.Completed)

	v, cmd = press(t, v, "m")
	require.NoError(t, changedErr(t, cmd))
	got, _ = s.Task(a.ID)
	assert.Equal(t, model.Wednesday, got.Day())

	sel, ok := v.SelectedTask()
	require.True(t, ok)
	assert.Equal(t, b.ID, sel.ID)

	v, _ = press(t, v, "d", "y")
	_, ok = s.Task(b.ID)
	assert.False(t, ok)
	_, ok = v.SelectedTask()
	assert.False(t, ok)
}

func TestListsViewShowsOrphans(t *testing.T) {
	mem := kv.NewMemory()
	ctx := context.Background()
	require.NoError(t, persist.New(mem).SaveTasks(ctx, []model.Task{{
		ID:        "T1",
		Title:     "Lost task",
		Category:  model.CategoryYellow,
		CreatedAt: fixedNow,
		Placement: model.InList("gone"),
	}}))
	s := store.New(persist.New(mem))
	require.NoError(t, s.Load(ctx))

	v := NewListsView(s, clock).SetSize(100, 20)
	assert.Contains(t, v.View(), "Missing list (1)")

	v, _ = press(t, v, "tab")
	task, ok := v.SelectedTask()
	require.True(t, ok)
	assert.Equal(t, "T1", task.ID)

	// adding is only possible in a real list
	v, _ = press(t, v, "a")
	assert.Equal(t, ListsModeNormal, v.Mode())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 5))
	assert.Equal(t, "hel…", truncate("hello", 4))
	assert.Equal(t, "…", truncate("hello", 1))
	assert.Equal(t, "", truncate("hello", 0))
	assert.Equal(t, "日本…", truncate("日本語です", 3))
}
