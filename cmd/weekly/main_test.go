package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dori/weekly/internal/app"
	"github.com/dori/weekly/internal/config"
	"github.com/dori/weekly/internal/model"
	"github.com/dori/weekly/internal/store"
)

func TestParseQuickAdd(t *testing.T) {
	tests := []struct {
		name string
		text string
		want quickAdd
	}{
		{
			name: "plain title gets defaults",
			text: "Buy milk",
			want: quickAdd{title: "Buy milk", category: model.CategoryBlue, day: model.Wednesday},
		},
		{
			name: "day and category",
			text: "Buy milk @tue !Green",
			want: quickAdd{title: "Buy milk", category: model.CategoryGreen, day: model.Tuesday},
		},
		{
			name: "full day name",
			text: "@Saturday Long run",
			want: quickAdd{title: "Long run", category: model.CategoryBlue, day: model.Saturday},
		},
		{
			name: "list and description",
			text: "Eggs list:Groceries -- free range",
			want: quickAdd{title: "Eggs", description: "free range", category: model.CategoryBlue, day: model.Wednesday, listName: "Groceries"},
		},
		{
			name: "unknown markers stay in the title",
			text: "Email @bob !important",
			want: quickAdd{title: "Email @bob !important", category: model.CategoryBlue, day: model.Wednesday},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseQuickAdd(tt.text, model.Wednesday))
		})
	}
}

func TestQuickAddDraft(t *testing.T) {
	lists := []model.CustomList{{ID: "l-1", Name: "Groceries"}}

	d, err := parseQuickAdd("Eggs list:groceries", model.Monday).draft(lists)
	require.NoError(t, err)
	id, ok := d.Placement.ListID()
	assert.True(t, ok)
	assert.Equal(t, "l-1", id)

	_, err = parseQuickAdd("Eggs list:Hardware", model.Monday).draft(lists)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFindTask(t *testing.T) {
	tasks := []model.Task{{ID: "abc123"}, {ID: "abd456"}, {ID: "ab"}}

	got, err := findTask(tasks, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got.ID)

	got, err = findTask(tasks, "ab")
	require.NoError(t, err)
	assert.Equal(t, "ab", got.ID, "exact id wins over prefixes")

	_, err = findTask(tasks, "a")
	assert.ErrorIs(t, err, errAmbiguous)

	_, err = findTask(tasks, "zzz")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFindList(t *testing.T) {
	lists := []model.CustomList{{ID: "111aaa", Name: "Work"}, {ID: "112bbb", Name: "Home"}}

	got, err := findList(lists, "home")
	require.NoError(t, err)
	assert.Equal(t, "112bbb", got.ID)

	got, err = findList(lists, "111")
	require.NoError(t, err)
	assert.Equal(t, "Work", got.Name)

	_, err = findList(lists, "11")
	assert.ErrorIs(t, err, errAmbiguous)
}

func TestPrintWeek(t *testing.T) {
	now := time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{ID: "t1", Title: "Buy milk", Category: model.CategoryBlue, Placement: model.OnDay(model.Tuesday)},
		{ID: "t2", Title: "Stretch", Category: model.CategoryGreen, Completed: true, Placement: model.OnDay(model.Wednesday)},
		{ID: "t3", Title: "Eggs", Category: model.CategoryBlue, Placement: model.InList("l1")},
	}

	var buf bytes.Buffer
	printWeek(&buf, tasks, now)
	out := buf.String()

	assert.Contains(t, out, "Mar 4 - Mar 10, 2024")
	assert.Contains(t, out, "Tuesday, Mar 5  0/1\n  [ ] t1  Buy milk (blue)")
	assert.Contains(t, out, "Wednesday, Mar 6  1/1  (today)\n  [x] t2  Stretch (green)")
	assert.NotContains(t, out, "Eggs")
}

func TestPrintListsShowsOrphans(t *testing.T) {
	lists := []model.CustomList{{ID: "l1", Name: "Groceries"}}
	tasks := []model.Task{
		{ID: "t1", Title: "Eggs", Category: model.CategoryBlue, Placement: model.InList("l1")},
		{ID: "t2", Title: "Nails", Category: model.CategoryRed, Placement: model.InList("gone")},
	}

	var buf bytes.Buffer
	printLists(&buf, tasks, lists)
	out := buf.String()

	assert.Contains(t, out, "l1  Groceries (1)\n  [ ] t1  Eggs (blue)")
	assert.Contains(t, out, "Missing list (1)\n  [ ] t2  Nails (red)")
}

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.Backend = config.BackendMemory
	a, err := app.New(context.Background(), app.Options{Config: cfg, Logger: log.New(&bytes.Buffer{})})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestCommands(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	var out bytes.Buffer

	require.NoError(t, cmdListAdd(ctx, a, []string{"Groceries"}, &out))
	assert.Contains(t, out.String(), "List created")

	out.Reset()
	require.NoError(t, cmdAdd(ctx, a, []string{"Eggs", "list:Groceries", "!yellow"}, &out))
	assert.Contains(t, out.String(), `"Eggs" added to Groceries`)

	tasks := a.Store.Tasks()
	require.Len(t, tasks, 1)
	id := tasks[0].ID

	out.Reset()
	require.NoError(t, cmdMove(ctx, a, []string{id[:6], "fri"}, &out))
	assert.Contains(t, out.String(), "Task moved")
	got, _ := a.Store.Task(id)
	assert.Equal(t, model.Friday, got.Day())

	out.Reset()
	require.NoError(t, cmdMove(ctx, a, []string{id, "Friday"}, &out))
	assert.Equal(t, "\"Eggs\" is already there\n", out.String())

	out.Reset()
	require.NoError(t, cmdDone(ctx, a, []string{id}, &out))
	assert.Contains(t, out.String(), "Task completed")

	assert.Error(t, cmdMove(ctx, a, []string{id, "someday"}, &out))

	out.Reset()
	require.NoError(t, cmdAdd(ctx, a, []string{"Milk", "list:groceries"}, &out))
	require.NoError(t, cmdListRemove(ctx, a, []string{"groceries"}, &out))
	assert.Contains(t, out.String(), `"Groceries" and 1 task(s) removed`)
	assert.Empty(t, a.Store.Lists())
	assert.Len(t, a.Store.Tasks(), 1)

	out.Reset()
	require.NoError(t, cmdRemove(ctx, a, []string{id}, &out))
	assert.Contains(t, out.String(), `"Eggs" removed`)
	assert.Empty(t, a.Store.Tasks())

	assert.ErrorIs(t, cmdDone(ctx, a, []string{"nope"}, &out), store.ErrNotFound)
}
