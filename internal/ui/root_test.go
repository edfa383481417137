package ui

import (
	"bytes"
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dori/weekly/internal/app"
	"github.com/dori/weekly/internal/config"
	"github.com/dori/weekly/internal/ui/theme"
	"github.com/dori/weekly/internal/ui/views"
)

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

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m RootModel, msg tea.Msg) (RootModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(RootModel), cmd
}

func TestParseView(t *testing.T) {
	v, ok := ParseView("lists")
	assert.True(t, ok)
	assert.Equal(t, ViewLists, v)

	v, ok = ParseView("")
	assert.True(t, ok)
	assert.Equal(t, ViewWeek, v)

	_, ok = ParseView("kanban")
	assert.False(t, ok)
}

func TestSwitchViews(t *testing.T) {
	m := NewRootModel(newTestApp(t), ViewWeek)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})

	m, _ = update(t, m, runes("2"))
	assert.Equal(t, ViewLists, m.CurrentView())
	assert.Contains(t, m.View(), "No lists yet")

	m, _ = update(t, m, runes("1"))
	assert.Equal(t, ViewWeek, m.CurrentView())
}

func TestQuitOnlyOutsideInput(t *testing.T) {
	m := NewRootModel(newTestApp(t), ViewWeek)

	_, cmd := update(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	// inside the add form q is just a letter
	m, _ = update(t, m, runes("a"))
	require.True(t, m.isInputMode())
	m, _ = update(t, m, runes("q"))
	assert.True(t, m.isInputMode())
}

func TestChangedMsgShowsNotification(t *testing.T) {
	a := newTestApp(t)
	m := NewRootModel(a, ViewWeek)

	m, _ = update(t, m, runes("a"))
	for _, r := range "Stretch" {
		m, _ = update(t, m, runes(string(r)))
	}
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	require.IsType(t, views.ChangedMsg{}, msg)
	m, _ = update(t, m, msg)

	status, errMsg := m.Status()
	assert.Empty(t, errMsg)
	assert.Contains(t, status, "Task added")
	assert.Contains(t, status, `"Stretch" added to`)
	assert.Len(t, a.Store.Tasks(), 1)
}

func TestChangedMsgShowsError(t *testing.T) {
	m := NewRootModel(newTestApp(t), ViewWeek)
	m, _ = update(t, m, views.ChangedMsg{Err: assert.AnError})
	_, errMsg := m.Status()
	assert.Equal(t, assert.AnError.Error(), errMsg)
}

func TestHelpAndThemeCycle(t *testing.T) {
	defer theme.SetTheme(theme.Nord)
	m := NewRootModel(newTestApp(t), ViewWeek)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})

	m, _ = update(t, m, runes("?"))
	assert.Contains(t, m.View(), "Weekly Help")
	m, _ = update(t, m, runes("x"))
	assert.NotContains(t, m.View(), "Weekly Help")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	status, _ := m.Status()
	assert.Equal(t, "Theme: dracula", status)
	assert.Equal(t, "dracula", theme.Current.Theme.Name)
}
