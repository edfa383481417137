package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/weekly/internal/app"
	"github.com/dori/weekly/internal/ui/theme"
	"github.com/dori/weekly/internal/ui/views"
)

// RootModel is the main application model that manages views
type RootModel struct {
	app    *app.App
	keys   KeyMap
	help   help.Model
	width  int
	height int

	currentView View
	weekView    views.WeekView
	listsView   views.ListsView
	helpVisible bool

	// Status message
	statusMsg string
	errorMsg  string
}

// NewRootModel creates a new root model
func NewRootModel(application *app.App, start View) RootModel {
	h := help.New()
	h.ShowAll = true

	m := RootModel{
		app:         application,
		keys:        DefaultKeyMap(),
		help:        h,
		currentView: start,
		weekView:    views.NewWeekView(application.Store, time.Now),
		listsView:   views.NewListsView(application.Store, time.Now),
	}
	if application.LoadErr != nil {
		m.errorMsg = "Some saved data could not be read and was reset"
	}
	return m
}

// CurrentView returns the active view
func (m RootModel) CurrentView() View { return m.currentView }

// Status returns the status and error lines
func (m RootModel) Status() (status, errMsg string) { return m.statusMsg, m.errorMsg }

// Init initializes the model
func (m RootModel) Init() tea.Cmd {
	return nil
}

func (m RootModel) isInputMode() bool {
	switch m.currentView {
	case ViewLists:
		return m.listsView.IsInputMode()
	default:
		return m.weekView.IsInputMode()
	}
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// header 1 line, footer 2 lines
		contentHeight := m.height - 3
		m.weekView = m.weekView.SetSize(m.width, contentHeight)
		m.listsView = m.listsView.SetSize(m.width, contentHeight)
		return m, nil

	case tea.KeyMsg:
		// Clear status/error on any keypress
		m.statusMsg = ""
		m.errorMsg = ""

		inputMode := m.isInputMode()

		switch {
		case key.Matches(msg, m.keys.Quit):
			// ctrl+c always quits, but 'q' only quits when not in input mode
			if msg.String() == "ctrl+c" || !inputMode {
				return m, tea.Quit
			}
		case key.Matches(msg, m.keys.ThemeCycle):
			m.cycleTheme()
			return m, nil
		}

		if inputMode {
			break
		}

		if m.helpVisible {
			// any key closes help
			m.helpVisible = false
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = true
			return m, nil
		case key.Matches(msg, m.keys.WeekView):
			m.currentView = ViewWeek
			return m, nil
		case key.Matches(msg, m.keys.ListsView):
			m.currentView = ViewLists
			return m, nil
		}

	case views.ChangedMsg:
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
		} else if s, ok := m.app.Status.Last(); ok {
			m.statusMsg = s.Title()
			if s.Detail != "" {
				m.statusMsg += ": " + s.Detail
			}
		}
		if err := m.app.TakeWriteError(); err != nil {
			m.errorMsg = fmt.Sprintf("Not saved: %v", err)
		}
		return m, nil

	case ErrorMsg:
		m.errorMsg = msg.Err.Error()
		return m, nil

	case StatusMsg:
		m.statusMsg = msg.Message
		return m, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch m.currentView {
	case ViewLists:
		var next tea.Model
		next, cmd = m.listsView.Update(msg)
		m.listsView = next.(views.ListsView)
	default:
		var next tea.Model
		next, cmd = m.weekView.Update(msg)
		m.weekView = next.(views.WeekView)
	}
	return m, cmd
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content string
	if m.helpVisible {
		content = m.renderHelp()
	} else {
		switch m.currentView {
		case ViewLists:
			content = m.listsView.View()
		default:
			content = m.weekView.View()
		}
	}

	return strings.Join([]string{m.renderHeader(), content, m.renderFooter()}, "\n")
}

// renderHeader renders the header bar
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("weekly")

	tabStyle := lipgloss.NewStyle().Foreground(t.Subtle).Padding(0, 1)
	activeTab := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Padding(0, 1)
	var tabs []string
	for _, v := range []View{ViewWeek, ViewLists} {
		label := fmt.Sprintf("%d %s", int(v)+1, v)
		if v == m.currentView {
			tabs = append(tabs, activeTab.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}

	themeIndicator := tabStyle.Render(fmt.Sprintf("theme: %s", t.Name))

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, append([]string{title}, tabs...)...)
	gap := m.width - lipgloss.Width(leftSide) - lipgloss.Width(themeIndicator)
	if gap < 0 {
		gap = 0
	}
	return leftSide + strings.Repeat(" ", gap) + themeIndicator
}

// renderFooter renders the status line and the short help
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles

	var statusLine string
	switch {
	case m.errorMsg != "":
		statusLine = styles.Error.Render(m.errorMsg)
	case m.statusMsg != "":
		statusLine = styles.Status.Render(m.statusMsg)
	}

	h := m.help
	h.ShowAll = false
	return statusLine + "\n" + h.View(m.keys)
}

// renderHelp renders the help overlay
func (m RootModel) renderHelp() string {
	styles := theme.Current.Styles
	var b strings.Builder
	b.WriteString(styles.Title.Render("Weekly Help"))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n\n")
	b.WriteString(styles.HelpDesc.Render("Press any key to close"))
	return b.String()
}

// cycleTheme cycles through available themes
func (m *RootModel) cycleTheme() {
	next := theme.Next()
	theme.SetTheme(next)
	m.statusMsg = fmt.Sprintf("Theme: %s", next.Name)
}
