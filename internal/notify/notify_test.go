package notify

import (
	"bytes"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestSummaryTitle(t *testing.T) {
	assert.Equal(t, "Task added", Summary{Entity: EntityTask, Action: ActionAdded}.Title())
	assert.Equal(t, "List deleted", Summary{Entity: EntityList, Action: ActionDeleted}.Title())
	assert.Equal(t, "moved", Summary{Action: ActionMoved}.Title())
}

func TestDesktopArgs(t *testing.T) {
	n := NewDesktop()
	args := n.args(Notification{
		Title:   "Task deleted",
		Body:    `"Buy milk" removed`,
		Urgency: UrgencyCritical,
		Timeout: 4 * time.Second,
		Icon:    "user-trash-symbolic",
	})
	assert.Equal(t, []string{
		"-u", "critical",
		"-t", "4000",
		"-i", "user-trash-symbolic",
		"-a", "weekly",
		"Task deleted", `"Buy milk" removed`,
	}, args)
}

func TestFromSummary(t *testing.T) {
	added := FromSummary(Summary{Entity: EntityTask, Action: ActionAdded, Detail: `"Gym" added to Friday`})
	assert.Equal(t, "Task added", added.Title)
	assert.Equal(t, UrgencyLow, added.Urgency)
	assert.Equal(t, `"Gym" added to Friday`, added.Body)

	deleted := FromSummary(Summary{Entity: EntityTask, Action: ActionDeleted})
	assert.Equal(t, UrgencyCritical, deleted.Urgency)
}

func TestDisabledDesktopSendsNothing(t *testing.T) {
	n := NewDesktop()
	n.command = "/nonexistent/notify-send"
	n.SetEnabled(false)
	assert.False(t, n.IsEnabled())
	assert.NoError(t, n.Send(Notification{Title: "x"}))
}

func TestMultiAndRecorder(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	m := Multi(a, nil, b)

	m.Notify(Summary{Entity: EntityList, Action: ActionCreated, Name: "Work"})

	last, ok := a.Last()
	assert.True(t, ok)
	assert.Equal(t, "Work", last.Name)
	assert.Len(t, b.Summaries(), 1)

	_, ok = (&Recorder{}).Last()
	assert.False(t, ok)
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})
	Log{Logger: logger}.Notify(Summary{Entity: EntityTask, Action: ActionMoved, Name: "Gym"})

	assert.Contains(t, buf.String(), "Task moved")
	assert.Contains(t, buf.String(), "Gym")

	// no logger is a no-op
	Log{}.Notify(Summary{})
}
