package notify

import (
	"os/exec"
	"strconv"
	"time"
)

// Urgency levels for notifications
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification represents a desktop notification
type Notification struct {
	Title   string
	Body    string
	Urgency Urgency
	Timeout time.Duration
	Icon    string // Optional icon name
}

// Desktop sends summaries as desktop notifications through notify-send
type Desktop struct {
	enabled bool
	appName string
	command string
}

// NewDesktop creates a desktop notifier
func NewDesktop() *Desktop {
	return &Desktop{
		enabled: true,
		appName: "weekly",
		command: "notify-send",
	}
}

// SetEnabled enables or disables notifications
func (n *Desktop) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// IsEnabled returns whether notifications are enabled
func (n *Desktop) IsEnabled() bool {
	return n.enabled
}

// Notify sends the summary in the background; failures are dropped
func (n *Desktop) Notify(s Summary) {
	if !n.enabled {
		return
	}
	note := FromSummary(s)
	go func() {
		_ = n.Send(note)
	}()
}

// Send sends a desktop notification and waits for notify-send to exit
func (n *Desktop) Send(notification Notification) error {
	if !n.enabled {
		return nil
	}
	cmd := exec.Command(n.command, n.args(notification)...)
	return cmd.Run()
}

func (n *Desktop) args(notification Notification) []string {
	args := []string{}

	switch notification.Urgency {
	case UrgencyLow:
		args = append(args, "-u", "low")
	case UrgencyCritical:
		args = append(args, "-u", "critical")
	default:
		args = append(args, "-u", "normal")
	}

	// milliseconds
	if notification.Timeout > 0 {
		args = append(args, "-t", strconv.Itoa(int(notification.Timeout.Milliseconds())))
	}

	if notification.Icon != "" {
		args = append(args, "-i", notification.Icon)
	}

	args = append(args, "-a", n.appName)

	args = append(args, notification.Title)
	if notification.Body != "" {
		args = append(args, notification.Body)
	}
	return args
}

// FromSummary maps a mutation summary to a desktop notification.
// Deletions are shown as critical, in line with a destructive toast.
func FromSummary(s Summary) Notification {
	note := Notification{
		Title:   s.Title(),
		Body:    s.Detail,
		Urgency: UrgencyLow,
		Timeout: 4 * time.Second,
	}
	if s.Action == ActionDeleted {
		note.Urgency = UrgencyCritical
		note.Icon = "user-trash-symbolic"
	}
	return note
}
