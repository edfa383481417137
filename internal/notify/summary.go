// Package notify delivers one-way summaries of completed mutations.
package notify

import (
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Entity is the kind of thing a mutation touched
type Entity string

const (
	EntityTask Entity = "task"
	EntityList Entity = "list"
)

// Action is what happened to the entity
type Action string

const (
	ActionAdded     Action = "added"
	ActionUpdated   Action = "updated"
	ActionDeleted   Action = "deleted"
	ActionCompleted Action = "completed"
	ActionReopened  Action = "reopened"
	ActionMoved     Action = "moved"
	ActionCreated   Action = "created"
	ActionRenamed   Action = "renamed"
)

// Summary describes one successful mutation
type Summary struct {
	Entity Entity
	Action Action
	Name   string // task title or list name
	Detail string // e.g. `"Buy milk" added to Tuesday`
}

// Title renders the short headline, e.g. "Task added"
func (s Summary) Title() string {
	entity := string(s.Entity)
	if entity != "" {
		entity = strings.ToUpper(entity[:1]) + entity[1:]
	}
	return strings.TrimSpace(entity + " " + string(s.Action))
}

// Notifier receives summaries. Implementations must not block the caller.
type Notifier interface {
	Notify(Summary)
}

// Func adapts a function to Notifier
type Func func(Summary)

func (f Func) Notify(s Summary) { f(s) }

// Discard drops every summary
var Discard Notifier = Func(func(Summary) {})

// Multi fans a summary out to every notifier in order
func Multi(notifiers ...Notifier) Notifier {
	return Func(func(s Summary) {
		for _, n := range notifiers {
			if n != nil {
				n.Notify(s)
			}
		}
	})
}

// Log writes summaries to a structured logger at info level
type Log struct {
	Logger *log.Logger
}

func (l Log) Notify(s Summary) {
	if l.Logger == nil {
		return
	}
	l.Logger.Info(s.Title(), "entity", s.Entity, "action", s.Action, "name", s.Name, "detail", s.Detail)
}

// Recorder keeps every summary it receives
type Recorder struct {
	mu        sync.Mutex
	summaries []Summary
}

func (r *Recorder) Notify(s Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summaries = append(r.summaries, s)
}

// Summaries returns a copy of everything received so far
func (r *Recorder) Summaries() []Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Summary(nil), r.summaries...)
}

// Last returns the most recent summary
func (r *Recorder) Last() (Summary, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.summaries) == 0 {
		return Summary{}, false
	}
	return r.summaries[len(r.summaries)-1], true
}
