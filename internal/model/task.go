package model

import (
	"time"
)

// Task represents a todo item placed on a weekday or in a custom list
type Task struct {
	ID          string
	Title       string
	Description string
	Completed   bool
	Category    Category
	CreatedAt   time.Time
	Placement   Placement
}

// Day returns the weekday name, or "" for list tasks
func (t *Task) Day() Weekday {
	d, _ := t.Placement.Day()
	return d
}

// ListID returns the list id, or "" for week tasks
func (t *Task) ListID() string {
	id, _ := t.Placement.ListID()
	return id
}

// Draft carries the caller-supplied fields of a new task
type Draft struct {
	Title       string
	Description string
	Category    Category
	Placement   Placement
}
