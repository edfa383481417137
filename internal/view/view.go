// Package view projects the task collection into what a screen shows.
// Nothing here holds state or touches storage.
package view

import (
	"github.com/dori/weekly/internal/model"
)

// ByDay returns the tasks on day in their stored order. List tasks are
// never part of a day column.
func ByDay(tasks []model.Task, day model.Weekday) []model.Task {
	out := []model.Task{}
	for _, t := range tasks {
		if d, ok := t.Placement.Day(); ok && d == day {
			out = append(out, t)
		}
	}
	return out
}

// ByList returns the tasks in listID in their stored order
func ByList(tasks []model.Task, listID string) []model.Task {
	out := []model.Task{}
	for _, t := range tasks {
		if id, ok := t.Placement.ListID(); ok && id == listID {
			out = append(out, t)
		}
	}
	return out
}

// DayCount summarises one column
type DayCount struct {
	Total int
	Done  int
}

// Counts tallies week tasks per weekday. Every weekday has an entry.
func Counts(tasks []model.Task) map[model.Weekday]DayCount {
	counts := make(map[model.Weekday]DayCount, 7)
	for _, d := range model.Weekdays() {
		counts[d] = DayCount{}
	}
	for _, t := range tasks {
		d, ok := t.Placement.Day()
		if !ok {
			continue
		}
		c := counts[d]
		c.Total++
		if t.Completed {
			c.Done++
		}
		counts[d] = c
	}
	return counts
}

// Orphans returns list tasks whose list is not among lists
func Orphans(tasks []model.Task, lists []model.CustomList) []model.Task {
	known := make(map[string]struct{}, len(lists))
	for _, l := range lists {
		known[l.ID] = struct{}{}
	}
	out := []model.Task{}
	for _, t := range tasks {
		id, ok := t.Placement.ListID()
		if !ok {
			continue
		}
		if _, found := known[id]; !found {
			out = append(out, t)
		}
	}
	return out
}
