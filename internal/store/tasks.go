package store

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dori/weekly/internal/model"
	"github.com/dori/weekly/internal/notify"
)

// AddTask validates the draft, assigns id and creation time, and appends
// the task to the end of the collection.
func (s *Store) AddTask(ctx context.Context, d model.Draft) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title := strings.TrimSpace(d.Title)
	if err := s.checkTask(title, d.Category, d.Placement, true); err != nil {
		return model.Task{}, err
	}

	t := model.Task{
		ID:          s.uniqueID(func(id string) bool { return s.taskIndex(id) >= 0 }),
		Title:       title,
		Description: d.Description,
		Category:    d.Category,
		CreatedAt:   s.timestamp(),
		Placement:   d.Placement,
	}
	s.tasks = append(s.tasks, t)
	s.saveTasks(ctx)

	s.notify(notify.Summary{
		Entity: notify.EntityTask,
		Action: notify.ActionAdded,
		Name:   t.Title,
		Detail: fmt.Sprintf("%q added to %s", t.Title, s.placementName(t.Placement)),
	})
	return t, nil
}

// UpdateTask replaces the stored task with the same id. ID and CreatedAt
// always keep their stored values.
func (s *Store) UpdateTask(ctx context.Context, t model.Task) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(t.ID)
	if i < 0 {
		return model.Task{}, taskNotFound(t.ID)
	}
	cur := s.tasks[i]

	t.Title = strings.TrimSpace(t.Title)
	// an unchanged placement may point at a list lost on load; leave it editable
	moved := t.Placement != cur.Placement
	if err := s.checkTask(t.Title, t.Category, t.Placement, moved); err != nil {
		return model.Task{}, err
	}

	t.CreatedAt = cur.CreatedAt
	s.tasks[i] = t
	s.saveTasks(ctx)

	s.notify(notify.Summary{
		Entity: notify.EntityTask,
		Action: notify.ActionUpdated,
		Name:   t.Title,
		Detail: fmt.Sprintf("%q saved", t.Title),
	})
	return t, nil
}

// ToggleComplete flips the completed flag
func (s *Store) ToggleComplete(ctx context.Context, id string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(id)
	if i < 0 {
		return model.Task{}, taskNotFound(id)
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	t := s.tasks[i]
	s.saveTasks(ctx)

	action := notify.ActionCompleted
	if !t.Completed {
		action = notify.ActionReopened
	}
	s.notify(notify.Summary{
		Entity: notify.EntityTask,
		Action: action,
		Name:   t.Title,
		Detail: fmt.Sprintf("%q %s", t.Title, action),
	})
	return t, nil
}

// RemoveTask deletes a task and returns what was removed
func (s *Store) RemoveTask(ctx context.Context, id string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(id)
	if i < 0 {
		return model.Task{}, taskNotFound(id)
	}
	t := s.tasks[i]
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.saveTasks(ctx)

	s.notify(notify.Summary{
		Entity: notify.EntityTask,
		Action: notify.ActionDeleted,
		Name:   t.Title,
		Detail: fmt.Sprintf("%q removed", t.Title),
	})
	return t, nil
}

// MoveTask puts a task on a weekday. A list task leaves its list.
// Moving onto the day it already sits on changes nothing.
func (s *Store) MoveTask(ctx context.Context, id string, day model.Weekday) (model.Task, error) {
	if !day.Valid() {
		return model.Task{}, invalid("unknown day %q", day)
	}
	return s.move(ctx, id, model.OnDay(day))
}

// MoveTaskToList puts a task into an existing list
func (s *Store) MoveTaskToList(ctx context.Context, id, listID string) (model.Task, error) {
	s.mu.Lock()
	known := s.listIndex(listID) >= 0
	s.mu.Unlock()
	if !known {
		return model.Task{}, listNotFound(listID)
	}
	return s.move(ctx, id, model.InList(listID))
}

func (s *Store) move(ctx context.Context, id string, to model.Placement) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(id)
	if i < 0 {
		return model.Task{}, taskNotFound(id)
	}
	if s.tasks[i].Placement == to {
		return s.tasks[i], nil
	}
	if listID, ok := to.ListID(); ok && s.listIndex(listID) < 0 {
		return model.Task{}, listNotFound(listID)
	}
	s.tasks[i].Placement = to
	t := s.tasks[i]
	s.saveTasks(ctx)

	s.notify(notify.Summary{
		Entity: notify.EntityTask,
		Action: notify.ActionMoved,
		Name:   t.Title,
		Detail: fmt.Sprintf("%q moved to %s", t.Title, s.placementName(to)),
	})
	return t, nil
}

// RemoveTasksByList deletes every task placed in listID and returns how many
// went. The list itself is untouched; RemoveList uses the same path.
func (s *Store) RemoveTasksByList(ctx context.Context, listID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.dropListTasks(listID)
	if n == 0 {
		return 0
	}
	s.saveTasks(ctx)

	s.notify(notify.Summary{
		Entity: notify.EntityTask,
		Action: notify.ActionDeleted,
		Detail: fmt.Sprintf("%d task(s) removed", n),
	})
	return n
}

// dropListTasks removes list tasks in memory only. Callers hold the lock.
func (s *Store) dropListTasks(listID string) int {
	before := len(s.tasks)
	s.tasks = slices.DeleteFunc(s.tasks, func(t model.Task) bool {
		id, ok := t.Placement.ListID()
		return ok && id == listID
	})
	return before - len(s.tasks)
}

func (s *Store) checkTask(title string, c model.Category, p model.Placement, checkList bool) error {
	if title == "" {
		return invalid("title must not be blank")
	}
	if !c.Valid() {
		return invalid("unknown category %q", c)
	}
	if !p.Valid() {
		return invalid("task needs a weekday or a list")
	}
	if listID, ok := p.ListID(); ok && checkList && s.listIndex(listID) < 0 {
		return invalid("list %q does not exist", listID)
	}
	return nil
}
