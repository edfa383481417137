package store

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dori/weekly/internal/model"
	"github.com/dori/weekly/internal/notify"
)

// AddList creates a list with a trimmed, non-blank name
func (s *Store) AddList(ctx context.Context, name string) (model.CustomList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return model.CustomList{}, invalid("list name must not be blank")
	}

	l := model.CustomList{
		ID:        s.uniqueID(func(id string) bool { return s.listIndex(id) >= 0 }),
		Name:      name,
		CreatedAt: s.timestamp(),
	}
	s.lists = append(s.lists, l)
	s.saveLists(ctx)

	s.notify(notify.Summary{
		Entity: notify.EntityList,
		Action: notify.ActionCreated,
		Name:   l.Name,
		Detail: fmt.Sprintf("%q created", l.Name),
	})
	return l, nil
}

// RenameList changes a list's name; id and tasks stay as they are
func (s *Store) RenameList(ctx context.Context, id, name string) (model.CustomList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.listIndex(id)
	if i < 0 {
		return model.CustomList{}, listNotFound(id)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return model.CustomList{}, invalid("list name must not be blank")
	}
	old := s.lists[i].Name
	s.lists[i].Name = name
	l := s.lists[i]
	s.saveLists(ctx)

	s.notify(notify.Summary{
		Entity: notify.EntityList,
		Action: notify.ActionRenamed,
		Name:   l.Name,
		Detail: fmt.Sprintf("%q renamed to %q", old, l.Name),
	})
	return l, nil
}

// RemoveList deletes a list together with every task placed in it.
// Both records go out in one write, tasks first.
func (s *Store) RemoveList(ctx context.Context, id string) (model.CustomList, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.listIndex(id)
	if i < 0 {
		return model.CustomList{}, 0, listNotFound(id)
	}
	l := s.lists[i]
	n := s.dropListTasks(id)
	s.lists = slices.Delete(s.lists, i, i+1)
	s.saveAll(ctx)

	s.notify(notify.Summary{
		Entity: notify.EntityList,
		Action: notify.ActionDeleted,
		Name:   l.Name,
		Detail: fmt.Sprintf("%q and %d task(s) removed", l.Name, n),
	})
	return l, n, nil
}
