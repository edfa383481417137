// Package persist serializes the task and list collections to a kv.Store
// under two independent keys.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dori/weekly/internal/kv"
	"github.com/dori/weekly/internal/model"
)

// Storage keys
const (
	TasksKey = "weekTodoTasks"
	ListsKey = "weekTodoLists"
)

// ErrCorrupt marks a stored record that could not be decoded. Callers fall
// back to an empty collection for that record.
var ErrCorrupt = errors.New("corrupt record")

// Adapter reads and writes both records
type Adapter struct {
	kv kv.Store
}

// New creates an adapter over the given medium
func New(store kv.Store) *Adapter {
	return &Adapter{kv: store}
}

// SaveTasks overwrites the tasks record
func (a *Adapter) SaveTasks(ctx context.Context, tasks []model.Task) error {
	data, err := EncodeTasks(tasks)
	if err != nil {
		return err
	}
	return a.kv.Put(ctx, TasksKey, data)
}

// SaveLists overwrites the lists record
func (a *Adapter) SaveLists(ctx context.Context, lists []model.CustomList) error {
	data, err := EncodeLists(lists)
	if err != nil {
		return err
	}
	return a.kv.Put(ctx, ListsKey, data)
}

// SaveAll writes both records in one PutMany, tasks first. On a medium
// without cross-key atomicity a crash between the two leaves the list
// present and its tasks gone, never the reverse.
func (a *Adapter) SaveAll(ctx context.Context, tasks []model.Task, lists []model.CustomList) error {
	taskData, err := EncodeTasks(tasks)
	if err != nil {
		return err
	}
	listData, err := EncodeLists(lists)
	if err != nil {
		return err
	}
	return a.kv.PutMany(ctx,
		kv.Entry{Key: TasksKey, Value: taskData},
		kv.Entry{Key: ListsKey, Value: listData},
	)
}

// LoadTasks returns the stored tasks. A missing record is an empty
// collection; an undecodable one returns an error wrapping ErrCorrupt.
func (a *Adapter) LoadTasks(ctx context.Context) ([]model.Task, error) {
	data, err := a.kv.Get(ctx, TasksKey)
	if errors.Is(err, kv.ErrNotFound) {
		return []model.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", TasksKey, err)
	}
	return DecodeTasks(data)
}

// LoadLists returns the stored lists, with the same fallbacks as LoadTasks
func (a *Adapter) LoadLists(ctx context.Context) ([]model.CustomList, error) {
	data, err := a.kv.Get(ctx, ListsKey)
	if errors.Is(err, kv.ErrNotFound) {
		return []model.CustomList{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ListsKey, err)
	}
	return DecodeLists(data)
}

// taskRecord is the stored form of a task
type taskRecord struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Day         string `json:"day"`
	Completed   bool   `json:"completed"`
	Category    string `json:"category"`
	CreatedAt   string `json:"createdAt"`
	ListID      string `json:"listId,omitempty"`
}

type listRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

// EncodeTasks renders tasks as the stored JSON array
func EncodeTasks(tasks []model.Task) ([]byte, error) {
	records := make([]taskRecord, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		if !t.Placement.Valid() {
			return nil, fmt.Errorf("task %s has no placement", t.ID)
		}
		records = append(records, taskRecord{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Day:         string(t.Day()),
			Completed:   t.Completed,
			Category:    string(t.Category),
			CreatedAt:   formatTime(t.CreatedAt),
			ListID:      t.ListID(),
		})
	}
	return json.Marshal(records)
}

// DecodeTasks parses and validates the stored JSON array
func DecodeTasks(data []byte) ([]model.Task, error) {
	if err := validate(tasksSchemaURL, data); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", TasksKey, ErrCorrupt, err)
	}

	var records []taskRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", TasksKey, ErrCorrupt, err)
	}

	tasks := make([]model.Task, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("%s: %w: duplicate id %q at %d", TasksKey, ErrCorrupt, r.ID, i)
		}
		seen[r.ID] = struct{}{}

		created, err := parseTime(r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %d.createdAt: %w", TasksKey, ErrCorrupt, i, err)
		}

		// a list reference wins over a stray day value
		placement := model.OnDay(model.Weekday(r.Day))
		if r.ListID != "" {
			placement = model.InList(r.ListID)
		}

		tasks = append(tasks, model.Task{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Completed:   r.Completed,
			Category:    model.Category(r.Category),
			CreatedAt:   created,
			Placement:   placement,
		})
	}
	return tasks, nil
}

// EncodeLists renders lists as the stored JSON array
func EncodeLists(lists []model.CustomList) ([]byte, error) {
	records := make([]listRecord, 0, len(lists))
	for _, l := range lists {
		records = append(records, listRecord{
			ID:        l.ID,
			Name:      l.Name,
			CreatedAt: formatTime(l.CreatedAt),
		})
	}
	return json.Marshal(records)
}

// DecodeLists parses and validates the stored JSON array
func DecodeLists(data []byte) ([]model.CustomList, error) {
	if err := validate(listsSchemaURL, data); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", ListsKey, ErrCorrupt, err)
	}

	var records []listRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", ListsKey, ErrCorrupt, err)
	}

	lists := make([]model.CustomList, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("%s: %w: duplicate id %q at %d", ListsKey, ErrCorrupt, r.ID, i)
		}
		seen[r.ID] = struct{}{}

		created, err := parseTime(r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %d.createdAt: %w", ListsKey, ErrCorrupt, i, err)
		}
		lists = append(lists, model.CustomList{ID: r.ID, Name: r.Name, CreatedAt: created})
	}
	return lists, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
