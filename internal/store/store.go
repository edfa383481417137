// Package store holds the in-memory task and list collections for one
// process and keeps them in step with durable storage.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/dori/weekly/internal/model"
	"github.com/dori/weekly/internal/notify"
)

// maxIDAttempts bounds fresh ids tried before falling back to a counter suffix
const maxIDAttempts = 8

// Persister is the durable side of a Store
type Persister interface {
	LoadTasks(ctx context.Context) ([]model.Task, error)
	LoadLists(ctx context.Context) ([]model.CustomList, error)
	SaveTasks(ctx context.Context, tasks []model.Task) error
	SaveLists(ctx context.Context, lists []model.CustomList) error
	SaveAll(ctx context.Context, tasks []model.Task, lists []model.CustomList) error
}

// Store serializes every task and list mutation through one lock.
// Each successful mutation issues exactly one write and then one notification.
type Store struct {
	mu    sync.Mutex
	p     Persister
	tasks []model.Task
	lists []model.CustomList
	seq   uint64

	logger       *log.Logger
	notifier     notify.Notifier
	newID        func() string
	now          func() time.Time
	onWriteError func(error)
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for write failures and load problems
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithNotifier sets who hears about successful mutations
func WithNotifier(n notify.Notifier) Option {
	return func(s *Store) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithIDFunc replaces the uuid generator, mostly for tests
func WithIDFunc(f func() string) Option {
	return func(s *Store) {
		if f != nil {
			s.newID = f
		}
	}
}

// WithClock replaces time.Now
func WithClock(f func() time.Time) Option {
	return func(s *Store) {
		if f != nil {
			s.now = f
		}
	}
}

// WithWriteErrorHandler is called after a failed persistence write.
// The in-memory state has already changed when it runs.
func WithWriteErrorHandler(f func(error)) Option {
	return func(s *Store) {
		s.onWriteError = f
	}
}

// New creates an empty store backed by p. Call Load to read saved state.
func New(p Persister, opts ...Option) *Store {
	s := &Store{
		p:        p,
		tasks:    []model.Task{},
		lists:    []model.CustomList{},
		logger:   log.New(io.Discard),
		notifier: notify.Discard,
		newID:    uuid.NewString,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory state with what the persister holds.
// A record that cannot be read falls back to empty without affecting the
// other one; the returned error joins every record failure.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error

	tasks, err := s.p.LoadTasks(ctx)
	if err != nil {
		s.logger.Warn("tasks record unreadable, starting empty", "err", err)
		errs = append(errs, fmt.Errorf("load tasks: %w", err))
		tasks = []model.Task{}
	}
	lists, err := s.p.LoadLists(ctx)
	if err != nil {
		s.logger.Warn("lists record unreadable, starting empty", "err", err)
		errs = append(errs, fmt.Errorf("load lists: %w", err))
		lists = []model.CustomList{}
	}

	s.tasks = tasks
	s.lists = lists

	if n := s.orphanCount(); n > 0 {
		s.logger.Debug("tasks reference missing lists", "count", n)
	}
	s.logger.Debug("store loaded", "tasks", len(s.tasks), "lists", len(s.lists))
	return errors.Join(errs...)
}

// Tasks returns a copy of every task in display order
func (s *Store) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}

// Lists returns a copy of every list in creation order
func (s *Store) Lists() []model.CustomList {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.lists)
}

// Task looks up one task by id
func (s *Store) Task(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.taskIndex(id); i >= 0 {
		return s.tasks[i], true
	}
	return model.Task{}, false
}

// List looks up one list by id
func (s *Store) List(id string) (model.CustomList, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.listIndex(id); i >= 0 {
		return s.lists[i], true
	}
	return model.CustomList{}, false
}

func (s *Store) taskIndex(id string) int {
	return slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
}

func (s *Store) listIndex(id string) int {
	return slices.IndexFunc(s.lists, func(l model.CustomList) bool { return l.ID == id })
}

func (s *Store) orphanCount() int {
	n := 0
	for _, t := range s.tasks {
		if id, ok := t.Placement.ListID(); ok && s.listIndex(id) < 0 {
			n++
		}
	}
	return n
}

// uniqueID returns an id that taken does not report as used
func (s *Store) uniqueID(taken func(string) bool) string {
	for i := 0; i < maxIDAttempts; i++ {
		id := s.newID()
		if id != "" && !taken(id) {
			return id
		}
		s.logger.Debug("id collision, regenerating", "id", id)
	}
	base := s.newID()
	for {
		s.seq++
		id := fmt.Sprintf("%s-%d", base, s.seq)
		if !taken(id) {
			return id
		}
	}
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

func (s *Store) saveTasks(ctx context.Context) {
	s.reportWrite(s.p.SaveTasks(ctx, s.tasks))
}

func (s *Store) saveLists(ctx context.Context) {
	s.reportWrite(s.p.SaveLists(ctx, s.lists))
}

func (s *Store) saveAll(ctx context.Context) {
	s.reportWrite(s.p.SaveAll(ctx, s.tasks, s.lists))
}

func (s *Store) reportWrite(err error) {
	if err == nil {
		return
	}
	s.logger.Error("persist failed, in-memory state kept", "err", err)
	if s.onWriteError != nil {
		s.onWriteError(err)
	}
}

func (s *Store) notify(sum notify.Summary) {
	s.notifier.Notify(sum)
}

// placementName renders a placement for people: the day, or the list name
func (s *Store) placementName(p model.Placement) string {
	if d, ok := p.Day(); ok {
		return string(d)
	}
	id, _ := p.ListID()
	if i := s.listIndex(id); i >= 0 {
		return s.lists[i].Name
	}
	return id
}
