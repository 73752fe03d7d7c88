// Package store implements service.Service on top of a kv.Store.
//
// The Store keeps the canonical lists, tasks and selection in memory and
// writes all of it through to the key-value store after every mutation.
// Validation happens before any mutation, so a rejected call leaves the
// state untouched.
package store

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"todo/internal/config"
	"todo/internal/kv"
	"todo/internal/service"
)

// Options configures a Store.
type Options struct {
	// Logger receives diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger

	// DefaultListName names the list created when the store is empty.
	DefaultListName string

	// ShowCompleted is the initial value of the session display filter.
	ShowCompleted bool

	// NewID generates identifiers. Defaults to NewID.
	NewID func() string
}

// Store owns the task lists, tasks and current selection.
type Store struct {
	mu      sync.Mutex
	kv      kv.Store
	log     *zap.Logger
	newID   func() string
	defName string

	lists         []service.TaskList
	tasks         []service.Task
	currentListID string
	showCompleted bool
}

var _ service.Service = (*Store)(nil)

// Open loads the state persisted in db and returns a ready Store.
// If no lists exist a default list is created, selected and persisted.
func Open(ctx context.Context, db kv.Store, opts Options) (*Store, error) {
	s := &Store{
		kv:            db,
		log:           opts.Logger,
		newID:         opts.NewID,
		defName:       strings.TrimSpace(opts.DefaultListName),
		showCompleted: opts.ShowCompleted,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.newID == nil {
		s.newID = NewID
	}
	if s.defName == "" {
		s.defName = config.DefaultListName
	}

	repaired, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if len(s.lists) == 0 {
		list := service.TaskList{ID: s.allocateID(), Name: s.defName}
		s.lists = append(s.lists, list)
		s.currentListID = list.ID
		s.log.Debug("created default list", zap.String("list_id", list.ID), zap.String("name", list.Name))
		repaired = true
	}

	if repaired {
		if err := s.persist(ctx); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Close closes the underlying key-value store.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Close()
}

// ShowCompleted reports the session display filter.
func (s *Store) ShowCompleted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showCompleted
}

// SetShowCompleted sets the session display filter.
func (s *Store) SetShowCompleted(show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showCompleted = show
}

// VisibleTasks returns the current list's tasks under the session filter.
func (s *Store) VisibleTasks() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasksFor(s.currentListID, s.showCompleted)
}

// allocateID returns an identifier not used by any list or task.
func (s *Store) allocateID() string {
	for {
		id := s.newID()
		if id != "" && s.listIndex(id) < 0 && s.taskIndex(id) < 0 {
			return id
		}
		s.log.Warn("identifier collision, regenerating", zap.String("id", id))
	}
}
