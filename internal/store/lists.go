package store

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"todo/internal/service"
)

// Lists returns all lists in creation order.
func (s *Store) Lists() []service.TaskList {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]service.TaskList, len(s.lists))
	copy(out, s.lists)
	return out
}

// List returns the list with the given ID.
func (s *Store) List(id string) (service.TaskList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.listIndex(id)
	if i < 0 {
		return service.TaskList{}, &service.NotFoundError{Kind: "list", ID: id}
	}
	return s.lists[i], nil
}

// CurrentList returns the selected list, if any.
func (s *Store) CurrentList() (service.TaskList, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.listIndex(s.currentListID)
	if i < 0 {
		return service.TaskList{}, false
	}
	return s.lists[i], true
}

// ResolveList finds a list by name (case-insensitive, trimmed).
func (s *Store) ResolveList(name string) (service.TaskList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	nameLower := strings.ToLower(name)

	var matches []service.TaskList
	for _, l := range s.lists {
		if strings.ToLower(strings.TrimSpace(l.Name)) == nameLower {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return service.TaskList{}, &service.NotFoundError{Kind: "list", ID: name}
	case 1:
		return matches[0], nil
	default:
		return service.TaskList{}, &service.AmbiguousError{Kind: "list name", Name: name}
	}
}

// CreateList appends a new list and selects it.
func (s *Store) CreateList(ctx context.Context, name string) (service.TaskList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return service.TaskList{}, &service.ValidationError{Field: "list name", Reason: "required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := service.TaskList{ID: s.allocateID(), Name: name}
	s.lists = append(s.lists, list)
	s.currentListID = list.ID
	s.log.Debug("created list", zap.String("list_id", list.ID), zap.String("name", name))

	return list, s.persist(ctx)
}

// RenameList changes a list's name. Its ID and tasks are unchanged.
func (s *Store) RenameList(ctx context.Context, listID, name string) (service.TaskList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return service.TaskList{}, &service.ValidationError{Field: "list name", Reason: "required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.listIndex(listID)
	if i < 0 {
		return service.TaskList{}, &service.NotFoundError{Kind: "list", ID: listID}
	}
	s.lists[i].Name = name
	s.log.Debug("renamed list", zap.String("list_id", listID), zap.String("name", name))

	return s.lists[i], s.persist(ctx)
}

// SelectList makes listID the current list.
func (s *Store) SelectList(ctx context.Context, listID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listIndex(listID) < 0 {
		return &service.NotFoundError{Kind: "list", ID: listID}
	}
	s.currentListID = listID

	return s.persist(ctx)
}

// DeleteList removes a list. A list that still holds tasks is only removed
// with force, in which case its tasks are deleted with it. The last
// remaining list can never be deleted. If the current list is removed the
// first remaining list becomes current.
func (s *Store) DeleteList(ctx context.Context, listID string, force bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.listIndex(listID)
	if i < 0 {
		return &service.NotFoundError{Kind: "list", ID: listID}
	}
	if len(s.lists) == 1 {
		return &service.ValidationError{Reason: "cannot delete the only list"}
	}

	count := 0
	for _, t := range s.tasks {
		if t.ListID == listID {
			count++
		}
	}
	if count > 0 && !force {
		return &service.ValidationError{Reason: "list not empty (use --force)"}
	}

	if count > 0 {
		kept := s.tasks[:0]
		for _, t := range s.tasks {
			if t.ListID != listID {
				kept = append(kept, t)
			}
		}
		s.tasks = kept
	}
	s.lists = append(s.lists[:i], s.lists[i+1:]...)
	if s.currentListID == listID {
		s.currentListID = s.lists[0].ID
	}
	s.log.Debug("deleted list", zap.String("list_id", listID), zap.Int("tasks_deleted", count))

	return s.persist(ctx)
}

func (s *Store) listIndex(id string) int {
	if id == "" {
		return -1
	}
	for i, l := range s.lists {
		if l.ID == id {
			return i
		}
	}
	return -1
}
