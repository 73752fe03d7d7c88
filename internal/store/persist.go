package store

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"todo/internal/kv"
	"todo/internal/service"
)

// Keys of the persisted entries.
const (
	KeyLists       = "todoLists"
	KeyTasks       = "todoTasks"
	KeyCurrentList = "currentListId"
)

// load reads all entries from the kv store. Unparseable entries are treated
// as absent. It reports whether the loaded data had to be repaired.
func (s *Store) load(ctx context.Context) (bool, error) {
	listsRaw, err := s.read(ctx, KeyLists)
	if err != nil {
		return false, err
	}
	tasksRaw, err := s.read(ctx, KeyTasks)
	if err != nil {
		return false, err
	}
	current, err := s.read(ctx, KeyCurrentList)
	if err != nil {
		return false, err
	}

	var lists []service.TaskList
	if listsRaw != "" {
		if err := json.Unmarshal([]byte(listsRaw), &lists); err != nil {
			s.log.Warn("ignoring unparseable lists entry", zap.Error(err))
			lists = nil
		}
	}
	var tasks []service.Task
	if tasksRaw != "" {
		if err := json.Unmarshal([]byte(tasksRaw), &tasks); err != nil {
			s.log.Warn("ignoring unparseable tasks entry", zap.Error(err))
			tasks = nil
		}
	}

	repaired := false

	seenLists := make(map[string]bool, len(lists))
	for _, l := range lists {
		if l.ID == "" || seenLists[l.ID] {
			s.log.Warn("dropping list with missing or duplicate id", zap.String("list_id", l.ID))
			repaired = true
			continue
		}
		seenLists[l.ID] = true
		s.lists = append(s.lists, l)
	}

	seenTasks := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if t.ID == "" || seenTasks[t.ID] {
			s.log.Warn("dropping task with missing or duplicate id", zap.String("task_id", t.ID))
			repaired = true
			continue
		}
		if !seenLists[t.ListID] {
			s.log.Warn("dropping orphan task", zap.String("task_id", t.ID), zap.String("list_id", t.ListID))
			repaired = true
			continue
		}
		seenTasks[t.ID] = true
		s.tasks = append(s.tasks, t)
	}

	// Older data may carry the literal string "null" for no selection.
	if current != "" && current != "null" && seenLists[current] {
		s.currentListID = current
	}

	return repaired, nil
}

func (s *Store) read(ctx context.Context, key string) (string, error) {
	v, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return "", &service.PersistenceError{Op: "read " + key, Err: err}
	}
	if !ok {
		return "", nil
	}
	return v, nil
}

// persist writes lists, tasks and selection in one batch.
func (s *Store) persist(ctx context.Context) error {
	lists := s.lists
	if lists == nil {
		lists = []service.TaskList{}
	}
	tasks := s.tasks
	if tasks == nil {
		tasks = []service.Task{}
	}

	listsJSON, err := json.Marshal(lists)
	if err != nil {
		return &service.PersistenceError{Op: "encode lists", Err: err}
	}
	tasksJSON, err := json.Marshal(tasks)
	if err != nil {
		return &service.PersistenceError{Op: "encode tasks", Err: err}
	}

	ops := []kv.Op{
		kv.Put(KeyLists, string(listsJSON)),
		kv.Put(KeyTasks, string(tasksJSON)),
	}
	if s.currentListID != "" {
		ops = append(ops, kv.Put(KeyCurrentList, s.currentListID))
	} else {
		ops = append(ops, kv.Del(KeyCurrentList))
	}

	if err := s.kv.Apply(ctx, ops...); err != nil {
		s.log.Error("failed to persist state; in-memory state kept", zap.Error(err))
		return &service.PersistenceError{Op: "save", Err: err}
	}
	return nil
}
