package store

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"todo/internal/service"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Task returns the task with the given ID.
func (s *Store) Task(id string) (service.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.taskIndex(id)
	if i < 0 {
		return service.Task{}, &service.NotFoundError{Kind: "task", ID: id}
	}
	return s.tasks[i], nil
}

// CreateTask appends a new, incomplete task. The task's list becomes current.
func (s *Store) CreateTask(ctx context.Context, fields service.TaskFields) (service.Task, error) {
	fields, err := normalizeFields(fields)
	if err != nil {
		return service.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listIndex(fields.ListID) < 0 {
		return service.Task{}, &service.NotFoundError{Kind: "list", ID: fields.ListID}
	}

	task := service.Task{
		ID:          s.allocateID(),
		Title:       fields.Title,
		Description: fields.Description,
		DueDate:     fields.DueDate,
		DueTime:     fields.DueTime,
		ListID:      fields.ListID,
		Completed:   false,
	}
	s.tasks = append(s.tasks, task)
	s.currentListID = task.ListID
	s.log.Debug("created task", zap.String("task_id", task.ID), zap.String("list_id", task.ListID))

	return task, s.persist(ctx)
}

// UpdateTask overwrites title, description, due date/time and list of a
// task. Completion state and ID are kept. The task's list becomes current.
func (s *Store) UpdateTask(ctx context.Context, taskID string, fields service.TaskFields) (service.Task, error) {
	fields, err := normalizeFields(fields)
	if err != nil {
		return service.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(taskID)
	if i < 0 {
		return service.Task{}, &service.NotFoundError{Kind: "task", ID: taskID}
	}
	if s.listIndex(fields.ListID) < 0 {
		return service.Task{}, &service.NotFoundError{Kind: "list", ID: fields.ListID}
	}

	t := &s.tasks[i]
	t.Title = fields.Title
	t.Description = fields.Description
	t.DueDate = fields.DueDate
	t.DueTime = fields.DueTime
	t.ListID = fields.ListID
	s.currentListID = t.ListID
	s.log.Debug("updated task", zap.String("task_id", taskID), zap.String("list_id", t.ListID))

	return *t, s.persist(ctx)
}

// ToggleTaskComplete flips a task's completion state. For an unknown ID
// nothing is changed or written and a NotFoundError is returned.
func (s *Store) ToggleTaskComplete(ctx context.Context, taskID string) (service.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(taskID)
	if i < 0 {
		return service.Task{}, &service.NotFoundError{Kind: "task", ID: taskID}
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.log.Debug("toggled task", zap.String("task_id", taskID), zap.Bool("completed", s.tasks[i].Completed))

	return s.tasks[i], s.persist(ctx)
}

// DeleteTask removes a task if present and persists either way.
func (s *Store) DeleteTask(ctx context.Context, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.taskIndex(taskID); i >= 0 {
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
		s.log.Debug("deleted task", zap.String("task_id", taskID))
	}

	return s.persist(ctx)
}

// ListTasks returns the tasks of listID in display order.
func (s *Store) ListTasks(listID string, includeCompleted bool) []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasksFor(listID, includeCompleted)
}

// ListTasksForCurrentList returns the current list's tasks in display
// order, or nil when no list is selected.
func (s *Store) ListTasksForCurrentList(includeCompleted bool) []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasksFor(s.currentListID, includeCompleted)
}

func (s *Store) tasksFor(listID string, includeCompleted bool) []service.Task {
	if listID == "" {
		return nil
	}
	var out []service.Task
	for _, t := range s.tasks {
		if t.ListID != listID {
			continue
		}
		if t.Completed && !includeCompleted {
			continue
		}
		out = append(out, t)
	}
	SortTasks(out)
	return out
}

func (s *Store) taskIndex(id string) int {
	if id == "" {
		return -1
	}
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// normalizeFields trims the fields and validates title and schedule.
func normalizeFields(f service.TaskFields) (service.TaskFields, error) {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.DueDate = strings.TrimSpace(f.DueDate)
	f.DueTime = strings.TrimSpace(f.DueTime)
	f.ListID = strings.TrimSpace(f.ListID)

	if f.Title == "" {
		return f, &service.ValidationError{Field: "title", Reason: "required"}
	}
	if f.DueDate != "" {
		if _, err := time.Parse(dateLayout, f.DueDate); err != nil {
			return f, &service.ValidationError{Field: "due date", Reason: "expected YYYY-MM-DD, got " + f.DueDate}
		}
	}
	if f.DueTime != "" {
		if f.DueDate == "" {
			return f, &service.ValidationError{Field: "due time", Reason: "requires a due date"}
		}
		if _, err := time.Parse(timeLayout, f.DueTime); err != nil {
			return f, &service.ValidationError{Field: "due time", Reason: "expected HH:MM, got " + f.DueTime}
		}
	}
	return f, nil
}
