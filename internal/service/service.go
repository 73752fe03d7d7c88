// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task store operations.
// Commands only talk to this interface; they never touch persistence directly.
//
// Read methods return copies of the in-memory state. Mutating methods
// persist before returning.
type Service interface {
	// Lists returns all task lists in creation order.
	Lists() []TaskList

	// List returns the list with the given ID.
	List(id string) (TaskList, error)

	// CurrentList returns the selected list, if any.
	CurrentList() (TaskList, bool)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns NotFoundError or AmbiguousError.
	ResolveList(name string) (TaskList, error)

	// CreateList creates a new list and selects it.
	CreateList(ctx context.Context, name string) (TaskList, error)

	// RenameList changes the name of an existing list.
	RenameList(ctx context.Context, listID, name string) (TaskList, error)

	// SelectList makes listID the current list.
	SelectList(ctx context.Context, listID string) error

	// DeleteList removes a list. Lists that still hold tasks are only
	// removed with force, which also deletes their tasks.
	DeleteList(ctx context.Context, listID string, force bool) error

	// Task returns the task with the given ID.
	Task(id string) (Task, error)

	// CreateTask creates a task and selects its list.
	CreateTask(ctx context.Context, fields TaskFields) (Task, error)

	// UpdateTask overwrites the editable fields of a task.
	UpdateTask(ctx context.Context, taskID string, fields TaskFields) (Task, error)

	// ToggleTaskComplete flips the completion state of a task.
	ToggleTaskComplete(ctx context.Context, taskID string) (Task, error)

	// DeleteTask removes a task. Deleting a missing task is not an error.
	DeleteTask(ctx context.Context, taskID string) error

	// ListTasks returns the tasks of a list in display order.
	ListTasks(listID string, includeCompleted bool) []Task

	// ListTasksForCurrentList returns the tasks of the current list in
	// display order, or nil if no list is selected.
	ListTasksForCurrentList(includeCompleted bool) []Task

	// ShowCompleted reports the session display filter.
	ShowCompleted() bool

	// SetShowCompleted sets the session display filter. Never persisted.
	SetShowCompleted(show bool)

	// VisibleTasks is ListTasksForCurrentList(ShowCompleted()).
	VisibleTasks() []Task

	// Close releases the underlying storage.
	Close() error
}
