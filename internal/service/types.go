// Package service defines the backend-agnostic interface for task operations.
package service

// TaskList is a named grouping of tasks.
type TaskList struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Task represents a single task item.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate,omitempty"` // YYYY-MM-DD or empty
	DueTime     string `json:"dueTime,omitempty"` // HH:MM or empty
	ListID      string `json:"listId"`
	Completed   bool   `json:"completed"`
}

// HasDue reports whether the task carries a due date.
func (t Task) HasDue() bool {
	return t.DueDate != ""
}

// TaskFields holds the user-editable fields of a task.
// Used for both creation and update.
type TaskFields struct {
	Title       string
	Description string
	DueDate     string
	DueTime     string
	ListID      string
}

// Fields returns the editable fields of t.
func (t Task) Fields() TaskFields {
	return TaskFields{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		DueTime:     t.DueTime,
		ListID:      t.ListID,
	}
}

// ImportedList is a task list read from an external source.
type ImportedList struct {
	Name  string
	Tasks []ImportedTask
}

// ImportedTask is a task read from an external source.
type ImportedTask struct {
	Title       string
	Description string
	DueDate     string
	Completed   bool
}
