package store

import (
	"slices"
	"strings"
	"time"

	"todo/internal/service"
)

// SortTasks orders tasks for display, in place and stably:
// incomplete before completed, then dated tasks by ascending due date
// (time of day ignored), then undated tasks in their original order.
func SortTasks(tasks []service.Task) {
	slices.SortStableFunc(tasks, compareTasks)
}

func compareTasks(a, b service.Task) int {
	if a.Completed != b.Completed {
		if a.Completed {
			return 1
		}
		return -1
	}

	switch {
	case !a.HasDue() && !b.HasDue():
		return 0
	case !a.HasDue():
		return 1
	case !b.HasDue():
		return -1
	}
	return compareDates(a.DueDate, b.DueDate)
}

func compareDates(a, b string) int {
	da, errA := time.Parse(dateLayout, a)
	db, errB := time.Parse(dateLayout, b)
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	return da.Compare(db)
}
