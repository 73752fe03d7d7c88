// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todo/internal/service"
)

const (
	// EmptyList is printed when the selected list has no visible tasks.
	EmptyList = "no tasks in this list"

	// NoSelection is printed when no list is selected.
	NoSelection = "select a list to view tasks"
)

// FormatTask formats a task line and its description.
// Format: "{N:>4}  [x] {TITLE}  (due {DATE} {TIME})\n", followed by the
// description lines indented by 10 spaces.
func FormatTask(w io.Writer, num int, task service.Task) {
	box := " "
	if task.Completed {
		box = "x"
	}
	line := fmt.Sprintf("%4d  [%s] %s", num, box, normalizeTitle(task.Title))
	if due := FormatDue(task); due != "" {
		line += "  (due " + due + ")"
	}
	fmt.Fprintln(w, line)

	desc := strings.TrimSpace(task.Description)
	if desc == "" {
		return
	}
	for _, l := range strings.Split(strings.ReplaceAll(desc, "\r\n", "\n"), "\n") {
		fmt.Fprintf(w, "          %s\n", strings.TrimRight(l, " \t"))
	}
}

// FormatDue returns "DATE" or "DATE TIME", or "" for undated tasks.
func FormatDue(task service.Task) string {
	if !task.HasDue() {
		return ""
	}
	if task.DueTime != "" {
		return task.DueDate + " " + task.DueTime
	}
	return task.DueDate
}

// FormatListHeader formats a list section header.
func FormatListHeader(w io.Writer, name string) {
	fmt.Fprintf(w, "== %s ==\n", normalizeListName(name))
}

// FormatListName formats a list name for the lists command.
// The current list is marked with "*".
func FormatListName(w io.Writer, list service.TaskList, current bool) {
	mark := " "
	if current {
		mark = "*"
	}
	fmt.Fprintf(w, "%s %s\n", mark, normalizeListName(list.Name))
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

// normalizeListName normalizes a list name for display.
func normalizeListName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "(untitled)"
	}
	return name
}
