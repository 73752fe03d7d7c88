package commands

import (
	"strconv"
	"strings"

	"todo/internal/service"
)

// ResolveTaskRef resolves a task reference from args.
//
// A reference is either a 1-based number into the current list's full
// ordering (incomplete tasks first, so the numbers printed by "todo list"
// stay valid), or a task ID or unique ID prefix across all lists.
func ResolveTaskRef(svc service.Service, args []string) (service.Task, error) {
	if len(args) == 0 {
		return service.Task{}, &service.ValidationError{Reason: "task reference required"}
	}
	if len(args) > 1 {
		return service.Task{}, &service.ValidationError{Reason: "unexpected argument: " + args[1]}
	}

	ref := strings.TrimSpace(args[0])
	if ref == "" {
		return service.Task{}, &service.ValidationError{Reason: "task reference required"}
	}

	if isAllDigits(ref) {
		return taskByNumber(svc, ref)
	}
	return taskByID(svc, ref)
}

func taskByNumber(svc service.Service, ref string) (service.Task, error) {
	num, err := strconv.Atoi(ref)
	if err != nil {
		return service.Task{}, &service.ValidationError{Reason: "invalid task reference: " + ref}
	}

	list, found := svc.CurrentList()
	if !found {
		return service.Task{}, errNoSelection
	}

	tasks := svc.ListTasks(list.ID, true)
	if num < 1 || num > len(tasks) {
		return service.Task{}, &service.ValidationError{Reason: "task number out of range: " + ref}
	}
	return tasks[num-1], nil
}

func taskByID(svc service.Service, ref string) (service.Task, error) {
	if task, err := svc.Task(ref); err == nil {
		return task, nil
	}

	var matches []service.Task
	for _, list := range svc.Lists() {
		for _, t := range svc.ListTasks(list.ID, true) {
			if strings.HasPrefix(t.ID, ref) {
				matches = append(matches, t)
			}
		}
	}

	switch len(matches) {
	case 0:
		return service.Task{}, &service.NotFoundError{Kind: "task", ID: ref}
	case 1:
		return matches[0], nil
	default:
		return service.Task{}, &service.AmbiguousError{Kind: "task reference", Name: ref}
	}
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
