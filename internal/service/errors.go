package service

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below via errors.Is.
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrAmbiguous   = errors.New("ambiguous")
	ErrPersistence = errors.New("persistence failed")
)

// ValidationError reports a rejected input. No state was changed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError reports a reference to an entity that does not exist.
type NotFoundError struct {
	Kind string // "list" or "task"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// AmbiguousError reports a name or reference that matches more than one
// entity.
type AmbiguousError struct {
	Kind string // e.g. "list name", "task reference"
	Name string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous %s: %s", e.Kind, e.Name)
}

func (e *AmbiguousError) Is(target error) bool { return target == ErrAmbiguous }

// PersistenceError reports a failed read or write of the underlying store.
// For writes the in-memory state has already been changed and stays
// authoritative for the rest of the session.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// IsUserError reports whether err was caused by user input rather than
// the storage backend.
func IsUserError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrAmbiguous)
}
