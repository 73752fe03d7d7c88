// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"todo/internal/kv"
	"todo/internal/service"
	"todo/internal/store"
)

// SeqIDs returns an ID generator yielding prefix1, prefix2, ...
func SeqIDs(prefix string) func() string {
	var (
		mu sync.Mutex
		n  int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

// DefaultListID is the ID of the default list created by NewStore.
const DefaultListID = "id1"

// NewStore opens a Store over a fresh in-memory kv with sequential IDs
// ("id1", "id2", ...). The default list "My Tasks" has ID DefaultListID.
func NewStore(t testing.TB) (*store.Store, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	s, err := store.Open(context.Background(), mem, store.Options{NewID: SeqIDs("id")})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	return s, mem
}

// AddList creates a list and fails the test on error.
func AddList(t testing.TB, svc service.Service, name string) service.TaskList {
	t.Helper()
	list, err := svc.CreateList(context.Background(), name)
	if err != nil {
		t.Fatalf("failed to create list %q: %v", name, err)
	}
	return list
}

// AddTask creates a task and fails the test on error.
func AddTask(t testing.TB, svc service.Service, listID, title, dueDate string) service.Task {
	t.Helper()
	task, err := svc.CreateTask(context.Background(), service.TaskFields{
		Title:   title,
		DueDate: dueDate,
		ListID:  listID,
	})
	if err != nil {
		t.Fatalf("failed to create task %q: %v", title, err)
	}
	return task
}

// FailingKV wraps a kv.Store and injects errors for testing.
type FailingKV struct {
	kv.Store

	mu       sync.Mutex
	GetErr   error
	ApplyErr error
}

// NewFailingKV wraps base.
func NewFailingKV(base kv.Store) *FailingKV {
	return &FailingKV{Store: base}
}

// FailWrites makes every subsequent write return err (nil to stop).
func (f *FailingKV) FailWrites(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ApplyErr = err
}

func (f *FailingKV) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	err := f.GetErr
	f.mu.Unlock()
	if err != nil {
		return "", false, err
	}
	return f.Store.Get(ctx, key)
}

func (f *FailingKV) Set(ctx context.Context, key, value string) error {
	return f.Apply(ctx, kv.Put(key, value))
}

func (f *FailingKV) Delete(ctx context.Context, key string) error {
	return f.Apply(ctx, kv.Del(key))
}

func (f *FailingKV) Apply(ctx context.Context, ops ...kv.Op) error {
	f.mu.Lock()
	err := f.ApplyErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Store.Apply(ctx, ops...)
}
