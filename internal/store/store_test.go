package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/kv"
	"todo/internal/service"
	"todo/internal/store"
	"todo/internal/testutil"
)

func ids(tasks []service.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestOpen_EmptyStateCreatesDefaultList(t *testing.T) {
	s, mem := testutil.NewStore(t)

	lists := s.Lists()
	require.Len(t, lists, 1)
	assert.Equal(t, "My Tasks", lists[0].Name)
	assert.Empty(t, s.ListTasksForCurrentList(true))

	current, ok := s.CurrentList()
	require.True(t, ok)
	assert.Equal(t, lists[0].ID, current.ID)

	// persisted immediately
	snap := mem.Snapshot()
	assert.Contains(t, snap[store.KeyLists], "My Tasks")
	assert.Equal(t, "[]", snap[store.KeyTasks])
	assert.Equal(t, lists[0].ID, snap[store.KeyCurrentList])
}

func TestOpen_DefaultListName(t *testing.T) {
	s, err := store.Open(context.Background(), kv.NewMemory(), store.Options{DefaultListName: "  Inbox "})
	require.NoError(t, err)

	lists := s.Lists()
	require.Len(t, lists, 1)
	assert.Equal(t, "Inbox", lists[0].Name)
}

func TestOpen_UnparseableEntriesTreatedAsAbsent(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(ctx, store.KeyLists, "{not json"))
	require.NoError(t, mem.Set(ctx, store.KeyTasks, "42"))

	s, err := store.Open(ctx, mem, store.Options{})
	require.NoError(t, err)

	assert.Len(t, s.Lists(), 1)
	assert.Empty(t, s.ListTasksForCurrentList(true))
}

func TestOpen_StaleSelectionIsUnset(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Apply(ctx,
		kv.Put(store.KeyLists, `[{"id":"a","name":"Work"}]`),
		kv.Put(store.KeyTasks, `[]`),
		kv.Put(store.KeyCurrentList, "gone"),
	))

	s, err := store.Open(ctx, mem, store.Options{})
	require.NoError(t, err)

	_, ok := s.CurrentList()
	assert.False(t, ok)
	assert.Nil(t, s.ListTasksForCurrentList(true))
	assert.Len(t, s.Lists(), 1)
}

func TestOpen_NullSelectionIsUnset(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Apply(ctx,
		kv.Put(store.KeyLists, `[{"id":"a","name":"Work"}]`),
		kv.Put(store.KeyCurrentList, "null"),
	))

	s, err := store.Open(ctx, mem, store.Options{})
	require.NoError(t, err)

	_, ok := s.CurrentList()
	assert.False(t, ok)
}

func TestOpen_DropsOrphanAndDuplicateTasks(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Apply(ctx,
		kv.Put(store.KeyLists, `[{"id":"a","name":"Work"}]`),
		kv.Put(store.KeyTasks, `[
			{"id":"t1","title":"keep","listId":"a","completed":false},
			{"id":"t1","title":"dup","listId":"a","completed":false},
			{"id":"t2","title":"orphan","listId":"zzz","completed":false}
		]`),
		kv.Put(store.KeyCurrentList, "a"),
	))

	s, err := store.Open(ctx, mem, store.Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"keep"}, ids(s.ListTasksForCurrentList(true)))

	// repair was written back
	assert.NotContains(t, mem.Snapshot()[store.KeyTasks], "orphan")
}

func TestOpen_ReadFailureIsPersistenceError(t *testing.T) {
	failing := testutil.NewFailingKV(kv.NewMemory())
	failing.GetErr = errors.New("disk gone")

	_, err := store.Open(context.Background(), failing, store.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrPersistence)

	var perr *service.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.EqualError(t, perr.Err, "disk gone")
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, mem := testutil.NewStore(t)

	work := testutil.AddList(t, s, "Work")
	testutil.AddTask(t, s, work.ID, "Report", "2024-03-01")
	home := testutil.AddList(t, s, "Home")
	task, err := s.CreateTask(ctx, service.TaskFields{
		Title:       "Dishes",
		Description: "after dinner",
		DueDate:     "2024-03-02",
		DueTime:     "19:30",
		ListID:      home.ID,
	})
	require.NoError(t, err)
	_, err = s.ToggleTaskComplete(ctx, task.ID)
	require.NoError(t, err)
	require.NoError(t, s.SelectList(ctx, work.ID))

	reopened, err := store.Open(ctx, mem, store.Options{})
	require.NoError(t, err)

	assert.Equal(t, s.Lists(), reopened.Lists())
	for _, l := range s.Lists() {
		assert.Equal(t, s.ListTasks(l.ID, true), reopened.ListTasks(l.ID, true))
	}
	cur1, _ := s.CurrentList()
	cur2, ok := reopened.CurrentList()
	require.True(t, ok)
	assert.Equal(t, cur1, cur2)
}

func TestRoundTrip_SerializedShape(t *testing.T) {
	ctx := context.Background()
	s, mem := testutil.NewStore(t)

	_, err := s.CreateTask(ctx, service.TaskFields{Title: "No date", ListID: testutil.DefaultListID})
	require.NoError(t, err)

	assert.JSONEq(t,
		`[{"id":"id2","title":"No date","description":"","listId":"id1","completed":false}]`,
		mem.Snapshot()[store.KeyTasks])
	assert.JSONEq(t, `[{"id":"id1","name":"My Tasks"}]`, mem.Snapshot()[store.KeyLists])
}

func TestCreateList(t *testing.T) {
	ctx := context.Background()
	s, _ := testutil.NewStore(t)

	before := s.Lists()
	list, err := s.CreateList(ctx, "  Groceries  ")
	require.NoError(t, err)

	assert.Equal(t, "Groceries", list.Name)
	for _, l := range before {
		assert.NotEqual(t, l.ID, list.ID)
	}
	assert.Contains(t, s.Lists(), list)

	current, _ := s.CurrentList()
	assert.Equal(t, list.ID, current.ID)
}

func TestCreateList_EmptyName(t *testing.T) {
	s, mem := testutil.NewStore(t)
	before := mem.Snapshot()

	_, err := s.CreateList(context.Background(), "   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrValidation)
	assert.Equal(t, before, mem.Snapshot())
	assert.Len(t, s.Lists(), 1)
}

func TestCreateList_IDCollisionRegenerates(t *testing.T) {
	seq := []string{"dup", "dup", "fresh"}
	next := func() string {
		id := seq[0]
		seq = seq[1:]
		return id
	}

	s, err := store.Open(context.Background(), kv.NewMemory(), store.Options{NewID: next})
	require.NoError(t, err)

	list, err := s.CreateList(context.Background(), "Second")
	require.NoError(t, err)
	assert.Equal(t, "fresh", list.ID)
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := store.NewID()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestRenameList(t *testing.T) {
	ctx := context.Background()
	s, _ := testutil.NewStore(t)
	work := testutil.AddList(t, s, "Work")
	task := testutil.AddTask(t, s, work.ID, "Report", "")

	renamed, err := s.RenameList(ctx, work.ID, " Office ")
	require.NoError(t, err)
	assert.Equal(t, work.ID, renamed.ID)
	assert.Equal(t, "Office", renamed.Name)

	got, err := s.Task(task.ID)
	require.NoError(t, err)
	assert.Equal(t, work.ID, got.ListID)
}

func TestRenameList_EmptyNameLeavesStateUnchanged(t *testing.T) {
	s, mem := testutil.NewStore(t)
	work := testutil.AddList(t, s, "Work")
	before := mem.Snapshot()
	lists := s.Lists()

	_, err := s.RenameList(context.Background(), work.ID, "\t ")
	assert.ErrorIs(t, err, service.ErrValidation)
	assert.Equal(t, before, mem.Snapshot())
	assert.Equal(t, lists, s.Lists())
}

func TestRenameList_NotFound(t *testing.T) {
	s, _ := testutil.NewStore(t)
	_, err := s.RenameList(context.Background(), "nope", "Name")
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.EqualError(t, err, "list not found: nope")
}

func TestSelectList(t *testing.T) {
	ctx := context.Background()
	s, mem := testutil.NewStore(t)
	testutil.AddList(t, s, "Work")

	require.NoError(t, s.SelectList(ctx, testutil.DefaultListID))
	current, _ := s.CurrentList()
	assert.Equal(t, testutil.DefaultListID, current.ID)
	assert.Equal(t, testutil.DefaultListID, mem.Snapshot()[store.KeyCurrentList])

	err := s.SelectList(ctx, "missing")
	assert.ErrorIs(t, err, service.ErrNotFound)
	current, _ = s.CurrentList()
	assert.Equal(t, testutil.DefaultListID, current.ID)
}

func TestResolveList(t *testing.T) {
	s, _ := testutil.NewStore(t)
	work := testutil.AddList(t, s, "Work")
	testutil.AddList(t, s, "Shop")
	testutil.AddList(t, s, "shop ")

	got, err := s.ResolveList("  WORK ")
	require.NoError(t, err)
	assert.Equal(t, work, got)

	_, err = s.ResolveList("shop")
	assert.ErrorIs(t, err, service.ErrAmbiguous)
	assert.EqualError(t, err, "ambiguous list name: shop")

	_, err = s.ResolveList("none")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestCreateTask(t *testing.T) {
	ctx := context.Background()
	s, _ := testutil.NewStore(t)

	task, err := s.CreateTask(ctx, service.TaskFields{
		Title:       "  Buy milk ",
		Description: " 2 litres ",
		DueDate:     "2024-05-01",
		DueTime:     "08:15",
		ListID:      testutil.DefaultListID,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, "2 litres", task.Description)
	assert.Equal(t, "2024-05-01", task.DueDate)
	assert.Equal(t, "08:15", task.DueTime)
	assert.False(t, task.Completed)

	got, err := s.Task(task.ID)
	require.NoError(t, err)
	assert.Equal(t, task, got)
}

func TestCreateTask_SwitchesCurrentList(t *testing.T) {
	ctx := context.Background()
	s, _ := testutil.NewStore(t)
	work := testutil.AddList(t, s, "Work")
	require.NoError(t, s.SelectList(ctx, testutil.DefaultListID))

	testutil.AddTask(t, s, work.ID, "Report", "")

	current, _ := s.CurrentList()
	assert.Equal(t, work.ID, current.ID)
}

func TestCreateTask_Validation(t *testing.T) {
	cases := []struct {
		name   string
		fields service.TaskFields
		target error
	}{
		{"empty title", service.TaskFields{Title: "  ", ListID: testutil.DefaultListID}, service.ErrValidation},
		{"bad date", service.TaskFields{Title: "x", DueDate: "01/02/2024", ListID: testutil.DefaultListID}, service.ErrValidation},
		{"bad time", service.TaskFields{Title: "x", DueDate: "2024-01-02", DueTime: "25:00", ListID: testutil.DefaultListID}, service.ErrValidation},
		{"time without date", service.TaskFields{Title: "x", DueTime: "10:00", ListID: testutil.DefaultListID}, service.ErrValidation},
		{"unknown list", service.TaskFields{Title: "x", ListID: "nope"}, service.ErrNotFound},
		{"missing list", service.TaskFields{Title: "x"}, service.ErrNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, mem := testutil.NewStore(t)
			before := mem.Snapshot()

			_, err := s.CreateTask(context.Background(), tc.fields)
			assert.ErrorIs(t, err, tc.target)
			assert.Equal(t, before, mem.Snapshot())
		})
	}
}

func TestUpdateTask(t *testing.T) {
	ctx := context.Background()
	s, _ := testutil.NewStore(t)
	work := testutil.AddList(t, s, "Work")
	task := testutil.AddTask(t, s, testutil.DefaultListID, "Draft", "2024-01-01")
	_, err := s.ToggleTaskComplete(ctx, task.ID)
	require.NoError(t, err)
	require.NoError(t, s.SelectList(ctx, testutil.DefaultListID))

	updated, err := s.UpdateTask(ctx, task.ID, service.TaskFields{
		Title:  "Final",
		ListID: work.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, task.ID, updated.ID)
	assert.Equal(t, "Final", updated.Title)
	assert.Equal(t, "", updated.DueDate)
	assert.Equal(t, work.ID, updated.ListID)
	assert.True(t, updated.Completed, "completed must be untouched")

	current, _ := s.CurrentList()
	assert.Equal(t, work.ID, current.ID)
}

func TestUpdateTask_EmptyTitleLeavesStateUnchanged(t *testing.T) {
	s, mem := testutil.NewStore(t)
	task := testutil.AddTask(t, s, testutil.DefaultListID, "Keep", "")
	before := mem.Snapshot()

	_, err := s.UpdateTask(context.Background(), task.ID, service.TaskFields{Title: " ", ListID: testutil.DefaultListID})
	assert.ErrorIs(t, err, service.ErrValidation)
	assert.Equal(t, before, mem.Snapshot())

	got, err := s.Task(task.ID)
	require.NoError(t, err)
	assert.Equal(t, task, got)
}

func TestUpdateTask_NotFound(t *testing.T) {
	s, _ := testutil.NewStore(t)
	_, err := s.UpdateTask(context.Background(), "ghost", service.TaskFields{Title: "x", ListID: testutil.DefaultListID})
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.EqualError(t, err, "task not found: ghost")
}

func TestToggleTaskComplete_Twice(t *testing.T) {
	ctx := context.Background()
	s, _ := testutil.NewStore(t)
	task := testutil.AddTask(t, s, testutil.DefaultListID, "Flip", "")

	first, err := s.ToggleTaskComplete(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, first.Completed)

	second, err := s.ToggleTaskComplete(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, second.Completed)
}

func TestToggleTaskComplete_MissingIsNoOp(t *testing.T) {
	s, mem := testutil.NewStore(t)
	before := mem.Snapshot()

	_, err := s.ToggleTaskComplete(context.Background(), "ghost")
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.Equal(t, before, mem.Snapshot())
}

func TestDeleteTask_Idempotent(t *testing.T) {
	ctx := context.Background()
	s, mem := testutil.NewStore(t)
	task := testutil.AddTask(t, s, testutil.DefaultListID, "Gone", "")
	testutil.AddTask(t, s, testutil.DefaultListID, "Stays", "")

	require.NoError(t, s.DeleteTask(ctx, task.ID))
	once := mem.Snapshot()

	require.NoError(t, s.DeleteTask(ctx, task.ID))
	assert.Equal(t, once, mem.Snapshot())
	assert.Equal(t, []string{"Stays"}, ids(s.ListTasksForCurrentList(true)))
}

func TestListTasksForCurrentList_Order(t *testing.T) {
	ctx := context.Background()
	s, _ := testutil.NewStore(t)

	testutil.AddTask(t, s, testutil.DefaultListID, "A", "2024-01-02")
	testutil.AddTask(t, s, testutil.DefaultListID, "B", "")
	testutil.AddTask(t, s, testutil.DefaultListID, "C", "2024-01-01")
	d := testutil.AddTask(t, s, testutil.DefaultListID, "D", "2024-01-01")
	_, err := s.ToggleTaskComplete(ctx, d.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"C", "A", "B"}, ids(s.ListTasksForCurrentList(false)))
	assert.Equal(t, []string{"C", "A", "B", "D"}, ids(s.ListTasksForCurrentList(true)))
}

func TestListTasksForCurrentList_StableWithinGroups(t *testing.T) {
	ctx := context.Background()
	s, _ := testutil.NewStore(t)

	testutil.AddTask(t, s, testutil.DefaultListID, "undated-1", "")
	_, err := s.CreateTask(ctx, service.TaskFields{Title: "late-in-day", DueDate: "2024-02-01", DueTime: "23:00", ListID: testutil.DefaultListID})
	require.NoError(t, err)
	testutil.AddTask(t, s, testutil.DefaultListID, "undated-2", "")
	_, err = s.CreateTask(ctx, service.TaskFields{Title: "early-in-day", DueDate: "2024-02-01", DueTime: "06:00", ListID: testutil.DefaultListID})
	require.NoError(t, err)

	// time of day does not affect order; ties keep insertion order
	assert.Equal(t,
		[]string{"late-in-day", "early-in-day", "undated-1", "undated-2"},
		ids(s.ListTasksForCurrentList(false)))
}

func TestListTasks_OnlyThatList(t *testing.T) {
	s, _ := testutil.NewStore(t)
	work := testutil.AddList(t, s, "Work")
	testutil.AddTask(t, s, work.ID, "W", "")
	testutil.AddTask(t, s, testutil.DefaultListID, "D", "")

	assert.Equal(t, []string{"W"}, ids(s.ListTasks(work.ID, true)))
	assert.Equal(t, []string{"D"}, ids(s.ListTasks(testutil.DefaultListID, true)))
	assert.Empty(t, s.ListTasks("nope", true))
}

func TestVisibleTasks_FollowsShowCompleted(t *testing.T) {
	ctx := context.Background()
	s, _ := testutil.NewStore(t)
	done := testutil.AddTask(t, s, testutil.DefaultListID, "Done", "")
	testutil.AddTask(t, s, testutil.DefaultListID, "Open", "")
	_, err := s.ToggleTaskComplete(ctx, done.ID)
	require.NoError(t, err)

	assert.False(t, s.ShowCompleted())
	assert.Equal(t, []string{"Open"}, ids(s.VisibleTasks()))

	s.SetShowCompleted(true)
	assert.Equal(t, []string{"Open", "Done"}, ids(s.VisibleTasks()))
}

func TestShowCompleted_NotPersisted(t *testing.T) {
	s, mem := testutil.NewStore(t)
	before := mem.Snapshot()

	s.SetShowCompleted(true)
	assert.Equal(t, before, mem.Snapshot())
}

func TestDeleteList(t *testing.T) {
	ctx := context.Background()

	t.Run("empty list", func(t *testing.T) {
		s, _ := testutil.NewStore(t)
		work := testutil.AddList(t, s, "Work")

		require.NoError(t, s.DeleteList(ctx, work.ID, false))
		assert.Len(t, s.Lists(), 1)

		current, ok := s.CurrentList()
		require.True(t, ok)
		assert.Equal(t, testutil.DefaultListID, current.ID)
	})

	t.Run("non-empty without force", func(t *testing.T) {
		s, mem := testutil.NewStore(t)
		work := testutil.AddList(t, s, "Work")
		testutil.AddTask(t, s, work.ID, "Report", "")
		before := mem.Snapshot()

		err := s.DeleteList(ctx, work.ID, false)
		assert.ErrorIs(t, err, service.ErrValidation)
		assert.Equal(t, before, mem.Snapshot())
	})

	t.Run("force cascades", func(t *testing.T) {
		s, _ := testutil.NewStore(t)
		work := testutil.AddList(t, s, "Work")
		task := testutil.AddTask(t, s, work.ID, "Report", "")
		keep := testutil.AddTask(t, s, testutil.DefaultListID, "Keep", "")

		require.NoError(t, s.DeleteList(ctx, work.ID, true))

		_, err := s.Task(task.ID)
		assert.ErrorIs(t, err, service.ErrNotFound)
		_, err = s.Task(keep.ID)
		assert.NoError(t, err)
	})

	t.Run("only list", func(t *testing.T) {
		s, _ := testutil.NewStore(t)
		err := s.DeleteList(ctx, testutil.DefaultListID, true)
		assert.ErrorIs(t, err, service.ErrValidation)
		assert.Len(t, s.Lists(), 1)
	})

	t.Run("unknown", func(t *testing.T) {
		s, _ := testutil.NewStore(t)
		err := s.DeleteList(ctx, "nope", true)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("non-current keeps selection", func(t *testing.T) {
		s, _ := testutil.NewStore(t)
		work := testutil.AddList(t, s, "Work")
		home := testutil.AddList(t, s, "Home")

		require.NoError(t, s.DeleteList(ctx, work.ID, false))
		current, _ := s.CurrentList()
		assert.Equal(t, home.ID, current.ID)
	})
}

func TestPersistenceFailure_KeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	failing := testutil.NewFailingKV(kv.NewMemory())
	s, err := store.Open(ctx, failing, store.Options{NewID: testutil.SeqIDs("id")})
	require.NoError(t, err)

	failing.FailWrites(errors.New("read-only filesystem"))

	list, err := s.CreateList(ctx, "Work")
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrPersistence)
	assert.Contains(t, err.Error(), "read-only filesystem")

	// in-memory state stays authoritative
	assert.Contains(t, s.Lists(), list)

	err = s.DeleteTask(ctx, "anything")
	assert.ErrorIs(t, err, service.ErrPersistence)
}

func TestOpen_PersistFailureOnDefaultList(t *testing.T) {
	failing := testutil.NewFailingKV(kv.NewMemory())
	failing.FailWrites(errors.New("no space"))

	_, err := store.Open(context.Background(), failing, store.Options{})
	assert.ErrorIs(t, err, service.ErrPersistence)
}

func TestClose(t *testing.T) {
	s, mem := testutil.NewStore(t)
	require.NoError(t, s.Close())

	_, _, err := mem.Get(context.Background(), store.KeyLists)
	assert.ErrorIs(t, err, kv.ErrClosed)
}
