package store

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestTaskRoundTrip(t *testing.T) {
	s := newTestStore(t)

	task := Task{
		ID:        s.NextID("task"),
		OwnerID:   "u1",
		Text:      "buy milk",
		DueAt:     time.Date(2026, 3, 10, 17, 30, 0, 0, time.UTC),
		CreatedAt: time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.SaveTask(task))

	got, err := s.GetTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Text, got.Text)
	assert.True(t, task.DueAt.Equal(got.DueAt))
}

func TestGetTaskAbsent(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetTask("missing")
	assert.True(t, os.IsNotExist(err))
}

func TestListTasksFiltersOwnerAndSortsByDue(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveTask(Task{ID: "t1", OwnerID: "u1", Text: "later", DueAt: base.Add(2 * time.Hour)}))
	require.NoError(t, s.SaveTask(Task{ID: "t2", OwnerID: "u1", Text: "sooner", DueAt: base.Add(time.Hour)}))
	require.NoError(t, s.SaveTask(Task{ID: "t3", OwnerID: "u2", Text: "other owner", DueAt: base}))

	tasks, err := s.ListTasks("u1")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "sooner", tasks[0].Text)
	assert.Equal(t, "later", tasks[1].Text)
}

func TestDeleteTaskIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveTask(Task{ID: "t1", OwnerID: "u1", Text: "x"}))
	require.NoError(t, s.DeleteTask("t1"))
	require.NoError(t, s.DeleteTask("t1"))

	tasks, err := s.ListTasks("u1")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestHabitsSortByCreation(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveHabit(Habit{ID: "h2", OwnerID: "u1", Text: "second", CreatedAt: base.Add(time.Minute)}))
	require.NoError(t, s.SaveHabit(Habit{ID: "h1", OwnerID: "u1", Text: "first", CreatedAt: base}))

	habits, err := s.ListHabits("u1")
	require.NoError(t, err)
	require.Len(t, habits, 2)
	assert.Equal(t, "first", habits[0].Text)
}

func TestEnsureUserCreatesOnce(t *testing.T) {
	s := newTestStore(t)

	u1, err := s.EnsureUser("u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", u1.ID)
	assert.False(t, u1.CreatedAt.IsZero())

	u2, err := s.EnsureUser("u1")
	require.NoError(t, err)
	assert.True(t, u1.CreatedAt.Equal(u2.CreatedAt))
}

func TestSaveRejectsEmptyID(t *testing.T) {
	s := newTestStore(t)
	assert.Error(t, s.SaveTask(Task{OwnerID: "u1", Text: "no id"}))
}

func TestNextIDIsUnique(t *testing.T) {
	s := newTestStore(t)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := s.NextID("task")
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
