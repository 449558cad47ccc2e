package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewStore(ctx, ttl)
}

func TestStoreLifecycle(t *testing.T) {
	store := newTestStore(t, time.Hour)

	task := &Task{ID: "task-1", Status: StatusPending, SubmittedAt: time.Now()}
	require.NoError(t, store.Put(task))

	got, ok := store.Get("task-1")
	require.True(t, ok)
	assert.Equal(t, StatusPending, got.Status)

	store.SetStatus("task-1", StatusStarted, "", "")
	got, _ = store.Get("task-1")
	assert.Equal(t, StatusStarted, got.Status)
	assert.True(t, got.FinishedAt.IsZero())

	store.SetStatus("task-1", StatusSuccess, "menu.xlsx", "")
	got, _ = store.Get("task-1")
	assert.Equal(t, StatusSuccess, got.Status)
	assert.Equal(t, "menu.xlsx", got.FileName)
	assert.False(t, got.FinishedAt.IsZero())
}

func TestStoreGetReturnsCopy(t *testing.T) {
	store := newTestStore(t, time.Hour)
	require.NoError(t, store.Put(&Task{ID: "task-1", Status: StatusPending, SubmittedAt: time.Now()}))

	got, ok := store.Get("task-1")
	require.True(t, ok)
	got.Status = StatusFailure

	again, ok := store.Get("task-1")
	require.True(t, ok)
	assert.Equal(t, StatusPending, again.Status)
}

func TestStoreUnknownAndInvalid(t *testing.T) {
	store := newTestStore(t, time.Hour)

	_, ok := store.Get("missing")
	assert.False(t, ok)

	assert.Error(t, store.Put(nil))
	assert.Error(t, store.Put(&Task{}))

	// SetStatus on an unknown id is a no-op.
	store.SetStatus("missing", StatusSuccess, "x", "")
}

func TestStoreExpiry(t *testing.T) {
	store := newTestStore(t, 20*time.Millisecond)
	require.NoError(t, store.Put(&Task{ID: "task-1", Status: StatusSuccess, SubmittedAt: time.Now()}))

	_, ok := store.Get("task-1")
	require.True(t, ok)

	time.Sleep(40 * time.Millisecond)
	_, ok = store.Get("task-1")
	assert.False(t, ok)
}
