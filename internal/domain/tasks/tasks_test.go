package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/store"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
)

func TestAddPrepends(t *testing.T) {
	ctx := context.Background()
	m := NewManager(store.NewMemoryStore())

	_, err := m.Add(ctx, "first")
	require.NoError(t, err)
	second, err := m.Add(ctx, "  second ")
	require.NoError(t, err)
	assert.Equal(t, "second", second.Title)

	list, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Title)
	assert.Equal(t, "first", list[1].Title)

	_, err = m.Add(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidTitle)
}

func TestToggleRenameDelete(t *testing.T) {
	ctx := context.Background()
	m := NewManager(store.NewMemoryStore())
	clock := time.UnixMilli(1_000)
	m.now = func() time.Time { return clock }

	var events int
	m.WithNotifier(types.NotifierFunc(func(types.Event) { events++ }))

	task, err := m.Add(ctx, "write report")
	require.NoError(t, err)

	clock = clock.Add(time.Minute)
	toggled, ok, err := m.Toggle(ctx, task.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, toggled.Completed)
	assert.Equal(t, clock.UnixMilli(), toggled.UpdatedAt)
	assert.Equal(t, int64(1_000), toggled.CreatedAt)

	renamed, ok, err := m.Rename(ctx, task.ID, "write the report")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "write the report", renamed.Title)
	assert.True(t, renamed.Completed)

	_, ok, err = m.Toggle(ctx, "task_missing")
	require.NoError(t, err)
	assert.False(t, ok)

	deleted, err := m.Delete(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = m.Delete(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	assert.Equal(t, 4, events)
}
