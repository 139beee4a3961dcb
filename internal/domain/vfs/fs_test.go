package vfs

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/store"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/utils"
)

func newFS(t *testing.T) (*FS, *store.Store) {
	t.Helper()
	st := store.NewMemoryStore()
	f := New(st)
	require.NoError(t, f.Load(context.Background()))
	return f, st
}

func names(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}

func persisted(t *testing.T, st *store.Store) []Item {
	t.Helper()
	var items []Item
	found, err := st.GetJSON(context.Background(), store.KeyFileSystem, &items)
	require.NoError(t, err)
	require.True(t, found)
	return items
}

func TestDefaultTree(t *testing.T) {
	f, _ := newFS(t)

	all := f.All()
	require.Len(t, all, 1)
	assert.Equal(t, RootID, all[0].ID)
	assert.Nil(t, all[0].ParentID)
	assert.True(t, all[0].IsFolder())
	assert.Empty(t, f.Children(RootID))
}

func TestCreateFolderListedUnderRoot(t *testing.T) {
	ctx := context.Background()
	f, st := newFS(t)

	a, err := f.CreateFolder(ctx, "A", RootID)
	require.NoError(t, err)

	children := f.Children(RootID)
	require.Len(t, children, 1)
	assert.Equal(t, "A", children[0].Name)
	assert.Equal(t, a.ID, children[0].ID)
	assert.Equal(t, RootID, children[0].Parent())
	assert.Len(t, persisted(t, st), 2)
}

func TestCreateFileDerivesSizeAndMime(t *testing.T) {
	ctx := context.Background()
	f, _ := newFS(t)

	tests := []struct {
		name    string
		content string
		mime    string
	}{
		{"notes.txt", "hello world", "text/plain; charset=utf-8"},
		{"data.json", `{"a": 1}`, "application/json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := f.CreateFile(ctx, tt.name, tt.content, "")
			require.NoError(t, err)

			assert.Equal(t, TypeFile, item.Type)
			require.NotNil(t, item.Size)
			assert.Equal(t, int64(len(tt.content)), *item.Size)
			assert.Equal(t, tt.mime, item.MimeType)
			assert.Equal(t, RootID, item.Parent(), "empty parent means root")
		})
	}
}

func TestCreateValidatesParent(t *testing.T) {
	ctx := context.Background()
	f, _ := newFS(t)
	file, err := f.CreateFile(ctx, "a.txt", "x", RootID)
	require.NoError(t, err)

	_, err = f.CreateFolder(ctx, "B", "fs_missing")
	assert.ErrorIs(t, err, ErrParentNotFound)

	_, err = f.CreateFolder(ctx, "B", file.ID)
	assert.ErrorIs(t, err, ErrNotFolder)

	_, err = f.CreateFolder(ctx, "a/b", RootID)
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = f.CreateFolder(ctx, "<b></b>", RootID)
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = f.CreateFile(ctx, "big.bin", strings.Repeat("x", utils.MaxContentLength+1), RootID)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestCreateSanitizesName(t *testing.T) {
	f, _ := newFS(t)
	item, err := f.CreateFolder(context.Background(), "  <b>Reports</b> ", RootID)
	require.NoError(t, err)
	assert.Equal(t, "Reports", item.Name)
}

func TestIDsAreUniqueUnderRapidCreation(t *testing.T) {
	ctx := context.Background()
	f, _ := newFS(t)
	fixed := time.UnixMilli(1_700_000_000_000)
	f.now = func() time.Time { return fixed }

	seen := map[id.ItemID]bool{}
	for i := 0; i < 100; i++ {
		item, err := f.CreateFolder(ctx, "same", RootID)
		require.NoError(t, err)
		require.False(t, seen[item.ID])
		seen[item.ID] = true
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	f, _ := newFS(t)
	clock := time.UnixMilli(1_000)
	f.now = func() time.Time { return clock }

	file, err := f.CreateFile(ctx, "a.txt", "one", RootID)
	require.NoError(t, err)

	clock = clock.Add(time.Second)
	name, content := "b.txt", "three"
	updated, ok, err := f.Update(ctx, file.ID, Patch{Name: &name, Content: &content})
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "b.txt", updated.Name)
	assert.Equal(t, "three", *updated.Content)
	assert.Equal(t, int64(5), *updated.Size)
	assert.Equal(t, int64(1_000), updated.CreatedAt)
	assert.Equal(t, int64(2_000), updated.UpdatedAt)

	_, ok, err = f.Update(ctx, "fs_missing", Patch{Name: &name})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteRemovesAllDescendants(t *testing.T) {
	ctx := context.Background()
	f, st := newFS(t)

	a, err := f.CreateFolder(ctx, "A", RootID)
	require.NoError(t, err)
	b, err := f.CreateFolder(ctx, "B", a.ID)
	require.NoError(t, err)
	c, err := f.CreateFolder(ctx, "C", b.ID)
	require.NoError(t, err)
	_, err = f.CreateFile(ctx, "deep.txt", "x", c.ID)
	require.NoError(t, err)
	keep, err := f.CreateFile(ctx, "keep.txt", "x", RootID)
	require.NoError(t, err)

	removed, err := f.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, removed)

	assert.Equal(t, []string{"Root", "keep.txt"}, names(f.All()))
	assert.Equal(t, []string{"Root", "keep.txt"}, names(persisted(t, st)))
	_, ok := f.Get(keep.ID)
	assert.True(t, ok)
}

func TestDeleteEdgeCases(t *testing.T) {
	ctx := context.Background()
	f, _ := newFS(t)

	_, err := f.Delete(ctx, RootID)
	assert.ErrorIs(t, err, ErrRootProtected)

	removed, err := f.Delete(ctx, "fs_missing")
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestMove(t *testing.T) {
	ctx := context.Background()
	f, _ := newFS(t)

	a, _ := f.CreateFolder(ctx, "A", RootID)
	b, _ := f.CreateFolder(ctx, "B", a.ID)
	file, _ := f.CreateFile(ctx, "f.txt", "x", RootID)

	ok, err := f.Move(ctx, file.ID, b.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"f.txt"}, names(f.Children(b.ID)))

	tests := []struct {
		name   string
		item   id.ItemID
		parent id.ItemID
		want   error
	}{
		{"into itself", a.ID, a.ID, ErrCycle},
		{"into descendant", a.ID, b.ID, ErrCycle},
		{"into file", a.ID, file.ID, ErrNotFolder},
		{"into missing", a.ID, "fs_missing", ErrParentNotFound},
		{"root", RootID, a.ID, ErrRootProtected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.Move(ctx, tt.item, tt.parent)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	ok, err = f.Move(ctx, "fs_missing", RootID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoadLegacyDocument(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	legacy := `[
		{"id":"root","name":"Root","type":"folder","parentId":null,"childrenIds":[],"createdAt":1,"updatedAt":1},
		{"id":"1700000000000","name":"Docs","type":"folder","parentId":"root","childrenIds":["x"],"createdAt":2,"updatedAt":2},
		{"id":"1700000000001","name":"a.txt","type":"file","parentId":"1700000000000","content":"hi","createdAt":3,"updatedAt":3}
	]`
	require.NoError(t, st.SetString(ctx, store.KeyFileSystem, legacy))

	f := New(st)
	require.NoError(t, f.Load(ctx))

	assert.Equal(t, []string{"Docs"}, names(f.Children(RootID)))
	assert.Equal(t, []string{"a.txt"}, names(f.Children("1700000000000")))

	p, ok := f.Path("1700000000001")
	require.True(t, ok)
	assert.Equal(t, "/Docs/a.txt", p)
}

func TestLoadAddsMissingRootAndSurvivesCorruption(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	require.NoError(t, st.SetString(ctx, store.KeyFileSystem, `[{"id":"x","name":"X","type":"folder","parentId":"root","createdAt":1,"updatedAt":1}]`))
	f := New(st)
	require.NoError(t, f.Load(ctx))
	assert.Equal(t, []string{"X"}, names(f.Children(RootID)))

	require.NoError(t, st.SetString(ctx, store.KeyFileSystem, `{{{`))
	require.NoError(t, f.Load(ctx))
	assert.Len(t, f.All(), 1)
}

// failingBackend errors on every write
type failingBackend struct {
	*store.Memory
}

func (b *failingBackend) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("disk full")
}

func TestFailedWriteLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	f := New(store.New(&failingBackend{Memory: store.NewMemory()}))
	require.NoError(t, f.Load(ctx))

	_, err := f.CreateFolder(ctx, "A", RootID)
	require.Error(t, err)
	assert.Len(t, f.All(), 1)
}
