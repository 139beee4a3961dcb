package desktop

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/store"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
)

func positions(icons []Icon) map[id.IconID]types.Position {
	out := make(map[id.IconID]types.Position, len(icons))
	for _, icon := range icons {
		out[icon.ID] = icon.Position()
	}
	return out
}

func TestLoadDefaults(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	m := NewManager(st)

	icons, err := m.Load(ctx)
	require.NoError(t, err)

	// Recycle Bin is hidden; the rest are restacked without gaps.
	require.Len(t, icons, 7)
	want := map[id.IconID]types.Position{
		"3": {X: 32, Y: 32},
		"4": {X: 32, Y: 140},
		"5": {X: 32, Y: 248},
		"6": {X: 32, Y: 356},
		"8": {X: 160, Y: 32},
		"9": {X: 160, Y: 140},
		"7": {X: 160, Y: 248},
	}
	assert.Equal(t, want, positions(icons))

	var stored []Icon
	found, err := st.GetJSON(ctx, store.KeyDesktopIcons, &stored)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Len(t, stored, 7)
}

func TestLoadFiltersSystemIcons(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.SetJSON(ctx, store.KeyDesktopIcons, []Icon{
		{ID: "a", Label: "This PC", Icon: "pc", X: 32, Y: 32, Type: TypeSystem},
		{ID: "b", Label: "Trash", Icon: "recycle-bin", X: 32, Y: 140, Type: TypeSystem},
		{ID: "c", Label: "Notes", Icon: "notes", X: 32, Y: 500, Type: TypeApp},
		{ID: "d", Label: "Odd", Icon: "odd", X: 77, Y: 10, Type: TypeApp},
	}))

	icons, err := NewManager(st).Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, map[id.IconID]types.Position{
		"c": {X: 32, Y: 32},
		"d": {X: 32, Y: 140},
	}, positions(icons))
}

func TestLoadDiscardsLegacyEmojiIcons(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.SetJSON(ctx, store.KeyDesktopIcons, []Icon{
		{ID: "x", Label: "Old Folder", Icon: "\U0001F4C1", X: 32, Y: 32, Type: TypeFolder},
		{ID: "y", Label: "Kept?", Icon: "notes", X: 32, Y: 140, Type: TypeApp},
	}))

	icons, err := NewManager(st).Load(ctx)
	require.NoError(t, err)

	assert.Len(t, icons, 7)
	_, hasOld := positions(icons)["y"]
	assert.False(t, hasOld, "the whole legacy collection is replaced")
}

func TestLegacyEmoji(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"\U0001F4C1", true},
		{"\U0001F310x", true},
		{"folder", false},
		{"⚙️", false},
		{"abc\U0001F4C1", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, legacyEmoji(tt.value), "%q", tt.value)
	}
}

func TestNewFolder(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	m := NewManager(st)
	_, err := m.Load(ctx)
	require.NoError(t, err)

	icon, err := m.NewFolder(ctx)
	require.NoError(t, err)

	assert.Equal(t, "New Folder", icon.Label)
	assert.Equal(t, TypeFolder, icon.Type)
	assert.Equal(t, 32, icon.X)
	assert.Equal(t, 7*96+32, icon.Y)
	assert.Len(t, m.List(), 8)
	assert.True(t, Launchable(icon))
	assert.Equal(t, "explorer", AppFor(icon))
}

func TestMovePersistsOnlyThatIcon(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	m := NewManager(st)
	before, err := m.Load(ctx)
	require.NoError(t, err)

	target := before[2].ID
	moved, err := m.Move(ctx, target, 611, 233)
	require.NoError(t, err)
	require.True(t, moved)

	var stored []Icon
	_, err = st.GetJSON(ctx, store.KeyDesktopIcons, &stored)
	require.NoError(t, err)

	got := positions(stored)
	want := positions(before)
	want[target] = types.Position{X: 611, Y: 233}
	assert.Equal(t, want, got)
}

func TestMoveUnknownIsNoop(t *testing.T) {
	ctx := context.Background()
	m := NewManager(store.NewMemoryStore())
	before, err := m.Load(ctx)
	require.NoError(t, err)

	moved, err := m.Move(ctx, "nope", 1, 1)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, before, m.List())
}

func TestRefreshRelaysOutMovedIcons(t *testing.T) {
	ctx := context.Background()
	m := NewManager(store.NewMemoryStore())
	icons, err := m.Load(ctx)
	require.NoError(t, err)

	_, err = m.Move(ctx, icons[0].ID, 400, 400)
	require.NoError(t, err)

	refreshed, err := m.Refresh(ctx)
	require.NoError(t, err)
	for _, icon := range refreshed {
		assert.Contains(t, []int{ColumnLeft, ColumnRight}, icon.X)
	}
}

func TestAppFor(t *testing.T) {
	tests := []struct {
		icon Icon
		want string
	}{
		{Icon{ID: "3", Label: "File Explorer", Icon: "folder", Type: TypeApp}, "explorer"},
		{Icon{ID: "f", Label: "Stuff", Icon: "folder", Type: TypeFolder}, "explorer"},
		{Icon{ID: "4", Label: "Chrome", Icon: "chrome", Type: TypeApp}, "4"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AppFor(tt.icon))
	}

	assert.False(t, Launchable(Icon{Type: TypeSystem}))
	assert.False(t, Launchable(Icon{Type: TypeFile}))
}
