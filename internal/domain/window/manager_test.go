package window

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
)

func open(m *Manager, appID string) Window {
	return m.Open(context.Background(), appID, appID, types.Content{Kind: types.ContentPlaceholder}, "")
}

func activeIDs(m *Manager) []id.WindowID {
	var ids []id.WindowID
	for _, w := range m.List() {
		if w.IsActive {
			ids = append(ids, w.ID)
		}
	}
	return ids
}

func TestOpenCascadesAndFocuses(t *testing.T) {
	m := NewManager(DefaultLayout())

	w1 := open(m, "mail")
	w2 := open(m, "photos")
	w3 := open(m, "music")

	assert.Equal(t, types.Position{X: 100, Y: 100}, w1.Position)
	assert.Equal(t, types.Position{X: 130, Y: 130}, w2.Position)
	assert.Equal(t, types.Position{X: 160, Y: 160}, w3.Position)
	assert.Equal(t, types.Size{Width: 800, Height: 600}, w3.Size)

	assert.Equal(t, []id.WindowID{w3.ID}, activeIDs(m))
}

func TestOpenRecordsRecentItem(t *testing.T) {
	var opened []Window
	m := NewManager(DefaultLayout()).WithRecorder(RecorderFunc(func(_ context.Context, w Window) {
		opened = append(opened, w)
	}))

	w := m.Open(context.Background(), "calendar", "Calendar", types.Content{Kind: types.ContentPlaceholder}, "calendar")

	require.Len(t, opened, 1)
	assert.Equal(t, w.ID, opened[0].ID)
	assert.Equal(t, "Calendar", opened[0].Title)
}

func TestCloseActiveFocusesNewLast(t *testing.T) {
	m := NewManager(DefaultLayout())
	w1 := open(m, "a")
	w2 := open(m, "b")
	w3 := open(m, "c")

	require.True(t, m.Close(w3.ID))
	assert.Equal(t, []id.WindowID{w2.ID}, activeIDs(m))

	require.True(t, m.Close(w2.ID))
	assert.Equal(t, []id.WindowID{w1.ID}, activeIDs(m))

	require.True(t, m.Close(w1.ID))
	assert.Empty(t, m.List())
	_, ok := m.Active()
	assert.False(t, ok)
}

func TestCloseInactiveKeepsFocus(t *testing.T) {
	m := NewManager(DefaultLayout())
	w1 := open(m, "a")
	w2 := open(m, "b")

	require.True(t, m.Close(w1.ID))
	assert.Equal(t, []id.WindowID{w2.ID}, activeIDs(m))
}

func TestMinimizeAndRestore(t *testing.T) {
	m := NewManager(DefaultLayout())
	w1 := open(m, "a")
	w2 := open(m, "b")

	require.True(t, m.Minimize(w2.ID))

	visible := m.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, w1.ID, visible[0].ID)
	assert.Len(t, m.List(), 2, "minimized windows stay in the collection")

	got, ok := m.Get(w2.ID)
	require.True(t, ok)
	assert.True(t, got.IsActive, "minimize leaves the active flag alone")

	require.True(t, m.Focus(w1.ID))
	require.True(t, m.Restore(w2.ID))
	assert.Len(t, m.Visible(), 2)
	assert.Equal(t, []id.WindowID{w2.ID}, activeIDs(m))
}

func TestFocusKeepsMinimizedState(t *testing.T) {
	m := NewManager(DefaultLayout())
	w1 := open(m, "a")
	open(m, "b")

	require.True(t, m.Minimize(w1.ID))
	require.True(t, m.Focus(w1.ID))

	got, _ := m.Get(w1.ID)
	assert.True(t, got.IsMinimized)
	assert.True(t, got.IsActive)
	assert.Equal(t, []id.WindowID{w1.ID}, activeIDs(m))
}

func TestMoveAndResize(t *testing.T) {
	m := NewManager(DefaultLayout())
	w := open(m, "a")

	tests := []struct {
		name          string
		width, height int
		want          types.Size
	}{
		{"larger", 1024, 768, types.Size{Width: 1024, Height: 768}},
		{"below floor", 100, 50, types.Size{Width: 400, Height: 300}},
		{"width only below floor", 200, 500, types.Size{Width: 400, Height: 500}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, m.Resize(w.ID, tt.width, tt.height))
			got, _ := m.Get(w.ID)
			assert.Equal(t, tt.want, got.Size)
		})
	}

	require.True(t, m.Move(w.ID, -50, 5000))
	got, _ := m.Get(w.ID)
	assert.Equal(t, types.Position{X: -50, Y: 5000}, got.Position)
}

func TestUnknownIDIsNoop(t *testing.T) {
	m := NewManager(DefaultLayout())
	w := open(m, "a")
	before := m.List()

	missing := id.WindowID("win_missing")
	assert.False(t, m.Close(missing))
	assert.False(t, m.Minimize(missing))
	assert.False(t, m.Restore(missing))
	assert.False(t, m.Focus(missing))
	assert.False(t, m.Move(missing, 1, 1))
	assert.False(t, m.Resize(missing, 1, 1))

	assert.Equal(t, before, m.List())
	assert.Equal(t, []id.WindowID{w.ID}, activeIDs(m))
}

func TestStatsAndReset(t *testing.T) {
	metrics := monitoring.NewMetrics()
	var events []types.Event
	m := NewManager(DefaultLayout()).
		WithMetrics(metrics).
		WithNotifier(types.NotifierFunc(func(e types.Event) { events = append(events, e) }))

	open(m, "a")
	w2 := open(m, "b")
	m.Minimize(w2.ID)

	s := m.Stats()
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 1, s.Visible)
	assert.Equal(t, 1, s.Minimized)
	require.NotNil(t, s.ActiveID)
	assert.Equal(t, w2.ID, *s.ActiveID)
	assert.Equal(t, int64(2), metrics.Snapshot().OpenWindows)

	m.Reset()
	assert.Empty(t, m.List())
	assert.Equal(t, int64(0), metrics.Snapshot().OpenWindows)

	require.Len(t, events, 4)
	assert.Equal(t, types.EventWindows, events[3].Type)
}

func TestLastPublishedListMatchesState(t *testing.T) {
	var (
		mu   sync.Mutex
		last []Window
	)
	m := NewManager(DefaultLayout()).
		WithNotifier(types.NotifierFunc(func(e types.Event) {
			mu.Lock()
			defer mu.Unlock()
			last = e.Payload.([]Window)
		}))

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				w := open(m, "app")
				m.Move(w.ID, g, i)
				if i%3 == 0 {
					m.Close(w.ID)
				}
			}
		}(g)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, m.List(), last)
}

func TestCustomLayout(t *testing.T) {
	m := NewManager(Layout{
		Base:    types.Position{X: 10, Y: 20},
		Offset:  5,
		Default: types.Size{Width: 300, Height: 200},
		Min:     types.Size{Width: 100, Height: 100},
	})
	open(m, "a")
	w := open(m, "b")

	assert.Equal(t, types.Position{X: 15, Y: 25}, w.Position)
	require.True(t, m.Resize(w.ID, 50, 150))
	got, _ := m.Get(w.ID)
	assert.Equal(t, types.Size{Width: 100, Height: 150}, got.Size)
}
