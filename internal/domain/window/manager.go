package window

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
)

// Manager owns the ordered window collection
type Manager struct {
	mu       sync.RWMutex
	windows  []*Window // Protected by mu; order is open order
	layout   Layout
	recorder Recorder
	notifier types.Notifier
	metrics  *monitoring.Metrics
	logger   *logging.Logger
}

// NewManager creates an empty window manager
func NewManager(layout Layout) *Manager {
	return &Manager{
		layout:   layout,
		notifier: types.Discard,
		logger:   logging.NewNop(),
	}
}

// WithRecorder sets the collaborator told about opened windows
func (m *Manager) WithRecorder(r Recorder) *Manager {
	m.recorder = r
	return m
}

// WithNotifier publishes the window list after every change
func (m *Manager) WithNotifier(n types.Notifier) *Manager {
	m.notifier = n
	return m
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// WithLogger sets the logger
func (m *Manager) WithLogger(l *logging.Logger) *Manager {
	m.logger = l.For("window")
	return m
}

// Open appends a window at the next cascade position and focuses it
func (m *Manager) Open(ctx context.Context, appID, title string, content types.Content, icon string) Window {
	m.mu.Lock()
	w := &Window{
		ID:       id.NewWindowID(),
		AppID:    appID,
		Title:    title,
		Icon:     icon,
		Content:  content,
		IsActive: true,
		Position: m.layout.cascade(len(m.windows)),
		Size:     m.layout.Default,
	}
	for _, other := range m.windows {
		other.IsActive = false
	}
	m.windows = append(m.windows, w)
	opened := *w
	m.changedLocked("open")
	m.mu.Unlock()

	m.logger.Debug("Window opened", zap.String("id", opened.ID.String()), zap.String("app", appID))
	if m.recorder != nil {
		m.recorder.Opened(ctx, opened)
	}
	return opened
}

// Close removes a window. If it was active, the new last window gets focus.
func (m *Manager) Close(wid id.WindowID) bool {
	m.mu.Lock()
	idx := m.indexOf(wid)
	if idx < 0 {
		m.mu.Unlock()
		return false
	}

	wasActive := m.windows[idx].IsActive
	m.windows = append(m.windows[:idx], m.windows[idx+1:]...)
	if wasActive && len(m.windows) > 0 {
		m.windows[len(m.windows)-1].IsActive = true
	}
	m.changedLocked("close")
	m.mu.Unlock()
	return true
}

// Minimize hides a window. Active flags are left as they are.
func (m *Manager) Minimize(wid id.WindowID) bool {
	return m.mutate(wid, "minimize", func(w *Window) {
		w.IsMinimized = true
	})
}

// Restore un-minimizes a window and gives it exclusive focus
func (m *Manager) Restore(wid id.WindowID) bool {
	return m.mutate(wid, "restore", func(w *Window) {
		w.IsMinimized = false
		m.focusLocked(w)
	})
}

// Focus gives a window exclusive focus without touching minimized state
func (m *Manager) Focus(wid id.WindowID) bool {
	return m.mutate(wid, "focus", m.focusLocked)
}

// Move sets a window's position. No viewport clamping.
func (m *Manager) Move(wid id.WindowID, x, y int) bool {
	return m.mutate(wid, "move", func(w *Window) {
		w.Position = types.Position{X: x, Y: y}
	})
}

// Resize sets a window's size, raised to the layout's minimum
func (m *Manager) Resize(wid id.WindowID, width, height int) bool {
	return m.mutate(wid, "resize", func(w *Window) {
		w.Size = types.Size{Width: width, Height: height}.ClampMin(m.layout.Min)
	})
}

// Get retrieves a window by id
func (m *Manager) Get(wid id.WindowID) (Window, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if idx := m.indexOf(wid); idx >= 0 {
		return *m.windows[idx], true
	}
	return Window{}, false
}

// List returns copies of all windows in open order
func (m *Manager) List() []Window {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

// Visible returns windows that are not minimized
func (m *Manager) Visible() []Window {
	m.mu.RLock()
	defer m.mu.RUnlock()

	visible := make([]Window, 0, len(m.windows))
	for _, w := range m.windows {
		if !w.IsMinimized {
			visible = append(visible, *w)
		}
	}
	return visible
}

// Active returns the focused window, if any
func (m *Manager) Active() (Window, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, w := range m.windows {
		if w.IsActive {
			return *w, true
		}
	}
	return Window{}, false
}

// Stats returns manager statistics
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Stats{Total: len(m.windows)}
	for _, w := range m.windows {
		if w.IsMinimized {
			s.Minimized++
		} else {
			s.Visible++
		}
		if w.IsActive {
			activeID := w.ID
			s.ActiveID = &activeID
		}
	}
	return s
}

// Reset drops every window, as a page reload would
func (m *Manager) Reset() {
	m.mu.Lock()
	m.windows = nil
	m.changedLocked("reset")
	m.mu.Unlock()
}

// mutate applies fn to one window under the lock and publishes the change
func (m *Manager) mutate(wid id.WindowID, op string, fn func(*Window)) bool {
	m.mu.Lock()
	idx := m.indexOf(wid)
	if idx < 0 {
		m.mu.Unlock()
		return false
	}
	fn(m.windows[idx])
	m.changedLocked(op)
	m.mu.Unlock()
	return true
}

// focusLocked marks w as the only active window (must hold lock)
func (m *Manager) focusLocked(w *Window) {
	for _, other := range m.windows {
		other.IsActive = other == w
	}
}

// indexOf finds a window's slot (must hold lock)
func (m *Manager) indexOf(wid id.WindowID) int {
	for i, w := range m.windows {
		if w.ID == wid {
			return i
		}
	}
	return -1
}

func (m *Manager) snapshotLocked() []Window {
	out := make([]Window, len(m.windows))
	for i, w := range m.windows {
		out[i] = *w
	}
	return out
}

// changedLocked records metrics and publishes the new window list (must
// hold lock, so events leave in the order the changes were made)
func (m *Manager) changedLocked(op string) {
	list := m.snapshotLocked()

	if m.metrics != nil {
		minimized := 0
		for _, w := range list {
			if w.IsMinimized {
				minimized++
			}
		}
		m.metrics.RecordWindowOp(op)
		m.metrics.SetWindows(len(list), minimized)
	}
	m.notifier.Notify(types.NewEvent(types.EventWindows, list))
}
