package shell

import (
	"sync"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
)

// ContextMenu is an open desktop context menu anchored at (X, Y)
type ContextMenu struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// SurfaceState says which transient surfaces are open
type SurfaceState struct {
	Start         bool         `json:"start"`
	Widgets       bool         `json:"widgets"`
	Notifications bool         `json:"notifications"`
	ContextMenu   *ContextMenu `json:"contextMenu,omitempty"`
}

// Surfaces tracks the start menu, widgets panel, notification panel and
// desktop context menu. At most one of the three panels is open.
type Surfaces struct {
	mu       sync.Mutex
	state    SurfaceState
	notifier types.Notifier
}

// NewSurfaces creates a set with everything closed
func NewSurfaces() *Surfaces {
	return &Surfaces{notifier: types.Discard}
}

// WithNotifier publishes surface changes
func (s *Surfaces) WithNotifier(n types.Notifier) *Surfaces {
	s.notifier = n
	return s
}

// State returns the current surface state
func (s *Surfaces) State() SurfaceState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

// ToggleStart flips the start menu and closes the other panels
func (s *Surfaces) ToggleStart() SurfaceState {
	return s.update(func(st *SurfaceState) {
		open := !st.Start
		*st = SurfaceState{Start: open, ContextMenu: st.ContextMenu}
	})
}

// ToggleWidgets flips the widgets panel and closes the other panels
func (s *Surfaces) ToggleWidgets() SurfaceState {
	return s.update(func(st *SurfaceState) {
		open := !st.Widgets
		*st = SurfaceState{Widgets: open, ContextMenu: st.ContextMenu}
	})
}

// ToggleNotifications flips the notification panel and closes the others
func (s *Surfaces) ToggleNotifications() SurfaceState {
	return s.update(func(st *SurfaceState) {
		open := !st.Notifications
		*st = SurfaceState{Notifications: open, ContextMenu: st.ContextMenu}
	})
}

// OpenContextMenu shows the desktop context menu at (x, y)
func (s *Surfaces) OpenContextMenu(x, y int) SurfaceState {
	return s.update(func(st *SurfaceState) {
		st.ContextMenu = &ContextMenu{X: x, Y: y}
	})
}

// CloseContextMenu hides the context menu only
func (s *Surfaces) CloseContextMenu() SurfaceState {
	return s.update(func(st *SurfaceState) {
		st.ContextMenu = nil
	})
}

// CloseAll closes every surface
func (s *Surfaces) CloseAll() {
	s.update(func(st *SurfaceState) {
		*st = SurfaceState{}
	})
}

func (s *Surfaces) update(fn func(*SurfaceState)) SurfaceState {
	s.mu.Lock()
	fn(&s.state)
	out := s.copyLocked()
	s.mu.Unlock()

	s.notifier.Notify(types.NewEvent(types.EventSurfaces, out))
	return out
}

func (s *Surfaces) copyLocked() SurfaceState {
	out := s.state
	if out.ContextMenu != nil {
		menu := *out.ContextMenu
		out.ContextMenu = &menu
	}
	return out
}
