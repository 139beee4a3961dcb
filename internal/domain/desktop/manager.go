package desktop

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/store"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
)

// Manager owns the desktop icon collection
type Manager struct {
	mu       sync.RWMutex
	icons    []Icon
	store    *store.Store
	notifier types.Notifier
	logger   *logging.Logger
}

// NewManager creates a manager; call Load before use
func NewManager(st *store.Store) *Manager {
	return &Manager{
		store:    st,
		notifier: types.Discard,
		logger:   logging.NewNop(),
	}
}

// WithNotifier publishes icon changes
func (m *Manager) WithNotifier(n types.Notifier) *Manager {
	m.notifier = n
	return m
}

// WithLogger sets the logger
func (m *Manager) WithLogger(l *logging.Logger) *Manager {
	m.logger = l.For("desktop")
	return m
}

// Load reads icons from storage (or defaults), migrates legacy emoji
// collections, hides retired system icons and relays the rest into two
// gap-free columns.
func (m *Manager) Load(ctx context.Context) ([]Icon, error) {
	var stored []Icon
	found, err := m.store.Load(ctx, store.KeyDesktopIcons, &stored)
	if err != nil {
		return nil, err
	}

	if found && hasLegacyIcons(stored) {
		m.logger.Info("Discarding legacy emoji icons", zap.Int("count", len(stored)))
		if err := m.store.Delete(ctx, store.KeyDesktopIcons); err != nil {
			return nil, err
		}
		found = false
	}
	if !found || stored == nil {
		stored = DefaultIcons()
	}

	icons := relayout(stored)

	m.mu.Lock()
	m.icons = icons
	m.mu.Unlock()

	if err := m.persist(ctx); err != nil {
		return nil, err
	}
	return m.List(), nil
}

// Refresh re-reads icons from storage
func (m *Manager) Refresh(ctx context.Context) ([]Icon, error) {
	return m.Load(ctx)
}

// List returns the current icons
func (m *Manager) List() []Icon {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Icon(nil), m.icons...)
}

// Get finds an icon by id
func (m *Manager) Get(iid id.IconID) (Icon, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, icon := range m.icons {
		if icon.ID == iid {
			return icon, true
		}
	}
	return Icon{}, false
}

// NewFolder appends a "New Folder" icon in the left column
func (m *Manager) NewFolder(ctx context.Context) (Icon, error) {
	m.mu.Lock()
	icon := Icon{
		ID:    id.NewIconID(),
		Label: "New Folder",
		Icon:  "folder",
		X:     ColumnLeft,
		Y:     len(m.icons)*NewFolderGap + RowTop,
		Type:  TypeFolder,
	}
	m.icons = append(m.icons, icon)
	m.mu.Unlock()

	return icon, m.persist(ctx)
}

// Move persists a drag release: exactly (x, y) for that icon, others
// untouched. Unknown ids are a no-op.
func (m *Manager) Move(ctx context.Context, iid id.IconID, x, y int) (bool, error) {
	m.mu.Lock()
	moved := false
	for i := range m.icons {
		if m.icons[i].ID == iid {
			m.icons[i].X = x
			m.icons[i].Y = y
			moved = true
			break
		}
	}
	m.mu.Unlock()

	if !moved {
		return false, nil
	}
	return true, m.persist(ctx)
}

// persist writes non-empty collections and publishes them
func (m *Manager) persist(ctx context.Context) error {
	icons := m.List()
	if len(icons) == 0 {
		return nil
	}
	if err := m.store.SetJSON(ctx, store.KeyDesktopIcons, icons); err != nil {
		return err
	}
	m.notifier.Notify(types.NewEvent(types.EventIcons, icons))
	return nil
}

func hasLegacyIcons(icons []Icon) bool {
	for _, icon := range icons {
		if legacyEmoji(icon.Icon) {
			return true
		}
	}
	return false
}

// relayout drops hidden icons and stacks the rest in two columns,
// keeping each icon in the column it was in (right column only when its
// x is exactly ColumnRight).
func relayout(in []Icon) []Icon {
	icons := make([]Icon, 0, len(in))
	for _, icon := range in {
		if !hidden(icon) {
			icons = append(icons, icon)
		}
	}

	sort.SliceStable(icons, func(i, j int) bool {
		if icons[i].X != icons[j].X {
			return icons[i].X < icons[j].X
		}
		return icons[i].Y < icons[j].Y
	})

	rows := [2]int{}
	columns := [2]int{ColumnLeft, ColumnRight}
	for i := range icons {
		col := 0
		if icons[i].X == ColumnRight {
			col = 1
		}
		icons[i].X = columns[col]
		icons[i].Y = RowTop + rows[col]*RowGap
		rows[col]++
	}
	return icons
}
