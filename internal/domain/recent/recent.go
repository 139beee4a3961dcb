// Package recent keeps the start menu's recently opened items.
package recent

import (
	"context"
	"sync"
	"time"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/store"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
)

// Type classifies a recent entry
type Type string

const (
	TypeFile   Type = "file"
	TypeApp    Type = "app"
	TypeFolder Type = "folder"
)

// DefaultLimit is how many entries are kept
const DefaultLimit = 10

// Entry is one recently opened item, newest first in the list.
type Entry struct {
	ID        id.RecentID `json:"id"`
	Title     string      `json:"title"`
	Type      Type        `json:"type"`
	Icon      string      `json:"icon,omitempty"`
	Subtitle  string      `json:"subtitle"`
	Timestamp int64       `json:"timestamp"`
	Path      string      `json:"path,omitempty"`
	AppID     string      `json:"appId,omitempty"`
}

// Manager owns the recent items list
type Manager struct {
	mu       sync.Mutex
	store    *store.Store
	limit    int
	notifier types.Notifier
	now      func() time.Time
}

// NewManager creates a manager keeping at most limit entries
func NewManager(st *store.Store, limit int) *Manager {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Manager{
		store:    st,
		limit:    limit,
		notifier: types.Discard,
		now:      time.Now,
	}
}

// WithNotifier publishes list changes
func (m *Manager) WithNotifier(n types.Notifier) *Manager {
	m.notifier = n
	return m
}

func (m *Manager) load(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	found, err := m.store.Load(ctx, store.KeyRecentItems, &entries)
	if err != nil {
		return nil, err
	}
	if !found || entries == nil {
		return []Entry{}, nil
	}
	return entries, nil
}

func (m *Manager) save(ctx context.Context, entries []Entry) error {
	if err := m.store.SetJSON(ctx, store.KeyRecentItems, entries); err != nil {
		return err
	}
	m.notifier.Notify(types.NewEvent(types.EventRecent, entries))
	return nil
}

// List returns entries, newest first
func (m *Manager) List(ctx context.Context) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(ctx)
}

// Add stamps e with a fresh id and timestamp, drops any entry sharing its
// id or title, prepends it and trims to the limit.
func (m *Manager) Add(ctx context.Context, e Entry) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	e.ID = id.NewRecentID()
	e.Timestamp = m.now().UnixMilli()

	updated := make([]Entry, 0, len(entries)+1)
	updated = append(updated, e)
	for _, existing := range entries {
		if existing.ID == e.ID || existing.Title == e.Title {
			continue
		}
		updated = append(updated, existing)
	}
	if len(updated) > m.limit {
		updated = updated[:m.limit]
	}

	if err := m.save(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Remove drops the entry with the given id
func (m *Manager) Remove(ctx context.Context, rid id.RecentID) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	updated := entries[:0]
	for _, e := range entries {
		if e.ID != rid {
			updated = append(updated, e)
		}
	}

	if err := m.save(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Clear removes every entry
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Delete(ctx, store.KeyRecentItems); err != nil {
		return err
	}
	m.notifier.Notify(types.NewEvent(types.EventRecent, []Entry{}))
	return nil
}
