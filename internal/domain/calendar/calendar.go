// Package calendar stores the widget panel's calendar events.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/store"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/utils"
)

// Category groups events in the widget
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryReminder Category = "reminder"
	CategoryMeeting  Category = "meeting"
)

// Recurrence says how an event repeats
type Recurrence string

const (
	RecurNone    Recurrence = "none"
	RecurDaily   Recurrence = "daily"
	RecurWeekly  Recurrence = "weekly"
	RecurMonthly Recurrence = "monthly"
)

// ClockLayout is the format of Event.Time and Event.EndTime ("2:00 PM")
const ClockLayout = "3:04 PM"

var ErrInvalidEvent = errors.New("invalid calendar event")

// Event is one calendar entry
type Event struct {
	ID          id.EventID `json:"id"`
	Title       string     `json:"title"`
	Date        time.Time  `json:"date"`
	Time        string     `json:"time"`
	EndTime     string     `json:"endTime,omitempty"`
	Category    Category   `json:"category"`
	Color       string     `json:"color"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	Completed   bool       `json:"completed"`
	Reminder    *int       `json:"reminder,omitempty"` // minutes before
	Recurring   Recurrence `json:"recurring,omitempty"`
}

// Patch carries the fields an update may change
type Patch struct {
	Title       *string     `json:"title,omitempty"`
	Date        *time.Time  `json:"date,omitempty"`
	Time        *string     `json:"time,omitempty"`
	EndTime     *string     `json:"endTime,omitempty"`
	Category    *Category   `json:"category,omitempty"`
	Color       *string     `json:"color,omitempty"`
	Description *string     `json:"description,omitempty"`
	Location    *string     `json:"location,omitempty"`
	Completed   *bool       `json:"completed,omitempty"`
	Reminder    *int        `json:"reminder,omitempty"`
	Recurring   *Recurrence `json:"recurring,omitempty"`
}

func (p Patch) apply(e *Event) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Time != nil {
		e.Time = *p.Time
	}
	if p.EndTime != nil {
		e.EndTime = *p.EndTime
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Color != nil {
		e.Color = *p.Color
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Completed != nil {
		e.Completed = *p.Completed
	}
	if p.Reminder != nil {
		r := *p.Reminder
		e.Reminder = &r
	}
	if p.Recurring != nil {
		e.Recurring = *p.Recurring
	}
}

// normalize fills defaults and checks the event
func (e *Event) normalize() error {
	e.Title = utils.SanitizeText(e.Title)
	if err := utils.ValidateTitle(e.Title, "title"); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidEvent)
	}

	switch e.Category {
	case "":
		e.Category = CategoryPersonal
	case CategoryWork, CategoryPersonal, CategoryReminder, CategoryMeeting:
	default:
		return fmt.Errorf("%w: unknown category %q", ErrInvalidEvent, e.Category)
	}

	switch e.Recurring {
	case "", RecurNone, RecurDaily, RecurWeekly, RecurMonthly:
	default:
		return fmt.Errorf("%w: unknown recurrence %q", ErrInvalidEvent, e.Recurring)
	}

	if e.Color != "" {
		if err := utils.ValidateHexColor(e.Color); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
		}
	}
	if e.Reminder != nil && *e.Reminder < 0 {
		return fmt.Errorf("%w: reminder must not be negative", ErrInvalidEvent)
	}
	return nil
}

// clockMinutes parses "2:00 PM" into minutes after midnight
func clockMinutes(s string) (int, bool) {
	t, err := time.Parse(ClockLayout, strings.ToUpper(strings.TrimSpace(s)))
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// byClock orders events by clock time. Unparseable times sort after the
// rest, by their raw text.
func byClock(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		mi, okI := clockMinutes(events[i].Time)
		mj, okJ := clockMinutes(events[j].Time)
		switch {
		case okI && okJ:
			return mi < mj
		case okI != okJ:
			return okI
		default:
			return events[i].Time < events[j].Time
		}
	})
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

// Manager owns the event list
type Manager struct {
	mu       sync.Mutex
	store    *store.Store
	notifier types.Notifier
}

// NewManager creates a calendar manager
func NewManager(st *store.Store) *Manager {
	return &Manager{store: st, notifier: types.Discard}
}

// WithNotifier publishes list changes
func (m *Manager) WithNotifier(n types.Notifier) *Manager {
	m.notifier = n
	return m
}

func (m *Manager) load(ctx context.Context) ([]Event, error) {
	var events []Event
	if _, err := m.store.Load(ctx, store.KeyCalendarEvents, &events); err != nil {
		return nil, err
	}
	if events == nil {
		events = []Event{}
	}
	return events, nil
}

func (m *Manager) save(ctx context.Context, events []Event) error {
	if err := m.store.SetJSON(ctx, store.KeyCalendarEvents, events); err != nil {
		return err
	}
	m.notifier.Notify(types.NewEvent(types.EventCalendar, events))
	return nil
}

// List returns every event in insertion order
func (m *Manager) List(ctx context.Context) ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(ctx)
}

// Add validates e, assigns an id and appends it
func (m *Manager) Add(ctx context.Context, e Event) (Event, error) {
	if err := e.normalize(); err != nil {
		return Event{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	events, err := m.load(ctx)
	if err != nil {
		return Event{}, err
	}
	e.ID = id.NewEventID()
	if err := m.save(ctx, append(events, e)); err != nil {
		return Event{}, err
	}
	return e, nil
}

// Update merges p into the event. Unknown ids return false.
func (m *Manager) Update(ctx context.Context, eventID id.EventID, p Patch) (Event, bool, error) {
	return m.mutate(ctx, eventID, func(e *Event) error {
		p.apply(e)
		return e.normalize()
	})
}

// ToggleComplete flips the completed flag
func (m *Manager) ToggleComplete(ctx context.Context, eventID id.EventID) (Event, bool, error) {
	return m.mutate(ctx, eventID, func(e *Event) error {
		e.Completed = !e.Completed
		return nil
	})
}

func (m *Manager) mutate(ctx context.Context, eventID id.EventID, fn func(*Event) error) (Event, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	events, err := m.load(ctx)
	if err != nil {
		return Event{}, false, err
	}
	for i := range events {
		if events[i].ID != eventID {
			continue
		}
		updated := events[i]
		if err := fn(&updated); err != nil {
			return Event{}, false, err
		}
		events[i] = updated
		if err := m.save(ctx, events); err != nil {
			return Event{}, false, err
		}
		return updated, true, nil
	}
	return Event{}, false, nil
}

// Delete removes an event. Unknown ids return false.
func (m *Manager) Delete(ctx context.Context, eventID id.EventID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	events, err := m.load(ctx)
	if err != nil {
		return false, err
	}
	kept := events[:0]
	for _, e := range events {
		if e.ID != eventID {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(events) {
		return false, nil
	}
	return true, m.save(ctx, kept)
}

// Today returns the events on now's calendar day, earliest first
func (m *Manager) Today(ctx context.Context, now time.Time) ([]Event, error) {
	events, err := m.List(ctx)
	if err != nil {
		return nil, err
	}

	today := make([]Event, 0, len(events))
	for _, e := range events {
		if sameDay(now, e.Date) {
			today = append(today, e)
		}
	}
	byClock(today)
	return today, nil
}
