package types

import "time"

// EventType names what changed in the shell
type EventType string

const (
	EventWindows   EventType = "windows"
	EventIcons     EventType = "icons"
	EventFiles     EventType = "files"
	EventPower     EventType = "power"
	EventSurfaces  EventType = "surfaces"
	EventRecent    EventType = "recent"
	EventCalendar  EventType = "calendar"
	EventMail      EventType = "mail"
	EventTasks     EventType = "tasks"
	EventSettings  EventType = "settings"
	EventReload    EventType = "reload"
	EventClockTick EventType = "clock"
)

// Event is pushed to connected renderers after a state change
type Event struct {
	Type      EventType   `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent stamps an event with the current time
func NewEvent(t EventType, payload interface{}) Event {
	return Event{Type: t, Payload: payload, Timestamp: time.Now()}
}

// Notifier receives shell events. Implementations must not block.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(Event)

// Notify calls f(e)
func (f NotifierFunc) Notify(e Event) { f(e) }

// Discard drops every event
var Discard Notifier = NotifierFunc(func(Event) {})
