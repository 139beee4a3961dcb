// Package mail keeps the notification panel's email list.
package mail

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/store"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/utils"
)

// DefaultLimit is how many emails are kept
const DefaultLimit = 50

var ErrInvalidEmail = errors.New("invalid email")

// Email is one notification
type Email struct {
	ID            id.MailID `json:"id"`
	Subject       string    `json:"subject"`
	Sender        string    `json:"sender"`
	SenderEmail   string    `json:"senderEmail"`
	Preview       string    `json:"preview"`
	Timestamp     time.Time `json:"timestamp"`
	Read          bool      `json:"read"`
	Important     bool      `json:"important"`
	HasAttachment bool      `json:"hasAttachment"`
}

// Defaults returns the welcome mails shown before anything is stored
func Defaults(now time.Time) []Email {
	return []Email{
		{
			ID:          "email-1",
			Subject:     "Welcome to Windows 11 Replica",
			Sender:      "System",
			SenderEmail: "system@windows.local",
			Preview:     "Thank you for trying out this Windows 11 web replica. Explore all the features!",
			Timestamp:   now.Add(-10 * time.Minute),
			Important:   true,
		},
		{
			ID:          "email-2",
			Subject:     "Your daily briefing",
			Sender:      "News",
			SenderEmail: "news@windows.local",
			Preview:     "Here are the top stories and updates for today...",
			Timestamp:   now.Add(-30 * time.Minute),
		},
	}
}

// Manager owns the email list
type Manager struct {
	mu       sync.Mutex
	store    *store.Store
	limit    int
	notifier types.Notifier
	now      func() time.Time
}

// NewManager creates a manager keeping at most limit emails
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

func (m *Manager) load(ctx context.Context) ([]Email, error) {
	var emails []Email
	found, err := m.store.Load(ctx, store.KeyEmails, &emails)
	if err != nil {
		return nil, err
	}
	if !found {
		return Defaults(m.now()), nil
	}
	if emails == nil {
		emails = []Email{}
	}
	return emails, nil
}

func (m *Manager) save(ctx context.Context, emails []Email) error {
	if err := m.store.SetJSON(ctx, store.KeyEmails, emails); err != nil {
		return err
	}
	m.notifier.Notify(types.NewEvent(types.EventMail, emails))
	return nil
}

// List returns emails, newest first
func (m *Manager) List(ctx context.Context) ([]Email, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(ctx)
}

// Add prepends e and trims the list to the limit
func (m *Manager) Add(ctx context.Context, e Email) ([]Email, error) {
	e.Subject = utils.SanitizeText(e.Subject)
	if err := utils.ValidateTitle(e.Subject, "subject"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEmail, err)
	}
	if err := utils.ValidateEmail(e.SenderEmail, false); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEmail, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	emails, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	if e.ID == "" {
		e.ID = id.NewMailID()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = m.now()
	}

	updated := append([]Email{e}, emails...)
	if len(updated) > m.limit {
		updated = updated[:m.limit]
	}
	if err := m.save(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// MarkRead flags one email as read. Unknown ids return false.
func (m *Manager) MarkRead(ctx context.Context, mailID id.MailID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	emails, err := m.load(ctx)
	if err != nil {
		return false, err
	}
	for i := range emails {
		if emails[i].ID == mailID {
			emails[i].Read = true
			return true, m.save(ctx, emails)
		}
	}
	return false, nil
}

// Unread counts emails not yet read
func (m *Manager) Unread(ctx context.Context) (int, error) {
	emails, err := m.List(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range emails {
		if !e.Read {
			n++
		}
	}
	return n, nil
}
