// Package tasks backs the Tasks app's to-do list.
package tasks

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

var ErrInvalidTitle = errors.New("invalid task title")

// Task is one to-do entry
type Task struct {
	ID        id.TaskID `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt int64     `json:"createdAt"`
	UpdatedAt int64     `json:"updatedAt"`
}

// Manager owns the task list
type Manager struct {
	mu       sync.Mutex
	store    *store.Store
	notifier types.Notifier
	now      func() time.Time
}

// NewManager creates a task manager
func NewManager(st *store.Store) *Manager {
	return &Manager{store: st, notifier: types.Discard, now: time.Now}
}

// WithNotifier publishes list changes
func (m *Manager) WithNotifier(n types.Notifier) *Manager {
	m.notifier = n
	return m
}

func cleanTitle(title string) (string, error) {
	title = utils.SanitizeText(title)
	if err := utils.ValidateTitle(title, "title"); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidTitle, err)
	}
	return title, nil
}

func (m *Manager) load(ctx context.Context) ([]Task, error) {
	var list []Task
	if _, err := m.store.Load(ctx, store.KeyTasks, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []Task{}
	}
	return list, nil
}

func (m *Manager) save(ctx context.Context, list []Task) error {
	if err := m.store.SetJSON(ctx, store.KeyTasks, list); err != nil {
		return err
	}
	m.notifier.Notify(types.NewEvent(types.EventTasks, list))
	return nil
}

// List returns tasks, newest first
func (m *Manager) List(ctx context.Context) ([]Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(ctx)
}

// Add prepends a new open task
func (m *Manager) Add(ctx context.Context, title string) (Task, error) {
	title, err := cleanTitle(title)
	if err != nil {
		return Task{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	list, err := m.load(ctx)
	if err != nil {
		return Task{}, err
	}

	now := m.now().UnixMilli()
	task := Task{ID: id.NewTaskID(), Title: title, CreatedAt: now, UpdatedAt: now}
	if err := m.save(ctx, append([]Task{task}, list...)); err != nil {
		return Task{}, err
	}
	return task, nil
}

// Toggle flips completion
func (m *Manager) Toggle(ctx context.Context, taskID id.TaskID) (Task, bool, error) {
	return m.mutate(ctx, taskID, func(t *Task) { t.Completed = !t.Completed })
}

// Rename changes the title
func (m *Manager) Rename(ctx context.Context, taskID id.TaskID, title string) (Task, bool, error) {
	title, err := cleanTitle(title)
	if err != nil {
		return Task{}, false, err
	}
	return m.mutate(ctx, taskID, func(t *Task) { t.Title = title })
}

func (m *Manager) mutate(ctx context.Context, taskID id.TaskID, fn func(*Task)) (Task, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list, err := m.load(ctx)
	if err != nil {
		return Task{}, false, err
	}
	for i := range list {
		if list[i].ID != taskID {
			continue
		}
		fn(&list[i])
		list[i].UpdatedAt = m.now().UnixMilli()
		if err := m.save(ctx, list); err != nil {
			return Task{}, false, err
		}
		return list[i], true, nil
	}
	return Task{}, false, nil
}

// Delete removes a task. Unknown ids return false.
func (m *Manager) Delete(ctx context.Context, taskID id.TaskID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list, err := m.load(ctx)
	if err != nil {
		return false, err
	}
	kept := make([]Task, 0, len(list))
	for _, t := range list {
		if t.ID != taskID {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(list) {
		return false, nil
	}
	return true, m.save(ctx, kept)
}
