package power

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/store"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
)

// DefaultDelay is how long the shutdown and restart screens show
const DefaultDelay = 3 * time.Second

// Surfaces closes the transient UI surfaces
type Surfaces interface {
	CloseAll()
}

// ReloadFunc re-initialises the shell after the session is cleared
type ReloadFunc func(ctx context.Context) error

// Machine holds the current power state
type Machine struct {
	mu      sync.Mutex
	state   State
	pending sync.WaitGroup

	store    *store.Store
	delay    time.Duration
	surfaces Surfaces
	reload   ReloadFunc
	notifier types.Notifier
	metrics  *monitoring.Metrics
	logger   *logging.Logger
}

// NewMachine creates a machine in the active state
func NewMachine(st *store.Store, delay time.Duration) *Machine {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Machine{
		state:    StateActive,
		store:    st,
		delay:    delay,
		reload:   func(context.Context) error { return nil },
		notifier: types.Discard,
		logger:   logging.NewNop(),
	}
}

// WithSurfaces sets what gets closed on lock, sleep and shutdown
func (m *Machine) WithSurfaces(s Surfaces) *Machine {
	m.surfaces = s
	return m
}

// WithReload sets the callback run at the end of a shutdown or restart
func (m *Machine) WithReload(fn ReloadFunc) *Machine {
	m.reload = fn
	return m
}

// WithNotifier publishes state changes
func (m *Machine) WithNotifier(n types.Notifier) *Machine {
	m.notifier = n
	return m
}

// WithMetrics adds metrics tracking
func (m *Machine) WithMetrics(metrics *monitoring.Metrics) *Machine {
	m.metrics = metrics
	if metrics != nil {
		metrics.SetPowerState(string(m.State()))
	}
	return m
}

// WithLogger sets the logger
func (m *Machine) WithLogger(l *logging.Logger) *Machine {
	m.logger = l.For("power")
	return m
}

// State returns the current state
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Boot reads the persisted state. Shutdown and restart never survive a
// boot, and unknown values fall back to active.
func (m *Machine) Boot(ctx context.Context) (State, error) {
	raw, found, err := m.store.GetString(ctx, store.KeySystemState)
	if err != nil {
		return "", err
	}

	state := StateActive
	if found {
		state = State(raw)
	}
	if !state.Valid() {
		m.logger.Warn("Unknown persisted power state", zap.String("state", raw))
		state = StateActive
	}
	if state.Transient() {
		state = StateActive
		if err := m.store.SetString(ctx, store.KeySystemState, string(state)); err != nil {
			return "", err
		}
	}

	m.mu.Lock()
	m.state = state
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.SetPowerState(string(state))
	}
	m.notifier.Notify(types.NewEvent(types.EventPower, state))
	return state, nil
}

// Apply performs a transition
func (m *Machine) Apply(ctx context.Context, a Action) (State, error) {
	m.mu.Lock()
	from := m.state
	to, err := Target(from, a)
	if err != nil {
		m.mu.Unlock()
		return from, fmt.Errorf("%w: %s from %s", err, a, from)
	}
	if err := m.store.SetString(ctx, store.KeySystemState, string(to)); err != nil {
		m.mu.Unlock()
		return from, err
	}
	m.state = to
	if to.Transient() {
		m.pending.Add(1)
	}
	m.mu.Unlock()

	if to != StateActive && m.surfaces != nil {
		m.surfaces.CloseAll()
	}
	if m.metrics != nil {
		m.metrics.RecordPowerTransition(string(from), string(to))
	}
	m.logger.Info("Power state changed", zap.String("from", string(from)), zap.String("to", string(to)))
	m.notifier.Notify(types.NewEvent(types.EventPower, to))

	if to.Transient() {
		time.AfterFunc(m.delay, m.cycle)
	}
	return to, nil
}

func (m *Machine) Lock(ctx context.Context) (State, error)     { return m.Apply(ctx, ActionLock) }
func (m *Machine) Unlock(ctx context.Context) (State, error)   { return m.Apply(ctx, ActionUnlock) }
func (m *Machine) Sleep(ctx context.Context) (State, error)    { return m.Apply(ctx, ActionSleep) }
func (m *Machine) Wake(ctx context.Context) (State, error)     { return m.Apply(ctx, ActionWake) }
func (m *Machine) Shutdown(ctx context.Context) (State, error) { return m.Apply(ctx, ActionShutdown) }
func (m *Machine) Restart(ctx context.Context) (State, error)  { return m.Apply(ctx, ActionRestart) }

// SignOut clears the session and reloads right away. It is refused while
// a shutdown or restart is in flight.
func (m *Machine) SignOut(ctx context.Context) error {
	if m.State().Transient() {
		return fmt.Errorf("%w: sign out during %s", ErrInvalidTransition, m.State())
	}
	if err := m.store.ClearSession(ctx); err != nil {
		return err
	}
	m.logger.Info("Signed out")
	return m.reload(ctx)
}

// Wait blocks until any scheduled boot cycle has run
func (m *Machine) Wait() {
	m.pending.Wait()
}

// cycle runs on the timer goroutine after a shutdown or restart. The
// originating request is long gone, so it gets its own context.
func (m *Machine) cycle() {
	defer m.pending.Done()
	ctx := context.Background()

	if err := m.store.ClearSession(ctx); err != nil {
		m.logger.Error("Failed to clear session", zap.Error(err))
	}

	m.mu.Lock()
	from := m.state
	m.state = StateActive
	m.mu.Unlock()
	if m.metrics != nil {
		m.metrics.RecordPowerTransition(string(from), string(StateActive))
	}
	m.notifier.Notify(types.NewEvent(types.EventPower, StateActive))

	if err := m.reload(ctx); err != nil {
		m.logger.Error("Reload after power cycle failed", zap.Error(err))
		return
	}
	m.logger.Info("Power cycle complete")
}
