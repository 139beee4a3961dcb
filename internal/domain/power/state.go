package power

import "errors"

// ErrInvalidTransition is returned when an action is not allowed from the
// current state
var ErrInvalidTransition = errors.New("invalid power transition")

// State is the system power state
type State string

const (
	StateActive       State = "active"
	StateLocked       State = "locked"
	StateSleeping     State = "sleeping"
	StateShuttingDown State = "shutting-down"
	StateRestarting   State = "restarting"
)

// Valid reports whether s is a known state
func (s State) Valid() bool {
	switch s {
	case StateActive, StateLocked, StateSleeping, StateShuttingDown, StateRestarting:
		return true
	}
	return false
}

// Transient reports whether s only exists until the next boot
func (s State) Transient() bool {
	return s == StateShuttingDown || s == StateRestarting
}

// Action is a user request that moves the machine
type Action string

const (
	ActionLock     Action = "lock"
	ActionUnlock   Action = "unlock"
	ActionSleep    Action = "sleep"
	ActionWake     Action = "wake"
	ActionShutdown Action = "shutdown"
	ActionRestart  Action = "restart"
)

type edge struct {
	from State
	to   State
}

var transitions = map[Action]edge{
	ActionLock:     {StateActive, StateLocked},
	ActionUnlock:   {StateLocked, StateActive},
	ActionSleep:    {StateActive, StateSleeping},
	ActionWake:     {StateSleeping, StateActive},
	ActionShutdown: {StateActive, StateShuttingDown},
	ActionRestart:  {StateActive, StateRestarting},
}

// ParseAction maps a request name to an Action
func ParseAction(s string) (Action, bool) {
	a := Action(s)
	_, ok := transitions[a]
	return a, ok
}

// Target returns the state a reaches from the given state
func Target(from State, a Action) (State, error) {
	e, ok := transitions[a]
	if !ok || e.from != from {
		return from, ErrInvalidTransition
	}
	return e.to, nil
}
