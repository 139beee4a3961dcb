package window

import (
	"context"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
)

const (
	opOpen = iota
	opClose
	opMinimize
	opRestore
	opFocus
	opCount
)

type step struct {
	Op     int
	Target int
}

var reflectStep = reflect.TypeOf(step{})

func genSteps() gopter.Gen {
	return gen.SliceOf(gen.Struct(reflectStep, map[string]gopter.Gen{
		"Op":     gen.IntRange(0, opCount-1),
		"Target": gen.IntRange(0, 9),
	}))
}

// apply runs one step and reports whether it was an Open
func apply(m *Manager, s step) (Window, bool) {
	list := m.List()
	if s.Op == opOpen || len(list) == 0 {
		return m.Open(context.Background(), "app", "App", types.Content{Kind: types.ContentPlaceholder}, ""), true
	}

	target := list[s.Target%len(list)].ID
	switch s.Op {
	case opClose:
		m.Close(target)
	case opMinimize:
		m.Minimize(target)
	case opRestore:
		m.Restore(target)
	case opFocus:
		m.Focus(target)
	}
	return Window{}, false
}

func countActive(m *Manager) int {
	n := 0
	for _, w := range m.List() {
		if w.IsActive {
			n++
		}
	}
	return n
}

// TestAtMostOneActive verifies the single-focus invariant.
// Property: after any sequence of operations, at most one window is active
func TestAtMostOneActive(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("at most one window is active", prop.ForAll(
		func(steps []step) bool {
			m := NewManager(DefaultLayout())
			for _, s := range steps {
				apply(m, s)
				if countActive(m) > 1 {
					return false
				}
			}
			return true
		},
		genSteps(),
	))

	properties.TestingRun(t)
}

// TestOpenFocusesNewest verifies Open always hands focus to the new window.
// Property: right after Open, exactly one window is active and it is the newest
func TestOpenFocusesNewest(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("newest window is the only active one", prop.ForAll(
		func(steps []step) bool {
			m := NewManager(DefaultLayout())
			for _, s := range steps {
				opened, isOpen := apply(m, s)
				if !isOpen {
					continue
				}
				list := m.List()
				if countActive(m) != 1 || list[len(list)-1].ID != opened.ID || !list[len(list)-1].IsActive {
					return false
				}
			}
			return true
		},
		genSteps(),
	))

	properties.TestingRun(t)
}

// TestCloseActiveFallsBackToLast verifies focus transfer on close.
// Property: closing the active window leaves the new last window active
func TestCloseActiveFallsBackToLast(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("close of active focuses new last", prop.ForAll(
		func(n int) bool {
			m := NewManager(DefaultLayout())
			for i := 0; i < n; i++ {
				apply(m, step{Op: opOpen})
			}
			active, ok := m.Active()
			if !ok {
				return false
			}
			m.Close(active.ID)

			list := m.List()
			if len(list) == 0 {
				return countActive(m) == 0
			}
			return list[len(list)-1].IsActive && countActive(m) == 1
		},
		gen.IntRange(1, 12),
	))

	properties.TestingRun(t)
}
