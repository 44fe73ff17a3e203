// Package reducer implements the task tracker's state controllers. Each
// controller is a value with an Update method taking an action and
// returning the next state plus an optional Delegate for its parent.
package reducer

import (
	"time"

	"tasktracker/internal/todo"
)

// Env carries the injected collaborators every transition may consult.
type Env struct {
	Clock    todo.Clock
	Calendar todo.Calendar
	IDs      todo.IDGenerator
}

// DefaultEnv uses the wall clock, the local calendar and random ids.
func DefaultEnv() Env {
	return Env{
		Clock:    todo.SystemClock,
		Calendar: todo.NewCalendar(time.Local),
		IDs:      todo.RandomIDs,
	}
}

func (e Env) now() time.Time {
	if e.Clock == nil {
		return time.Now()
	}
	return e.Clock.Now()
}

// Delegate is a child-to-parent signal returned alongside a new state.
// A nil Delegate means nothing to report.
type Delegate interface {
	delegate()
}

// Saved is emitted by the form when the user saves a valid task.
type Saved struct {
	Task todo.Task
}

// SwitchToPendingTab asks the parent to select the pending tab.
type SwitchToPendingTab struct{}

func (Saved) delegate()              {}
func (SwitchToPendingTab) delegate() {}
