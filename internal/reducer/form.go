package reducer

import (
	"strings"
	"time"

	"tasktracker/internal/todo"
)

type Field int

const (
	FieldTitle Field = iota
	FieldNote
	FieldPriority
	FieldDueDate
	FieldRecurrence
	FieldCompleted
)

// Fields lists the form fields in tab order.
var Fields = []Field{FieldTitle, FieldNote, FieldPriority, FieldDueDate, FieldRecurrence, FieldCompleted}

func (f Field) String() string {
	switch f {
	case FieldTitle:
		return "title"
	case FieldNote:
		return "note"
	case FieldPriority:
		return "priority"
	case FieldDueDate:
		return "due date"
	case FieldRecurrence:
		return "recurrence"
	case FieldCompleted:
		return "completed"
	}
	return ""
}

// FormState is the add/edit form. Task is an owned working copy; nothing
// reaches the shared collection until the parent handles Saved.
type FormState struct {
	Task               todo.Task
	Focus              Field
	SaveDisabled       bool
	RecurrenceDisabled bool
}

func NewForm(task todo.Task) FormState {
	return FormState{Task: task, Focus: FieldTitle}.recompute()
}

// FormAction is an edit applied to a FormState.
type FormAction interface {
	formAction()
}

type (
	SetTitle      struct{ Title string }
	SetNote       struct{ Note string }
	SetPriority   struct{ Priority todo.Priority }
	SetDueDate    struct{ Date time.Time }
	ClearDueDate  struct{}
	SetRecurrence struct{ Recurrence todo.Recurrence }
	SetCompleted  struct{ Completed bool }
	FocusField    struct{ Field Field }
	Save          struct{}
)

func (SetTitle) formAction()      {}
func (SetNote) formAction()       {}
func (SetPriority) formAction()   {}
func (SetDueDate) formAction()    {}
func (ClearDueDate) formAction()  {}
func (SetRecurrence) formAction() {}
func (SetCompleted) formAction()  {}
func (FocusField) formAction()    {}
func (Save) formAction()          {}

func (s FormState) Update(env Env, a FormAction) (FormState, Delegate) {
	switch a := a.(type) {
	case SetTitle:
		s.Task.Title = a.Title
	case SetNote:
		s.Task.Note = a.Note
	case SetPriority:
		s.Task.Priority = a.Priority
	case SetDueDate:
		d := env.Calendar.StartOfDay(a.Date)
		s.Task.DueDate = &d
	case ClearDueDate:
		s.Task.DueDate = nil
	case SetRecurrence:
		s.Task.Recurrence = a.Recurrence
	case SetCompleted:
		switch {
		case a.Completed && s.Task.CompletedAt == nil:
			s.Task.CompletedAt = todo.TimePtr(env.now())
		case !a.Completed:
			s.Task.CompletedAt = nil
		}
	case FocusField:
		s.Focus = a.Field
		return s, nil
	case Save:
		if s.SaveDisabled {
			return s, nil
		}
		return s, Saved{Task: s.Task}
	}
	return s.recompute(), nil
}

func (s FormState) recompute() FormState {
	s.SaveDisabled = strings.TrimSpace(s.Task.Title) == ""
	s.RecurrenceDisabled = s.Task.DueDate == nil
	if s.RecurrenceDisabled {
		s.Task.Recurrence = todo.RecurrenceNever
	}
	return s
}
