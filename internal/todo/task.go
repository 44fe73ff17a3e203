// Package todo holds the task entity, the shared task collection and the
// pure tab classifier that projects the collection into ordered views.
package todo

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Priority int

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityLow:
		return "low"
	default:
		return "normal"
	}
}

func ParsePriority(s string) (Priority, error) {
	switch s {
	case "high":
		return PriorityHigh, nil
	case "normal", "":
		return PriorityNormal, nil
	case "low":
		return PriorityLow, nil
	}
	return PriorityNormal, fmt.Errorf("unknown priority %q", s)
}

func (p Priority) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Priority) UnmarshalText(b []byte) error {
	v, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

type Recurrence int

const (
	RecurrenceNever Recurrence = iota
	RecurrenceDaily
	RecurrenceWeekly
	RecurrenceMonthly
	RecurrenceAnnually
)

// Recurrences lists every recurrence in picker order.
var Recurrences = []Recurrence{RecurrenceNever, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceAnnually}

func (r Recurrence) String() string {
	switch r {
	case RecurrenceDaily:
		return "daily"
	case RecurrenceWeekly:
		return "weekly"
	case RecurrenceMonthly:
		return "monthly"
	case RecurrenceAnnually:
		return "annually"
	default:
		return "never"
	}
}

func ParseRecurrence(s string) (Recurrence, error) {
	for _, r := range Recurrences {
		if r.String() == s {
			return r, nil
		}
	}
	if s == "" {
		return RecurrenceNever, nil
	}
	return RecurrenceNever, fmt.Errorf("unknown recurrence %q", s)
}

func (r Recurrence) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Recurrence) UnmarshalText(b []byte) error {
	v, err := ParseRecurrence(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Task is a single to-do item. A nil CompletedAt means pending, a non-nil
// TrashedAt means soft-deleted.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Note        string     `json:"note"`
	Priority    Priority   `json:"priority"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Recurrence  Recurrence `json:"recurrence"`
	TrashedAt   *time.Time `json:"trashedAt,omitempty"`
}

// New returns a blank pending task with default field values.
func New(id uuid.UUID) Task {
	return Task{ID: id, Priority: PriorityNormal, Recurrence: RecurrenceNever}
}

func (t Task) IsCompleted() bool { return t.CompletedAt != nil }

func (t Task) IsTrashed() bool { return t.TrashedAt != nil }

func (t Task) IsRecurring() bool {
	return t.Recurrence != RecurrenceNever && t.DueDate != nil
}

// Normalize truncates the due date to the start of its day and forces the
// recurrence to never when there is no due date. It is idempotent.
func (t Task) Normalize(cal Calendar) Task {
	if t.DueDate == nil {
		t.Recurrence = RecurrenceNever
		return t
	}
	d := cal.StartOfDay(*t.DueDate)
	t.DueDate = &d
	return t
}

func (t Task) String() string {
	state := "pending"
	switch {
	case t.IsTrashed():
		state = "trashed"
	case t.IsCompleted():
		state = "done"
	}
	return fmt.Sprintf("%s %q (%s, %s)", t.ID, t.Title, t.Priority, state)
}

// TimePtr returns a pointer to a copy of v.
func TimePtr(v time.Time) *time.Time {
	return &v
}
