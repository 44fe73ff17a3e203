package todo

import (
	"encoding/binary"
	"time"

	"github.com/google/uuid"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// FixedClock always reports t.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// IDGenerator produces unique task ids.
type IDGenerator interface {
	NewID() uuid.UUID
}

type IDFunc func() uuid.UUID

func (f IDFunc) NewID() uuid.UUID { return f() }

// RandomIDs generates version 4 UUIDs.
var RandomIDs IDGenerator = IDFunc(uuid.New)

// SequentialIDs returns a generator yielding 00000000-...-000000000001,
// ...-000000000002 and so on. Not safe for concurrent use.
func SequentialIDs() IDGenerator {
	var n uint64
	return IDFunc(func() uuid.UUID {
		n++
		return SequentialID(n)
	})
}

// SequentialID builds the n-th id produced by SequentialIDs.
func SequentialID(n uint64) uuid.UUID {
	var id uuid.UUID
	binary.BigEndian.PutUint64(id[8:], n)
	return id
}

// Calendar answers day-boundary questions in a fixed location.
type Calendar struct {
	Location *time.Location
}

func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.Local
	}
	return Calendar{Location: loc}
}

func (c Calendar) loc() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// StartOfDay truncates t to midnight of its calendar day.
func (c Calendar) StartOfDay(t time.Time) time.Time {
	t = t.In(c.loc())
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc())
}

func (c Calendar) IsSameDay(a, b time.Time) bool {
	return c.DaysBetween(a, b) == 0
}

// DaysBetween counts calendar days from a to b; negative when b is earlier.
func (c Calendar) DaysBetween(a, b time.Time) int {
	return dayNumber(b.In(c.loc())) - dayNumber(a.In(c.loc()))
}

func dayNumber(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// Advance moves t forward by one recurrence interval and truncates it.
// Month and year steps clamp to the last day of the target month.
func (c Calendar) Advance(t time.Time, r Recurrence) time.Time {
	t = c.StartOfDay(t)
	switch r {
	case RecurrenceDaily:
		return c.StartOfDay(t.AddDate(0, 0, 1))
	case RecurrenceWeekly:
		return c.StartOfDay(t.AddDate(0, 0, 7))
	case RecurrenceMonthly:
		return c.addMonths(t, 1)
	case RecurrenceAnnually:
		return c.addMonths(t, 12)
	}
	return t
}

func (c Calendar) addMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, c.loc())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, c.loc())
}
