package todo

import "time"

// DueLabel classifies a due date relative to now.
type DueLabel int

const (
	DueOverdue DueLabel = iota
	DueYesterday
	DueToday
	DueTomorrow
	DueThisWeek
	DueNextWeekAndBeyond
)

func (l DueLabel) String() string {
	switch l {
	case DueOverdue:
		return "overdue"
	case DueYesterday:
		return "yesterday"
	case DueToday:
		return "today"
	case DueTomorrow:
		return "tomorrow"
	case DueThisWeek:
		return "this week"
	}
	return "next week"
}

// DueLabelFor returns nil when the task has no due date.
func DueLabelFor(task Task, now time.Time, cal Calendar) *DueLabel {
	if task.DueDate == nil {
		return nil
	}
	l := dueLabel(cal.DaysBetween(now, *task.DueDate))
	return &l
}

func dueLabel(days int) DueLabel {
	switch {
	case days == 0:
		return DueToday
	case days == -1:
		return DueYesterday
	case days == 1:
		return DueTomorrow
	case days < 0:
		return DueOverdue
	case days < 6:
		return DueThisWeek
	}
	return DueNextWeekAndBeyond
}
