package todo

import (
	"bytes"
	"fmt"
	"slices"
	"time"
)

type Tab int

const (
	TabToday Tab = iota
	TabPending
	TabCompleted
	TabAll
	TabTrashBin
)

// Tabs lists every tab in display order.
var Tabs = [...]Tab{TabToday, TabPending, TabCompleted, TabAll, TabTrashBin}

func (t Tab) String() string {
	switch t {
	case TabToday:
		return "today"
	case TabPending:
		return "pending"
	case TabCompleted:
		return "completed"
	case TabAll:
		return "all"
	case TabTrashBin:
		return "trash"
	}
	return fmt.Sprintf("tab(%d)", int(t))
}

func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs {
		if t.String() == s {
			return t, nil
		}
	}
	if s == "trashBin" {
		return TabTrashBin, nil
	}
	return TabPending, fmt.Errorf("unknown tab %q", s)
}

// Includes reports whether task belongs on the tab at time now.
func (t Tab) Includes(task Task, now time.Time, cal Calendar) bool {
	if t == TabTrashBin {
		return task.IsTrashed()
	}
	if task.IsTrashed() {
		return false
	}
	switch t {
	case TabAll:
		return true
	case TabPending:
		return !task.IsCompleted()
	case TabCompleted:
		return task.IsCompleted()
	case TabToday:
		return isDueByToday(task, now, cal)
	}
	return false
}

func isDueByToday(task Task, now time.Time, cal Calendar) bool {
	if task.IsCompleted() || task.DueDate == nil {
		return false
	}
	return cal.DaysBetween(now, *task.DueDate) <= 0
}

// Item is one row of a tab view.
type Item struct {
	Task  Task
	Label *DueLabel
}

// Filter returns the tasks the tab shows, in input order.
func (t Tab) Filter(tasks []Task, now time.Time, cal Calendar) []Task {
	out := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if t.Includes(task, now, cal) {
			out = append(out, task)
		}
	}
	return out
}

// View filters, sorts and labels tasks for the tab.
func (t Tab) View(tasks []Task, now time.Time, cal Calendar) []Item {
	filtered := t.Filter(tasks, now, cal)
	if t == TabTrashBin {
		slices.SortStableFunc(filtered, compareTrashed)
	} else {
		SortTasks(filtered)
	}
	items := make([]Item, len(filtered))
	for i, task := range filtered {
		items[i] = Item{Task: task, Label: DueLabelFor(task, now, cal)}
	}
	return items
}

// SortTasks orders tasks most relevant first: pending before completed,
// pending by due date then priority, completed by most recent completion.
func SortTasks(tasks []Task) {
	slices.SortStableFunc(tasks, compareTasks)
}

func compareTasks(a, b Task) int {
	// descending completion, nil is "infinitely in the future"
	if c := compareOptional(b.CompletedAt, a.CompletedAt); c != 0 {
		return c
	}
	if c := compareOptional(a.DueDate, b.DueDate); c != 0 {
		return c
	}
	if a.Priority != b.Priority {
		if a.Priority > b.Priority {
			return -1
		}
		return 1
	}
	if c := compareOptional(b.TrashedAt, a.TrashedAt); c != 0 {
		return c
	}
	return bytes.Compare(a.ID[:], b.ID[:])
}

// compareTrashed puts the most recently trashed first.
func compareTrashed(a, b Task) int {
	if c := compareOptional(b.TrashedAt, a.TrashedAt); c != 0 {
		return c
	}
	return compareTasks(a, b)
}

// Valid reports whether t is one of Tabs.
func (t Tab) Valid() bool {
	return t >= TabToday && t <= TabTrashBin
}

// compareOptional orders nil after every set time.
func compareOptional(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return a.Compare(*b)
}
