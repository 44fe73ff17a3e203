package todo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testCal = NewCalendar(time.UTC)
	testNow = time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)
)

func dayOffset(n int) *time.Time {
	return TimePtr(testCal.StartOfDay(testNow).AddDate(0, 0, n))
}

func ago(d time.Duration) *time.Time {
	return TimePtr(testNow.Add(-d))
}

type fixture struct {
	low, normal, high                           Task
	completedNow, completedSecAgo, completedTwo Task
	overdue, yesterday                          Task
	todayNormal, todayHigh, todayLow            Task
	tomorrow, thisWeek, nextWeek                Task
	trashedTwo, trashedSecAgo, trashedNow       Task
	all                                         []Task
}

func newFixture() fixture {
	var n uint64
	mk := func(title string, edit func(*Task)) Task {
		n++
		t := New(SequentialID(n))
		t.Title = title
		if edit != nil {
			edit(&t)
		}
		return t
	}
	f := fixture{
		low:             mk("low", func(t *Task) { t.Priority = PriorityLow }),
		normal:          mk("normal", nil),
		high:            mk("high", func(t *Task) { t.Priority = PriorityHigh }),
		completedTwo:    mk("completed two seconds ago", func(t *Task) { t.CompletedAt = ago(2 * time.Second); t.DueDate = dayOffset(0) }),
		completedSecAgo: mk("completed a second ago", func(t *Task) { t.CompletedAt = ago(time.Second) }),
		completedNow:    mk("completed now", func(t *Task) { t.CompletedAt = TimePtr(testNow) }),
		overdue:         mk("overdue", func(t *Task) { t.DueDate = dayOffset(-2) }),
		yesterday:       mk("yesterday", func(t *Task) { t.DueDate = dayOffset(-1) }),
		todayNormal:     mk("today normal", func(t *Task) { t.DueDate = dayOffset(0) }),
		todayHigh:       mk("today high", func(t *Task) { t.DueDate = dayOffset(0); t.Priority = PriorityHigh }),
		todayLow:        mk("today low", func(t *Task) { t.DueDate = dayOffset(0); t.Priority = PriorityLow }),
		tomorrow:        mk("tomorrow", func(t *Task) { t.DueDate = dayOffset(1) }),
		thisWeek:        mk("this week", func(t *Task) { t.DueDate = dayOffset(2) }),
		nextWeek:        mk("next week", func(t *Task) { t.DueDate = dayOffset(7) }),
		trashedTwo:      mk("trashed two seconds ago", func(t *Task) { t.TrashedAt = ago(2 * time.Second) }),
		trashedSecAgo:   mk("trashed a second ago", func(t *Task) { t.TrashedAt = ago(time.Second) }),
		trashedNow:      mk("trashed now", func(t *Task) { t.TrashedAt = TimePtr(testNow) }),
	}
	f.all = []Task{
		f.low, f.normal, f.high, f.completedTwo, f.completedSecAgo, f.completedNow,
		f.overdue, f.yesterday, f.todayNormal, f.todayHigh, f.todayLow, f.tomorrow, f.thisWeek, f.nextWeek,
		f.trashedTwo, f.trashedSecAgo, f.trashedNow,
	}
	return f
}

func titles(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Task.Title
	}
	return out
}

func taskTitles(tasks ...Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestTabView_FiltersAndSortsEveryTab(t *testing.T) {
	f := newFixture()
	pending := []Task{
		f.overdue, f.yesterday, f.todayHigh, f.todayNormal, f.todayLow, f.tomorrow, f.thisWeek, f.nextWeek,
		f.high, f.normal, f.low,
	}
	completed := []Task{f.completedNow, f.completedSecAgo, f.completedTwo}

	expected := map[Tab][]Task{
		TabAll:       append(append([]Task{}, pending...), completed...),
		TabPending:   pending,
		TabCompleted: completed,
		TabToday:     {f.overdue, f.yesterday, f.todayHigh, f.todayNormal, f.todayLow},
		TabTrashBin:  {f.trashedNow, f.trashedSecAgo, f.trashedTwo},
	}
	for tab, want := range expected {
		t.Run(tab.String(), func(t *testing.T) {
			got := tab.View(f.all, testNow, testCal)
			assert.Equal(t, taskTitles(want...), titles(got))
		})
	}
}

func TestTabView_OrderDoesNotDependOnInput(t *testing.T) {
	f := newFixture()
	reversed := make([]Task, len(f.all))
	for i, task := range f.all {
		reversed[len(f.all)-1-i] = task
	}
	for _, tab := range Tabs {
		assert.Equal(t, titles(tab.View(f.all, testNow, testCal)), titles(tab.View(reversed, testNow, testCal)), tab.String())
	}
}

func TestTabIncludes_PredicateBoundaries(t *testing.T) {
	f := newFixture()
	cases := []struct {
		task Task
		in   []Tab
	}{
		{f.normal, []Tab{TabAll, TabPending}},
		{f.completedNow, []Tab{TabAll, TabCompleted}},
		{f.completedTwo, []Tab{TabAll, TabCompleted}},
		{f.overdue, []Tab{TabAll, TabPending, TabToday}},
		{f.todayNormal, []Tab{TabAll, TabPending, TabToday}},
		{f.tomorrow, []Tab{TabAll, TabPending}},
		{f.trashedNow, []Tab{TabTrashBin}},
	}
	for _, c := range cases {
		for _, tab := range Tabs {
			want := false
			for _, in := range c.in {
				if in == tab {
					want = true
				}
			}
			assert.Equal(t, want, tab.Includes(c.task, testNow, testCal), "%s on %s", c.task.Title, tab)
		}
	}
}

func TestTabView_TodayScenario(t *testing.T) {
	ids := SequentialIDs()
	a := New(ids.NewID())
	a.Title, a.DueDate = "A", dayOffset(-1)
	b := New(ids.NewID())
	b.Title, b.DueDate = "B", dayOffset(0)
	c := New(ids.NewID())
	c.Title, c.DueDate = "C", dayOffset(1)

	got := TabToday.View([]Task{c, b, a}, testNow, testCal)
	assert.Equal(t, []string{"A", "B"}, titles(got))
	require.NotNil(t, got[0].Label)
	assert.Equal(t, DueYesterday, *got[0].Label)
	assert.Equal(t, DueToday, *got[1].Label)
}

func TestTabView_TrashedTaskOnlyInTrash(t *testing.T) {
	x := New(SequentialID(1))
	x.Title = "X"
	x.CompletedAt = TimePtr(testNow)
	x.TrashedAt = TimePtr(testNow)
	for _, tab := range Tabs {
		assert.Equal(t, tab == TabTrashBin, tab.Includes(x, testNow, testCal), tab.String())
	}
}

func TestParseTab(t *testing.T) {
	for _, tab := range Tabs {
		got, err := ParseTab(tab.String())
		require.NoError(t, err)
		assert.Equal(t, tab, got)
	}
	got, err := ParseTab("trashBin")
	require.NoError(t, err)
	assert.Equal(t, TabTrashBin, got)

	_, err = ParseTab("someday")
	assert.Error(t, err)
}

func TestTabView_TrashOrderedByRecency(t *testing.T) {
	old := New(SequentialID(1))
	old.Title, old.DueDate, old.Priority = "old", dayOffset(-3), PriorityHigh
	old.TrashedAt = ago(time.Hour)
	recent := New(SequentialID(2))
	recent.Title, recent.DueDate = "recent", dayOffset(5)
	recent.TrashedAt = ago(time.Minute)

	got := TabTrashBin.View([]Task{old, recent}, testNow, testCal)
	assert.Equal(t, []string{"recent", "old"}, titles(got))

	got = TabAll.View([]Task{recent, old}, testNow, testCal)
	assert.Empty(t, got)
}

func TestTab_Valid(t *testing.T) {
	for _, tab := range Tabs {
		assert.True(t, tab.Valid(), tab.String())
	}
	assert.False(t, Tab(-1).Valid())
	assert.False(t, Tab(len(Tabs)).Valid())
}
