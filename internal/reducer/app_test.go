package reducer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktracker/internal/todo"
)

func TestApp_AddTaskScenario(t *testing.T) {
	app := NewApp(testEnv(), nil, todo.TabPending)

	app = app.Update(AddTapped{})
	require.NotNil(t, app.Form)
	assert.True(t, app.Form.SaveDisabled)

	app = app.Update(AppForm{Action: Save{}})
	require.NotNil(t, app.Form, "disabled save keeps the form open")
	assert.Zero(t, app.Todos.Len())

	app = app.Update(AppForm{Action: SetTitle{Title: "Buy milk"}})
	assert.False(t, app.Form.SaveDisabled)

	app = app.Update(AppForm{Action: Save{}})
	assert.Nil(t, app.Form)
	assert.Equal(t, todo.TabPending, app.Selected)
	assert.Equal(t, []string{"Buy milk"}, itemTitles(app.Tab(todo.TabPending)))
	assert.Equal(t, []string{"Buy milk"}, itemTitles(app.Tab(todo.TabAll)))
	assert.Empty(t, app.Tab(todo.TabToday).Items, "no due date")
}

func TestApp_AddFromCompletedSwitchesToPending(t *testing.T) {
	app := NewApp(testEnv(), nil, todo.TabCompleted)

	app = app.Update(AddTapped{})
	app = app.Update(AppForm{Action: SetTitle{Title: "x"}})
	app = app.Update(AppForm{Action: Save{}})

	assert.Equal(t, todo.TabPending, app.Selected)
	assert.Equal(t, []string{"x"}, itemTitles(app.Current()))
}

func TestApp_CompletedTabEditClearingCompletionSwitches(t *testing.T) {
	done := newTask(1, "report", func(t *todo.Task) { t.CompletedAt = todo.TimePtr(testNow) })
	app := NewApp(testEnv(), todo.NewCollection(done), todo.TabCompleted)
	require.Equal(t, []string{"report"}, itemTitles(app.Current()))

	app = app.Update(ToTab{Tab: todo.TabCompleted, Action: EditRequested{ID: done.ID}})
	require.NotNil(t, app.ActiveForm())

	app = app.Update(ToTab{Tab: todo.TabCompleted, Action: TabForm{Action: SetCompleted{Completed: false}}})
	app = app.Update(ToTab{Tab: todo.TabCompleted, Action: TabForm{Action: Save{}}})

	assert.Equal(t, todo.TabPending, app.Selected)
	assert.Nil(t, app.ActiveForm())
	assert.Empty(t, app.Tab(todo.TabCompleted).Items)
	assert.Equal(t, []string{"report"}, itemTitles(app.Tab(todo.TabPending)))
}

func TestApp_SwitchToPendingIsIdempotent(t *testing.T) {
	app := NewApp(testEnv(), nil, todo.TabPending)
	app = app.handleTabDelegate(SwitchToPendingTab{})
	app = app.handleTabDelegate(SwitchToPendingTab{})
	assert.Equal(t, todo.TabPending, app.Selected)
}

func TestApp_TrashScenario(t *testing.T) {
	x := newTask(1, "X", nil)
	app := NewApp(testEnv(), todo.NewCollection(x), todo.TabAll)

	app = app.Update(ToTab{Tab: todo.TabAll, Action: MoveToTrash{ID: x.ID}})
	for _, tab := range todo.Tabs {
		visible := app.Tab(tab).Index(x.ID) >= 0
		assert.Equal(t, tab == todo.TabTrashBin, visible, tab.String())
	}

	app = app.Update(SelectTab{Tab: todo.TabTrashBin})
	app = app.Update(ToTab{Tab: todo.TabTrashBin, Action: RestoreFromTrash{ID: x.ID}})
	assert.Equal(t, 0, app.Tab(todo.TabPending).Index(x.ID))
	assert.Equal(t, 0, app.Tab(todo.TabAll).Index(x.ID))
	assert.Equal(t, -1, app.Tab(todo.TabTrashBin).Index(x.ID))
	assert.Equal(t, -1, app.Tab(todo.TabCompleted).Index(x.ID))
}

func TestApp_PermanentDeleteScenario(t *testing.T) {
	x := newTask(1, "X", func(t *todo.Task) { t.TrashedAt = todo.TimePtr(testNow) })
	app := NewApp(testEnv(), todo.NewCollection(x), todo.TabTrashBin)

	app = app.Update(ToTab{Tab: todo.TabTrashBin, Action: RequestPermanentDelete{ID: x.ID}})
	require.NotNil(t, app.Current().Alert)
	assert.True(t, app.Todos.Contains(x.ID))

	app = app.Update(ToTab{Tab: todo.TabTrashBin, Action: ConfirmPermanentDelete{}})
	assert.False(t, app.Todos.Contains(x.ID))
	assert.Nil(t, app.Current().Alert)
}

func TestApp_TabsShareOneCollection(t *testing.T) {
	x := newTask(1, "X", nil)
	app := NewApp(testEnv(), todo.NewCollection(x), todo.TabPending)

	app = app.Update(ToTab{Tab: todo.TabPending, Action: ToggleCompletion{ID: x.ID}})
	assert.Empty(t, app.Tab(todo.TabPending).Items)
	assert.Equal(t, []string{"X"}, itemTitles(app.Tab(todo.TabCompleted)))
}

func TestApp_SelectTab(t *testing.T) {
	app := NewApp(testEnv(), nil, todo.TabPending)
	app = app.Update(SelectTab{Tab: todo.TabToday})
	assert.Equal(t, todo.TabToday, app.Selected)
	assert.Equal(t, todo.TabToday, app.Current().Tab)
}

func TestApp_DismissAppForm(t *testing.T) {
	app := NewApp(testEnv(), nil, todo.TabPending)
	app = app.Update(AddTapped{})
	app = app.Update(AppForm{Action: SetTitle{Title: "draft"}})
	app = app.Update(DismissAppForm{})
	assert.Nil(t, app.Form)
	assert.Zero(t, app.Todos.Len())
}

func TestApp_ValueSemantics(t *testing.T) {
	before := NewApp(testEnv(), nil, todo.TabPending)
	after := before.Update(SelectTab{Tab: todo.TabAll})
	assert.Equal(t, todo.TabPending, before.Selected)
	assert.Equal(t, todo.TabAll, after.Selected)
}

func TestApp_UnknownTabIsIgnored(t *testing.T) {
	x := newTask(1, "X", nil)
	app := NewApp(testEnv(), todo.NewCollection(x), todo.Tab(9))
	assert.Equal(t, todo.TabPending, app.Selected)
	assert.Equal(t, []string{"X"}, itemTitles(app.Current()))

	app = app.Update(SelectTab{Tab: todo.Tab(9)})
	assert.Equal(t, todo.TabPending, app.Selected)

	app = app.Update(ToTab{Tab: todo.Tab(-1), Action: MoveToTrash{ID: x.ID}})
	got, _ := app.Todos.Get(x.ID)
	assert.False(t, got.IsTrashed())
	assert.Empty(t, app.Tab(todo.Tab(9)).Items)
}
