package reducer

import (
	"tasktracker/internal/todo"
)

// App is the top-level orchestrator. It owns the shared collection, the
// selected tab, the modal add form and one TabState per tab.
type App struct {
	Todos    *todo.Collection
	Selected todo.Tab
	Form     *FormState

	tabs [len(todo.Tabs)]TabState
	env  Env
}

func NewApp(env Env, todos *todo.Collection, selected todo.Tab) App {
	if todos == nil {
		todos = todo.NewCollection()
	}
	if !selected.Valid() {
		selected = todo.TabPending
	}
	a := App{Todos: todos, Selected: selected, env: env}
	for _, t := range todo.Tabs {
		a.tabs[t] = NewTab(t, todos)
	}
	return a.refreshAll()
}

// AppAction is an action dispatched to the App.
type AppAction interface {
	appAction()
}

type (
	AddTapped struct{}
	SelectTab struct{ Tab todo.Tab }
	// ToTab forwards Action to the tab controller for Tab.
	ToTab struct {
		Tab    todo.Tab
		Action TabAction
	}
	AppForm        struct{ Action FormAction }
	DismissAppForm struct{}
)

func (AddTapped) appAction()      {}
func (SelectTab) appAction()      {}
func (ToTab) appAction()          {}
func (AppForm) appAction()        {}
func (DismissAppForm) appAction() {}

func (a App) Update(action AppAction) App {
	switch action := action.(type) {
	case AddTapped:
		f := NewForm(todo.New(a.env.IDs.NewID()))
		a.Form = &f
		return a
	case SelectTab:
		if !action.Tab.Valid() {
			return a
		}
		a.Selected = action.Tab
		a.tabs[action.Tab], _ = a.tabs[action.Tab].Update(a.env, Appear{})
		return a
	case ToTab:
		if !action.Tab.Valid() {
			return a
		}
		var d Delegate
		a.tabs[action.Tab], d = a.tabs[action.Tab].Update(a.env, action.Action)
		return a.handleTabDelegate(d).refreshAll()
	case AppForm:
		return a.updateForm(action.Action)
	case DismissAppForm:
		a.Form = nil
		return a
	}
	return a
}

func (a App) updateForm(action FormAction) App {
	if a.Form == nil {
		return a
	}
	f, d := a.Form.Update(a.env, action)
	a.Form = &f
	saved, ok := d.(Saved)
	if !ok {
		return a
	}
	a.Form = nil
	if !a.Selected.Valid() {
		a.Selected = todo.TabPending
	}
	a.tabs[a.Selected], d = a.tabs[a.Selected].Commit(a.env, saved.Task)
	return a.handleTabDelegate(d).refreshAll()
}

func (a App) handleTabDelegate(d Delegate) App {
	if _, ok := d.(SwitchToPendingTab); ok {
		a.Selected = todo.TabPending
	}
	return a
}

func (a App) refreshAll() App {
	for i := range a.tabs {
		a.tabs[i] = a.tabs[i].refresh(a.env)
	}
	return a
}

// Tab returns the controller state for t. Unknown tabs get an empty
// state.
func (a App) Tab(t todo.Tab) TabState {
	if !t.Valid() {
		return NewTab(t, a.Todos)
	}
	return a.tabs[t]
}

// Current returns the selected tab's controller state.
func (a App) Current() TabState {
	return a.Tab(a.Selected)
}

// ActiveForm returns the open form, top-level first, then the selected
// tab's, or nil.
func (a App) ActiveForm() *FormState {
	if a.Form != nil {
		return a.Form
	}
	return a.Current().Form
}

// Env returns the collaborators the App was built with.
func (a App) Env() Env {
	return a.env
}
