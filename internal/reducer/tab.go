package reducer

import (
	"slices"

	"github.com/google/uuid"

	"tasktracker/internal/todo"
)

// Alert is a pending confirmation prompt for a permanent delete.
type Alert struct {
	TaskID  uuid.UUID
	Title   string
	Message string
}

func deletePermanentlyAlert(id uuid.UUID) *Alert {
	return &Alert{
		TaskID:  id,
		Title:   "Delete permanently",
		Message: "Do you really want to delete this item permanently?",
	}
}

// TabState is one tab's list controller. Items is a cached projection of
// the shared collection and is rebuilt after every mutation.
type TabState struct {
	Tab   todo.Tab
	Items []todo.Item
	Form  *FormState
	Alert *Alert

	todos *todo.Collection
}

func NewTab(tab todo.Tab, todos *todo.Collection) TabState {
	return TabState{Tab: tab, todos: todos}
}

// TabAction is an action dispatched to a single tab.
type TabAction interface {
	tabAction()
}

type (
	Appear                 struct{}
	AddRequested           struct{}
	EditRequested          struct{ ID uuid.UUID }
	TabForm                struct{ Action FormAction }
	DismissForm            struct{}
	ToggleCompletion       struct{ ID uuid.UUID }
	MoveToTrash            struct{ ID uuid.UUID }
	RestoreFromTrash       struct{ ID uuid.UUID }
	RequestPermanentDelete struct{ ID uuid.UUID }
	ConfirmPermanentDelete struct{}
	DismissAlert           struct{}
	// DeleteAt removes the displayed items at the given indexes without
	// going through the trash.
	DeleteAt struct{ Indexes []int }
)

func (Appear) tabAction()                 {}
func (AddRequested) tabAction()           {}
func (EditRequested) tabAction()          {}
func (TabForm) tabAction()                {}
func (DismissForm) tabAction()            {}
func (ToggleCompletion) tabAction()       {}
func (MoveToTrash) tabAction()            {}
func (RestoreFromTrash) tabAction()       {}
func (RequestPermanentDelete) tabAction() {}
func (ConfirmPermanentDelete) tabAction() {}
func (DismissAlert) tabAction()           {}
func (DeleteAt) tabAction()               {}

func (s TabState) Update(env Env, a TabAction) (TabState, Delegate) {
	switch a := a.(type) {
	case Appear:
		return s.refresh(env), nil
	case AddRequested:
		f := NewForm(todo.New(env.IDs.NewID()))
		s.Form = &f
		return s, nil
	case EditRequested:
		if t, ok := s.todos.Get(a.ID); ok {
			f := NewForm(t)
			s.Form = &f
		}
		return s, nil
	case TabForm:
		return s.updateForm(env, a.Action)
	case DismissForm:
		s.Form = nil
		return s, nil
	case ToggleCompletion:
		s.todos.Update(a.ID, func(t *todo.Task) { toggleCompletion(env, t) })
		return s.refresh(env), nil
	case MoveToTrash:
		now := env.now()
		s.todos.Update(a.ID, func(t *todo.Task) { t.TrashedAt = &now })
		return s.refresh(env), nil
	case RestoreFromTrash:
		s.todos.Update(a.ID, func(t *todo.Task) { t.TrashedAt = nil })
		return s.refresh(env), nil
	case RequestPermanentDelete:
		if s.todos.Contains(a.ID) {
			s.Alert = deletePermanentlyAlert(a.ID)
		}
		return s, nil
	case ConfirmPermanentDelete:
		if s.Alert == nil {
			return s, nil
		}
		s.todos.Remove(s.Alert.TaskID)
		s.Alert = nil
		return s.refresh(env), nil
	case DismissAlert:
		s.Alert = nil
		return s, nil
	case DeleteAt:
		s.deleteAt(a.Indexes)
		return s.refresh(env), nil
	}
	return s, nil
}

func (s TabState) updateForm(env Env, a FormAction) (TabState, Delegate) {
	if s.Form == nil {
		return s, nil
	}
	f, d := s.Form.Update(env, a)
	s.Form = &f
	saved, ok := d.(Saved)
	if !ok {
		return s, nil
	}
	s.Form = nil
	return s.Commit(env, saved.Task)
}

// Commit writes task into the shared collection. It asks for the pending
// tab when the saved task would not be visible on this one.
func (s TabState) Commit(env Env, task todo.Task) (TabState, Delegate) {
	adding := !s.todos.Contains(task.ID)
	task = task.Normalize(env.Calendar)
	s.todos.Put(task)
	s = s.refresh(env)
	if s.shouldSwitchToPending(env, task, adding) {
		return s, SwitchToPendingTab{}
	}
	return s, nil
}

func (s TabState) shouldSwitchToPending(env Env, task todo.Task, adding bool) bool {
	if s.Tab == todo.TabPending {
		return false
	}
	if adding && (s.Tab == todo.TabCompleted || s.Tab == todo.TabTrashBin) {
		return true
	}
	return !s.Tab.Includes(task, env.now(), env.Calendar)
}

func (s *TabState) deleteAt(indexes []int) {
	ids := make([]uuid.UUID, 0, len(indexes))
	for _, i := range indexes {
		if i >= 0 && i < len(s.Items) {
			ids = append(ids, s.Items[i].Task.ID)
		}
	}
	for _, id := range ids {
		s.todos.Remove(id)
	}
}

func (s TabState) refresh(env Env) TabState {
	s.Items = s.Tab.View(s.todos.All(), env.now(), env.Calendar)
	return s
}

// Index returns the position of id in the current view, or -1.
func (s TabState) Index(id uuid.UUID) int {
	return slices.IndexFunc(s.Items, func(it todo.Item) bool { return it.Task.ID == id })
}

func toggleCompletion(env Env, t *todo.Task) {
	// recurring tasks roll forward and stay pending
	if t.IsRecurring() {
		next := env.Calendar.Advance(*t.DueDate, t.Recurrence)
		t.DueDate = &next
		t.CompletedAt = nil
		return
	}
	if t.CompletedAt != nil {
		t.CompletedAt = nil
		return
	}
	now := env.now()
	t.CompletedAt = &now
}
