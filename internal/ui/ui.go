package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"tasktracker/internal/config"
	"tasktracker/internal/reducer"
	"tasktracker/internal/storage"
	"tasktracker/internal/todo"
)

const dateLayout = "2006-01-02"

var (
	activeTabStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	inactiveTabStyle = lipgloss.NewStyle().Faint(true)
	overdueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	todayStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	alertStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Model adapts the reducer App to bubbletea: key presses become actions,
// and the collection is saved whenever its version moves.
type Model struct {
	app    reducer.App
	store  storage.Store
	cfg    config.Config
	logger *log.Logger

	cursor int
	input  textinput.Model
	status string
	saved  uint64
}

// New loads the stored tasks and builds the initial model.
func New(store storage.Store, cfg config.Config, env reducer.Env, logger *log.Logger) (Model, error) {
	if logger == nil {
		logger = log.Default()
	}
	tasks, err := store.Load()
	if err != nil {
		return Model{}, fmt.Errorf("load tasks: %w", err)
	}
	logger.Debug("loaded tasks", "count", len(tasks))

	todos := todo.NewCollection()
	for _, t := range tasks {
		todos.Put(t.Normalize(env.Calendar))
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	return Model{
		app:    reducer.NewApp(env, todos, cfg.Tab()),
		store:  store,
		cfg:    cfg,
		logger: logger,
		input:  ti,
		status: fmt.Sprintf("Press '%s' to add, '%s' to toggle, '%s' to trash.", cfg.Keys.Add, cfg.Keys.Toggle, cfg.Keys.Trash),
		saved:  todos.Version(),
	}, nil
}

func Run(store storage.Store, cfg config.Config, env reducer.Env, logger *log.Logger) error {
	m, err := New(store, cfg, env, logger)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m).Run()
	return err
}

// App exposes the current core state.
func (m Model) App() reducer.App { return m.app }

func (m Model) Status() string { return m.status }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.app.Current().Alert != nil {
			return m.updateAlert(msg.String())
		}
		if m.app.ActiveForm() != nil {
			return m.updateForm(msg.String(), msg)
		}
		return m.updateList(msg.String())
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) dispatch(a reducer.AppAction) Model {
	m.app = m.app.Update(a)
	m.cursor = clampCursor(m.cursor, len(m.app.Current().Items))
	return m.persist()
}

func (m Model) dispatchTab(a reducer.TabAction) Model {
	return m.dispatch(reducer.ToTab{Tab: m.app.Selected, Action: a})
}

func (m Model) persist() Model {
	v := m.app.Todos.Version()
	if v == m.saved {
		return m
	}
	if err := m.store.Save(m.app.Todos.All()); err != nil {
		m.logger.Error("save failed", "err", err)
		m.status = fmt.Sprintf("save failed: %v", err)
		return m
	}
	m.logger.Debug("saved tasks", "count", m.app.Todos.Len(), "version", v)
	m.saved = v
	return m
}

func (m Model) selectedTask() (todo.Task, bool) {
	items := m.app.Current().Items
	if len(items) == 0 {
		return todo.Task{}, false
	}
	return items[clampCursor(m.cursor, len(items))].Task, true
}

func (m Model) updateList(key string) (tea.Model, tea.Cmd) {
	k := m.cfg.Keys
	switch key {
	case "ctrl+c", k.Quit:
		return m, tea.Quit
	case k.Down, "down":
		m.cursor = clampCursor(m.cursor+1, len(m.app.Current().Items))
	case k.Up, "up":
		m.cursor = clampCursor(m.cursor-1, len(m.app.Current().Items))
	case k.NextTab, "right":
		m = m.selectTab(m.app.Selected + 1)
	case k.PrevTab, "left":
		m = m.selectTab(m.app.Selected - 1)
	case k.Add:
		m = m.dispatch(reducer.AddTapped{})
		return m.openForm()
	case k.Edit:
		t, ok := m.selectedTask()
		if !ok {
			m.status = "No tasks to edit"
			return m, nil
		}
		m = m.dispatchTab(reducer.EditRequested{ID: t.ID})
		return m.openForm()
	case k.Toggle:
		if t, ok := m.selectedTask(); ok {
			m.status = "Toggled task"
			m = m.dispatchTab(reducer.ToggleCompletion{ID: t.ID})
		}
	case k.Trash:
		if t, ok := m.selectedTask(); ok && !t.IsTrashed() {
			m.status = fmt.Sprintf("Moved %q to trash", t.Title)
			m = m.dispatchTab(reducer.MoveToTrash{ID: t.ID})
		}
	case k.Restore:
		if t, ok := m.selectedTask(); ok && t.IsTrashed() {
			m.status = fmt.Sprintf("Restored %q", t.Title)
			m = m.dispatchTab(reducer.RestoreFromTrash{ID: t.ID})
		}
	case k.Delete:
		if t, ok := m.selectedTask(); ok {
			m = m.dispatchTab(reducer.RequestPermanentDelete{ID: t.ID})
		}
	}
	return m, nil
}

func (m Model) selectTab(t todo.Tab) Model {
	n := todo.Tab(len(todo.Tabs))
	t = (t%n + n) % n
	m = m.dispatch(reducer.SelectTab{Tab: t})
	m.cursor = 0
	return m
}

func (m Model) updateAlert(key string) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Confirm, "Y":
		m.status = "Deleted task"
		m = m.dispatchTab(reducer.ConfirmPermanentDelete{})
	case "n", "N", m.cfg.Keys.Cancel:
		m.status = "Delete cancelled"
		m = m.dispatchTab(reducer.DismissAlert{})
	}
	return m, nil
}

func (m Model) openForm() (tea.Model, tea.Cmd) {
	f := m.app.ActiveForm()
	if f == nil {
		return m, nil
	}
	m.input.SetValue(fieldValue(f.Task, f.Focus))
	m.input.Placeholder = f.Focus.String()
	m.input.Focus()
	m.status = m.formPrompt()
	return m, nil
}

func (m Model) dispatchForm(a reducer.FormAction) Model {
	if m.app.Form != nil {
		return m.dispatch(reducer.AppForm{Action: a})
	}
	return m.dispatchTab(reducer.TabForm{Action: a})
}

func (m Model) closeForm() Model {
	if m.app.Form != nil {
		m = m.dispatch(reducer.DismissAppForm{})
	} else {
		m = m.dispatchTab(reducer.DismissForm{})
	}
	m.input.Blur()
	m.input.SetValue("")
	return m
}

func (m Model) updateForm(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.cfg.Keys
	switch key {
	case k.Cancel, "ctrl+c":
		m = m.closeForm()
		m.status = "Edit cancelled"
		return m, nil
	case k.NextField, k.PrevField, "enter":
		var err error
		if m, err = m.commitField(); err != nil {
			m.status = err.Error()
			return m, nil
		}
		step := 1
		if key == k.PrevField {
			step = -1
		}
		f := m.app.ActiveForm()
		next := reducer.Field((int(f.Focus) + step + len(reducer.Fields)) % len(reducer.Fields))
		m = m.dispatchForm(reducer.FocusField{Field: next})
		return m.openForm()
	case k.Save:
		var err error
		if m, err = m.commitField(); err != nil {
			m.status = err.Error()
			return m, nil
		}
		if m.app.ActiveForm().SaveDisabled {
			m.status = "Title cannot be empty"
			return m, nil
		}
		m.status = "Saved task"
		m = m.dispatchForm(reducer.Save{})
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// commitField turns the text input into an action for the focused field.
func (m Model) commitField() (Model, error) {
	f := m.app.ActiveForm()
	if f == nil {
		return m, nil
	}
	a, err := parseField(f.Focus, m.input.Value(), m.app.Env().Calendar)
	if err != nil {
		return m, fmt.Errorf("%s invalid: %w", f.Focus, err)
	}
	if a == nil {
		return m, nil
	}
	return m.dispatchForm(a), nil
}

func parseField(f reducer.Field, v string, cal todo.Calendar) (reducer.FormAction, error) {
	switch f {
	case reducer.FieldTitle:
		return reducer.SetTitle{Title: v}, nil
	case reducer.FieldNote:
		return reducer.SetNote{Note: v}, nil
	case reducer.FieldPriority:
		p, err := todo.ParsePriority(strings.ToLower(strings.TrimSpace(v)))
		if err != nil {
			return nil, err
		}
		return reducer.SetPriority{Priority: p}, nil
	case reducer.FieldDueDate:
		v = strings.TrimSpace(v)
		if v == "" {
			return reducer.ClearDueDate{}, nil
		}
		d, err := time.ParseInLocation(dateLayout, v, cal.Location)
		if err != nil {
			return nil, err
		}
		return reducer.SetDueDate{Date: d}, nil
	case reducer.FieldRecurrence:
		r, err := todo.ParseRecurrence(strings.ToLower(strings.TrimSpace(v)))
		if err != nil {
			return nil, err
		}
		return reducer.SetRecurrence{Recurrence: r}, nil
	case reducer.FieldCompleted:
		return reducer.SetCompleted{Completed: parseYN(v)}, nil
	}
	return nil, nil
}

func fieldValue(t todo.Task, f reducer.Field) string {
	switch f {
	case reducer.FieldTitle:
		return t.Title
	case reducer.FieldNote:
		return t.Note
	case reducer.FieldPriority:
		return t.Priority.String()
	case reducer.FieldDueDate:
		if t.DueDate == nil {
			return ""
		}
		return t.DueDate.Format(dateLayout)
	case reducer.FieldRecurrence:
		return t.Recurrence.String()
	case reducer.FieldCompleted:
		return boolToYN(t.IsCompleted())
	}
	return ""
}

func (m Model) formPrompt() string {
	f := m.app.ActiveForm()
	if f == nil {
		return ""
	}
	return fmt.Sprintf("Editing %s (field %d of %d). %s/%s to move, %s to save, %s to cancel.",
		f.Focus, int(f.Focus)+1, len(reducer.Fields), m.cfg.Keys.NextField, m.cfg.Keys.PrevField, m.cfg.Keys.Save, m.cfg.Keys.Cancel)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	items := m.app.Current().Items
	if len(items) == 0 {
		b.WriteString(fmt.Sprintf("Nothing here. Press '%s' to add a task.", m.cfg.Keys.Add))
	} else {
		b.WriteString(m.renderTaskList(items))
	}

	b.WriteString("\n---\n")
	if f := m.app.ActiveForm(); f != nil {
		b.WriteString(renderForm(*f))
		b.WriteString("\n")
		b.WriteString(m.input.View())
	} else if a := m.app.Current().Alert; a != nil {
		b.WriteString(alertStyle.Render(fmt.Sprintf("%s\n%s\n%s yes • n no", a.Title, a.Message, m.cfg.Keys.Confirm)))
	}

	b.WriteString("\n\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(renderHelp(m.cfg.Keys))
	return b.String()
}

func (m Model) renderTabs() string {
	parts := make([]string, 0, len(todo.Tabs))
	for _, t := range todo.Tabs {
		name := fmt.Sprintf("%s (%d)", t, len(m.app.Tab(t).Items))
		if t == m.app.Selected {
			parts = append(parts, activeTabStyle.Render(name))
		} else {
			parts = append(parts, inactiveTabStyle.Render(name))
		}
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderTaskList(items []todo.Item) string {
	var b strings.Builder
	for i, it := range items {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		checkbox := "[ ]"
		if it.Task.IsCompleted() {
			checkbox = "[x]"
		}
		body := fmt.Sprintf("%s %s %s", cursor, checkbox, it.Task.Title)
		if it.Task.Priority != todo.PriorityNormal {
			body += " !" + it.Task.Priority.String()
		}
		if it.Task.Recurrence != todo.RecurrenceNever {
			body += " ↻" + it.Task.Recurrence.String()
		}
		if it.Label != nil {
			body += " " + renderLabel(*it.Label)
		}
		b.WriteString(body)
		b.WriteString("\n")
	}
	return b.String()
}

func renderLabel(l todo.DueLabel) string {
	switch l {
	case todo.DueOverdue, todo.DueYesterday:
		return overdueStyle.Render(l.String())
	case todo.DueToday:
		return todayStyle.Render(l.String())
	}
	return labelStyle.Render(l.String())
}

func renderForm(f reducer.FormState) string {
	var b strings.Builder
	for _, field := range reducer.Fields {
		prefix := " "
		if field == f.Focus {
			prefix = ">"
		}
		val := fieldValue(f.Task, field)
		if field == reducer.FieldRecurrence && f.RecurrenceDisabled {
			val += " (needs a due date)"
		}
		if strings.TrimSpace(val) == "" {
			val = "(empty)"
		}
		b.WriteString(fmt.Sprintf("%s %-11s : %s\n", prefix, field, val))
	}
	if f.SaveDisabled {
		b.WriteString("  save disabled: title is empty\n")
	}
	return b.String()
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s/%s tab • %s add • %s edit • %q toggle • %s trash • %s restore • %s delete • %s quit",
		k.Up, k.Down, k.PrevTab, k.NextTab, k.Add, k.Edit, k.Toggle, k.Trash, k.Restore, k.Delete, k.Quit)
}

func parseYN(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "y" || v == "yes" || v == "true" || v == "1"
}

func boolToYN(b bool) string {
	if b {
		return "y"
	}
	return "n"
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
