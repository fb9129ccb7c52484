package tasklist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tally/internal/models"
)

type AddTaskMsg struct{}

type ToggleTaskMsg struct {
	ID int64
}

type DeleteTaskMsg struct {
	ID    int64
	Title string
}

type EditTaskMsg struct {
	Task models.Task
}

type Item struct {
	Task models.Task
}

func (i Item) Title() string {
	if i.Task.Completed {
		return "✓ " + i.Task.Title
	}
	return "○ " + i.Task.Title
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s | %s", i.Task.Priority, i.Task.Category)
	if i.Task.DueDate != "" {
		desc += " | due " + i.Task.DueDate
	}
	return desc
}

func (i Item) FilterValue() string { return i.Task.Title }

type KeyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Edit   key.Binding
	Delete key.Binding
	Filter key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle done"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "cycle filter"),
		),
	}
}

// filterCycle is the order the filter key steps through.
var filterCycle = []models.TaskFilter{
	models.TaskFilterAll,
	models.TaskFilterPending,
	models.TaskFilterCompleted,
}

type Model struct {
	list   list.Model
	keys   KeyMap
	tasks  []models.Task
	filter models.TaskFilter
}

func New(tasks []models.Task, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Tasks"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	// Filtering by status replaces the list's fuzzy filter
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Edit, keys.Delete, keys.Filter}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	m := Model{list: l, keys: keys, filter: models.TaskFilterAll}
	m.SetTasks(tasks)
	return m
}

// SetTasks replaces the underlying tasks and reapplies the current filter.
func (m *Model) SetTasks(tasks []models.Task) {
	m.tasks = tasks
	visible := models.FilterTasks(tasks, m.filter)
	items := make([]list.Item, len(visible))
	for i, t := range visible {
		items[i] = Item{Task: t}
	}
	m.list.SetItems(items)
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m Model) Filter() models.TaskFilter {
	return m.filter
}

// NextFilter advances to the next status filter.
func (m *Model) NextFilter() {
	for i, f := range filterCycle {
		if f == m.filter {
			m.filter = filterCycle[(i+1)%len(filterCycle)]
			break
		}
	}
	m.SetTasks(m.tasks)
}

// Selected returns the highlighted task.
func (m Model) Selected() (models.Task, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Task, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddTaskMsg{} }
		case key.Matches(msg, m.keys.Filter):
			m.NextFilter()
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			if t, ok := m.Selected(); ok {
				return m, func() tea.Msg { return ToggleTaskMsg{ID: t.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Edit):
			if t, ok := m.Selected(); ok {
				return m, func() tea.Msg { return EditTaskMsg{Task: t} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if t, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteTaskMsg{ID: t.ID, Title: t.Title} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	header := fmt.Sprintf("  Showing: %s (%d of %d)\n\n", m.filter, len(m.list.Items()), len(m.tasks))
	if len(m.list.Items()) == 0 {
		if len(m.tasks) == 0 {
			return header + "  No tasks yet.\n  Press 'a' to add one."
		}
		return header + "  No tasks match this filter.\n  Press 'f' to change it."
	}
	return header + m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, max(height-2, 0))
}
