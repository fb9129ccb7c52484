package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/state"
	"github.com/julianstephens/tally/internal/tui/components/habits"
	"github.com/julianstephens/tally/internal/tui/components/profile"
	"github.com/julianstephens/tally/internal/tui/components/tasklist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m, nil

	case SnapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case storeResultMsg:
		m.applySnapshot(m.store.Snapshot())
		if msg.err != nil {
			logger.Error("Failed to save change", "error", msg.err)
			m.status = "Not saved: " + msg.err.Error()
			m.statusErr = true
		} else {
			m.status = msg.status
			m.statusErr = false
		}
		return m, nil
	}

	switch m.state {
	case StateTaskForm, StateHabitForm:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.state = (m.state + 1) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.state = (m.state - 1 + SessionState(len(tabTitles))) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.Jump):
			if tab, ok := tabFor(msg.String()); ok {
				m.state = tab
			}
			return m, nil
		}
	}

	switch msg := msg.(type) {
	case tasklist.AddTaskMsg:
		return m.openTaskForm(models.NewTask("", m.now()), 0)
	case tasklist.EditTaskMsg:
		return m.openTaskForm(msg.Task, msg.Task.ID)
	case tasklist.ToggleTaskMsg:
		status := "Updated task"
		if t, ok := findTask(m.snap.Tasks, msg.ID); ok {
			if t.Completed {
				status = "Reopened " + t.Title
			} else {
				status = "Completed " + t.Title
			}
		}
		return m, m.mutate(status, func(ctx context.Context, s *state.Store) error {
			return s.ToggleTaskCompletion(ctx, msg.ID)
		})
	case tasklist.DeleteTaskMsg:
		return m.confirmDelete(deleteTarget{id: msg.ID, title: msg.Title})

	case habits.AddHabitMsg:
		return m.openHabitForm(models.NewHabit("", m.now()), 0)
	case habits.EditHabitMsg:
		return m.openHabitForm(msg.Habit, msg.Habit.ID)
	case habits.ToggleHabitMsg:
		status := "Updated habit"
		if h, ok := findHabit(m.snap.Habits, msg.ID); ok {
			if h.CompletedToday {
				status = "Unmarked " + h.Title
			} else {
				status = "Marked " + h.Title + " done today"
			}
		}
		return m, m.mutate(status, func(ctx context.Context, s *state.Store) error {
			return s.ToggleHabitCompletion(ctx, msg.ID)
		})
	case habits.DeleteHabitMsg:
		return m.confirmDelete(deleteTarget{habit: true, id: msg.ID, title: msg.Title})
	case habits.ResetHabitsMsg:
		return m, m.mutate("Started a new day", func(ctx context.Context, s *state.Store) error {
			return s.ResetDailyHabits(ctx)
		})

	case profile.ToggleThemeMsg:
		status := "Switched to dark mode"
		if m.snap.DarkMode {
			status = "Switched to light mode"
		}
		return m, m.mutate(status, func(ctx context.Context, s *state.Store) error {
			return s.ToggleDarkMode(ctx)
		})
	}

	var cmd tea.Cmd
	switch m.state {
	case StateDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case StateTasks:
		m.taskList, cmd = m.taskList.Update(msg)
	case StateHabits:
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	case StateProfile:
		m.profileModel, cmd = m.profileModel.Update(msg)
	}
	return m, cmd
}

// mutate queues fn against the store off the event loop and reports the
// result as a storeResultMsg.
func (m Model) mutate(status string, fn func(context.Context, *state.Store) error) tea.Cmd {
	return m.writes.enqueue(m.store, status, fn)
}

func (m Model) openTaskForm(t models.Task, editingID int64) (tea.Model, tea.Cmd) {
	m.previousState = m.state
	m.state = StateTaskForm
	m.editingID = editingID
	m.taskForm = taskFormFrom(t)
	m.form = NewTaskForm(m.taskForm)
	return m, m.form.Init()
}

func (m Model) openHabitForm(h models.Habit, editingID int64) (tea.Model, tea.Cmd) {
	m.previousState = m.state
	m.state = StateHabitForm
	m.editingID = editingID
	m.habitForm = habitFormFrom(h)
	m.form = NewHabitForm(m.habitForm)
	return m, m.form.Init()
}

func (m *Model) closeForm() {
	m.state = m.previousState
	m.form = nil
	m.taskForm = nil
	m.habitForm = nil
	m.editingID = 0
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		save := m.saveForm()
		m.closeForm()
		return m, tea.Batch(cmd, save)
	case huh.StateAborted:
		m.closeForm()
	}
	return m, cmd
}

// saveForm returns the command that writes the submitted form to the store.
func (m Model) saveForm() tea.Cmd {
	id := m.editingID
	switch m.state {
	case StateTaskForm:
		u := m.taskForm.Update()
		if id == 0 {
			t := u.Apply(models.NewTask("", m.now()))
			return m.mutate("Added task "+t.Title, func(ctx context.Context, s *state.Store) error {
				return s.AddTask(ctx, t)
			})
		}
		return m.mutate("Updated task "+*u.Title, func(ctx context.Context, s *state.Store) error {
			return s.UpdateTask(ctx, id, u)
		})
	case StateHabitForm:
		u := m.habitForm.Update()
		if id == 0 {
			h := u.Apply(models.NewHabit("", m.now()))
			return m.mutate("Added habit "+h.Title, func(ctx context.Context, s *state.Store) error {
				return s.AddHabit(ctx, h)
			})
		}
		return m.mutate("Updated habit "+*u.Title, func(ctx context.Context, s *state.Store) error {
			return s.UpdateHabit(ctx, id, u)
		})
	}
	return nil
}

func (m Model) confirmDelete(target deleteTarget) (tea.Model, tea.Cmd) {
	m.previousState = m.state
	m.state = StateConfirmDelete
	m.toDelete = target
	return m, nil
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		target := m.toDelete
		m.state = m.previousState
		m.toDelete = deleteTarget{}
		if target.habit {
			return m, m.mutate(fmt.Sprintf("Deleted habit %s", target.title), func(ctx context.Context, s *state.Store) error {
				return s.DeleteHabit(ctx, target.id)
			})
		}
		return m, m.mutate(fmt.Sprintf("Deleted task %s", target.title), func(ctx context.Context, s *state.Store) error {
			return s.DeleteTask(ctx, target.id)
		})
	case key.Matches(keyMsg, m.keys.Cancel):
		m.state = m.previousState
		m.toDelete = deleteTarget{}
	}
	return m, nil
}

func findTask(tasks []models.Task, id int64) (models.Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

func findHabit(habits []models.Habit, id int64) (models.Habit, bool) {
	for _, h := range habits {
		if h.ID == id {
			return h, true
		}
	}
	return models.Habit{}, false
}
