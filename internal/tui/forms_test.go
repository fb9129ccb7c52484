package tui

import (
	"testing"

	"github.com/julianstephens/tally/internal/models"
)

// openVia presses a key that opens a form. The form's own init commands are
// dropped since they only drive cursor blinking.
func openVia(t *testing.T, m Model, s string) Model {
	t.Helper()
	next, cmd := m.Update(keyPress(s))
	if cmd == nil {
		t.Fatalf("key %q produced no command", s)
	}
	next, _ = next.(Model).Update(cmd())
	return next.(Model)
}

func TestSaveTaskFormAdds(t *testing.T) {
	st, _ := newTestStore(t)
	m := newTestModel(t, st)
	m = press(t, m, "tab")

	m = openVia(t, m, "a")
	if m.state != StateTaskForm {
		t.Fatalf("state = %v, want StateTaskForm", m.state)
	}
	if m.taskForm.Priority != models.PriorityMedium || m.taskForm.DueDate != "2026-03-14" {
		t.Errorf("form defaults = %+v", *m.taskForm)
	}

	m.taskForm.Title = "  Buy milk "
	m.taskForm.Category = ""
	m.taskForm.Priority = models.PriorityHigh
	m = drain(t, m, m.saveForm())

	tasks := st.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("tasks = %d, want 1", len(tasks))
	}
	got := tasks[0]
	if got.Title != "Buy milk" || got.Priority != models.PriorityHigh || got.Category != "personal" {
		t.Errorf("saved task = %+v", got)
	}
	if got.ID != testNow.UnixMilli() {
		t.Errorf("ID = %d, want %d", got.ID, testNow.UnixMilli())
	}
	if m.status != "Added task Buy milk" {
		t.Errorf("status = %q", m.status)
	}
}

func TestSaveTaskFormEdits(t *testing.T) {
	st, _ := newTestStore(t)
	task := addTask(t, st, "Draft", 0)
	m := newTestModel(t, st)
	m = press(t, m, "tab")

	m = openVia(t, m, "e")
	if m.state != StateTaskForm || m.editingID != task.ID {
		t.Fatalf("state = %v editingID = %d", m.state, m.editingID)
	}
	if m.taskForm.Title != "Draft" {
		t.Errorf("form not prefilled: %+v", *m.taskForm)
	}

	m.taskForm.Title = "Final"
	m = drain(t, m, m.saveForm())

	got := st.Tasks()[0]
	if got.Title != "Final" || got.ID != task.ID || got.CreatedAt != task.CreatedAt {
		t.Errorf("edited task = %+v", got)
	}
}

func TestEscClosesForm(t *testing.T) {
	st, _ := newTestStore(t)
	m := newTestModel(t, st)
	m = press(t, m, "tab")
	m = press(t, m, "tab")

	m = openVia(t, m, "a")
	if m.state != StateHabitForm {
		t.Fatalf("state = %v, want StateHabitForm", m.state)
	}

	next, _ := m.Update(keyPress("esc"))
	m = next.(Model)
	if m.state != StateHabits || m.form != nil {
		t.Errorf("state = %v, form open = %v", m.state, m.form != nil)
	}
	if len(st.Habits()) != 0 {
		t.Error("cancelled form created a habit")
	}
}

func TestSaveHabitFormAppliesDefaults(t *testing.T) {
	st, _ := newTestStore(t)
	m := newTestModel(t, st)
	next, _ := m.openHabitForm(models.NewHabit("", testNow), 0)
	m = next.(Model)

	m.habitForm.Title = "Meditate"
	m.habitForm.Goal = ""
	m.habitForm.Frequency = models.FrequencyWeekly
	m.habitForm.Reminder = "07:15"
	m = drain(t, m, m.saveForm())

	habits := st.Habits()
	if len(habits) != 1 {
		t.Fatalf("habits = %d, want 1", len(habits))
	}
	h := habits[0]
	if h.Goal != "1" || h.Frequency != models.FrequencyWeekly || h.Reminder != "07:15" || h.Category != "health" {
		t.Errorf("saved habit = %+v", h)
	}
	if h.Streak != 0 || h.CompletedToday || h.LastCompleted != nil {
		t.Errorf("new habit has completion state: %+v", h)
	}
}
