package tui

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/validation"
)

type TaskFormModel struct {
	Title       string
	Description string
	Priority    models.Priority
	Category    string
	DueDate     string
}

func taskFormFrom(t models.Task) *TaskFormModel {
	return &TaskFormModel{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Category:    t.Category,
		DueDate:     t.DueDate,
	}
}

// Update returns the partial update that writes every form field onto a task.
func (f *TaskFormModel) Update() models.TaskUpdate {
	title := strings.TrimSpace(f.Title)
	category := strings.TrimSpace(f.Category)
	if category == "" {
		category = constants.DefaultTaskCategory
	}
	return models.TaskUpdate{
		Title:       &title,
		Description: &f.Description,
		Priority:    &f.Priority,
		Category:    &category,
		DueDate:     &f.DueDate,
	}
}

type HabitFormModel struct {
	Title       string
	Description string
	Category    string
	Frequency   models.Frequency
	Goal        string
	Reminder    string
}

func habitFormFrom(h models.Habit) *HabitFormModel {
	return &HabitFormModel{
		Title:       h.Title,
		Description: h.Description,
		Category:    h.Category,
		Frequency:   h.Frequency,
		Goal:        h.Goal,
		Reminder:    h.Reminder,
	}
}

// Update returns the partial update that writes every form field onto a habit.
// Completion and streak fields are left alone.
func (f *HabitFormModel) Update() models.HabitUpdate {
	title := strings.TrimSpace(f.Title)
	category := strings.TrimSpace(f.Category)
	if category == "" {
		category = constants.DefaultHabitCategory
	}
	goal := f.Goal
	if goal == "" {
		goal = constants.DefaultGoal
	}
	return models.HabitUpdate{
		Title:       &title,
		Description: &f.Description,
		Category:    &category,
		Frequency:   &f.Frequency,
		Goal:        &goal,
		Reminder:    &f.Reminder,
	}
}

func NewTaskForm(fm *TaskFormModel) *huh.Form {
	priorities := make([]huh.Option[models.Priority], 0, len(models.Priorities))
	for _, p := range models.Priorities {
		priorities = append(priorities, huh.NewOption(strings.ToUpper(string(p[:1]))+string(p[1:]), p))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(validation.Title),
			huh.NewText().
				Title("Description").
				Value(&fm.Description).
				Validate(validation.Description),
			huh.NewSelect[models.Priority]().
				Title("Priority").
				Options(priorities...).
				Value(&fm.Priority),
			huh.NewInput().
				Title("Category").
				Suggestions(constants.TaskCategories).
				Value(&fm.Category),
			huh.NewInput().
				Title("Due date").
				Placeholder(constants.DateFormat).
				Value(&fm.DueDate).
				Validate(validation.Date),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewHabitForm(fm *HabitFormModel) *huh.Form {
	frequencies := make([]huh.Option[models.Frequency], 0, len(models.Frequencies))
	for _, f := range models.Frequencies {
		frequencies = append(frequencies, huh.NewOption(strings.ToUpper(string(f[:1]))+string(f[1:]), f))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit name").
				Value(&fm.Title).
				Validate(validation.Title),
			huh.NewText().
				Title("Description").
				Value(&fm.Description).
				Validate(validation.Description),
			huh.NewInput().
				Title("Category").
				Suggestions(constants.HabitCategories).
				Value(&fm.Category),
			huh.NewSelect[models.Frequency]().
				Title("Frequency").
				Options(frequencies...).
				Value(&fm.Frequency),
			huh.NewInput().
				Title("Goal").
				Description("Times per period").
				Value(&fm.Goal).
				Validate(validation.Goal),
			huh.NewInput().
				Title("Reminder").
				Placeholder("HH:MM").
				Value(&fm.Reminder).
				Validate(validation.Reminder),
		),
	).WithTheme(huh.ThemeDracula())
}
