package models

import (
	"time"

	"github.com/julianstephens/tally/internal/constants"
)

// CreatedAtFormat is ISO 8601 in UTC with millisecond precision.
const CreatedAtFormat = "2006-01-02T15:04:05.000Z07:00"

// NewID returns a record id for a record created at now.
func NewID(now time.Time) int64 {
	return now.UnixMilli()
}

// NewTask returns a pending task with creation defaults applied. The due date
// defaults to now's local calendar date.
func NewTask(title string, now time.Time) Task {
	return Task{
		ID:        NewID(now),
		Title:     title,
		Priority:  Priority(constants.DefaultTaskPriority),
		Category:  constants.DefaultTaskCategory,
		DueDate:   now.Format(constants.DateFormat),
		CreatedAt: now.UTC().Format(CreatedAtFormat),
	}
}

// NewHabit returns a never-completed habit with creation defaults applied.
func NewHabit(title string, now time.Time) Habit {
	return Habit{
		ID:        NewID(now),
		Title:     title,
		Category:  constants.DefaultHabitCategory,
		Frequency: Frequency(constants.DefaultFrequency),
		Goal:      constants.DefaultGoal,
		Reminder:  constants.DefaultReminder,
		CreatedAt: now.UTC().Format(CreatedAtFormat),
	}
}
