package models

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Frequencies lists every valid frequency.
var Frequencies = []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly}

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// Habit is a recurring practice tracked by daily completion and a streak counter.
// Frequency, Goal and Reminder are stored for display only; completion is binary
// per calendar day regardless of frequency.
type Habit struct {
	ID             int64     `json:"id" yaml:"id"` // creation time in Unix milliseconds
	Title          string    `json:"title" yaml:"title"`
	Description    string    `json:"description" yaml:"description"`
	Category       string    `json:"category" yaml:"category"`
	Frequency      Frequency `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	Goal           string    `json:"goal,omitempty" yaml:"goal,omitempty"`
	Reminder       string    `json:"reminder" yaml:"reminder"` // HH:MM format
	CompletedToday bool      `json:"completedToday" yaml:"completedToday"`
	Streak         int       `json:"streak" yaml:"streak"`
	LongestStreak  int       `json:"longestStreak" yaml:"longestStreak"`
	LastCompleted  *string   `json:"lastCompleted" yaml:"lastCompleted"` // YYYY-MM-DD format, null when never completed or unmarked
	CreatedAt      string    `json:"createdAt" yaml:"createdAt"`         // ISO 8601 timestamp
}

// CompletedOn reports whether the habit's last completion falls on day.
func (h Habit) CompletedOn(day string) bool {
	return h.LastCompleted != nil && *h.LastCompleted == day
}

// HabitUpdate is a partial update. Every non-nil field replaces the
// corresponding field of the target habit. ClearLastCompleted sets
// LastCompleted to null and takes precedence over LastCompleted.
type HabitUpdate struct {
	Title              *string
	Description        *string
	Category           *string
	Frequency          *Frequency
	Goal               *string
	Reminder           *string
	CompletedToday     *bool
	Streak             *int
	LongestStreak      *int
	LastCompleted      *string
	ClearLastCompleted bool
	CreatedAt          *string
}

// Apply returns a copy of h with u merged over it.
func (u HabitUpdate) Apply(h Habit) Habit {
	if u.Title != nil {
		h.Title = *u.Title
	}
	if u.Description != nil {
		h.Description = *u.Description
	}
	if u.Category != nil {
		h.Category = *u.Category
	}
	if u.Frequency != nil {
		h.Frequency = *u.Frequency
	}
	if u.Goal != nil {
		h.Goal = *u.Goal
	}
	if u.Reminder != nil {
		h.Reminder = *u.Reminder
	}
	if u.CompletedToday != nil {
		h.CompletedToday = *u.CompletedToday
	}
	if u.Streak != nil {
		h.Streak = *u.Streak
	}
	if u.LongestStreak != nil {
		h.LongestStreak = *u.LongestStreak
	}
	switch {
	case u.ClearLastCompleted:
		h.LastCompleted = nil
	case u.LastCompleted != nil:
		day := *u.LastCompleted
		h.LastCompleted = &day
	}
	if u.CreatedAt != nil {
		h.CreatedAt = *u.CreatedAt
	}
	return h
}

// IsEmpty reports whether the update names no fields.
func (u HabitUpdate) IsEmpty() bool {
	return u == HabitUpdate{}
}
