package constants

const (
	DefaultTaskPriority  = "medium"
	DefaultTaskCategory  = "personal"
	DefaultHabitCategory = "health"
	DefaultFrequency     = "daily"
	DefaultGoal          = "1"
	DefaultReminder      = "09:00"
)

// TaskCategories are the category suggestions offered when creating a task.
// Any other string is accepted.
var TaskCategories = []string{"personal", "work", "health", "study", "shopping"}

// HabitCategories are the category suggestions offered when creating a habit.
var HabitCategories = []string{"health", "personal", "work", "study", "finance"}
