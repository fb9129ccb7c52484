package models

// Stats summarizes the task and habit collections at a point in time.
type Stats struct {
	TotalTasks           int `json:"totalTasks" yaml:"totalTasks"`
	CompletedTasks       int `json:"completedTasks" yaml:"completedTasks"`
	PendingTasks         int `json:"pendingTasks" yaml:"pendingTasks"`
	TotalHabits          int `json:"totalHabits" yaml:"totalHabits"`
	CompletedHabitsToday int `json:"completedHabitsToday" yaml:"completedHabitsToday"`
	TotalStreak          int `json:"totalStreak" yaml:"totalStreak"`     // sum of every habit's current streak
	LongestStreak        int `json:"longestStreak" yaml:"longestStreak"` // best longestStreak across habits
}

// ComputeStats derives Stats from the given collections in a single pass over each.
func ComputeStats(tasks []Task, habits []Habit) Stats {
	s := Stats{
		TotalTasks:  len(tasks),
		TotalHabits: len(habits),
	}
	for _, t := range tasks {
		if t.Completed {
			s.CompletedTasks++
		} else {
			s.PendingTasks++
		}
	}
	for _, h := range habits {
		if h.CompletedToday {
			s.CompletedHabitsToday++
		}
		s.TotalStreak += h.Streak
		if h.LongestStreak > s.LongestStreak {
			s.LongestStreak = h.LongestStreak
		}
	}
	return s
}

// TaskCompletionPercent returns completed tasks as a percentage of all tasks, or 0 when there are none.
func (s Stats) TaskCompletionPercent() float64 {
	if s.TotalTasks == 0 {
		return 0
	}
	return float64(s.CompletedTasks) / float64(s.TotalTasks) * 100
}

// HabitCompletionPercent returns habits completed today as a percentage of all habits.
func (s Stats) HabitCompletionPercent() float64 {
	if s.TotalHabits == 0 {
		return 0
	}
	return float64(s.CompletedHabitsToday) / float64(s.TotalHabits) * 100
}
