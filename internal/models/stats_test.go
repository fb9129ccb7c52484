package models

import "testing"

func TestComputeStats(t *testing.T) {
	tasks := []Task{{Completed: true}, {Completed: false}, {Completed: false}}
	habits := []Habit{
		{CompletedToday: true, Streak: 4, LongestStreak: 5},
		{CompletedToday: false, Streak: 0, LongestStreak: 9},
		{CompletedToday: true, Streak: 2, LongestStreak: 2},
	}

	s := ComputeStats(tasks, habits)

	if s.TotalTasks != 3 {
		t.Errorf("TotalTasks = %d, want 3", s.TotalTasks)
	}
	if s.CompletedTasks != 1 {
		t.Errorf("CompletedTasks = %d, want 1", s.CompletedTasks)
	}
	if s.PendingTasks != 2 {
		t.Errorf("PendingTasks = %d, want 2", s.PendingTasks)
	}
	if s.TotalHabits != 3 {
		t.Errorf("TotalHabits = %d, want 3", s.TotalHabits)
	}
	if s.CompletedHabitsToday != 2 {
		t.Errorf("CompletedHabitsToday = %d, want 2", s.CompletedHabitsToday)
	}
	if s.TotalStreak != 6 {
		t.Errorf("TotalStreak = %d, want 6", s.TotalStreak)
	}
	if s.LongestStreak != 9 {
		t.Errorf("LongestStreak = %d, want 9", s.LongestStreak)
	}
}

func TestStatsPercentages(t *testing.T) {
	tests := []struct {
		name      string
		stats     Stats
		wantTask  float64
		wantHabit float64
	}{
		{"empty collections", Stats{}, 0, 0},
		{"half done", Stats{TotalTasks: 4, CompletedTasks: 2, TotalHabits: 2, CompletedHabitsToday: 2}, 50, 100},
		{"none done", Stats{TotalTasks: 3, TotalHabits: 5}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stats.TaskCompletionPercent(); got != tt.wantTask {
				t.Errorf("TaskCompletionPercent() = %v, want %v", got, tt.wantTask)
			}
			if got := tt.stats.HabitCompletionPercent(); got != tt.wantHabit {
				t.Errorf("HabitCompletionPercent() = %v, want %v", got, tt.wantHabit)
			}
		})
	}
}
