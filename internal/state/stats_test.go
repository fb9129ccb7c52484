package state

import (
	"context"
	"testing"

	"github.com/julianstephens/tally/internal/models"
)

func TestGetStats(t *testing.T) {
	m := newMemKV()
	m.data["tasks"] = `[{"id":1,"completed":true},{"id":2,"completed":false},{"id":3,"completed":false}]`
	m.data["habits"] = `[
		{"id":1,"completedToday":true,"streak":4,"longestStreak":9,"lastCompleted":"2026-06-10"},
		{"id":2,"completedToday":false,"streak":2,"longestStreak":2,"lastCompleted":null}
	]`
	s := loadedStore(t, m)

	got := s.GetStats()
	want := models.Stats{
		TotalTasks:           3,
		CompletedTasks:       1,
		PendingTasks:         2,
		TotalHabits:          2,
		CompletedHabitsToday: 1,
		TotalStreak:          6,
		LongestStreak:        9,
	}
	if got != want {
		t.Errorf("GetStats() = %+v, want %+v", got, want)
	}
	if m.getCalls != 3 {
		t.Errorf("GetStats() read storage: %d Get calls, want 3 from Load only", m.getCalls)
	}
}

func TestGetStatsTracksMutations(t *testing.T) {
	s := loadedStore(t, newMemKV())
	ctx := context.Background()

	if err := s.AddTask(ctx, models.Task{ID: 1}); err != nil {
		t.Fatalf("AddTask() returned error: %v", err)
	}
	if err := s.ToggleTaskCompletion(ctx, 1); err != nil {
		t.Fatalf("ToggleTaskCompletion() returned error: %v", err)
	}
	if got := s.GetStats(); got.CompletedTasks != 1 || got.PendingTasks != 0 {
		t.Errorf("GetStats() = %+v, want 1 completed 0 pending", got)
	}

	if err := s.DeleteTask(ctx, 1); err != nil {
		t.Fatalf("DeleteTask() returned error: %v", err)
	}
	if got := s.GetStats(); got.TotalTasks != 0 {
		t.Errorf("GetStats().TotalTasks = %d after delete, want 0", got.TotalTasks)
	}
}
