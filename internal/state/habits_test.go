package state

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/julianstephens/tally/internal/models"
)

const today = "2026-06-10"

func habitStore(t *testing.T, habits ...models.Habit) (*Store, *memKV) {
	t.Helper()
	m := newMemKV()
	data, err := json.Marshal(habits)
	if err != nil {
		t.Fatalf("marshal habits: %v", err)
	}
	m.data["habits"] = string(data)
	return loadedStore(t, m, WithClock(fixedClock(today))), m
}

func TestToggleHabitAsymmetry(t *testing.T) {
	s, _ := habitStore(t, models.Habit{ID: 1, Title: "Run", Streak: 3, LongestStreak: 5})
	ctx := context.Background()

	if err := s.ToggleHabitCompletion(ctx, 1); err != nil {
		t.Fatalf("ToggleHabitCompletion() returned error: %v", err)
	}
	h := s.Habits()[0]
	if h.Streak != 4 || !h.CompletedToday || h.LongestStreak != 5 {
		t.Errorf("after mark: streak=%d completedToday=%v longest=%d, want 4 true 5",
			h.Streak, h.CompletedToday, h.LongestStreak)
	}
	if !h.CompletedOn(today) {
		t.Errorf("lastCompleted = %v, want %s", h.LastCompleted, today)
	}

	if err := s.ToggleHabitCompletion(ctx, 1); err != nil {
		t.Fatalf("second ToggleHabitCompletion() returned error: %v", err)
	}
	h = s.Habits()[0]
	if h.Streak != 0 || h.CompletedToday {
		t.Errorf("after unmark: streak=%d completedToday=%v, want 0 false", h.Streak, h.CompletedToday)
	}
	if h.LastCompleted != nil {
		t.Errorf("lastCompleted = %q after unmark, want nil", *h.LastCompleted)
	}
	if h.LongestStreak != 5 {
		t.Errorf("longestStreak = %d after unmark, want 5", h.LongestStreak)
	}
}

func TestToggleHabitRaisesLongestStreak(t *testing.T) {
	s, m := habitStore(t, models.Habit{ID: 1, Streak: 5, LongestStreak: 5})
	if err := s.ToggleHabitCompletion(context.Background(), 1); err != nil {
		t.Fatalf("ToggleHabitCompletion() returned error: %v", err)
	}

	h := s.Habits()[0]
	if h.Streak != 6 || h.LongestStreak != 6 {
		t.Errorf("streak=%d longest=%d, want 6 6", h.Streak, h.LongestStreak)
	}

	var persisted []map[string]any
	if err := json.Unmarshal([]byte(m.raw("habits")), &persisted); err != nil {
		t.Fatalf("persisted habits are not valid JSON: %v", err)
	}
	if persisted[0]["lastCompleted"] != today {
		t.Errorf("persisted lastCompleted = %v, want %s", persisted[0]["lastCompleted"], today)
	}
}

func TestStreakNeverExceedsLongest(t *testing.T) {
	s, _ := habitStore(t, models.Habit{ID: 1, Streak: 2, LongestStreak: 2})
	ctx := context.Background()

	// Interleave toggles and day rollovers
	days := []string{"2026-06-10", "2026-06-10", "2026-06-11", "2026-06-12", "2026-06-12", "2026-06-12", "2026-06-13"}
	for i, day := range days {
		s.now = fixedClock(day)
		if err := s.ResetDailyHabits(ctx); err != nil {
			t.Fatalf("step %d: ResetDailyHabits() returned error: %v", i, err)
		}
		if err := s.ToggleHabitCompletion(ctx, 1); err != nil {
			t.Fatalf("step %d: ToggleHabitCompletion() returned error: %v", i, err)
		}
		h := s.Habits()[0]
		if h.LongestStreak < h.Streak {
			t.Fatalf("step %d: longestStreak %d < streak %d", i, h.LongestStreak, h.Streak)
		}
	}
}

func TestToggleMissingHabitIsNoOp(t *testing.T) {
	s, m := habitStore(t, models.Habit{ID: 1, Streak: 1, LongestStreak: 1})
	before := m.raw("habits")

	if err := s.ToggleHabitCompletion(context.Background(), 42); err != nil {
		t.Fatalf("ToggleHabitCompletion() returned error: %v", err)
	}
	if m.writeCount() != 0 {
		t.Errorf("toggle of missing habit wrote %d times", m.writeCount())
	}
	after, _ := json.Marshal(s.Habits())
	if string(after) != before {
		t.Errorf("habits changed:\n got %s\nwant %s", after, before)
	}
}

func TestUpdateAndDeleteMissingHabit(t *testing.T) {
	s, m := habitStore(t, models.Habit{ID: 1, Title: "Stretch", LastCompleted: strPtr("2026-06-09")})
	before := m.raw("habits")
	ctx := context.Background()

	title := "ghost"
	if err := s.UpdateHabit(ctx, 42, models.HabitUpdate{Title: &title}); err != nil {
		t.Fatalf("UpdateHabit() returned error: %v", err)
	}
	if err := s.DeleteHabit(ctx, 42); err != nil {
		t.Fatalf("DeleteHabit() returned error: %v", err)
	}
	if m.raw("habits") != before {
		t.Errorf("persisted habits changed:\n got %s\nwant %s", m.raw("habits"), before)
	}
	if m.writeCount() != 2 {
		t.Errorf("writeCount = %d, want 2 unchanged writes", m.writeCount())
	}
}

func TestUpdateHabit(t *testing.T) {
	s, _ := habitStore(t, models.Habit{ID: 1, Title: "Read", Goal: "1", LastCompleted: strPtr("2026-06-09")})
	goal := "20"

	err := s.UpdateHabit(context.Background(), 1, models.HabitUpdate{Goal: &goal, ClearLastCompleted: true})
	if err != nil {
		t.Fatalf("UpdateHabit() returned error: %v", err)
	}
	h := s.Habits()[0]
	if h.Goal != "20" || h.Title != "Read" {
		t.Errorf("habit = %+v, want goal 20 and title unchanged", h)
	}
	if h.LastCompleted != nil {
		t.Errorf("lastCompleted = %q, want nil", *h.LastCompleted)
	}
}

func TestAddAndDeleteHabit(t *testing.T) {
	s, m := habitStore(t,
		models.Habit{ID: 1, Title: "A"},
		models.Habit{ID: 2, Title: "B"},
	)
	ctx := context.Background()

	if err := s.AddHabit(ctx, models.Habit{ID: 3, Title: "C"}); err != nil {
		t.Fatalf("AddHabit() returned error: %v", err)
	}
	if err := s.DeleteHabit(ctx, 1); err != nil {
		t.Fatalf("DeleteHabit() returned error: %v", err)
	}

	restarted := loadedStore(t, m)
	var titles []string
	for _, h := range restarted.Habits() {
		titles = append(titles, h.Title)
	}
	if !reflect.DeepEqual(titles, []string{"B", "C"}) {
		t.Errorf("reloaded habit titles = %v, want [B C]", titles)
	}
}

func TestResetDailyHabits(t *testing.T) {
	s, _ := habitStore(t,
		models.Habit{ID: 1, Title: "done today", CompletedToday: true, Streak: 4, LongestStreak: 4, LastCompleted: strPtr(today)},
		models.Habit{ID: 2, Title: "done yesterday", CompletedToday: true, Streak: 2, LongestStreak: 6, LastCompleted: strPtr("2026-06-09")},
		models.Habit{ID: 3, Title: "never done"},
	)

	if err := s.ResetDailyHabits(context.Background()); err != nil {
		t.Fatalf("ResetDailyHabits() returned error: %v", err)
	}
	habits := s.Habits()

	if !habits[0].CompletedToday {
		t.Error("habit completed today should stay completed")
	}
	if habits[1].CompletedToday {
		t.Error("habit completed yesterday should be reset")
	}
	if habits[1].Streak != 2 {
		t.Errorf("reset changed streak to %d, want 2", habits[1].Streak)
	}
	if habits[1].LastCompleted == nil || *habits[1].LastCompleted != "2026-06-09" {
		t.Errorf("reset changed lastCompleted to %v", habits[1].LastCompleted)
	}
	if habits[2].CompletedToday {
		t.Error("never-completed habit should not be completed")
	}
}

func TestResetDailyHabitsIsIdempotent(t *testing.T) {
	s, m := habitStore(t,
		models.Habit{ID: 1, CompletedToday: true, Streak: 1, LongestStreak: 1, LastCompleted: strPtr("2026-06-01")},
		models.Habit{ID: 2, CompletedToday: true, Streak: 3, LongestStreak: 3, LastCompleted: strPtr(today)},
	)
	ctx := context.Background()

	if err := s.ResetDailyHabits(ctx); err != nil {
		t.Fatalf("ResetDailyHabits() returned error: %v", err)
	}
	once := m.raw("habits")
	onceHabits := s.Habits()

	if err := s.ResetDailyHabits(ctx); err != nil {
		t.Fatalf("second ResetDailyHabits() returned error: %v", err)
	}
	if m.raw("habits") != once {
		t.Errorf("second reset changed storage:\n got %s\nwant %s", m.raw("habits"), once)
	}
	if !reflect.DeepEqual(s.Habits(), onceHabits) {
		t.Error("second reset changed in-memory habits")
	}
	if m.writeCount() != 1 {
		t.Errorf("writeCount = %d, want 1", m.writeCount())
	}
}

func TestLazyStreakDecay(t *testing.T) {
	// Completed two days ago; the missed day has not broken the streak yet.
	s, _ := habitStore(t, models.Habit{ID: 1, CompletedToday: true, Streak: 5, LongestStreak: 5, LastCompleted: strPtr("2026-06-08")})
	ctx := context.Background()

	if err := s.ResetDailyHabits(ctx); err != nil {
		t.Fatalf("ResetDailyHabits() returned error: %v", err)
	}
	if got := s.Habits()[0].Streak; got != 5 {
		t.Errorf("streak after reset = %d, want 5", got)
	}

	if err := s.ToggleHabitCompletion(ctx, 1); err != nil {
		t.Fatalf("ToggleHabitCompletion() returned error: %v", err)
	}
	if got := s.Habits()[0].Streak; got != 6 {
		t.Errorf("streak after marking = %d, want 6", got)
	}
}

func TestHabitWriteFailureLeavesStateUnchanged(t *testing.T) {
	start := models.Habit{ID: 1, Title: "Run", CompletedToday: true, Streak: 3, LongestStreak: 3, LastCompleted: strPtr("2026-06-09")}
	title := "changed"
	ops := map[string]func(s *Store) error{
		"add":    func(s *Store) error { return s.AddHabit(context.Background(), models.Habit{ID: 2}) },
		"update": func(s *Store) error { return s.UpdateHabit(context.Background(), 1, models.HabitUpdate{Title: &title}) },
		"delete": func(s *Store) error { return s.DeleteHabit(context.Background(), 1) },
		"toggle": func(s *Store) error { return s.ToggleHabitCompletion(context.Background(), 1) },
		"reset":  func(s *Store) error { return s.ResetDailyHabits(context.Background()) },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			s, m := habitStore(t, start)
			before := m.raw("habits")
			m.setFailing(true)

			err := op(s)
			if !errors.Is(err, ErrPersistence) {
				t.Fatalf("error = %v, want ErrPersistence", err)
			}
			if got := s.Habits(); !reflect.DeepEqual(got, []models.Habit{start}) {
				t.Errorf("in-memory habits changed after failed write: %+v", got)
			}
			if m.raw("habits") != before {
				t.Error("persisted habits changed after failed write")
			}
		})
	}
}
