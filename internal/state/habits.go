package state

import (
	"context"
	"slices"

	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/models"
)

// commitHabits persists next and, on success, makes it the habit collection.
// The caller must hold s.mu; it is released before subscribers run.
func (s *Store) commitHabits(ctx context.Context, next []models.Habit) error {
	if err := s.persist(ctx, constants.KeyHabits, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.habits = next
	s.mu.Unlock()
	s.notify()
	return nil
}

// AddHabit appends h as given. The caller supplies the id and defaults.
func (s *Store) AddHabit(ctx context.Context, h models.Habit) error {
	s.mu.Lock()
	next := append(cloneHabits(s.habits), h)
	return s.commitHabits(ctx, next)
}

// UpdateHabit merges u over the habit with the given id. An unknown id writes
// the collection back unchanged.
func (s *Store) UpdateHabit(ctx context.Context, id int64, u models.HabitUpdate) error {
	s.mu.Lock()
	next := cloneHabits(s.habits)
	if i := indexHabit(next, id); i >= 0 {
		next[i] = u.Apply(next[i])
	}
	return s.commitHabits(ctx, next)
}

// DeleteHabit removes the habit with the given id, keeping the order of the rest.
func (s *Store) DeleteHabit(ctx context.Context, id int64) error {
	s.mu.Lock()
	next := slices.DeleteFunc(cloneHabits(s.habits), func(h models.Habit) bool {
		return h.ID == id
	})
	return s.commitHabits(ctx, next)
}

// ToggleHabitCompletion marks or unmarks the habit for today.
//
// Marking increments the streak, raises the longest streak to match and records
// today as the last completion. Unmarking breaks the streak: it drops to zero
// rather than back to its previous value, and the last completion is cleared.
// An unknown id is a no-op.
func (s *Store) ToggleHabitCompletion(ctx context.Context, id int64) error {
	s.mu.Lock()
	i := indexHabit(s.habits, id)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}

	next := cloneHabits(s.habits)
	h := &next[i]
	if !h.CompletedToday {
		today := s.today()
		h.Streak++
		h.LongestStreak = max(h.LongestStreak, h.Streak)
		h.CompletedToday = true
		h.LastCompleted = &today
	} else {
		h.Streak = 0
		h.CompletedToday = false
		h.LastCompleted = nil
	}
	return s.commitHabits(ctx, next)
}

// ResetDailyHabits clears completedToday on every habit not completed today.
// Streaks are left alone, so a missed day does not zero one. Nothing is
// written when no habit changes.
func (s *Store) ResetDailyHabits(ctx context.Context) error {
	s.mu.Lock()
	today := s.today()
	next := cloneHabits(s.habits)
	changed := 0
	for i := range next {
		if next[i].CompletedToday && !next[i].CompletedOn(today) {
			next[i].CompletedToday = false
			changed++
		}
	}
	if changed == 0 {
		s.mu.Unlock()
		return nil
	}

	logger.Info("Resetting daily habits", "date", today, "count", changed)
	return s.commitHabits(ctx, next)
}

func indexHabit(habits []models.Habit, id int64) int {
	return slices.IndexFunc(habits, func(h models.Habit) bool {
		return h.ID == id
	})
}
