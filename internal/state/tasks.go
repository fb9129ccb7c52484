package state

import (
	"context"
	"slices"

	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/models"
)

// commitTasks persists next and, on success, makes it the task collection.
// The caller must hold s.mu; it is released before subscribers run.
func (s *Store) commitTasks(ctx context.Context, next []models.Task) error {
	if err := s.persist(ctx, constants.KeyTasks, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.tasks = next
	s.mu.Unlock()
	s.notify()
	return nil
}

// AddTask appends t as given. The caller supplies the id and defaults.
func (s *Store) AddTask(ctx context.Context, t models.Task) error {
	s.mu.Lock()
	next := append(slices.Clone(s.tasks), t)
	return s.commitTasks(ctx, next)
}

// UpdateTask merges u over the task with the given id. An unknown id writes
// the collection back unchanged.
func (s *Store) UpdateTask(ctx context.Context, id int64, u models.TaskUpdate) error {
	s.mu.Lock()
	next := slices.Clone(s.tasks)
	if i := indexTask(next, id); i >= 0 {
		next[i] = u.Apply(next[i])
	}
	return s.commitTasks(ctx, next)
}

// DeleteTask removes the task with the given id, keeping the order of the rest.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	s.mu.Lock()
	next := slices.DeleteFunc(slices.Clone(s.tasks), func(t models.Task) bool {
		return t.ID == id
	})
	return s.commitTasks(ctx, next)
}

// ToggleTaskCompletion flips the completed flag. An unknown id is a no-op.
func (s *Store) ToggleTaskCompletion(ctx context.Context, id int64) error {
	s.mu.Lock()
	i := indexTask(s.tasks, id)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	next := slices.Clone(s.tasks)
	next[i].Completed = !next[i].Completed
	return s.commitTasks(ctx, next)
}

func indexTask(tasks []models.Task, id int64) int {
	return slices.IndexFunc(tasks, func(t models.Task) bool {
		return t.ID == id
	})
}
