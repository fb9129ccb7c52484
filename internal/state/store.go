// Package state holds the in-memory task and habit collections and keeps them
// in sync with durable key-value storage. Every mutation writes the whole
// affected collection before it is committed to memory.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/kv"
	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/models"
)

// Snapshot is a consistent copy of the store's observable state.
type Snapshot struct {
	Tasks    []models.Task
	Habits   []models.Habit
	DarkMode bool
	Loading  bool
	Stats    models.Stats
}

type Option func(*Store)

// WithClock sets the source of the current time. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

type Store struct {
	kv  kv.Store
	now func() time.Time

	mu       sync.RWMutex
	tasks    []models.Task
	habits   []models.Habit
	darkMode bool
	loading  bool

	subMu   sync.Mutex
	subs    []subscriber
	nextSub int
}

// New returns an empty store backed by store. It reports Loading until Load returns.
func New(store kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:      store,
		now:     time.Now,
		tasks:   []models.Task{},
		habits:  []models.Habit{},
		loading: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads tasks, habits and the theme preference from storage, replacing
// in-memory state. Read and parse failures are logged and fall back to empty
// collections; Load itself only fails if ctx is done, and then leaves the
// current state in place.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	wasLoading := s.loading
	s.loading = true
	s.mu.Unlock()

	var (
		tasks    []models.Task
		habits   []models.Habit
		darkMode bool
		hasTheme bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tasks = loadCollection[models.Task](gctx, s.kv, constants.KeyTasks)
		return nil
	})
	g.Go(func() error {
		habits = loadCollection[models.Habit](gctx, s.kv, constants.KeyHabits)
		return nil
	})
	g.Go(func() error {
		darkMode, hasTheme = loadDarkMode(gctx, s.kv)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		s.mu.Lock()
		s.loading = wasLoading
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.tasks = tasks
	s.habits = habits
	if hasTheme {
		s.darkMode = darkMode
	}
	s.loading = false
	s.mu.Unlock()

	logger.Debug("Loaded state", "tasks", len(tasks), "habits", len(habits), "darkMode", darkMode)
	s.notify()
	return nil
}

func loadCollection[T any](ctx context.Context, store kv.Store, key string) []T {
	raw, err := store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			logger.Error("Failed to read collection", "key", key, "error", err)
		}
		return []T{}
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Error("Failed to parse collection", "key", key, "error", err)
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// loadDarkMode reports the stored preference and whether one was found.
func loadDarkMode(ctx context.Context, store kv.Store) (bool, bool) {
	raw, err := store.Get(ctx, constants.KeyDarkMode)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			logger.Error("Failed to read theme preference", "error", err)
		}
		return false, false
	}

	var dark bool
	if err := json.Unmarshal([]byte(raw), &dark); err != nil {
		logger.Error("Failed to parse theme preference", "error", err)
		return false, false
	}
	return dark, true
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Tasks returns a copy of the task collection in insertion order.
func (s *Store) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

// Habits returns a copy of the habit collection in insertion order.
func (s *Store) Habits() []models.Habit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneHabits(s.habits)
}

func (s *Store) DarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.darkMode
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Tasks:    slices.Clone(s.tasks),
		Habits:   cloneHabits(s.habits),
		DarkMode: s.darkMode,
		Loading:  s.loading,
		Stats:    models.ComputeStats(s.tasks, s.habits),
	}
}

// Subscribe registers fn to receive a Snapshot after every committed change.
// fn runs synchronously on the mutating goroutine, outside the store's lock.
// The returned function removes the subscription and is safe to call twice.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			s.subs = slices.DeleteFunc(s.subs, func(sub subscriber) bool {
				return sub.id == id
			})
		})
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	subs := slices.Clone(s.subs)
	s.subMu.Unlock()
	if len(subs) == 0 {
		return
	}

	snap := s.Snapshot()
	for _, sub := range subs {
		sub.fn(snap)
	}
}

// today returns the local calendar date of the store's clock.
func (s *Store) today() string {
	return s.now().Format(constants.DateFormat)
}

// persist writes v as JSON under key. Callers hold s.mu.
func (s *Store) persist(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Error("Failed to encode state", "key", key, "error", err)
		return &PersistenceError{Key: key, Err: err}
	}
	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		logger.Error("Failed to save state", "key", key, "error", err)
		return &PersistenceError{Key: key, Err: err}
	}
	return nil
}

// cloneHabits deep-copies habits so that LastCompleted pointers are not shared.
func cloneHabits(habits []models.Habit) []models.Habit {
	out := make([]models.Habit, len(habits))
	for i, h := range habits {
		if h.LastCompleted != nil {
			day := *h.LastCompleted
			h.LastCompleted = &day
		}
		out[i] = h
	}
	return out
}
