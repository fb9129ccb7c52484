package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/julianstephens/tally/internal/kv"
	"github.com/julianstephens/tally/internal/lock"
	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/state"
)

// Context is passed to every command's Run method.
type Context struct {
	KV        kv.Provider
	Store     *state.Store
	ConfigDir string

	// Out receives command output. Defaults to os.Stdout.
	Out io.Writer
	// Now is the clock used for new records. Defaults to time.Now.
	Now func() time.Time
}

func (c *Context) Output() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Clock() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Output(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Output(), args...)
}

// Load opens existing storage and reads it into the store.
func (c *Context) Load(ctx context.Context) error {
	if err := c.KV.Load(); err != nil {
		return err
	}
	return c.Store.Load(ctx)
}

// WithLock runs fn while holding the single-writer lock. A store that was
// already loaded is reloaded first so fn sees writes made by other processes.
func (c *Context) WithLock(fn func() error) error {
	l, err := lock.Acquire(c.ConfigDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := l.Release(); err != nil {
			logger.Warn("Failed to release lock", "error", err)
		}
	}()

	if c.Store != nil && !c.Store.Loading() {
		if err := c.Load(context.Background()); err != nil {
			return fmt.Errorf("failed to reload storage: %w", err)
		}
	}
	return fn()
}

// FindTask returns the task with the given id.
func (c *Context) FindTask(id int64) (models.Task, error) {
	for _, t := range c.Store.Tasks() {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Task{}, fmt.Errorf("task %d not found", id)
}

// FindHabit returns the habit with the given id.
func (c *Context) FindHabit(id int64) (models.Habit, error) {
	for _, h := range c.Store.Habits() {
		if h.ID == id {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %d not found", id)
}

// Check returns a mark for a boolean completion state.
func Check(done bool) string {
	if done {
		return "✓"
	}
	return " "
}

// FormatID renders a record id the way commands accept it back.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
