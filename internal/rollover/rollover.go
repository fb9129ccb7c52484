// Package rollover clears yesterday's habit completions when the local
// calendar day changes.
package rollover

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/julianstephens/tally/internal/logger"
)

// Resetter is implemented by *state.Store.
type Resetter interface {
	ResetDailyHabits(ctx context.Context) error
}

// Rollover runs a daily reset job shortly after local midnight.
type Rollover struct {
	scheduler gocron.Scheduler
	target    Resetter
	location  *time.Location
	onReset   func(error)
	job       gocron.Job
}

type Option func(*Rollover)

// WithLocation sets the time zone whose midnight triggers the reset. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(r *Rollover) {
		r.location = loc
	}
}

// WithResetHook registers fn to be called with the result of every reset.
func WithResetHook(fn func(error)) Option {
	return func(r *Rollover) {
		r.onReset = fn
	}
}

func New(target Resetter, opts ...Option) (*Rollover, error) {
	r := &Rollover{
		target:   target,
		location: time.Local,
	}
	for _, opt := range opts {
		opt(r)
	}

	s, err := gocron.NewScheduler(gocron.WithLocation(r.location))
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	r.scheduler = s
	return r, nil
}

// Start resets once immediately, to catch up on days missed while the
// process was not running, then schedules the daily job.
func (r *Rollover) Start(ctx context.Context) error {
	r.run(ctx)

	job, err := r.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 0, 1))),
		gocron.NewTask(r.run, ctx),
		gocron.WithName("reset-daily-habits"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create rollover job: %w", err)
	}
	r.job = job

	logger.Debug("Starting rollover scheduler")
	r.scheduler.Start()
	return nil
}

// NextRun returns when the next scheduled reset will happen.
func (r *Rollover) NextRun() (time.Time, error) {
	if r.job == nil {
		return time.Time{}, fmt.Errorf("rollover not started")
	}
	return r.job.NextRun()
}

// Stop shuts the scheduler down and waits for a running reset to finish.
func (r *Rollover) Stop() error {
	logger.Debug("Stopping rollover scheduler")
	return r.scheduler.Shutdown()
}

func (r *Rollover) run(ctx context.Context) {
	err := r.target.ResetDailyHabits(ctx)
	if err != nil {
		logger.Error("Failed to reset daily habits", "error", err)
	}
	if r.onReset != nil {
		r.onReset(err)
	}
}
