package habits

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/validation"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits with today's status and streaks." default:"1"`
	Edit   HabitEditCmd   `cmd:"" help:"Edit an existing habit."`
	Toggle HabitToggleCmd `cmd:"" help:"Mark or unmark a habit as done today."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit."`
	Reset  HabitResetCmd  `cmd:"" help:"Clear completions that are not from today."`
}

type HabitAddCmd struct {
	Title       string `arg:"" help:"Habit title."`
	Description string `short:"d" help:"Optional description."`
	Category    string `short:"c" help:"Category, e.g. health, personal, work, study, finance." default:"health"`
	Frequency   string `short:"f" help:"Frequency (daily|weekly|monthly)." enum:"daily,weekly,monthly" default:"daily"`
	Goal        string `short:"g" help:"Target repetitions per period." default:"1"`
	Reminder    string `short:"r" help:"Reminder time (HH:MM)." default:"09:00"`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	habit := models.NewHabit(c.Title, ctx.Clock())
	habit.Description = c.Description
	if c.Category != "" {
		habit.Category = c.Category
	}
	if c.Frequency != "" {
		habit.Frequency = models.Frequency(c.Frequency)
	}
	if c.Goal != "" {
		habit.Goal = c.Goal
	}
	if c.Reminder != "" {
		habit.Reminder = c.Reminder
	}

	result := validation.New().ValidateHabit(habit)
	if err := result.Err(); err != nil {
		return fmt.Errorf("invalid habit: %w", err)
	}

	err := ctx.WithLock(func() error {
		return ctx.Store.AddHabit(context.Background(), habit)
	})
	if err != nil {
		return err
	}

	ctx.Printf("Added habit: %s (ID: %d)\n", habit.Title, habit.ID)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits := ctx.Store.Habits()
	if len(habits) == 0 {
		ctx.Println("No habits found")
		return nil
	}

	ctx.Println("Habits:")
	for _, h := range habits {
		ctx.Printf("  [%s] %s (ID: %d)\n", cli.Check(h.CompletedToday), h.Title, h.ID)
		ctx.Printf("      %s, goal %s, reminder %s, streak %d (best %d)\n",
			h.Frequency, h.Goal, h.Reminder, h.Streak, h.LongestStreak)
	}

	stats := ctx.Store.GetStats()
	ctx.Printf("\n%d of %d done today (%.0f%%)\n",
		stats.CompletedHabitsToday, stats.TotalHabits, stats.HabitCompletionPercent())
	return nil
}

type HabitEditCmd struct {
	ID          int64   `arg:"" help:"Habit ID to edit."`
	Title       *string `help:"New title."`
	Description *string `short:"d" help:"New description."`
	Category    *string `short:"c" help:"New category."`
	Frequency   *string `short:"f" help:"New frequency (daily|weekly|monthly)."`
	Goal        *string `short:"g" help:"New goal."`
	Reminder    *string `short:"r" help:"New reminder time (HH:MM)."`
}

func (c *HabitEditCmd) update() models.HabitUpdate {
	u := models.HabitUpdate{
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Goal:        c.Goal,
		Reminder:    c.Reminder,
	}
	if c.Frequency != nil {
		f := models.Frequency(*c.Frequency)
		u.Frequency = &f
	}
	return u
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	u := c.update()
	if u.IsEmpty() {
		return errors.New("nothing to update; pass at least one field flag")
	}

	habit, err := ctx.FindHabit(c.ID)
	if err != nil {
		return err
	}
	updated := u.Apply(habit)
	result := validation.New().ValidateHabit(updated)
	if err := result.Err(); err != nil {
		return fmt.Errorf("invalid habit: %w", err)
	}

	err = ctx.WithLock(func() error {
		return ctx.Store.UpdateHabit(context.Background(), c.ID, u)
	})
	if err != nil {
		return err
	}

	ctx.Printf("Updated habit: %s (ID: %d)\n", updated.Title, c.ID)
	return nil
}

type HabitToggleCmd struct {
	ID int64 `arg:"" help:"Habit ID."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.FindHabit(c.ID); err != nil {
		return err
	}

	err := ctx.WithLock(func() error {
		return ctx.Store.ToggleHabitCompletion(context.Background(), c.ID)
	})
	if err != nil {
		return err
	}

	habit, err := ctx.FindHabit(c.ID)
	if err != nil {
		return err
	}
	if habit.CompletedToday {
		ctx.Printf("Marked %s done today, streak %d\n", habit.Title, habit.Streak)
	} else {
		ctx.Printf("Unmarked %s, streak reset\n", habit.Title)
	}
	return nil
}

type HabitDeleteCmd struct {
	ID int64 `arg:"" help:"Habit ID to delete."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.FindHabit(c.ID)
	if err != nil {
		return err
	}

	err = ctx.WithLock(func() error {
		return ctx.Store.DeleteHabit(context.Background(), c.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}

	ctx.Printf("Deleted habit: %s (ID: %d)\n", habit.Title, c.ID)
	return nil
}

type HabitResetCmd struct{}

func (c *HabitResetCmd) Run(ctx *cli.Context) error {
	before := ctx.Store.GetStats().CompletedHabitsToday
	err := ctx.WithLock(func() error {
		return ctx.Store.ResetDailyHabits(context.Background())
	})
	if err != nil {
		return err
	}

	after := ctx.Store.GetStats().CompletedHabitsToday
	ctx.Printf("Reset %d habit(s); %d still done today\n", before-after, after)
	return nil
}
