package tasks

import (
	"context"

	"github.com/julianstephens/tally/internal/cli"
)

type TaskToggleCmd struct {
	ID int64 `arg:"" help:"Task ID to mark completed or pending."`
}

func (c *TaskToggleCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.FindTask(c.ID); err != nil {
		return err
	}

	err := ctx.WithLock(func() error {
		return ctx.Store.ToggleTaskCompletion(context.Background(), c.ID)
	})
	if err != nil {
		return err
	}

	task, err := ctx.FindTask(c.ID)
	if err != nil {
		return err
	}
	status := "pending"
	if task.Completed {
		status = "completed"
	}
	ctx.Printf("Marked %s as %s\n", task.Title, status)
	return nil
}
