package tasks

import (
	"context"
	"fmt"

	"github.com/julianstephens/tally/internal/cli"
)

type TaskDeleteCmd struct {
	ID int64 `arg:"" help:"Task ID to delete."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	// Check if task exists first
	task, err := ctx.FindTask(c.ID)
	if err != nil {
		return err
	}

	err = ctx.WithLock(func() error {
		return ctx.Store.DeleteTask(context.Background(), c.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	ctx.Printf("Deleted task: %s (ID: %d)\n", task.Title, c.ID)
	return nil
}
