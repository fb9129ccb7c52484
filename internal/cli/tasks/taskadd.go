package tasks

import (
	"context"
	"fmt"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/validation"
)

type TaskAddCmd struct {
	Title       string `arg:"" help:"Task title."`
	Description string `short:"d" help:"Optional description (markdown)."`
	Priority    string `short:"p" help:"Priority (low|medium|high)." enum:"low,medium,high" default:"medium"`
	Category    string `short:"c" help:"Category, e.g. personal, work, health, study, shopping." default:"personal"`
	Due         string `help:"Due date (YYYY-MM-DD). Defaults to today."`
}

func (c *TaskAddCmd) Validate() error {
	if err := validation.Title(c.Title); err != nil {
		return err
	}
	if err := validation.Description(c.Description); err != nil {
		return err
	}
	return validation.Date(c.Due)
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	task := models.NewTask(c.Title, ctx.Clock())
	task.Description = c.Description
	task.Priority = models.Priority(c.Priority)
	if c.Category != "" {
		task.Category = c.Category
	} else {
		task.Category = constants.DefaultTaskCategory
	}
	if c.Due != "" {
		task.DueDate = c.Due
	}

	result := validation.New().ValidateTask(task)
	if err := result.Err(); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}

	err := ctx.WithLock(func() error {
		return ctx.Store.AddTask(context.Background(), task)
	})
	if err != nil {
		return err
	}

	ctx.Printf("Added task: %s (ID: %d)\n", task.Title, task.ID)
	return nil
}
