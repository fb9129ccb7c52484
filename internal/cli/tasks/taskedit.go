package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/validation"
)

type TaskEditCmd struct {
	ID          int64   `arg:"" help:"Task ID to edit."`
	Title       *string `help:"New title."`
	Description *string `short:"d" help:"New description."`
	Priority    *string `short:"p" help:"New priority (low|medium|high)."`
	Category    *string `short:"c" help:"New category."`
	Due         *string `help:"New due date (YYYY-MM-DD)."`
}

func (c *TaskEditCmd) update() models.TaskUpdate {
	u := models.TaskUpdate{
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		DueDate:     c.Due,
	}
	if c.Priority != nil {
		p := models.Priority(*c.Priority)
		u.Priority = &p
	}
	return u
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	u := c.update()
	if u.IsEmpty() {
		return errors.New("nothing to update; pass at least one of --title, --description, --priority, --category, --due")
	}

	task, err := ctx.FindTask(c.ID)
	if err != nil {
		return err
	}
	updated := u.Apply(task)
	result := validation.New().ValidateTask(updated)
	if err := result.Err(); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}

	err = ctx.WithLock(func() error {
		return ctx.Store.UpdateTask(context.Background(), c.ID, u)
	})
	if err != nil {
		return err
	}

	ctx.Printf("Updated task: %s (ID: %d)\n", updated.Title, c.ID)
	return nil
}
