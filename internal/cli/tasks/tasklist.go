package tasks

import (
	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/models"
)

type TaskListCmd struct {
	Filter string `short:"f" help:"Which tasks to show (all|completed|pending)." enum:"all,completed,pending" default:"all"`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	tasks := models.FilterTasks(ctx.Store.Tasks(), models.TaskFilter(c.Filter))
	if len(tasks) == 0 {
		ctx.Println("No tasks found")
		return nil
	}

	ctx.Println("Tasks:")
	for _, t := range tasks {
		ctx.Printf("  [%s] %s (ID: %d)\n", cli.Check(t.Completed), t.Title, t.ID)
		ctx.Printf("      %s priority, %s, due %s\n", t.Priority, t.Category, t.DueDate)
	}

	stats := ctx.Store.GetStats()
	ctx.Printf("\n%d completed, %d pending\n", stats.CompletedTasks, stats.PendingTasks)
	return nil
}
