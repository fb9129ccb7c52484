package system

import (
	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/theme"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	s := ctx.Store.GetStats()
	styles := theme.NewStyles(theme.For(ctx.Store.DarkMode()))

	ctx.Println(styles.Title.Render("Tasks"))
	ctx.Printf("  Total:      %d\n", s.TotalTasks)
	ctx.Printf("  Completed:  %d\n", s.CompletedTasks)
	ctx.Printf("  Pending:    %d\n", s.PendingTasks)
	ctx.Printf("  Progress:   %s %s\n", theme.ProgressBar(s.TaskCompletionPercent(), 20), styles.Progress(s.TaskCompletionPercent()))

	ctx.Println(styles.Title.Render("Habits"))
	ctx.Printf("  Total:          %d\n", s.TotalHabits)
	ctx.Printf("  Done today:     %d\n", s.CompletedHabitsToday)
	ctx.Printf("  Total streak:   %d\n", s.TotalStreak)
	ctx.Printf("  Longest streak: %s\n", styles.Streak(s.LongestStreak))
	return nil
}
