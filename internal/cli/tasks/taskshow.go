package tasks

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/models"
)

type TaskShowCmd struct {
	ID    int64  `arg:"" help:"Task ID."`
	Style string `help:"Glamour style for rendering (auto|dark|light|notty)." default:"auto"`
	Width int    `help:"Word wrap width." default:"80"`
}

func (c *TaskShowCmd) Run(ctx *cli.Context) error {
	task, err := ctx.FindTask(c.ID)
	if err != nil {
		return err
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(c.Width)}
	switch c.Style {
	case "auto":
		if ctx.Store.DarkMode() {
			opts = append(opts, glamour.WithStandardStyle("dark"))
		} else {
			opts = append(opts, glamour.WithAutoStyle())
		}
	default:
		opts = append(opts, glamour.WithStandardStyle(c.Style))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := renderer.Render(TaskMarkdown(task))
	if err != nil {
		return fmt.Errorf("failed to render task: %w", err)
	}
	ctx.Printf("%s", out)
	return nil
}

// TaskMarkdown formats a task as a markdown document.
func TaskMarkdown(t models.Task) string {
	var b strings.Builder
	status := "pending"
	if t.Completed {
		status = "completed"
	}

	fmt.Fprintf(&b, "# %s\n\n", t.Title)
	fmt.Fprintf(&b, "| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Status | %s |\n", status)
	fmt.Fprintf(&b, "| Priority | %s |\n", t.Priority)
	fmt.Fprintf(&b, "| Category | %s |\n", t.Category)
	fmt.Fprintf(&b, "| Due | %s |\n", t.DueDate)
	fmt.Fprintf(&b, "| Created | %s |\n", t.CreatedAt)
	fmt.Fprintf(&b, "| ID | %d |\n", t.ID)
	if strings.TrimSpace(t.Description) != "" {
		fmt.Fprintf(&b, "\n%s\n", t.Description)
	}
	return b.String()
}
