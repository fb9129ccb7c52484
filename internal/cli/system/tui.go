package system

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/rollover"
	"github.com/julianstephens/tally/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	return ctx.WithLock(func() error {
		runCtx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Resets once now and again after every local midnight
		ro, err := rollover.New(ctx.Store)
		if err != nil {
			return err
		}
		if err := ro.Start(runCtx); err != nil {
			return err
		}
		defer func() {
			if err := ro.Stop(); err != nil {
				logger.Warn("Failed to stop rollover scheduler", "error", err)
			}
		}()

		p := tea.NewProgram(tui.NewModel(ctx.Store), tea.WithAltScreen())
		unsubscribe := tui.Bridge(ctx.Store, p)
		defer unsubscribe()

		if _, err := p.Run(); err != nil {
			return fmt.Errorf("tui exited with error: %w", err)
		}
		return nil
	})
}
