package settings

import (
	"context"

	"github.com/julianstephens/tally/internal/cli"
)

type ThemeCmd struct {
	Show   ThemeShowCmd   `cmd:"" help:"Show the current theme." default:"1"`
	Toggle ThemeToggleCmd `cmd:"" help:"Switch between light and dark mode."`
}

type ThemeShowCmd struct{}

func (c *ThemeShowCmd) Run(ctx *cli.Context) error {
	ctx.Printf("Theme: %s\n", themeName(ctx.Store.DarkMode()))
	return nil
}

type ThemeToggleCmd struct{}

func (c *ThemeToggleCmd) Run(ctx *cli.Context) error {
	err := ctx.WithLock(func() error {
		return ctx.Store.ToggleDarkMode(context.Background())
	})
	if err != nil {
		return err
	}

	ctx.Printf("Theme set to %s\n", themeName(ctx.Store.DarkMode()))
	return nil
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
