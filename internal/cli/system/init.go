package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/kv"
)

type InitCmd struct {
	Force bool `help:"Delete existing local storage before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if _, isPostgres := ctx.KV.(*kv.PostgresStore); isPostgres {
			return fmt.Errorf("--force is not supported for PostgreSQL storage")
		}

		dbPath := ctx.KV.GetConfigPath()
		if _, err := os.Stat(dbPath); err == nil {
			mgr, err := manager(ctx)
			if err != nil {
				return err
			}
			saved, err := mgr.CreateBackup()
			if err != nil {
				return fmt.Errorf("failed to back up existing storage: %w", err)
			}
			ctx.Printf("Backed up existing storage to: %s\n", saved)

			// Close first to release file handles
			if err := ctx.KV.Close(); err != nil {
				return fmt.Errorf("failed to close existing storage: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing storage: %w", err)
			}
			ctx.Printf("Deleted existing storage at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing storage: %w", err)
		}
	}

	err := ctx.WithLock(func() error {
		return ctx.KV.Init()
	})
	if err != nil {
		return err
	}

	ctx.Printf("Initialized tally storage at: %s\n", ctx.KV.GetConfigPath())
	return nil
}
