package system

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/julianstephens/tally/internal/backup"
	"github.com/julianstephens/tally/internal/cli"
)

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Create a backup of local storage." default:"1"`
	List    BackupListCmd    `cmd:"" help:"List available backups."`
	Restore BackupRestoreCmd `cmd:"" help:"Restore local storage from a backup."`
}

func manager(ctx *cli.Context) (*backup.Manager, error) {
	return backup.ForProvider(ctx.KV, backup.WithClock(ctx.Clock))
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	return ctx.WithLock(func() error {
		path, err := mgr.CreateBackup()
		if err != nil {
			return err
		}
		ctx.Printf("Created backup: %s\n", path)
		return nil
	})
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		ctx.Printf("No backups in %s\n", mgr.GetBackupDir())
		return nil
	}

	ctx.Printf("Backups in %s:\n", mgr.GetBackupDir())
	for _, b := range backups {
		ctx.Printf("  %-32s %s  %8s\n", filepath.Base(b.Path), b.Timestamp.Format("2006-01-02 15:04:05"), formatSize(b.Size))
	}
	return nil
}

type BackupRestoreCmd struct {
	Path string `arg:"" help:"Backup file to restore (a name from 'backup list' or a path)."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	path := c.Path
	if filepath.Base(path) == path {
		path = filepath.Join(mgr.GetBackupDir(), path)
	}

	return ctx.WithLock(func() error {
		// Release the storage file before it is replaced
		if err := ctx.KV.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
		previous, err := mgr.RestoreBackup(path)
		if err != nil {
			return err
		}
		if previous != "" {
			ctx.Printf("Saved current storage to: %s\n", previous)
		}
		if err := ctx.Load(context.Background()); err != nil {
			return fmt.Errorf("failed to load restored storage: %w", err)
		}
		ctx.Printf("Restored %s (%d tasks, %d habits)\n", filepath.Base(path), len(ctx.Store.Tasks()), len(ctx.Store.Habits()))
		return nil
	})
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
