package system

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/tally/internal/backup"
	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/export"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/validation"
)

// ErrDoctorFailed is returned when at least one check fails. Warnings alone
// do not fail the run.
var ErrDoctorFailed = errors.New("one or more checks failed")

type DoctorCmd struct {
	File string `short:"f" help:"Validate an exported JSON or YAML file instead of live storage." type:"existingfile"`
}

type checkResult int

const (
	checkOK checkResult = iota
	checkWarn
	checkFail
	checkSkip
)

func (c *DoctorCmd) report(ctx *cli.Context, name string, result checkResult, detail string) {
	mark := map[checkResult]string{checkOK: "✓", checkWarn: "⚠", checkFail: "✗", checkSkip: "-"}[result]
	ctx.Printf("%s %s\n", mark, name)
	if detail != "" {
		ctx.Printf("    %s\n", strings.ReplaceAll(strings.TrimSpace(detail), "\n", "\n    "))
	}
}

func (c *DoctorCmd) Run(ctx *cli.Context) error {
	if c.File != "" {
		return c.checkFile(ctx)
	}

	failed := false

	ctx.Printf("Storage: %s\n\n", ctx.KV.GetConfigPath())
	// Reaching Run means the provider loaded and its schema matched.
	c.report(ctx, "Storage reachable", checkOK, "")

	switch mgr, err := backup.ForProvider(ctx.KV); {
	case errors.Is(err, backup.ErrUnsupported):
		c.report(ctx, "Backups", checkSkip, "not available for remote storage")
	case err != nil:
		c.report(ctx, "Backups", checkWarn, err.Error())
	default:
		backups, err := mgr.ListBackups()
		switch {
		case err != nil:
			c.report(ctx, "Backups", checkWarn, err.Error())
		case len(backups) == 0:
			c.report(ctx, "Backups", checkWarn, fmt.Sprintf("none yet, run '%s backup'", constants.AppName))
		default:
			c.report(ctx, "Backups", checkOK, fmt.Sprintf("%d, newest %s", len(backups), backups[0].Timestamp.Format(constants.DateFormat+" "+constants.TimeFormat)))
		}
	}

	snap := ctx.Store.Snapshot()
	if !c.validate(ctx, snap.Tasks, snap.Habits) {
		failed = true
	}

	now := ctx.Clock()
	zone, _ := now.Zone()
	c.report(ctx, "Clock", checkOK, fmt.Sprintf("today is %s (%s)", now.Format(constants.DateFormat), zone))

	if failed {
		return ErrDoctorFailed
	}
	return nil
}

func (c *DoctorCmd) checkFile(ctx *cli.Context) error {
	format := export.FormatForPath(c.File, export.FormatJSON)
	f, err := os.Open(c.File)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := export.Read(f, format)
	if err != nil {
		c.report(ctx, "Readable "+string(format), checkFail, err.Error())
		return ErrDoctorFailed
	}
	c.report(ctx, "Readable "+string(format), checkOK, fmt.Sprintf("exported %s", doc.ExportedAt))

	if !c.validate(ctx, doc.Tasks, doc.Habits) {
		return ErrDoctorFailed
	}
	return nil
}

func (c *DoctorCmd) validate(ctx *cli.Context, tasks []models.Task, habits []models.Habit) bool {
	result := validation.New().ValidateCollections(tasks, habits)
	if result.HasIssues() {
		c.report(ctx, "Data validation", checkFail, result.FormatReport())
		return false
	}
	c.report(ctx, "Data validation", checkOK, fmt.Sprintf("%d tasks, %d habits", len(tasks), len(habits)))
	return true
}
