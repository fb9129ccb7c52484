package system

import (
	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/export"
)

type ExportCmd struct {
	Format string `short:"f" help:"Output format (json|yaml). Inferred from --output when omitted."`
	Output string `short:"o" help:"Write to this file instead of stdout." type:"path"`
}

func (c *ExportCmd) format() (export.Format, error) {
	if c.Format != "" {
		return export.ParseFormat(c.Format)
	}
	return export.FormatForPath(c.Output, export.FormatJSON), nil
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	format, err := c.format()
	if err != nil {
		return err
	}

	snap := ctx.Store.Snapshot()
	doc := export.NewDocument(snap.Tasks, snap.Habits, snap.DarkMode, ctx.Clock())

	if c.Output == "" {
		return export.Write(ctx.Output(), doc, format)
	}
	if err := export.WriteFile(c.Output, doc, format); err != nil {
		return err
	}
	ctx.Printf("Exported %d tasks and %d habits to %s\n", len(doc.Tasks), len(doc.Habits), c.Output)
	return nil
}
