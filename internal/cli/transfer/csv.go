package transfer

import (
	"fmt"
	"os"

	"github.com/julianstephens/vibequest/internal/cli"
)

type CSVExportCmd struct {
	Output string `short:"o" help:"Write to this file instead of stdout." type:"path"`
}

func (c *CSVExportCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	if c.Output == "" {
		return a.ExportCSV(ctx.Stdout())
	}

	f, err := os.OpenFile(c.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", c.Output, err)
	}
	if err := a.ExportCSV(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	ctx.Printf("Exported %d entries to %s\n", len(a.Entries()), c.Output)
	return nil
}

type CSVImportCmd struct {
	File string `arg:"" help:"CSV file to import." type:"existingfile"`
}

func (c *CSVImportCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	f, err := os.Open(c.File)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := a.ImportCSV(ctx.Ctx(), f)
	if err != nil {
		return err
	}
	if n == 0 {
		ctx.Println("No rows imported.")
		return nil
	}
	ctx.Printf("Imported %d entries.\n", n)
	return nil
}
