package app

import (
	"context"
	"io"

	"github.com/julianstephens/vibequest/internal/csvio"
)

// ExportCSV writes every entry as CSV.
func (a *App) ExportCSV(w io.Writer) error {
	return csvio.Export(w, a.state.Entries)
}

// ImportCSV appends the rows of r as new entries and returns how many were
// added. A snapshot is taken first.
func (a *App) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	rows, err := csvio.Import(r, a.NewID)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	a.autoBackup(ctx, "csv import")
	a.state.Entries = append(a.state.Entries, rows...)
	return len(rows), a.persist(ctx)
}
