package system

import (
	"fmt"

	"github.com/julianstephens/vibequest/internal/cli"
	"github.com/julianstephens/vibequest/internal/storage"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return fmt.Errorf("migrate command only supports SQLite and PostgreSQL storage")
	}
	defer ctx.Store.Close()

	if err := m.Migrate(ctx.Ctx()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	ctx.Println("Database schema is up to date.")
	return nil
}

type HistoryCmd struct{}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	h, ok := ctx.Store.(storage.Historian)
	if !ok {
		return fmt.Errorf("history is only kept by SQLite and PostgreSQL storage")
	}
	// Load opens the connection for the SQL backends.
	if _, err := ctx.Store.Load(ctx.Ctx()); err != nil {
		return err
	}

	revisions, err := h.History(ctx.Ctx())
	if err != nil {
		return err
	}
	if len(revisions) == 0 {
		ctx.Println("No previous revisions stored.")
		return nil
	}
	ctx.Printf("Previous revisions (newest first):\n\n")
	for _, r := range revisions {
		state, err := storage.Decode(r.Data)
		if err != nil {
			ctx.Printf("  #%-5d  (%d bytes, unreadable: %v)\n", r.ID, len(r.Data), err)
			continue
		}
		ctx.Printf("  #%-5d  %3d entries  level %d  %d XP  (%d bytes)\n",
			r.ID, len(state.Entries), state.Persona.Level, state.Persona.XP, len(r.Data))
	}
	return nil
}
