package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/vibequest/internal/cli"
	"github.com/julianstephens/vibequest/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing state before initialization."`
	Source string `help:"Storage location (file path or PostgreSQL connection string) to copy state from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	location := ctx.Store.Location()

	if c.Force {
		if storage.IsPostgres(location) || location == "postgresql" {
			return errors.New("--force is only supported for file-based storage")
		}
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absDest, err := filepath.Abs(location)
			if err == nil {
				location = absDest
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == location {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", location)
			}
		}
		if _, err := os.Stat(location); err == nil {
			// Close first to prevent file locking issues
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing storage: %w", err)
			}
			if err := os.Remove(location); err != nil {
				return fmt.Errorf("failed to delete existing storage: %w", err)
			}
			ctx.Printf("Deleted existing storage at: %s\n", location)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing storage: %w", err)
		}
	}

	if err := ctx.Store.Init(ctx.Ctx()); err != nil {
		return err
	}
	ctx.Printf("Initialized vibequest storage at: %s\n", ctx.Store.Location())

	if c.Source != "" {
		ctx.Println("Copying state...")
		if err := c.copyState(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}
	return nil
}

func (c *InitCmd) copyState(ctx *cli.Context) error {
	source, err := storage.Open(c.Source)
	if err != nil {
		if errors.Is(err, storage.ErrEmbeddedCredentials) {
			return errors.New("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
		}
		return err
	}
	defer source.Close()

	state, err := source.Load(ctx.Ctx())
	if err != nil {
		return fmt.Errorf("failed to load source state: %w", err)
	}
	if err := ctx.Store.Save(ctx.Ctx(), state); err != nil {
		return fmt.Errorf("failed to save state to destination: %w", err)
	}
	ctx.Printf("  Copied %d entries, %d projects, %d templates\n",
		len(state.Entries), len(state.Projects), len(state.Templates))
	return nil
}
