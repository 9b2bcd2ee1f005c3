package entries

import (
	"fmt"

	"github.com/julianstephens/vibequest/internal/cli"
	"github.com/julianstephens/vibequest/internal/errors"
)

type EntryDeleteCmd struct {
	ID  string `arg:"" help:"Entry ID to delete."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *EntryDeleteCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	entry, err := a.Entry(c.ID)
	if err != nil {
		return err
	}
	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete entry %q?", entry.Title))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}
	if err := a.DeleteEntry(ctx.Ctx(), c.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted entry: %s (ID: %s)\n", entry.Title, entry.ID)
	return nil
}

type EntryCompleteCmd struct {
	ID string `arg:"" help:"Entry ID to complete."`
}

func (c *EntryCompleteCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	res, err := a.CompleteEntry(ctx.Ctx(), c.ID)
	if err != nil {
		return err
	}
	if !res.Awarded {
		errors.Reject(ctx.Stdout(), "entry %s is not active; nothing awarded", c.ID)
		return nil
	}

	p := a.Persona()
	ctx.Printf("✓ Quest complete! +%d XP (balance %d XP)\n", res.XP, p.XP)
	if res.LeveledUp {
		ctx.Printf("★ Level up! You are now level %d.\n", res.Level)
	}
	return nil
}

type EntryInvalidateCmd struct {
	ID string `arg:"" help:"Entry ID to mark invalid."`
}

func (c *EntryInvalidateCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	changed, err := a.MarkInvalid(ctx.Ctx(), c.ID)
	if err != nil {
		return err
	}
	if !changed {
		errors.Reject(ctx.Stdout(), "entry %s is not active", c.ID)
		return nil
	}
	ctx.Printf("Marked entry %s invalid.\n", c.ID)
	return nil
}
