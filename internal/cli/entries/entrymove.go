package entries

import (
	stderrors "errors"
	"fmt"

	"github.com/julianstephens/vibequest/internal/app"
	"github.com/julianstephens/vibequest/internal/cli"
	"github.com/julianstephens/vibequest/internal/errors"
	"github.com/julianstephens/vibequest/internal/progression"
	"github.com/julianstephens/vibequest/internal/utils"
)

type EntryMoveCmd struct {
	ID   string `arg:"" help:"Entry ID to move."`
	Date string `short:"D" help:"Target date (YYYY-MM-DD)." required:""`
	Hour int    `short:"H" help:"Target hour (0-23). The entry becomes a one-hour slot." required:""`
}

func (c *EntryMoveCmd) Validate() error {
	if c.Hour < 0 || c.Hour > 23 {
		return fmt.Errorf("hour must be between 0 and 23")
	}
	return nil
}

func (c *EntryMoveCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	date, err := utils.ParseDate(c.Date)
	if err != nil {
		return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
	}
	moved, err := a.MoveEntry(ctx.Ctx(), c.ID, date, c.Hour)
	if stderrors.Is(err, app.ErrEntryLocked) {
		errors.Reject(ctx.Stdout(), "entry %s is locked; unlock it first", c.ID)
		return nil
	}
	if err != nil {
		return err
	}
	ctx.Printf("Moved %s to %s %s-%s\n", moved.Title, moved.Date, moved.StartTime, moved.EndTime)
	return nil
}

type EntryLockCmd struct {
	ID string `arg:"" help:"Entry ID to lock."`
}

func (c *EntryLockCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	if err := a.SetLocked(ctx.Ctx(), c.ID, true); err != nil {
		return err
	}
	ctx.Printf("🔒 Locked entry %s\n", c.ID)
	return nil
}

type EntryUnlockCmd struct {
	ID     string `arg:"" help:"Entry ID to unlock."`
	Ticket bool   `help:"Spend an edit ticket to unlock."`
}

func (c *EntryUnlockCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	if !c.Ticket {
		if err := a.SetLocked(ctx.Ctx(), c.ID, false); err != nil {
			return err
		}
		ctx.Printf("Unlocked entry %s\n", c.ID)
		return nil
	}

	err = a.UnlockWithTicket(ctx.Ctx(), c.ID)
	switch {
	case stderrors.Is(err, progression.ErrNoEditTickets):
		errors.Reject(ctx.Stdout(), "no edit tickets left; buy one in the shop")
		return nil
	case stderrors.Is(err, progression.ErrNotLocked):
		errors.Reject(ctx.Stdout(), "entry %s is not locked", c.ID)
		return nil
	case err != nil:
		return err
	}
	ctx.Printf("🎫 Unlocked entry %s (%d tickets left)\n", c.ID, a.Persona().Inventory.EditTickets)
	return nil
}
