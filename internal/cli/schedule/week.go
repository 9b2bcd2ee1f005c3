package schedule

import (
	"fmt"
	"strings"

	"github.com/julianstephens/vibequest/internal/cli"
	"github.com/julianstephens/vibequest/internal/constants"
	"github.com/julianstephens/vibequest/internal/utils"
)

type WeekCmd struct {
	Offset int  `short:"o" help:"Weeks away from the current one (negative for past weeks)." default:"0"`
	Empty  bool `help:"Also print empty hours."`
}

func (c *WeekCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}

	dates := a.WeekDates(c.Offset)
	idx := a.WeekIndex(dates[0])
	today := a.Today()

	ctx.Printf("Week of %s - %s\n", utils.FormatDate(dates[0]), utils.FormatDate(dates[len(dates)-1]))
	for _, d := range dates {
		marker := ""
		if d.Equal(today) {
			marker = "  (today)"
		}
		ctx.Printf("\n%s %s%s\n", d.Weekday().String()[:3], d.Format(constants.DateFormat), marker)

		printed := false
		for _, h := range a.Hours() {
			slot, _ := idx.Slot(d, h)
			if len(slot) == 0 {
				if c.Empty {
					ctx.Printf("  %s  ·\n", utils.FormatHour(h))
				}
				continue
			}
			titles := make([]string, 0, len(slot))
			for _, e := range slot {
				titles = append(titles, strings.TrimSpace(cli.StatusMark(e)+" "+e.Title))
			}
			ctx.Printf("  %s  %s\n", utils.FormatHour(h), strings.Join(titles, " | "))
			printed = true
		}
		if !printed && !c.Empty {
			ctx.Println("  (free)")
		}
	}
	return nil
}

type SlotCmd struct {
	Date string `arg:"" help:"Date (YYYY-MM-DD)."`
	Hour int    `arg:"" help:"Hour (0-23)."`
}

func (c *SlotCmd) Run(ctx *cli.Context) error {
	if c.Hour < 0 || c.Hour > 23 {
		return fmt.Errorf("hour must be between 0 and 23")
	}
	a, err := ctx.App()
	if err != nil {
		return err
	}
	d, err := utils.ParseDate(c.Date)
	if err != nil {
		return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
	}

	slot := a.EntriesForSlot(d, c.Hour)
	if len(slot) == 0 {
		ctx.Printf("Nothing scheduled on %s at %s.\n", c.Date, utils.FormatHour(c.Hour))
		return nil
	}
	for _, e := range slot {
		ctx.PrintEntry(e)
	}
	return nil
}
