package entries

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/julianstephens/vibequest/internal/cli"
	"github.com/julianstephens/vibequest/internal/models"
	"github.com/julianstephens/vibequest/internal/utils"
)

type EntryListCmd struct {
	Date    string `short:"D" help:"Only entries occurring on this date (YYYY-MM-DD), repetitions included."`
	Project string `short:"P" help:"Only entries of this project."`
	Status  string `help:"Only entries with this status (active|completed|invalid)."`
}

func (c *EntryListCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}

	var list []models.ScheduleEntry
	if c.Date != "" {
		d, err := utils.ParseDate(c.Date)
		if err != nil {
			return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
		}
		list = a.EntriesForDate(d)
	} else {
		list = slices.Clone(a.Entries())
		slices.SortStableFunc(list, func(x, y models.ScheduleEntry) int {
			return cmp.Or(cmp.Compare(x.Date, y.Date), cmp.Compare(x.StartTime, y.StartTime))
		})
	}

	var status models.EntryStatus
	switch c.Status {
	case "":
	case "active":
		status = models.StatusActive
	case "completed":
		status = models.StatusCompleted
	case "invalid":
		status = models.StatusInvalid
	default:
		return fmt.Errorf("invalid status %q (expected active|completed|invalid)", c.Status)
	}

	shown := 0
	for _, e := range list {
		if c.Project != "" && e.ProjectID != c.Project {
			continue
		}
		if status != "" && e.Status != status {
			continue
		}
		ctx.PrintEntry(e)
		shown++
	}
	if shown == 0 {
		ctx.Println("No entries found.")
	}
	return nil
}

type EntryRecentCmd struct {
	Project string `arg:"" optional:"" help:"Project ID." default:"p1"`
}

func (c *EntryRecentCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	recent := a.RecentByProject(c.Project)
	if len(recent) == 0 {
		ctx.Printf("No entries for project %s yet.\n", c.Project)
		return nil
	}
	ctx.Printf("Recent entries for %s:\n", c.Project)
	for _, e := range recent {
		ctx.PrintEntry(e)
	}
	return nil
}
