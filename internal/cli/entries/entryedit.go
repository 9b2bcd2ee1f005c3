package entries

import (
	"fmt"
	"strings"

	"github.com/julianstephens/vibequest/internal/app"
	"github.com/julianstephens/vibequest/internal/cli"
	"github.com/julianstephens/vibequest/internal/models"
	"github.com/julianstephens/vibequest/internal/utils"
)

type EntryEditCmd struct {
	ID         string  `arg:"" help:"Entry ID to edit."`
	Title      *string `help:"New title."`
	Date       *string `short:"D" help:"New anchor date (YYYY-MM-DD)."`
	Start      *string `short:"s" help:"New start time (HH:MM)."`
	End        *string `short:"e" help:"New end time (HH:MM)."`
	Duration   *int    `short:"d" help:"New estimated duration in minutes."`
	Project    *string `short:"P" help:"New project ID."`
	Priority   *string `short:"p" help:"New priority (low|medium|high)."`
	Difficulty *string `help:"New difficulty (easy|normal|hard)."`
	Memo       *string `short:"m" help:"New memo."`
	Category   *string `help:"New category."`
	Tags       *string `short:"t" help:"Replace tags (comma-separated, empty to clear)."`
	Repeat     *string `short:"r" help:"New repetition (none|daily|weekly|monthly|yearly)."`
	Interval   *int    `short:"i" help:"New repeat interval."`
	Weekdays   *string `short:"w" help:"New comma-separated weekdays for weekly repetition."`
	MonthDay   *int    `help:"New day of month for monthly repetition."`
}

func (c *EntryEditCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	current, err := a.Entry(c.ID)
	if err != nil {
		return err
	}

	patch := app.EntryPatch{
		Title:             c.Title,
		Date:              c.Date,
		StartTime:         c.Start,
		EndTime:           c.End,
		EstimatedDuration: c.Duration,
		ProjectID:         c.Project,
		Memo:              c.Memo,
		Category:          c.Category,
	}
	if c.Priority != nil {
		p, err := cli.ParsePriority(*c.Priority)
		if err != nil {
			return err
		}
		patch.Priority = &p
	}
	if c.Difficulty != nil {
		d, err := cli.ParseDifficulty(*c.Difficulty)
		if err != nil {
			return err
		}
		patch.Difficulty = &d
	}
	if c.Tags != nil {
		tags := []string{}
		if strings.TrimSpace(*c.Tags) != "" {
			tags = strings.Split(*c.Tags, ",")
		}
		patch.Tags = &tags
	}
	if c.Date != nil && current.Type == models.EntryTypeFixed {
		d, err := utils.ParseDate(*c.Date)
		if err != nil {
			return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
		}
		weekday := utils.WeekdayName(d)
		patch.DayOfWeek = &weekday
	}

	if c.Repeat != nil || c.Interval != nil || c.Weekdays != nil || c.MonthDay != nil {
		rc := current.RepeatConfig
		repeating := current.IsRepeating
		if c.Repeat != nil {
			t, err := cli.ParseRepeat(*c.Repeat)
			if err != nil {
				return err
			}
			rc.Type = t
			repeating = t != models.RepeatNone
		}
		if c.Interval != nil {
			if *c.Interval < 1 {
				return fmt.Errorf("interval must be at least 1")
			}
			rc.Interval = *c.Interval
		}
		if c.Weekdays != nil {
			days, err := utils.ParseWeekdayNames(*c.Weekdays)
			if err != nil {
				return err
			}
			rc.DaysOfWeek = days
		}
		if c.MonthDay != nil {
			rc.DayOfMonth = *c.MonthDay
		}
		patch.RepeatConfig = &rc
		patch.IsRepeating = &repeating
	}

	updated, err := a.UpdateEntry(ctx.Ctx(), c.ID, patch)
	if err != nil {
		return err
	}

	ctx.Printf("Updated entry: %s (ID: %s)\n", updated.Title, updated.ID)
	if updated.IsLocked {
		ctx.Println("Note: this entry is locked; it still cannot be moved or deleted.")
	}
	return nil
}
