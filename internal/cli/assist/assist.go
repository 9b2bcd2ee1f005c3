package assist

import (
	"fmt"
	"strings"

	"github.com/julianstephens/vibequest/internal/cli"
)

type AITagsCmd struct {
	Title string `arg:"" optional:"" help:"Title to suggest tags for."`
	Entry string `short:"e" help:"Entry ID; suggested tags are merged into the entry."`
}

func (c *AITagsCmd) Validate() error {
	if (c.Title == "") == (c.Entry == "") {
		return fmt.Errorf("give either a title or --entry")
	}
	return nil
}

func (c *AITagsCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}

	var tags []string
	if c.Entry != "" {
		if tags, err = a.TagEntry(ctx.Ctx(), c.Entry); err != nil {
			return err
		}
	} else {
		tags = a.SuggestTags(ctx.Ctx(), c.Title)
	}

	if len(tags) == 0 {
		ctx.Println("No tags suggested.")
		return nil
	}
	ctx.Printf("Tags: %s\n", strings.Join(tags, ", "))
	if c.Entry != "" {
		ctx.Printf("Merged into entry %s\n", c.Entry)
	}
	return nil
}

type AIScheduleCmd struct {
	Project string `arg:"" help:"Project ID to schedule."`
	Offset  int    `short:"o" help:"Week to fill, relative to the current one." default:"0"`
	Yes     bool   `short:"y" help:"Accept the suggestions without asking."`
}

func (c *AIScheduleCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	dates := a.WeekDates(c.Offset)
	suggestions, err := a.AutoSchedule(ctx.Ctx(), c.Project, dates[0])
	if err != nil {
		return err
	}
	if len(suggestions) == 0 {
		ctx.Println("No schedule suggestions.")
		return nil
	}

	ctx.Printf("Suggested sessions for %s:\n", c.Project)
	for _, s := range suggestions {
		ctx.Printf("  %s %s  %-28s %d min\n", s.Date, s.StartTime, s.Title, s.EstimatedDuration)
	}

	if !c.Yes {
		ok, err := ctx.Confirm("Add these entries?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Suggestions discarded.")
			return nil
		}
	}

	created, err := a.AcceptSuggestions(ctx.Ctx(), c.Project, suggestions)
	if err != nil {
		return err
	}
	ctx.Printf("Added %d entries.\n", len(created))
	return nil
}
