package schedule

import (
	"github.com/julianstephens/vibequest/internal/cli"
	"github.com/julianstephens/vibequest/internal/utils"
)

type TemplateSaveCmd struct {
	Name   string `arg:"" help:"Template name."`
	Offset int    `short:"o" help:"Week to snapshot, relative to the current one." default:"0"`
}

func (c *TemplateSaveCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	dates := a.WeekDates(c.Offset)
	t, err := a.SaveTemplate(ctx.Ctx(), c.Name, dates[0])
	if err != nil {
		return err
	}
	ctx.Printf("Saved template %q with %d entries (ID: %s)\n", t.Name, len(t.Entries), t.ID)
	return nil
}

type TemplateApplyCmd struct {
	ID     string `arg:"" help:"Template ID."`
	Offset int    `short:"o" help:"Target week, relative to the current one." default:"0"`
}

func (c *TemplateApplyCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	dates := a.WeekDates(c.Offset)
	added, err := a.ApplyTemplate(ctx.Ctx(), c.ID, dates[0])
	if err != nil {
		return err
	}
	ctx.Printf("Applied template to week of %s: %d entries added\n", utils.FormatDate(dates[0]), len(added))
	return nil
}

type TemplateDeleteCmd struct {
	ID string `arg:"" help:"Template ID."`
}

func (c *TemplateDeleteCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	if err := a.DeleteTemplate(ctx.Ctx(), c.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted template %s\n", c.ID)
	return nil
}

type TemplateListCmd struct{}

func (c *TemplateListCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	templates := a.Templates()
	if len(templates) == 0 {
		ctx.Println("No templates saved yet.")
		return nil
	}
	for _, t := range templates {
		ctx.Printf("%-24s %3d entries  (ID: %s)\n", t.Name, len(t.Entries), t.ID)
	}
	return nil
}
