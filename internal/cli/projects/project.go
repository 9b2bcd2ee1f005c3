package projects

import (
	"fmt"
	"regexp"

	"github.com/julianstephens/vibequest/internal/app"
	"github.com/julianstephens/vibequest/internal/cli"
	"github.com/julianstephens/vibequest/internal/markdown"
	"github.com/julianstephens/vibequest/internal/models"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type ProjectAddCmd struct {
	Name        string `arg:"" help:"Project name."`
	Description string `short:"d" help:"Project description, used for AI plans."`
	Color       string `short:"c" help:"Hex color (#rrggbb)."`
	Difficulty  string `help:"Difficulty (easy|normal|hard)."`
}

func (c *ProjectAddCmd) Validate() error {
	if c.Color != "" && !hexColor.MatchString(c.Color) {
		return fmt.Errorf("invalid color %q (expected #rrggbb)", c.Color)
	}
	return nil
}

func (c *ProjectAddCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	p := models.Project{Name: c.Name, Description: c.Description, Color: c.Color}
	if c.Difficulty != "" {
		if p.Difficulty, err = cli.ParseDifficulty(c.Difficulty); err != nil {
			return err
		}
	}
	added, err := a.AddProject(ctx.Ctx(), p)
	if err != nil {
		return err
	}
	ctx.Printf("Added project: %s (ID: %s)\n", added.Name, added.ID)
	return nil
}

type ProjectEditCmd struct {
	ID          string  `arg:"" help:"Project ID."`
	Name        *string `help:"New name."`
	Description *string `short:"d" help:"New description."`
	Color       *string `short:"c" help:"New hex color (#rrggbb)."`
	Difficulty  *string `help:"New difficulty (easy|normal|hard)."`
}

func (c *ProjectEditCmd) Run(ctx *cli.Context) error {
	if c.Color != nil && !hexColor.MatchString(*c.Color) {
		return fmt.Errorf("invalid color %q (expected #rrggbb)", *c.Color)
	}
	a, err := ctx.App()
	if err != nil {
		return err
	}
	patch := app.ProjectPatch{Name: c.Name, Description: c.Description, Color: c.Color}
	if c.Difficulty != nil {
		d, err := cli.ParseDifficulty(*c.Difficulty)
		if err != nil {
			return err
		}
		patch.Difficulty = &d
	}
	p, err := a.UpdateProject(ctx.Ctx(), c.ID, patch)
	if err != nil {
		return err
	}
	ctx.Printf("Updated project: %s (ID: %s)\n", p.Name, p.ID)
	return nil
}

type ProjectDeleteCmd struct {
	ID string `arg:"" help:"Project ID."`
}

func (c *ProjectDeleteCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	if err := a.DeleteProject(ctx.Ctx(), c.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted project %s\n", c.ID)
	if n := len(a.RecentByProject(c.ID)); n > 0 {
		ctx.Println("Entries that referenced it keep the old project ID.")
	}
	return nil
}

type ProjectListCmd struct{}

func (c *ProjectListCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	projects := a.Projects()
	if len(projects) == 0 {
		ctx.Println("No projects.")
		return nil
	}
	for _, p := range projects {
		line := fmt.Sprintf("%-10s %-20s %s", p.ID, p.Name, p.Color)
		if p.Difficulty != "" {
			line += " " + string(p.Difficulty)
		}
		if p.Description != "" {
			line += "  - " + p.Description
		}
		ctx.Println(line)
	}
	return nil
}

type ProjectPlanCmd struct {
	ID  string `arg:"" help:"Project ID."`
	Raw bool   `help:"Print the markdown without rendering."`
}

func (c *ProjectPlanCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	if !a.Assistant().Available() {
		ctx.Println("AI helper is not configured; run 'vibequest keyring set-api-key' or set GEMINI_API_KEY.")
	}
	md, err := a.GenerateProjectPlan(ctx.Ctx(), c.ID)
	if err != nil {
		return err
	}
	if c.Raw {
		ctx.Println(md)
		return nil
	}
	ctx.Printf("%s", markdown.Render(md, 80))
	return nil
}
