package shop

import (
	"strings"

	"github.com/julianstephens/vibequest/internal/cli"
	"github.com/julianstephens/vibequest/internal/progression"
)

type PersonaCmd struct{}

func (c *PersonaCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	p := a.Persona()

	floor := progression.XPRequiredForLevel(p.Level)
	span := p.NextLevelXP - floor
	into := p.TotalXP - floor
	const barWidth = 20
	filled := 0
	if span > 0 {
		filled = min(barWidth, into*barWidth/span)
	}

	ctx.Printf("%s  Level %d  (%s)\n", p.Avatar, p.Level, p.Expression)
	ctx.Printf("[%s%s] %d / %d XP to level %d\n",
		strings.Repeat("█", filled), strings.Repeat("░", barWidth-filled), into, span, p.Level+1)
	ctx.Printf("Balance:      %d XP\n", p.XP)
	ctx.Printf("Lifetime:     %d XP\n", p.TotalXP)
	ctx.Printf("Streak:       %d 🔥\n", p.FlameCount)
	ctx.Printf("Edit tickets: %d\n", p.Inventory.EditTickets)
	if theme := a.Settings().CurrentTheme; theme != "" {
		ctx.Printf("Theme:        %s (%s)\n", theme, a.ThemeColor())
	}
	if p.LastActivityDate != "" {
		ctx.Printf("Last quest:   %s\n", p.LastActivityDate)
	}
	return nil
}

type AchievementsCmd struct{}

func (c *AchievementsCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	for _, g := range a.Gallery() {
		ctx.Printf("\n%s  (%d/%d)\n", g.Label, g.Unlocked, len(g.Items))
		for _, item := range g.Items {
			ctx.Printf("  %s %-24s +%d XP\n", item.Icon, item.Title, item.RewardXP)
			ctx.Printf("     %s\n", item.Description)
		}
	}
	ctx.Printf("\nNext reset in %d days.\n", progression.DaysUntilReset(a.Now()))
	return nil
}
