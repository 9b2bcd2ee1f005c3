package shop

import (
	stderrors "errors"
	"fmt"

	"github.com/julianstephens/vibequest/internal/cli"
	"github.com/julianstephens/vibequest/internal/errors"
	"github.com/julianstephens/vibequest/internal/models"
	"github.com/julianstephens/vibequest/internal/progression"
)

type ShopListCmd struct{}

func (c *ShopListCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	p := a.Persona()
	ctx.Printf("Balance: %d XP  |  Edit tickets: %d\n\n", p.XP, p.Inventory.EditTickets)
	for _, item := range a.ShopItems() {
		ctx.Printf("%s %-6s %-20s %7d XP  %s\n", item.Icon, item.ID, item.Name, item.Cost, itemState(a.Settings(), p, item))
		if item.Description != "" {
			ctx.Printf("           %s\n", item.Description)
		}
	}
	return nil
}

func itemState(s models.Settings, p models.Persona, item models.ShopItem) string {
	switch k := item.Kind.(type) {
	case models.AvatarKind:
		if item.Owned && p.Avatar == item.Icon {
			return "[equipped]"
		}
	case models.ThemeKind:
		if s.CurrentTheme == item.ID {
			return "[active " + k.Color + "]"
		}
	case models.EditTicketKind:
		if k.Count > 0 {
			return fmt.Sprintf("[bought x%d]", k.Count)
		}
		return ""
	}
	if item.Owned {
		return "[owned]"
	}
	return ""
}

type ShopBuyCmd struct {
	ID string `arg:"" help:"Shop item ID."`
}

func (c *ShopBuyCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	for _, item := range a.ShopItems() {
		if item.ID == c.ID && !progression.CanBuy(item) {
			errors.Reject(ctx.Stdout(), "%s is already owned", item.Name)
			return nil
		}
	}
	res, err := a.BuyItem(ctx.Ctx(), c.ID)
	if err != nil {
		return err
	}
	if !res.OK {
		errors.Reject(ctx.Stdout(), "not enough XP (%d more needed)", res.Shortfall)
		return nil
	}
	ctx.Printf("✓ Purchased %s. Balance: %d XP\n", c.ID, a.Persona().XP)
	return nil
}

type ShopEquipCmd struct {
	ID string `arg:"" help:"Avatar item ID."`
}

func (c *ShopEquipCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	err = a.EquipAvatar(ctx.Ctx(), c.ID)
	if stderrors.Is(err, progression.ErrNotOwned) {
		errors.Reject(ctx.Stdout(), "buy %s before equipping it", c.ID)
		return nil
	}
	if err != nil {
		return err
	}
	ctx.Printf("Equipped avatar %s\n", a.Persona().Avatar)
	return nil
}

type ShopThemeCmd struct {
	ID    string `arg:"" optional:"" help:"Theme item ID."`
	Reset bool   `help:"Return to the default theme."`
}

func (c *ShopThemeCmd) Validate() error {
	if (c.ID == "") == !c.Reset {
		return fmt.Errorf("give either a theme ID or --reset")
	}
	return nil
}

func (c *ShopThemeCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	err = a.SetTheme(ctx.Ctx(), c.ID)
	if stderrors.Is(err, progression.ErrNotOwned) {
		errors.Reject(ctx.Stdout(), "buy %s before using it", c.ID)
		return nil
	}
	if err != nil {
		return err
	}
	if c.ID == "" {
		ctx.Println("Theme reset to default.")
		return nil
	}
	ctx.Printf("Theme set to %s (%s)\n", c.ID, a.ThemeColor())
	return nil
}
