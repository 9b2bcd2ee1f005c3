package app

import (
	"context"
	"fmt"
	"slices"

	"github.com/julianstephens/vibequest/internal/models"
	"github.com/julianstephens/vibequest/internal/progression"
)

func (a *App) findItem(id string) (int, error) {
	i := slices.IndexFunc(a.state.ShopItems, func(s models.ShopItem) bool { return s.ID == id })
	if i < 0 {
		return -1, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return i, nil
}

// BuyItem purchases a catalog item. When XP is short the returned result
// has OK false and the state is not touched; that is not an error.
func (a *App) BuyItem(ctx context.Context, id string) (progression.BuyResult, error) {
	i, err := a.findItem(id)
	if err != nil {
		return progression.BuyResult{}, err
	}
	res := progression.Buy(&a.state.Persona, &a.state.ShopItems[i])
	if !res.OK {
		return res, nil
	}
	return res, a.persist(ctx)
}

// EquipAvatar makes an owned avatar current.
func (a *App) EquipAvatar(ctx context.Context, id string) error {
	i, err := a.findItem(id)
	if err != nil {
		return err
	}
	if err := progression.EquipAvatar(&a.state.Persona, a.state.ShopItems[i]); err != nil {
		return err
	}
	return a.persist(ctx)
}

// SetTheme selects an owned theme. An empty id restores the default theme.
func (a *App) SetTheme(ctx context.Context, id string) error {
	var item *models.ShopItem
	if id != "" {
		i, err := a.findItem(id)
		if err != nil {
			return err
		}
		item = &a.state.ShopItems[i]
	}
	if err := progression.SelectTheme(&a.state.Settings, a.state.Persona, item); err != nil {
		return err
	}
	return a.persist(ctx)
}

// ThemeColor returns the hex color of the current theme, or "" for the
// default.
func (a *App) ThemeColor() string {
	id := a.state.Settings.CurrentTheme
	if id == "" {
		return ""
	}
	i, err := a.findItem(id)
	if err != nil {
		return ""
	}
	if k, ok := a.state.ShopItems[i].Kind.(models.ThemeKind); ok {
		return k.Color
	}
	return ""
}

func (a *App) Gallery() []progression.GalleryGroup {
	return progression.Gallery(a.state.Persona)
}

func (a *App) QuotePool() []string {
	return progression.QuotePool(a.state.Persona, a.state.ShopItems)
}
