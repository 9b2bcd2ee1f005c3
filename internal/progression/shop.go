package progression

import (
	"errors"
	"slices"

	"github.com/julianstephens/vibequest/internal/constants"
	"github.com/julianstephens/vibequest/internal/models"
)

var (
	ErrNotOwned      = errors.New("item is not owned")
	ErrWrongItemType = errors.New("item has the wrong type for this action")
	ErrNoEditTickets = errors.New("no edit tickets left")
	ErrNotLocked     = errors.New("entry is not locked")
)

type BuyResult struct {
	OK bool
	// Shortfall is how much XP was missing when OK is false.
	Shortfall int
}

// Buy debits the item's cost and applies its effect. It never lets XP go
// negative; on failure neither the persona nor the item changes. Owned
// non-stackable items are not guarded here.
func Buy(p *models.Persona, item *models.ShopItem) BuyResult {
	if p.XP < item.Cost {
		return BuyResult{Shortfall: item.Cost - p.XP}
	}

	p.XP -= item.Cost
	item.Owned = true

	switch k := item.Kind.(type) {
	case models.EditTicketKind:
		k.Count++
		item.Kind = k
		p.Inventory.EditTickets++
	case models.ThemeKind:
		if !slices.Contains(p.Inventory.UnlockedThemes, item.ID) {
			p.Inventory.UnlockedThemes = append(p.Inventory.UnlockedThemes, item.ID)
		}
	case models.QuotePackKind:
		if !slices.Contains(p.Inventory.UnlockedQuotePacks, item.ID) {
			p.Inventory.UnlockedQuotePacks = append(p.Inventory.UnlockedQuotePacks, item.ID)
		}
	}
	return BuyResult{OK: true}
}

// CanBuy reports whether the buy affordance should be offered for item.
func CanBuy(item models.ShopItem) bool {
	if item.Kind == nil {
		return false
	}
	return !item.Owned || item.Kind.Stackable()
}

// EquipAvatar switches the persona's avatar to an owned avatar item.
func EquipAvatar(p *models.Persona, item models.ShopItem) error {
	if _, ok := item.Kind.(models.AvatarKind); !ok {
		return ErrWrongItemType
	}
	if !item.Owned {
		return ErrNotOwned
	}
	p.Avatar = item.Icon
	return nil
}

// SelectTheme makes an owned theme current. An empty id restores the
// default theme.
func SelectTheme(s *models.Settings, p models.Persona, item *models.ShopItem) error {
	if item == nil {
		s.CurrentTheme = ""
		return nil
	}
	if _, ok := item.Kind.(models.ThemeKind); !ok {
		return ErrWrongItemType
	}
	if !item.Owned && !p.HasTheme(item.ID) {
		return ErrNotOwned
	}
	s.CurrentTheme = item.ID
	return nil
}

// UseEditTicket spends one ticket to unlock a locked entry.
func UseEditTicket(p *models.Persona, e *models.ScheduleEntry) error {
	if !e.IsLocked {
		return ErrNotLocked
	}
	if p.Inventory.EditTickets <= 0 {
		return ErrNoEditTickets
	}
	p.Inventory.EditTickets--
	e.IsLocked = false
	return nil
}

// QuotePool returns the focus-screen quotes: the built-in set plus every
// unlocked quote pack found in items.
func QuotePool(p models.Persona, items []models.ShopItem) []string {
	quotes := slices.Clone(constants.FocusQuotes)
	for _, item := range items {
		k, ok := item.Kind.(models.QuotePackKind)
		if !ok {
			continue
		}
		if item.Owned || slices.Contains(p.Inventory.UnlockedQuotePacks, item.ID) {
			quotes = append(quotes, k.Quotes...)
		}
	}
	return quotes
}
