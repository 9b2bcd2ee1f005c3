package models

import (
	"encoding/json"
	"fmt"
)

type ShopItemType string

const (
	ShopItemAvatar     ShopItemType = "AVATAR"
	ShopItemEditTicket ShopItemType = "EDIT_TICKET"
	ShopItemTheme      ShopItemType = "THEME"
	ShopItemQuotePack  ShopItemType = "QUOTE_PACK"
)

// ShopItemKind is the type-specific payload of a ShopItem.
type ShopItemKind interface {
	ItemType() ShopItemType
	// Stackable items can be bought repeatedly.
	Stackable() bool
}

type AvatarKind struct{}

func (AvatarKind) ItemType() ShopItemType { return ShopItemAvatar }
func (AvatarKind) Stackable() bool        { return false }

type EditTicketKind struct {
	Count int
}

func (EditTicketKind) ItemType() ShopItemType { return ShopItemEditTicket }
func (EditTicketKind) Stackable() bool        { return true }

type ThemeKind struct {
	Color string // hex color
}

func (ThemeKind) ItemType() ShopItemType { return ShopItemTheme }
func (ThemeKind) Stackable() bool        { return false }

type QuotePackKind struct {
	Quotes []string
}

func (QuotePackKind) ItemType() ShopItemType { return ShopItemQuotePack }
func (QuotePackKind) Stackable() bool        { return false }

type ShopItem struct {
	ID          string
	Name        string
	Description string
	Cost        int
	Icon        string
	Owned       bool
	Kind        ShopItemKind
}

// shopItemJSON is the flat wire shape of a ShopItem.
type shopItemJSON struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Cost        int          `json:"cost"`
	Type        ShopItemType `json:"type"`
	Icon        string       `json:"icon"`
	Owned       bool         `json:"owned"`
	Count       *int         `json:"count,omitempty"`
	Value       string       `json:"value,omitempty"`
	Quotes      []string     `json:"quotes,omitempty"`
}

func (i ShopItem) MarshalJSON() ([]byte, error) {
	if i.Kind == nil {
		return nil, fmt.Errorf("shop item %s has no kind", i.ID)
	}
	w := shopItemJSON{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Cost:        i.Cost,
		Type:        i.Kind.ItemType(),
		Icon:        i.Icon,
		Owned:       i.Owned,
	}
	switch k := i.Kind.(type) {
	case EditTicketKind:
		count := k.Count
		w.Count = &count
	case ThemeKind:
		w.Value = k.Color
	case QuotePackKind:
		w.Quotes = k.Quotes
	}
	return json.Marshal(w)
}

func (i *ShopItem) UnmarshalJSON(data []byte) error {
	var w shopItemJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*i = ShopItem{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Cost:        w.Cost,
		Icon:        w.Icon,
		Owned:       w.Owned,
	}
	switch w.Type {
	case ShopItemAvatar:
		i.Kind = AvatarKind{}
	case ShopItemEditTicket:
		k := EditTicketKind{}
		if w.Count != nil {
			k.Count = *w.Count
		}
		i.Kind = k
	case ShopItemTheme:
		i.Kind = ThemeKind{Color: w.Value}
	case ShopItemQuotePack:
		i.Kind = QuotePackKind{Quotes: w.Quotes}
	default:
		return fmt.Errorf("unknown shop item type %q", w.Type)
	}
	return nil
}

// DefaultShopItems is the fixed seed catalog.
func DefaultShopItems() []ShopItem {
	return []ShopItem{
		{ID: "av1", Name: "기본 용사", Description: "가장 평범하지만 잠재력이 큽니다.", Cost: 0, Icon: "👤", Owned: true, Kind: AvatarKind{}},
		{ID: "av2", Name: "초보 마법사", Description: "지식 습득 효율이 좋아 보입니다.", Cost: 5000, Icon: "🧙", Kind: AvatarKind{}},
		{ID: "av3", Name: "강철 기사", Description: "어떤 힘든 일정도 버텨냅니다.", Cost: 15000, Icon: "🛡️", Kind: AvatarKind{}},
		{ID: "av4", Name: "심연의 군주", Description: "시간을 초월한 존재의 아바타.", Cost: 100000, Icon: "👿", Kind: AvatarKind{}},
		{ID: "tk1", Name: "일정 수정권 (x1)", Description: "이미 확정된 일정을 1회 수정합니다.", Cost: 3000, Icon: "🎫", Kind: EditTicketKind{}},
		{ID: "th1", Name: "네온 시티", Description: "강렬한 네온 핑크 테마", Cost: 25000, Icon: "🌆", Kind: ThemeKind{Color: "#f43f5e"}},
		{ID: "th2", Name: "에메랄드 포레스트", Description: "눈이 편안한 초록 숲 테마", Cost: 25000, Icon: "🌲", Kind: ThemeKind{Color: "#10b981"}},
		{ID: "qp1", Name: "용사의 격언", Description: "집중 모드에 새로운 명언이 추가됩니다.", Cost: 8000, Icon: "📜", Kind: QuotePackKind{Quotes: []string{
			"포기하지 않는 자가 결국 이깁니다.",
			"오늘의 한 걸음이 내일의 전설이 됩니다.",
			"가장 어두운 밤도 결국 끝나고 해는 떠오릅니다.",
		}}},
	}
}
