package shop

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/vibequest/internal/models"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testItems() []models.ShopItem {
	return []models.ShopItem{
		{ID: "av1", Name: "Wizard", Icon: "🧙", Cost: 1000, Owned: true, Kind: models.AvatarKind{}},
		{ID: "tk1", Name: "Edit ticket", Icon: "🎟", Cost: 300, Kind: models.EditTicketKind{}},
		{ID: "th1", Name: "Rose", Icon: "🌹", Cost: 5000, Kind: models.ThemeKind{Color: "#f43f5e"}},
	}
}

func TestBuyAndUse(t *testing.T) {
	m := New("205")
	p := models.DefaultPersona()
	p.XP = 400
	m.SetData(testItems(), p, models.DefaultSettings())

	// Owned avatar cannot be bought again.
	if _, cmd := m.Update(runes("b")); cmd != nil {
		t.Error("buying an owned avatar should be refused")
	}
	_, cmd := m.Update(runes("u"))
	if msg, ok := cmd().(EquipMsg); !ok || msg.ID != "av1" {
		t.Errorf("got %+v, want EquipMsg av1", cmd())
	}

	m, _ = m.Update(runes("j"))
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if msg, ok := cmd().(BuyMsg); !ok || msg.ID != "tk1" {
		t.Errorf("got %+v, want BuyMsg tk1", cmd())
	}

	m, _ = m.Update(runes("j"))
	m, _ = m.Update(runes("j"))
	if m.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want clamped to 2", m.Cursor())
	}
	if _, cmd := m.Update(runes("u")); cmd != nil {
		t.Error("an unowned theme cannot be used")
	}
	_, cmd = m.Update(runes("r"))
	if msg, ok := cmd().(ThemeMsg); !ok || msg.ID != "" {
		t.Errorf("got %+v, want reset ThemeMsg", cmd())
	}
}

func TestView(t *testing.T) {
	m := New("205")
	p := models.DefaultPersona()
	p.Avatar = "🧙"
	p.XP = 1234
	items := testItems()
	items[1].Kind = models.EditTicketKind{Count: 2}
	m.SetData(items, p, models.DefaultSettings())

	view := m.View()
	for _, want := range []string{"Balance: 1234 XP", "[equipped]", "[bought x2]", "Rose"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
