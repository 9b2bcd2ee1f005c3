package shop

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/vibequest/internal/models"
	"github.com/julianstephens/vibequest/internal/progression"
)

type BuyMsg struct {
	ID string
}

type EquipMsg struct {
	ID string
}

// ThemeMsg selects a theme. An empty ID restores the default.
type ThemeMsg struct {
	ID string
}

type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Buy   key.Binding
	Use   key.Binding
	Reset key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Buy: key.NewBinding(
			key.WithKeys("b", "enter"),
			key.WithHelp("b/enter", "buy"),
		),
		Use: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "equip/use"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "default theme"),
		),
	}
}

var (
	balanceStyle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1)

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			PaddingLeft(4)

	ownedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))
)

type Model struct {
	keys     KeyMap
	items    []models.ShopItem
	persona  models.Persona
	settings models.Settings
	cursor   int
	accent   lipgloss.Color
}

func New(accent string) Model {
	return Model{keys: DefaultKeyMap(), accent: lipgloss.Color(accent)}
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m *Model) SetAccent(accent string) {
	m.accent = lipgloss.Color(accent)
}

func (m *Model) SetData(items []models.ShopItem, p models.Persona, s models.Settings) {
	m.items = items
	m.persona = p
	m.settings = s
	m.cursor = min(m.cursor, max(len(items)-1, 0))
}

func (m Model) Cursor() int {
	return m.cursor
}

func (m Model) Selected() (models.ShopItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return models.ShopItem{}, false
	}
	return m.items[m.cursor], true
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(keyMsg, m.keys.Down):
		m.cursor = min(m.cursor+1, max(len(m.items)-1, 0))
	case key.Matches(keyMsg, m.keys.Reset):
		return m, func() tea.Msg { return ThemeMsg{} }
	case key.Matches(keyMsg, m.keys.Buy):
		if item, ok := m.Selected(); ok && progression.CanBuy(item) {
			return m, func() tea.Msg { return BuyMsg{ID: item.ID} }
		}
	case key.Matches(keyMsg, m.keys.Use):
		item, ok := m.Selected()
		if !ok || !item.Owned {
			return m, nil
		}
		switch item.Kind.(type) {
		case models.AvatarKind:
			return m, func() tea.Msg { return EquipMsg{ID: item.ID} }
		case models.ThemeKind:
			return m, func() tea.Msg { return ThemeMsg{ID: item.ID} }
		}
	}
	return m, nil
}

func (m Model) state(item models.ShopItem) string {
	switch k := item.Kind.(type) {
	case models.AvatarKind:
		if item.Owned && m.persona.Avatar == item.Icon {
			return "equipped"
		}
	case models.ThemeKind:
		if m.settings.CurrentTheme == item.ID {
			return "active"
		}
	case models.EditTicketKind:
		if k.Count > 0 {
			return fmt.Sprintf("bought x%d", k.Count)
		}
		return ""
	}
	if item.Owned {
		return "owned"
	}
	return ""
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(balanceStyle.Render(fmt.Sprintf("Balance: %d XP  |  Edit tickets: %d",
		m.persona.XP, m.persona.Inventory.EditTickets)))
	b.WriteByte('\n')

	selected := lipgloss.NewStyle().Foreground(m.accent).Bold(true)
	for i, item := range m.items {
		line := fmt.Sprintf("%s %-20s %7d XP", item.Icon, item.Name, item.Cost)
		if i == m.cursor {
			line = selected.Render("› " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		if s := m.state(item); s != "" {
			b.WriteString("  " + ownedStyle.Render("["+s+"]"))
		}
		b.WriteByte('\n')
		if i == m.cursor && item.Description != "" {
			b.WriteString(descStyle.Render(item.Description))
			b.WriteByte('\n')
		}
	}
	return b.String()
}
