package tasklist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/vibequest/internal/models"
)

type AddEntryMsg struct{}

type DeleteEntryMsg struct {
	ID string
}

type CompleteEntryMsg struct {
	ID string
}

type InvalidateEntryMsg struct {
	ID string
}

type ToggleLockMsg struct {
	ID     string
	Locked bool
}

// UseTicketMsg unlocks an entry by spending an edit ticket.
type UseTicketMsg struct {
	ID string
}

// SuggestTagsMsg asks for AI tags for the selected entry.
type SuggestTagsMsg struct {
	ID    string
	Title string
}

type Item struct {
	Entry models.ScheduleEntry
}

func (i Item) Title() string {
	e := i.Entry
	prefix := ""
	switch {
	case e.Status == models.StatusCompleted:
		prefix = "✓ "
	case e.Status == models.StatusInvalid:
		prefix = "✗ "
	case e.IsLocked:
		prefix = "🔒 "
	}
	return prefix + e.Title
}

func (i Item) Description() string {
	e := i.Entry
	when := e.Date
	if e.Type == models.EntryTypeFixed {
		when = "every " + e.DayOfWeek
	} else if e.IsRepeating {
		when = fmt.Sprintf("%s from %s", strings.ToLower(string(e.RepeatConfig.Type)), e.Date)
	}
	desc := fmt.Sprintf("%s %s | %d min | %s | [%s]", when, e.StartTime, e.EstimatedDuration, e.Priority, e.ProjectID)
	if len(e.Tags) > 0 {
		desc += " | #" + strings.Join(e.Tags, " #")
	}
	return desc
}

func (i Item) FilterValue() string { return i.Entry.Title }

type KeyMap struct {
	Add        key.Binding
	Complete   key.Binding
	Invalidate key.Binding
	Delete     key.Binding
	Lock       key.Binding
	Ticket     key.Binding
	Tags       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Complete: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "complete"),
		),
		Invalidate: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "fail"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Lock: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "lock/unlock"),
		),
		Ticket: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unlock with ticket"),
		),
		Tags: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "AI tags"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(entries []models.ScheduleEntry, width, height int) Model {
	l := list.New(toItems(entries), list.NewDefaultDelegate(), width, height)
	l.Title = "Entries"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Complete, keys.Delete, keys.Lock}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Complete, keys.Invalidate, keys.Delete, keys.Lock, keys.Ticket, keys.Tags}
	}

	return Model{list: l, keys: keys}
}

func toItems(entries []models.ScheduleEntry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Entry: e}
	}
	return items
}

func (m *Model) SetEntries(entries []models.ScheduleEntry) {
	m.list.SetItems(toItems(entries))
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m Model) Len() int {
	return len(m.list.Items())
}

// Filtering reports whether the filter input has focus.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Selected() (models.ScheduleEntry, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Entry, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if key.Matches(msg, m.keys.Add) {
			return m, func() tea.Msg { return AddEntryMsg{} }
		}
		if e, ok := m.Selected(); ok {
			switch {
			case key.Matches(msg, m.keys.Complete):
				return m, func() tea.Msg { return CompleteEntryMsg{ID: e.ID} }
			case key.Matches(msg, m.keys.Invalidate):
				return m, func() tea.Msg { return InvalidateEntryMsg{ID: e.ID} }
			case key.Matches(msg, m.keys.Delete):
				return m, func() tea.Msg { return DeleteEntryMsg{ID: e.ID} }
			case key.Matches(msg, m.keys.Lock):
				return m, func() tea.Msg { return ToggleLockMsg{ID: e.ID, Locked: !e.IsLocked} }
			case key.Matches(msg, m.keys.Ticket):
				if e.IsLocked {
					return m, func() tea.Msg { return UseTicketMsg{ID: e.ID} }
				}
			case key.Matches(msg, m.keys.Tags):
				return m, func() tea.Msg { return SuggestTagsMsg{ID: e.ID, Title: e.Title} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No entries yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}
