package gallery

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/vibequest/internal/progression"
)

var (
	groupStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			MarginTop(1)

	lockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	rewardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))
)

// Model is the scrollable achievement gallery.
type Model struct {
	viewport viewport.Model
	groups   []progression.GalleryGroup
	resetIn  int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetGroups(groups []progression.GalleryGroup, now time.Time) {
	m.groups = groups
	m.resetIn = progression.DaysUntilReset(now)
	m.Render()
}

func (m *Model) Render() {
	m.viewport.SetContent(Content(m.groups, m.resetIn))
}

// Content renders the gallery groups as plain styled text.
func Content(groups []progression.GalleryGroup, resetIn int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Monthly quests reset in %d days\n", resetIn)
	for _, g := range groups {
		b.WriteString(groupStyle.Render(fmt.Sprintf("%s (%d/%d)", g.Label, g.Unlocked, len(g.Items))))
		b.WriteByte('\n')
		for _, item := range g.Items {
			line := fmt.Sprintf("  %s %s - %s", item.Icon, item.Title, item.Description)
			if !item.Unlocked {
				line = lockedStyle.Render(line)
			}
			b.WriteString(line)
			if item.RewardXP > 0 && !item.Hidden {
				b.WriteString(" " + rewardStyle.Render(fmt.Sprintf("+%d XP", item.RewardXP)))
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m Model) View() string {
	return m.viewport.View()
}
