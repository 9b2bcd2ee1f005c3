package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/vibequest/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateTimetable:
		content = docStyle.Render(m.timetable.View())
	case StateTasks:
		content = docStyle.Render(m.taskList.View())
	case StateShop:
		content = docStyle.Render(m.shop.View())
	case StateAchievements:
		content = docStyle.Render(m.gallery.View())
	case StateAddEntry, StateAddProject, StatePickProject:
		content = docStyle.Render(m.form.View())
	case StateFocus:
		return m.focus.View()
	case StatePlan:
		content = docStyle.Render(m.plan.View())
	case StateSuggestions:
		content = m.viewSuggestions()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewHeader() string {
	p := m.app.Persona()
	return fmt.Sprintf("%s %s  %s  %s  %s",
		p.Avatar,
		m.styles.header.Render(fmt.Sprintf("Lv.%d", p.Level)),
		mutedStyle.Render(fmt.Sprintf("%d / %d XP", p.TotalXP, p.NextLevelXP)),
		fmt.Sprintf("💰 %d", p.XP),
		fmt.Sprintf("🎟 %d", p.Inventory.EditTickets),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	if !active.isTab() {
		active = m.previousState
	}
	var tabs []string
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, m.styles.activeTab.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return warningStyle.Render(m.status)
	}
	return successStyle.Render(m.status)
}

func (m Model) viewSuggestions() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Free slots for %s\n\n", m.styles.header.Render(m.suggestProject.Name))
	switch {
	case m.suggestLoading:
		b.WriteString(mutedStyle.Render("Looking at your week..."))
	case len(m.suggestions) == 0:
		b.WriteString("No suggestions.\n\n[esc] Back")
	default:
		for _, s := range m.suggestions {
			end := s.StartTime
			if start, err := utils.ParseTimeToMinutes(s.StartTime); err == nil {
				end = utils.FormatMinutes(start + s.EstimatedDuration)
			}
			fmt.Fprintf(&b, "  %s  %s-%s  %s (%d min)\n", s.Date, s.StartTime, end, s.Title, s.EstimatedDuration)
		}
		b.WriteString("\nAdd these entries?  [y] Yes  [n] No")
	}
	return lipgloss.Place(m.width, max(m.height-chromeHeight, 3),
		lipgloss.Center, lipgloss.Center, b.String())
}

func (m Model) viewConfirmDelete() string {
	title := m.entryToDelete
	if e, err := m.app.Entry(m.entryToDelete); err == nil {
		title = e.Title
	}
	return lipgloss.Place(m.width, max(m.height-chromeHeight, 3),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %q?", title)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
