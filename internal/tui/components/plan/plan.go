package plan

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/vibequest/internal/markdown"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			MarginBottom(1)

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// Model shows the AI plan of one project as rendered markdown.
type Model struct {
	viewport viewport.Model
	Project  string
	Markdown string
	Loading  bool
	width    int
	height   int
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

func (m Model) View() string {
	header := titleStyle.Render("Plan: " + m.Project)
	if m.Loading {
		return header + "\n" + pendingStyle.Render("Generating plan...")
	}
	return header + "\n" + m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-2, 1)
	m.Render()
}

// Start clears the view and shows the pending state for project.
func (m *Model) Start(project string) {
	m.Project = project
	m.Markdown = ""
	m.Loading = true
	m.viewport.SetContent("")
}

func (m *Model) SetPlan(md string) {
	m.Markdown = md
	m.Loading = false
	m.Render()
}

func (m *Model) Render() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewport.SetContent(markdown.Render(m.Markdown, width))
	m.viewport.GotoTop()
}
