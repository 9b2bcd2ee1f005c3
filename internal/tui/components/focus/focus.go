package focus

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/vibequest/internal/constants"
	"github.com/julianstephens/vibequest/internal/models"
	"github.com/julianstephens/vibequest/internal/progression"
	"github.com/julianstephens/vibequest/internal/utils"
)

// Source supplies the entries and quotes the focus screen shows.
type Source interface {
	CurrentAndNext() (current, next *models.ScheduleEntry)
	FocusQuote(elapsed time.Duration) string
}

// TickMsg drives the clock. ID ties a tick to the session that started it so
// ticks from a closed session die out.
type TickMsg struct {
	ID   int
	Time time.Time
}

var (
	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	quoteStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("250")).
			MarginTop(1)
)

var faces = map[models.Expression]string{
	models.ExpressionHappy:   "(^‿^)",
	models.ExpressionNeutral: "(・_・)",
	models.ExpressionSad:     "(╥_╥)",
	models.ExpressionAngry:   "(╬ಠ益ಠ)",
	models.ExpressionFocused: "(•̀ᴗ•́)",
}

type Model struct {
	src     Source
	now     func() time.Time
	id      int
	started time.Time
	current *models.ScheduleEntry
	next    *models.ScheduleEntry
	quote   string
	accent  lipgloss.Color
	width   int
	height  int
}

func New(src Source, now func() time.Time, accent string) Model {
	return Model{src: src, now: now, accent: lipgloss.Color(accent)}
}

// Start begins a new focus session and returns its first tick.
func (m *Model) Start() tea.Cmd {
	m.id++
	m.started = m.now()
	m.refresh(m.started)
	return m.tick()
}

// Stop invalidates the running tick chain.
func (m *Model) Stop() {
	m.id++
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) tick() tea.Cmd {
	id := m.id
	return tea.Tick(constants.FocusTickInterval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}

func (m *Model) refresh(now time.Time) {
	m.current, m.next = m.src.CurrentAndNext()
	m.quote = m.src.FocusQuote(now.Sub(m.started))
}

func (m Model) Current() *models.ScheduleEntry {
	return m.current
}

func (m Model) Quote() string {
	return m.quote
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(TickMsg); ok {
		if msg.ID != m.id {
			return m, nil
		}
		m.refresh(msg.Time)
		return m, m.tick()
	}
	return m, nil
}

// remaining is the time left in the running entry.
func remaining(e models.ScheduleEntry, now time.Time) time.Duration {
	start, err := utils.ParseTimeToMinutes(e.StartTime)
	if err != nil {
		return 0
	}
	end := start + e.EstimatedDuration
	if t, err := utils.ParseTimeToMinutes(e.EndTime); err == nil && t > start {
		end = t
	}
	endAt := time.Date(now.Year(), now.Month(), now.Day(), 0, end, 0, 0, now.Location())
	return max(endAt.Sub(now), 0)
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	mins := int(d%time.Hour) / int(time.Minute)
	secs := int(d%time.Minute) / int(time.Second)
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mins, secs)
	}
	return fmt.Sprintf("%02d:%02d", mins, secs)
}

func (m Model) View() string {
	now := m.now()
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(m.accent)
	b.WriteString(titleStyle.Render("FOCUS MODE"))
	b.WriteString("\n\n")
	b.WriteString(faces[progression.FocusExpression(m.current != nil)])
	b.WriteString("\n\n")
	b.WriteString(clockStyle.Render(now.Format("15:04:05")))
	b.WriteString("\n\n")

	if m.current != nil {
		b.WriteString(labelStyle.Render("Now  "))
		fmt.Fprintf(&b, "%s  (%s left)", m.current.Title, formatDuration(remaining(*m.current, now)))
	} else {
		b.WriteString(labelStyle.Render("Now  "))
		b.WriteString("Nothing scheduled. Take a breath.")
	}
	b.WriteString("\n")
	if m.next != nil {
		b.WriteString(labelStyle.Render("Next "))
		fmt.Fprintf(&b, "%s at %s", m.next.Title, m.next.StartTime)
		b.WriteString("\n")
	}
	b.WriteString(quoteStyle.Render("“" + m.quote + "”"))

	content := b.String()
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Align(lipgloss.Center).Render(content))
	}
	return content
}
