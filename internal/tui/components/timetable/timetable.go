package timetable

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/vibequest/internal/models"
	"github.com/julianstephens/vibequest/internal/scheduler"
	"github.com/julianstephens/vibequest/internal/utils"
)

// Source is the read side of the application the grid renders from.
type Source interface {
	WeekDates(offset int) []time.Time
	WeekIndex(start time.Time) *scheduler.WeekIndex
	Hours() []int
	Today() time.Time
}

// AddEntryMsg asks for the creation form prefilled for a cell.
type AddEntryMsg struct {
	Date time.Time
	Hour int
}

// MoveEntryMsg drops the grabbed entry onto a cell.
type MoveEntryMsg struct {
	ID   string
	Date time.Time
	Hour int
}

type CompleteEntryMsg struct {
	ID string
}

// LockedMsg reports an attempt to grab a locked entry.
type LockedMsg struct {
	Title string
}

type KeyMap struct {
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	PrevWeek key.Binding
	NextWeek key.Binding
	Today    key.Binding
	Cycle    key.Binding
	Add      key.Binding
	Move     key.Binding
	Complete key.Binding
	Cancel   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "earlier"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "later"),
		),
		PrevWeek: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev week"),
		),
		NextWeek: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next week"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "this week"),
		),
		Cycle: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next in cell"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add here"),
		),
		Move: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "grab/drop"),
		),
		Complete: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "complete"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel move"),
		),
	}
}

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	hourStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(6)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242")).
			Strikethrough(true)

	invalidStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("160"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			PaddingTop(1)
)

type Model struct {
	src     Source
	keys    KeyMap
	Offset  int
	Day     int
	Row     int
	Pick    int
	Grabbed *models.ScheduleEntry
	accent  lipgloss.Color
	width   int
	height  int
}

func New(src Source, accent string) Model {
	m := Model{src: src, keys: DefaultKeyMap(), accent: lipgloss.Color(accent)}
	m.resetCursor()
	return m
}

// resetCursor puts the cursor on the first visible row at or after 09:00.
func (m *Model) resetCursor() {
	m.Day = 0
	m.Row = 0
	for i, h := range m.src.Hours() {
		if h >= 9 {
			m.Row = i
			break
		}
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) SetAccent(accent string) {
	m.accent = lipgloss.Color(accent)
}

func (m Model) Keys() KeyMap {
	return m.keys
}

// Cursor returns the date and hour under the cursor.
func (m Model) Cursor() (time.Time, int) {
	dates := m.src.WeekDates(m.Offset)
	hours := m.src.Hours()
	day := min(m.Day, len(dates)-1)
	row := min(m.Row, len(hours)-1)
	return dates[day], hours[row]
}

// CellEntries lists the entries rendered in the cell under the cursor.
func (m Model) CellEntries() []models.ScheduleEntry {
	date, hour := m.Cursor()
	slot, _ := m.src.WeekIndex(m.src.WeekDates(m.Offset)[0]).Slot(date, hour)
	return slot
}

// Selected returns the picked entry of the current cell.
func (m Model) Selected() (models.ScheduleEntry, bool) {
	cell := m.CellEntries()
	if len(cell) == 0 {
		return models.ScheduleEntry{}, false
	}
	return cell[m.Pick%len(cell)], true
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	hours := len(m.src.Hours())

	switch {
	case key.Matches(keyMsg, m.keys.Left):
		m.Day = max(m.Day-1, 0)
		m.Pick = 0
	case key.Matches(keyMsg, m.keys.Right):
		m.Day = min(m.Day+1, 6)
		m.Pick = 0
	case key.Matches(keyMsg, m.keys.Up):
		m.Row = max(m.Row-1, 0)
		m.Pick = 0
	case key.Matches(keyMsg, m.keys.Down):
		m.Row = min(m.Row+1, hours-1)
		m.Pick = 0
	case key.Matches(keyMsg, m.keys.PrevWeek):
		m.Offset--
		m.Pick = 0
	case key.Matches(keyMsg, m.keys.NextWeek):
		m.Offset++
		m.Pick = 0
	case key.Matches(keyMsg, m.keys.Today):
		m.Offset = 0
		m.Pick = 0
	case key.Matches(keyMsg, m.keys.Cycle):
		m.Pick++
	case key.Matches(keyMsg, m.keys.Cancel):
		m.Grabbed = nil
	case key.Matches(keyMsg, m.keys.Add):
		date, hour := m.Cursor()
		return m, func() tea.Msg { return AddEntryMsg{Date: date, Hour: hour} }
	case key.Matches(keyMsg, m.keys.Complete):
		if e, ok := m.Selected(); ok {
			return m, func() tea.Msg { return CompleteEntryMsg{ID: e.ID} }
		}
	case key.Matches(keyMsg, m.keys.Move):
		return m.grabOrDrop()
	}
	return m, nil
}

func (m Model) grabOrDrop() (Model, tea.Cmd) {
	if m.Grabbed != nil {
		id := m.Grabbed.ID
		date, hour := m.Cursor()
		m.Grabbed = nil
		return m, func() tea.Msg { return MoveEntryMsg{ID: id, Date: date, Hour: hour} }
	}
	e, ok := m.Selected()
	if !ok {
		return m, nil
	}
	if !e.Movable() {
		title := e.Title
		return m, func() tea.Msg { return LockedMsg{Title: title} }
	}
	m.Grabbed = &e
	return m, nil
}

func (m Model) columnWidth() int {
	if m.width <= 0 {
		return 12
	}
	return max(8, (m.width-8)/7-1)
}

func (m Model) View() string {
	dates := m.src.WeekDates(m.Offset)
	idx := m.src.WeekIndex(dates[0])
	today := m.src.Today()
	colW := m.columnWidth()

	cursorStyle := lipgloss.NewStyle().
		Background(m.accent).
		Foreground(lipgloss.Color("0")).
		Width(colW).
		MaxHeight(1)
	cellStyle := lipgloss.NewStyle().Width(colW).MaxHeight(1)
	todayStyle := headerStyle.Foreground(m.accent)

	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s\n\n", utils.FormatDate(dates[0]), utils.FormatDate(dates[len(dates)-1]))

	header := []string{hourStyle.Render("")}
	for _, d := range dates {
		label := fmt.Sprintf("%s %02d/%02d", d.Weekday().String()[:3], int(d.Month()), d.Day())
		style := headerStyle
		if d.Equal(today) {
			style = todayStyle
		}
		header = append(header, style.Width(colW).Render(label))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, withGaps(header)...))
	b.WriteByte('\n')

	for row, h := range m.src.Hours() {
		cells := []string{hourStyle.Render(utils.FormatHour(h))}
		for day, d := range dates {
			slot, _ := idx.Slot(d, h)
			text := cellText(slot)
			if day == m.Day && row == m.Row {
				cells = append(cells, cursorStyle.Render(text))
				continue
			}
			cells = append(cells, cellStyle.Render(styleCell(slot, text)))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, withGaps(cells)...))
		b.WriteByte('\n')
	}

	b.WriteString(detailStyle.Render(m.detail()))
	return b.String()
}

func withGaps(cells []string) []string {
	out := make([]string, 0, len(cells)*2)
	for i, c := range cells {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, c)
	}
	return out
}

func cellText(slot []models.ScheduleEntry) string {
	switch len(slot) {
	case 0:
		return "·"
	case 1:
		return mark(slot[0]) + slot[0].Title
	default:
		return fmt.Sprintf("%s%s +%d", mark(slot[0]), slot[0].Title, len(slot)-1)
	}
}

func styleCell(slot []models.ScheduleEntry, text string) string {
	if len(slot) == 0 {
		return emptyStyle.Render(text)
	}
	switch slot[0].Status {
	case models.StatusCompleted:
		return doneStyle.Render(text)
	case models.StatusInvalid:
		return invalidStyle.Render(text)
	}
	return text
}

func mark(e models.ScheduleEntry) string {
	switch {
	case e.Status == models.StatusCompleted:
		return "✓ "
	case e.Status == models.StatusInvalid:
		return "✗ "
	case e.IsLocked:
		return "🔒"
	}
	return ""
}

// detail lists the entries of the cursor cell under the grid.
func (m Model) detail() string {
	date, hour := m.Cursor()
	var b strings.Builder
	if m.Grabbed != nil {
		fmt.Fprintf(&b, "Moving %q: pick a cell and press m (esc to cancel)\n", m.Grabbed.Title)
	}
	fmt.Fprintf(&b, "%s %s", utils.FormatDate(date), utils.FormatHour(hour))
	cell := m.CellEntries()
	if len(cell) == 0 {
		b.WriteString("  free")
		return b.String()
	}
	for i, e := range cell {
		pointer := "  "
		if i == m.Pick%len(cell) {
			pointer = "› "
		}
		end := e.EndTime
		if end == "" {
			end = "--:--"
		}
		fmt.Fprintf(&b, "\n%s%s%s  %s-%s  [%s] %s", pointer, mark(e), e.Title, e.StartTime, end, e.ProjectID, e.Priority)
	}
	return b.String()
}
