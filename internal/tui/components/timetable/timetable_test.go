package timetable

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/vibequest/internal/models"
	"github.com/julianstephens/vibequest/internal/scheduler"
)

var today = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type fakeSource struct {
	entries []models.ScheduleEntry
}

func (f fakeSource) Today() time.Time { return today }

func (f fakeSource) WeekDates(offset int) []time.Time {
	s := scheduler.New()
	return s.WeekDates(s.WeekStartForOffset(today, offset))
}

func (f fakeSource) WeekIndex(start time.Time) *scheduler.WeekIndex {
	s := scheduler.New()
	return s.BuildWeekIndex(s.WeekDates(start), f.entries)
}

func (f fakeSource) Hours() []int {
	return scheduler.New().Hours(models.DefaultSettings())
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func entry(id, title, day, start string) models.ScheduleEntry {
	return models.ScheduleEntry{
		ID: id, Title: title, Type: models.EntryTypeTask, Date: day, StartTime: start,
		EstimatedDuration: 60, Priority: models.PriorityMedium, ProjectID: "p1", Status: models.StatusActive,
	}
}

func TestCursorNavigation(t *testing.T) {
	m := New(fakeSource{}, "205")
	date, hour := m.Cursor()
	if !date.Equal(today) || hour != 9 {
		t.Fatalf("initial cursor = %s %d, want %s 9", date, hour, today)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	date, hour = m.Cursor()
	if !date.Equal(today.AddDate(0, 0, 2)) || hour != 10 {
		t.Errorf("cursor = %s %d, want 2024-01-03 10", date, hour)
	}

	for range 20 {
		m, _ = m.Update(runes("k"))
	}
	if _, hour = m.Cursor(); hour != 8 {
		t.Errorf("cursor hour = %d, want clamped to 8", hour)
	}
}

func TestWeekNavigation(t *testing.T) {
	m := New(fakeSource{}, "205")
	m, _ = m.Update(runes("]"))
	m, _ = m.Update(runes("]"))
	if m.Offset != 2 {
		t.Fatalf("Offset = %d, want 2", m.Offset)
	}
	date, _ := m.Cursor()
	if !date.Equal(today.AddDate(0, 0, 14)) {
		t.Errorf("cursor date = %s, want two weeks ahead", date)
	}
	m, _ = m.Update(runes("["))
	if m.Offset != 1 {
		t.Errorf("Offset = %d, want 1", m.Offset)
	}
	m, _ = m.Update(runes("t"))
	if m.Offset != 0 {
		t.Errorf("Offset after today = %d, want 0", m.Offset)
	}
}

func TestAddAtCursor(t *testing.T) {
	m := New(fakeSource{}, "205")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(runes("a"))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(AddEntryMsg)
	if !ok {
		t.Fatalf("got %T, want AddEntryMsg", cmd())
	}
	if !msg.Date.Equal(today) || msg.Hour != 10 {
		t.Errorf("AddEntryMsg = %+v", msg)
	}
}

func TestGrabAndDrop(t *testing.T) {
	src := fakeSource{entries: []models.ScheduleEntry{entry("e1", "Read", "2024-01-01", "09:00")}}
	m := New(src, "205")

	m, cmd := m.Update(runes("m"))
	if cmd != nil {
		t.Fatal("grabbing should not emit a command")
	}
	if m.Grabbed == nil || m.Grabbed.ID != "e1" {
		t.Fatalf("Grabbed = %+v", m.Grabbed)
	}
	if !strings.Contains(m.View(), `Moving "Read"`) {
		t.Error("view should show the grabbed entry")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd = m.Update(runes("m"))
	if m.Grabbed != nil {
		t.Error("dropping should release the entry")
	}
	msg, ok := cmd().(MoveEntryMsg)
	if !ok {
		t.Fatal("expected MoveEntryMsg")
	}
	if msg.ID != "e1" || !msg.Date.Equal(today.AddDate(0, 0, 1)) || msg.Hour != 10 {
		t.Errorf("MoveEntryMsg = %+v", msg)
	}
}

func TestGrabCancel(t *testing.T) {
	src := fakeSource{entries: []models.ScheduleEntry{entry("e1", "Read", "2024-01-01", "09:00")}}
	m := New(src, "205")
	m, _ = m.Update(runes("m"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Grabbed != nil {
		t.Error("esc should cancel the move")
	}
}

func TestGrabLockedEntry(t *testing.T) {
	locked := entry("e1", "Exam", "2024-01-01", "09:00")
	locked.IsLocked = true
	m := New(fakeSource{entries: []models.ScheduleEntry{locked}}, "205")

	m, cmd := m.Update(runes("m"))
	if m.Grabbed != nil {
		t.Fatal("a locked entry must not be grabbed")
	}
	if cmd == nil {
		t.Fatal("expected LockedMsg command")
	}
	if msg, ok := cmd().(LockedMsg); !ok || msg.Title != "Exam" {
		t.Errorf("got %+v, want LockedMsg for Exam", cmd())
	}
}

func TestCycleAndComplete(t *testing.T) {
	src := fakeSource{entries: []models.ScheduleEntry{
		entry("e1", "Gym", "2024-01-01", "09:00"),
		entry("e2", "Call", "2024-01-01", "09:30"),
	}}
	m := New(src, "205")
	if e, _ := m.Selected(); e.ID != "e1" {
		t.Fatalf("Selected() = %s, want e1", e.ID)
	}
	m, _ = m.Update(runes("n"))
	if e, _ := m.Selected(); e.ID != "e2" {
		t.Fatalf("Selected() after cycle = %s, want e2", e.ID)
	}
	_, cmd := m.Update(runes("c"))
	if msg, ok := cmd().(CompleteEntryMsg); !ok || msg.ID != "e2" {
		t.Errorf("got %+v, want CompleteEntryMsg for e2", cmd())
	}

	view := m.View()
	if !strings.Contains(view, "Gym +1") {
		t.Errorf("cell should show overflow count, view:\n%s", view)
	}
	if !strings.Contains(view, "› Call") {
		t.Errorf("detail should point at the picked entry, view:\n%s", view)
	}
}

func TestEmptyCellComplete(t *testing.T) {
	m := New(fakeSource{}, "205")
	if _, cmd := m.Update(runes("c")); cmd != nil {
		t.Error("completing an empty cell should do nothing")
	}
	if !strings.Contains(m.View(), "free") {
		t.Error("empty cell detail should say free")
	}
}
