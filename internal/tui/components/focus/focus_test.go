package focus

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/vibequest/internal/models"
)

type fakeSource struct {
	current, next *models.ScheduleEntry
	calls         int
}

func (f *fakeSource) CurrentAndNext() (current, next *models.ScheduleEntry) {
	f.calls++
	return f.current, f.next
}

func (f *fakeSource) FocusQuote(elapsed time.Duration) string {
	return fmt.Sprintf("quote %d", int(elapsed/(15*time.Second)))
}

func TestTickRotatesQuote(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	src := &fakeSource{current: &models.ScheduleEntry{Title: "Deep work", StartTime: "09:30", EndTime: "11:00"}}
	m := New(src, func() time.Time { return start }, "205")

	if cmd := m.Start(); cmd == nil {
		t.Fatal("Start() should schedule a tick")
	}
	if m.Quote() != "quote 0" {
		t.Errorf("Quote() = %q, want quote 0", m.Quote())
	}

	m, cmd := m.Update(TickMsg{ID: m.id, Time: start.Add(16 * time.Second)})
	if cmd == nil {
		t.Error("a live tick should schedule the next one")
	}
	if m.Quote() != "quote 1" {
		t.Errorf("Quote() after 16s = %q, want quote 1", m.Quote())
	}
	if m.Current() == nil || m.Current().Title != "Deep work" {
		t.Errorf("Current() = %+v", m.Current())
	}
}

func TestStaleTickIgnored(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	src := &fakeSource{}
	m := New(src, func() time.Time { return start }, "205")
	m.Start()
	old := m.id
	m.Stop()

	calls := src.calls
	m, cmd := m.Update(TickMsg{ID: old, Time: start.Add(time.Minute)})
	if cmd != nil {
		t.Error("a stale tick must not reschedule")
	}
	if src.calls != calls {
		t.Error("a stale tick must not refresh")
	}
}

func TestViewShowsRemainingTime(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 15, 30, 0, time.UTC)
	src := &fakeSource{
		current: &models.ScheduleEntry{Title: "Deep work", StartTime: "09:30", EndTime: "11:00"},
		next:    &models.ScheduleEntry{Title: "Lunch", StartTime: "12:00"},
	}
	m := New(src, func() time.Time { return now }, "205")
	m.Start()

	view := m.View()
	for _, want := range []string{"10:15:30", "Deep work", "44:30 left", "Lunch at 12:00", "quote 0"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestViewIdle(t *testing.T) {
	now := time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)
	m := New(&fakeSource{}, func() time.Time { return now }, "205")
	m.Start()
	if !strings.Contains(m.View(), "Nothing scheduled") {
		t.Error("idle view should say nothing is scheduled")
	}
}

func TestRemainingUsesDuration(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 10, 0, 0, time.UTC)
	e := models.ScheduleEntry{StartTime: "09:00", EstimatedDuration: 30}
	if got := remaining(e, now); got != 20*time.Minute {
		t.Errorf("remaining() = %s, want 20m", got)
	}
	if got := remaining(e, now.Add(time.Hour)); got != 0 {
		t.Errorf("remaining() past the end = %s, want 0", got)
	}
}
