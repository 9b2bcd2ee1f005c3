package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/vibequest/internal/ai"
	"github.com/julianstephens/vibequest/internal/models"
	"github.com/julianstephens/vibequest/internal/storage"
)

func TestParseFlags(t *testing.T) {
	if p, err := ParsePriority("HIGH"); err != nil || p != models.PriorityHigh {
		t.Errorf("ParsePriority(HIGH) = %q, %v", p, err)
	}
	if _, err := ParsePriority("urgent"); err == nil {
		t.Error("ParsePriority(urgent) should fail")
	}
	if d, err := ParseDifficulty(" easy "); err != nil || d != models.DifficultyEasy {
		t.Errorf("ParseDifficulty(easy) = %q, %v", d, err)
	}
	if _, err := ParseDifficulty("nightmare"); err == nil {
		t.Error("ParseDifficulty(nightmare) should fail")
	}

	tests := []struct {
		in      string
		want    models.RepeatType
		wantErr bool
	}{
		{"", models.RepeatNone, false},
		{"none", models.RepeatNone, false},
		{"Weekly", models.RepeatWeekly, false},
		{"yearly", models.RepeatYearly, false},
		{"hourly", "", true},
	}
	for _, tt := range tests {
		got, err := ParseRepeat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseRepeat(%q) = %q, %v; want %q, err %v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestFormatRepeat(t *testing.T) {
	tests := []struct {
		name  string
		entry models.ScheduleEntry
		want  string
	}{
		{"one-off", models.ScheduleEntry{Type: models.EntryTypeTask}, "once"},
		{"fixed", models.ScheduleEntry{Type: models.EntryTypeFixed, DayOfWeek: "Monday"}, "every Monday"},
		{
			"weekly",
			models.ScheduleEntry{Type: models.EntryTypeTask, IsRepeating: true, RepeatConfig: models.RepeatConfig{
				Type: models.RepeatWeekly, Interval: 1, DaysOfWeek: []string{"Tuesday", "Thursday"},
			}},
			"weekly on Tue,Thu",
		},
		{
			"daily interval",
			models.ScheduleEntry{Type: models.EntryTypeTask, IsRepeating: true, RepeatConfig: models.RepeatConfig{
				Type: models.RepeatDaily, Interval: 3,
			}},
			"daily (every 3)",
		},
		{
			"monthly",
			models.ScheduleEntry{Type: models.EntryTypeTask, IsRepeating: true, RepeatConfig: models.RepeatConfig{
				Type: models.RepeatMonthly, Interval: 1, DayOfMonth: 15,
			}},
			"monthly on day 15",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRepeat(tt.entry); got != tt.want {
				t.Errorf("FormatRepeat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		ctx := &Context{Out: &out, In: strings.NewReader(tt.input)}
		got, err := ctx.Confirm("Proceed?")
		if err != nil {
			t.Errorf("Confirm(%q) error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if !strings.Contains(out.String(), "Proceed? [y/N]") {
			t.Errorf("prompt not printed, got %q", out.String())
		}
	}
}

func TestContextApp(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewJSONStore(filepath.Join(dir, "state.json"))
	ctx := &Context{Store: store, ConfigDir: dir, Out: &bytes.Buffer{}, Assistant: ai.NewAssistant(nil)}

	if _, err := ctx.App(); err == nil {
		t.Fatal("App() on an uninitialized store should fail")
	}

	if err := store.Init(ctx.Ctx()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	first, err := ctx.App()
	if err != nil {
		t.Fatalf("App: %v", err)
	}
	second, _ := ctx.App()
	if first != second {
		t.Error("App() should return the same controller on repeated calls")
	}
	if first.Assistant().Available() {
		t.Error("assistant without a generator should be unavailable")
	}

	if got, want := ctx.Backups().BackupDir(), filepath.Join(dir, "backups"); got != want {
		t.Errorf("BackupDir() = %q, want %q", got, want)
	}
}

func TestPrintEntry(t *testing.T) {
	var out bytes.Buffer
	ctx := &Context{Out: &out}
	ctx.PrintEntry(models.ScheduleEntry{
		ID: "task-1", Title: "Gym", Date: "2024-01-01", StartTime: "07:00",
		ProjectID: "p1", Priority: models.PriorityHigh, Status: models.StatusCompleted,
	})
	line := out.String()
	for _, want := range []string{"✓", "2024-01-01", "07:00---:--", "Gym", "[p1]", "High", "once", "(task-1)"} {
		if !strings.Contains(line, want) {
			t.Errorf("PrintEntry output %q missing %q", line, want)
		}
	}
}
