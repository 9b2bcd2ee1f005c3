package schedule

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/vibequest/internal/ai"
	"github.com/julianstephens/vibequest/internal/app"
	"github.com/julianstephens/vibequest/internal/cli"
	"github.com/julianstephens/vibequest/internal/models"
	"github.com/julianstephens/vibequest/internal/storage"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer, *app.App) {
	tempDir := t.TempDir()
	store := storage.NewSQLiteStore(filepath.Join(tempDir, "test.db"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	out := &bytes.Buffer{}
	ctx := &cli.Context{Store: store, ConfigDir: tempDir, Out: out, Assistant: ai.NewAssistant(nil)}
	a, err := ctx.App()
	if err != nil {
		t.Fatalf("failed to load app: %v", err)
	}
	// Monday 2024-01-01
	a.Now = func() time.Time { return time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local) }
	return ctx, out, a
}

func add(t *testing.T, a *app.App, title, date, start string) models.ScheduleEntry {
	t.Helper()
	e, err := a.AddEntry(context.Background(), models.ScheduleEntry{
		Title: title, Date: date, StartTime: start, EndTime: start, EstimatedDuration: 30,
	})
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	return e
}

func TestWeekCmd(t *testing.T) {
	ctx, out, a := setupTestDB(t)
	add(t, a, "Gym", "2024-01-01", "09:00")
	done := add(t, a, "Report", "2024-01-03", "14:30")
	if _, err := a.CompleteEntry(context.Background(), done.ID); err != nil {
		t.Fatalf("CompleteEntry: %v", err)
	}
	add(t, a, "Next week", "2024-01-08", "09:00")

	if err := (&WeekCmd{}).Run(ctx); err != nil {
		t.Fatalf("week failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"Week of 2024-01-01 - 2024-01-07",
		"Mon 2024-01-01  (today)",
		"09:00  Gym",
		"14:00  ✓ Report",
		"(free)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("week output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Next week") {
		t.Errorf("entry from the following week leaked into the output:\n%s", got)
	}

	out.Reset()
	if err := (&WeekCmd{Offset: 1}).Run(ctx); err != nil {
		t.Fatalf("week failed: %v", err)
	}
	if !strings.Contains(out.String(), "Next week") {
		t.Errorf("offset 1 should show the following week:\n%s", out.String())
	}
}

func TestWeekCmd_Empty(t *testing.T) {
	ctx, out, _ := setupTestDB(t)
	if err := (&WeekCmd{Empty: true}).Run(ctx); err != nil {
		t.Fatalf("week failed: %v", err)
	}
	if !strings.Contains(out.String(), "08:00  ·") || !strings.Contains(out.String(), "22:00  ·") {
		t.Errorf("expected empty rows from wake to sleep:\n%s", out.String())
	}
	if strings.Contains(out.String(), "(free)") {
		t.Errorf("--empty should print rows instead of (free)")
	}
}

func TestSlotCmd(t *testing.T) {
	ctx, out, a := setupTestDB(t)
	add(t, a, "Standup", "2024-01-02", "10:15")

	if err := (&SlotCmd{Date: "2024-01-02", Hour: 10}).Run(ctx); err != nil {
		t.Fatalf("slot failed: %v", err)
	}
	if !strings.Contains(out.String(), "Standup") {
		t.Errorf("slot output missing entry: %q", out.String())
	}

	out.Reset()
	if err := (&SlotCmd{Date: "2024-01-02", Hour: 11}).Run(ctx); err != nil {
		t.Fatalf("slot failed: %v", err)
	}
	if !strings.Contains(out.String(), "Nothing scheduled") {
		t.Errorf("expected an empty slot, got %q", out.String())
	}

	if err := (&SlotCmd{Date: "2024-01-02", Hour: 24}).Run(ctx); err == nil {
		t.Error("hour 24 should be rejected")
	}
}

func TestTemplateSaveApplyDelete(t *testing.T) {
	ctx, out, a := setupTestDB(t)
	add(t, a, "Gym", "2024-01-01", "07:00")
	add(t, a, "Review", "2024-01-05", "16:00")

	if err := (&TemplateSaveCmd{Name: "Routine"}).Run(ctx); err != nil {
		t.Fatalf("template save failed: %v", err)
	}
	if !strings.Contains(out.String(), `Saved template "Routine" with 2 entries`) {
		t.Errorf("unexpected save output: %q", out.String())
	}
	tmpl := a.Templates()[0]

	out.Reset()
	if err := (&TemplateApplyCmd{ID: tmpl.ID, Offset: 1}).Run(ctx); err != nil {
		t.Fatalf("template apply failed: %v", err)
	}
	if !strings.Contains(out.String(), "week of 2024-01-08: 2 entries added") {
		t.Errorf("unexpected apply output: %q", out.String())
	}
	if got := len(a.EntriesForDate(time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC))); got != 1 {
		t.Errorf("expected the Friday entry on 2024-01-12, got %d entries", got)
	}

	out.Reset()
	if err := (&TemplateListCmd{}).Run(ctx); err != nil {
		t.Fatalf("template list failed: %v", err)
	}
	if !strings.Contains(out.String(), "Routine") {
		t.Errorf("template list missing template: %q", out.String())
	}

	if err := (&TemplateDeleteCmd{ID: tmpl.ID}).Run(ctx); err != nil {
		t.Fatalf("template delete failed: %v", err)
	}
	out.Reset()
	if err := (&TemplateListCmd{}).Run(ctx); err != nil {
		t.Fatalf("template list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No templates saved yet.") {
		t.Errorf("expected no templates, got %q", out.String())
	}
}

func TestTemplateSave_EmptyWeek(t *testing.T) {
	ctx, _, a := setupTestDB(t)
	if err := (&TemplateSaveCmd{Name: "Nothing"}).Run(ctx); err == nil {
		t.Fatal("saving an empty week should fail")
	}
	if len(a.Templates()) != 0 {
		t.Error("no template should be stored")
	}
}
