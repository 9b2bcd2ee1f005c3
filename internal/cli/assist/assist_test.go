package assist

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"google.golang.org/genai"

	"github.com/julianstephens/vibequest/internal/ai"
	"github.com/julianstephens/vibequest/internal/app"
	"github.com/julianstephens/vibequest/internal/cli"
	"github.com/julianstephens/vibequest/internal/models"
	"github.com/julianstephens/vibequest/internal/storage"
)

// scriptedGenerator answers tag requests and schedule requests differently.
type scriptedGenerator struct {
	tags     string
	schedule string
}

func (g *scriptedGenerator) Generate(_ context.Context, _, prompt string, _ *genai.Schema) (string, error) {
	if strings.Contains(prompt, "empty slots") {
		return g.schedule, nil
	}
	return g.tags, nil
}

func setupTestDB(t *testing.T, gen ai.Generator) (*cli.Context, *bytes.Buffer, *app.App) {
	tempDir := t.TempDir()
	store := storage.NewJSONStore(filepath.Join(tempDir, "state.json"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	out := &bytes.Buffer{}
	ctx := &cli.Context{Store: store, ConfigDir: tempDir, Out: out, Assistant: ai.NewAssistant(gen)}
	a, err := ctx.App()
	if err != nil {
		t.Fatalf("App: %v", err)
	}
	a.Now = func() time.Time { return time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC) }
	return ctx, out, a
}

func TestAITagsCmd(t *testing.T) {
	ctx, out, a := setupTestDB(t, &scriptedGenerator{tags: `["운동", " 건강 ", ""]`})

	if err := (&AITagsCmd{Title: "Morning run"}).Run(ctx); err != nil {
		t.Fatalf("ai tags failed: %v", err)
	}
	if !strings.Contains(out.String(), "Tags: 운동, 건강") {
		t.Errorf("unexpected output: %q", out.String())
	}

	e, err := a.AddEntry(context.Background(), models.ScheduleEntry{Title: "Run", Date: "2024-01-01", StartTime: "07:00", Tags: []string{"운동"}})
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	out.Reset()
	if err := (&AITagsCmd{Entry: e.ID}).Run(ctx); err != nil {
		t.Fatalf("ai tags --entry failed: %v", err)
	}
	if !strings.Contains(out.String(), "Merged into entry "+e.ID) {
		t.Errorf("unexpected output: %q", out.String())
	}
	got, _ := a.Entry(e.ID)
	if strings.Join(got.Tags, ",") != "운동,건강" {
		t.Errorf("tags = %v, want merged without duplicates", got.Tags)
	}
}

func TestAITagsCmd_Validate(t *testing.T) {
	if err := (&AITagsCmd{}).Validate(); err == nil {
		t.Error("neither title nor entry should fail")
	}
	if err := (&AITagsCmd{Title: "x", Entry: "y"}).Validate(); err == nil {
		t.Error("both title and entry should fail")
	}
	if err := (&AITagsCmd{Title: "x"}).Validate(); err != nil {
		t.Errorf("title alone should pass: %v", err)
	}
}

func TestAITagsCmd_Unavailable(t *testing.T) {
	ctx, out, _ := setupTestDB(t, nil)
	if err := (&AITagsCmd{Title: "Morning run"}).Run(ctx); err != nil {
		t.Fatalf("ai tags failed: %v", err)
	}
	if !strings.Contains(out.String(), "No tags suggested.") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestAIScheduleCmd(t *testing.T) {
	gen := &scriptedGenerator{schedule: `[
		{"title": "Outline", "startTime": "10:00", "date": "2024-01-02", "estimatedDuration": 90},
		{"title": "Draft", "startTime": "14:00", "date": "2024-01-03", "estimatedDuration": 60.5}
	]`}
	ctx, out, a := setupTestDB(t, gen)

	ctx.In = strings.NewReader("n\n")
	if err := (&AIScheduleCmd{Project: "p2"}).Run(ctx); err != nil {
		t.Fatalf("ai schedule failed: %v", err)
	}
	if !strings.Contains(out.String(), "Suggestions discarded.") || len(a.Entries()) != 0 {
		t.Errorf("declined suggestions should not be stored: %q", out.String())
	}

	out.Reset()
	if err := (&AIScheduleCmd{Project: "p2", Yes: true}).Run(ctx); err != nil {
		t.Fatalf("ai schedule failed: %v", err)
	}
	if !strings.Contains(out.String(), "2024-01-02 10:00  Outline") || !strings.Contains(out.String(), "Added 2 entries.") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
	entries := a.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ProjectID != "p2" || entries[0].EndTime != "11:30" || entries[1].EstimatedDuration != 60 {
		t.Errorf("unexpected entries: %+v", entries)
	}

	if err := (&AIScheduleCmd{Project: "missing", Yes: true}).Run(ctx); err == nil {
		t.Error("unknown project should fail")
	}
}

func TestAIScheduleCmd_NoSuggestions(t *testing.T) {
	ctx, out, _ := setupTestDB(t, &scriptedGenerator{schedule: "not json"})
	if err := (&AIScheduleCmd{Project: "p1", Yes: true}).Run(ctx); err != nil {
		t.Fatalf("ai schedule failed: %v", err)
	}
	if !strings.Contains(out.String(), "No schedule suggestions.") {
		t.Errorf("unexpected output: %q", out.String())
	}
}
