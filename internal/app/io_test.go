package app

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/vibequest/internal/backup"
	"github.com/julianstephens/vibequest/internal/models"
	"github.com/julianstephens/vibequest/internal/storage"
)

func TestCSVRoundTrip(t *testing.T) {
	a, _ := newTestApp(t, Options{})
	ctx := context.Background()

	src := []models.ScheduleEntry{
		addTask(t, a, "Study", "2024-01-02", "09:00", 60, models.PriorityHigh),
		addTask(t, a, "Walk", "2024-01-03", "18:30", 25, models.PriorityLow),
	}
	if _, err := a.UpdateEntry(ctx, src[0].ID, EntryPatch{EndTime: ptr("10:00")}); err != nil {
		t.Fatal(err)
	}
	src[0].EndTime = "10:00"

	var buf bytes.Buffer
	if err := a.ExportCSV(&buf); err != nil {
		t.Fatalf("ExportCSV() failed: %v", err)
	}

	b, _ := newTestApp(t, Options{})
	n, err := b.ImportCSV(ctx, strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("ImportCSV() failed: %v", err)
	}
	if n != 2 {
		t.Fatalf("ImportCSV() = %d rows, want 2", n)
	}
	for i, got := range b.Entries() {
		want := src[i]
		if got.Title != want.Title || got.Date != want.Date || got.StartTime != want.StartTime ||
			got.EndTime != want.EndTime || got.EstimatedDuration != want.EstimatedDuration || got.Priority != want.Priority {
			t.Errorf("row %d = %+v, want %+v", i, got, want)
		}
		if got.Status != models.StatusActive || got.ProjectID != "p1" {
			t.Errorf("row %d lifecycle = %s project = %s", i, got.Status, got.ProjectID)
		}
		if wantID := fmt.Sprintf("task-id-%d", i+1); got.ID != wantID {
			t.Errorf("row %d id = %q, want %q", i, got.ID, wantID)
		}
	}
}

func TestImportCSVTakesBackup(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := storage.NewJSONStore(filepath.Join(dir, "state.json"))
	if err := store.Init(ctx); err != nil {
		t.Fatal(err)
	}
	mgr := backup.NewManager(store, filepath.Join(dir, "backups"))
	mgr.Now = func() time.Time { return testNow }

	a, err := New(ctx, store, Options{Backups: mgr})
	if err != nil {
		t.Fatal(err)
	}

	if n, err := a.ImportCSV(ctx, strings.NewReader("Title,Date,StartTime,EndTime,Duration,Priority\n")); err != nil || n != 0 {
		t.Fatalf("ImportCSV(header only) = %d, %v", n, err)
	}
	if list, _ := mgr.ListBackups(); len(list) != 0 {
		t.Errorf("backup taken for an empty import")
	}

	csv := "Title,Date,StartTime,EndTime,Duration,Priority\nRun,2024-01-02,07:00,08:00,60,Medium\n"
	if _, err := a.ImportCSV(ctx, strings.NewReader(csv)); err != nil {
		t.Fatal(err)
	}
	list, err := mgr.ListBackups()
	if err != nil || len(list) != 1 {
		t.Fatalf("ListBackups() = %v, %v", list, err)
	}
	data, err := storage.NewJSONStore(list[0].Path).Load(ctx)
	if err != nil {
		t.Fatalf("backup unreadable: %v", err)
	}
	if len(data.Entries) != 0 {
		t.Errorf("backup should hold the pre-import state, has %d entries", len(data.Entries))
	}
}
