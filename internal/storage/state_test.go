package storage

import (
	"encoding/json"
	"testing"

	"github.com/julianstephens/vibequest/internal/models"
)

func TestDecodeMalformedTopLevel(t *testing.T) {
	for _, input := range []string{`{"entries": [`, `[1,2,3]`, `null`, ``} {
		if _, err := Decode([]byte(input)); err == nil {
			t.Errorf("Decode(%q) should fail", input)
		}
	}
}

func TestDecodeDefaultsForMissingFields(t *testing.T) {
	s, err := Decode([]byte(`{}`))
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if len(s.Projects) != 2 || s.Projects[0].ID != "p1" {
		t.Errorf("Projects = %+v, want seed projects", s.Projects)
	}
	if s.Persona.Level != 1 || s.Persona.NextLevelXP != 1000 || s.Persona.Inventory.EditTickets != 3 {
		t.Errorf("Persona = %+v, want defaults", s.Persona)
	}
	if len(s.ShopItems) != len(models.DefaultShopItems()) {
		t.Errorf("ShopItems has %d items, want the seed catalog", len(s.ShopItems))
	}
	if s.Entries == nil || s.Templates == nil {
		t.Error("Entries and Templates should default to empty slices")
	}
	if s.Settings.WakeTime != "08:00" || s.Settings.SleepTime != "22:00" {
		t.Errorf("Settings = %+v, want defaults", s.Settings)
	}
}

func TestDecodeMalformedFieldFallsBack(t *testing.T) {
	blob := `{
		"entries": "not a list",
		"persona": {"xp": 500, "level": 1, "unlockedAchievements": null},
		"projects": null,
		"templates": [{"id": "template-1", "name": "w", "entries": []}]
	}`
	s, err := Decode([]byte(blob))
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if len(s.Entries) != 0 {
		t.Errorf("malformed entries should fall back to empty, got %v", s.Entries)
	}
	if s.Persona.XP != 500 || s.Persona.TotalXP != 500 {
		t.Errorf("Persona xp/totalXp = %d/%d, want 500/500", s.Persona.XP, s.Persona.TotalXP)
	}
	if s.Persona.UnlockedAchievements == nil || s.Persona.Avatar != "👤" {
		t.Errorf("Persona not normalized: %+v", s.Persona)
	}
	if len(s.Projects) != 2 {
		t.Errorf("null projects should fall back to seed, got %v", s.Projects)
	}
	if len(s.Templates) != 1 {
		t.Errorf("Templates = %v", s.Templates)
	}
}

func TestDecodeSkipsOnlyBadElements(t *testing.T) {
	blob := `{
		"entries": [
			{"id": "task-1", "title": "Gym", "date": "2024-01-01", "startTime": "07:00", "estimatedDuration": 60},
			{"id": "task-2", "title": "Read", "date": "2024-01-02", "startTime": "20:00", "estimatedDuration": 45.5},
			{"id": "task-3", "title": 42},
			{"id": "task-4", "title": "Walk", "tags": ["outside"]}
		],
		"persona": {"level": 1, "xp": 91.5, "totalXp": 200},
		"projects": [{"id": "p1", "name": "Base", "color": "#6366f1"}, "junk"],
		"templates": [{"id": "template-1", "name": "w", "entries": [{"title": "x", "dayOffset": 1.2}]}]
	}`
	s, err := Decode([]byte(blob))
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}

	got := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		got = append(got, e.ID)
	}
	want := []string{"task-1", "task-2", "task-4"}
	if len(got) != len(want) {
		t.Fatalf("entry ids = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry ids = %v, want %v", got, want)
			break
		}
	}
	if s.Entries[1].EstimatedDuration != 46 {
		t.Errorf("fractional duration = %d, want 46", s.Entries[1].EstimatedDuration)
	}
	if s.Entries[0].Tags == nil {
		t.Error("missing tags should decode as an empty slice")
	}

	if s.Persona.XP != 92 || s.Persona.TotalXP != 200 {
		t.Errorf("Persona xp/totalXp = %d/%d, want 92/200", s.Persona.XP, s.Persona.TotalXP)
	}
	if len(s.Projects) != 1 || s.Projects[0].ID != "p1" {
		t.Errorf("Projects = %+v, want only p1", s.Projects)
	}
	if len(s.Templates) != 1 || len(s.Templates[0].Entries) != 1 || s.Templates[0].Entries[0].DayOffset != 1 {
		t.Errorf("Templates = %+v, want one template with dayOffset 1", s.Templates)
	}
}

func TestDecodeKeepsEmptyProjectList(t *testing.T) {
	s, err := Decode([]byte(`{"projects": []}`))
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if len(s.Projects) != 0 {
		t.Errorf("an explicitly empty project list must be kept, got %v", s.Projects)
	}
}

func TestShopMerge(t *testing.T) {
	blob := `{"shopItems": [
		{"id": "av2", "name": "old name", "cost": 1, "type": "AVATAR", "icon": "x", "owned": true},
		{"id": "tk1", "name": "t", "cost": 3000, "type": "EDIT_TICKET", "icon": "🎫", "owned": true, "count": 4},
		{"id": "th1", "type": "BOGUS", "owned": true},
		{"id": "zz9", "name": "Legacy", "cost": 10, "type": "THEME", "icon": "?", "owned": true, "value": "#000000"},
		{"id": "broken", "type": "NOPE"}
	]}`
	s, err := Decode([]byte(blob))
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}

	byID := map[string]models.ShopItem{}
	for _, item := range s.ShopItems {
		byID[item.ID] = item
	}

	av2 := byID["av2"]
	if !av2.Owned || av2.Cost != 5000 || av2.Name != "초보 마법사" {
		t.Errorf("av2 = %+v, want seed values with owned=true", av2)
	}
	if k := byID["tk1"].Kind.(models.EditTicketKind); k.Count != 4 {
		t.Errorf("tk1 count = %d, want 4", k.Count)
	}
	if !byID["th1"].Owned {
		t.Error("owned flag should survive an undecodable kind for a known id")
	}
	if _, ok := byID["zz9"]; !ok {
		t.Error("unknown persisted items should be appended")
	}
	if _, ok := byID["broken"]; ok {
		t.Error("undecodable unknown items should be dropped")
	}
	if !byID["av1"].Owned {
		t.Error("seed default ownership should be kept when not persisted")
	}
}

func TestEncodeFieldNames(t *testing.T) {
	data, err := Encode(NewState())
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Encode() produced invalid JSON: %v", err)
	}
	for _, key := range []string{"entries", "persona", "shopItems", "projects", "templates", "settings"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("encoded state is missing %q", key)
		}
	}

	var items []map[string]any
	if err := json.Unmarshal(raw["shopItems"], &items); err != nil {
		t.Fatalf("shopItems is not a flat list: %v", err)
	}
	for _, item := range items {
		if item["id"] == "th1" && item["value"] != "#f43f5e" {
			t.Errorf("theme value not flattened: %v", item)
		}
		if item["id"] == "tk1" && item["count"] != float64(0) {
			t.Errorf("ticket count not flattened: %v", item)
		}
	}
}
