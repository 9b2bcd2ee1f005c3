package utils

import (
	"testing"
	"time"

	"github.com/julianstephens/vibequest/internal/models"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

func TestOccursOn_OneOff(t *testing.T) {
	entry := models.ScheduleEntry{ID: "one", Type: models.EntryTypeTask, Date: "2024-01-02"}

	if !OccursOn(entry, mustDate(t, "2024-01-02")) {
		t.Error("Expected one-off entry on its anchor date")
	}
	if OccursOn(entry, mustDate(t, "2024-01-03")) {
		t.Error("Expected one-off entry not to occur on another date")
	}
}

func TestOccursOn_FixedWeekday(t *testing.T) {
	entry := models.ScheduleEntry{ID: "fixed", Type: models.EntryTypeFixed, DayOfWeek: "Monday", Date: "2024-06-05"}

	// Mondays far in the past and the future, no date bound.
	for _, d := range []string{"1999-03-01", "2024-01-01", "2024-06-03", "2031-12-29"} {
		if !OccursOn(entry, mustDate(t, d)) {
			t.Errorf("Expected fixed Monday entry on %s", d)
		}
	}
	for _, d := range []string{"2024-01-02", "2024-06-04", "2031-12-28"} {
		if OccursOn(entry, mustDate(t, d)) {
			t.Errorf("Expected fixed Monday entry not on %s", d)
		}
	}
}

func TestOccursOn_WeeklyRepeat(t *testing.T) {
	entry := models.ScheduleEntry{
		ID:          "weekly",
		Type:        models.EntryTypeTask,
		Date:        "2024-01-02", // Tuesday
		IsRepeating: true,
		RepeatConfig: models.RepeatConfig{
			Type:       models.RepeatWeekly,
			Interval:   1,
			DaysOfWeek: []string{"Tuesday", "Thursday"},
		},
	}

	tests := []struct {
		date string
		want bool
	}{
		{"2024-01-02", true},
		{"2024-01-04", true},
		{"2024-01-09", true},
		{"2024-01-11", true},
		{"2024-12-31", true},
		{"2024-01-03", false}, // Wednesday
		{"2024-01-10", false}, // Wednesday
		{"2023-12-28", false}, // Thursday before the anchor
		{"2023-12-26", false}, // Tuesday before the anchor
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			if got := OccursOn(entry, mustDate(t, tt.date)); got != tt.want {
				t.Errorf("OccursOn(%s) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestOccursOn_WeeklyIgnoresInterval(t *testing.T) {
	entry := models.ScheduleEntry{
		ID:          "weekly-interval",
		Date:        "2024-01-02", // Tuesday
		IsRepeating: true,
		RepeatConfig: models.RepeatConfig{
			Type:       models.RepeatWeekly,
			Interval:   2,
			DaysOfWeek: []string{"Tuesday", "Thursday"},
		},
	}

	for _, d := range []string{"2024-01-04", "2024-01-09", "2024-01-11", "2024-01-16"} {
		if !OccursOn(entry, mustDate(t, d)) {
			t.Errorf("Expected weekly entry on %s regardless of interval", d)
		}
	}
	if OccursOn(entry, mustDate(t, "2024-01-10")) {
		t.Error("Expected weekly entry not on a Wednesday")
	}
}

func TestOccursOn_Daily(t *testing.T) {
	tests := []struct {
		name     string
		interval int
		date     string
		want     bool
	}{
		{"every day, same day", 1, "2024-03-10", true},
		{"every day, later", 1, "2024-03-17", true},
		{"zero interval behaves as every day", 0, "2024-03-11", true},
		{"before anchor", 1, "2024-03-09", false},
		{"every third day hit", 3, "2024-03-16", true},
		{"every third day miss", 3, "2024-03-15", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := models.ScheduleEntry{
				Date:         "2024-03-10",
				IsRepeating:  true,
				RepeatConfig: models.RepeatConfig{Type: models.RepeatDaily, Interval: tt.interval},
			}
			if got := OccursOn(entry, mustDate(t, tt.date)); got != tt.want {
				t.Errorf("OccursOn(%s) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestOccursOn_RepeatFlagRequired(t *testing.T) {
	entry := models.ScheduleEntry{
		Date:         "2024-03-10",
		IsRepeating:  false,
		RepeatConfig: models.RepeatConfig{Type: models.RepeatDaily, Interval: 1},
	}
	if OccursOn(entry, mustDate(t, "2024-03-11")) {
		t.Error("Expected repeat config to be ignored when isRepeating is false")
	}
}

func TestOccursOn_Monthly(t *testing.T) {
	entry := models.ScheduleEntry{
		Date:         "2024-01-31",
		IsRepeating:  true,
		RepeatConfig: models.RepeatConfig{Type: models.RepeatMonthly, Interval: 1},
	}

	if !OccursOn(entry, mustDate(t, "2024-03-31")) {
		t.Error("Expected monthly entry on March 31st")
	}
	if OccursOn(entry, mustDate(t, "2024-04-30")) {
		t.Error("Expected April to be skipped for a 31st anchor")
	}

	entry.RepeatConfig.DayOfMonth = 15
	entry.RepeatConfig.Interval = 2
	if !OccursOn(entry, mustDate(t, "2024-03-15")) {
		t.Error("Expected bimonthly entry on March 15th")
	}
	if OccursOn(entry, mustDate(t, "2024-02-15")) {
		t.Error("Expected bimonthly entry not on February 15th")
	}
}

func TestOccursOn_Yearly(t *testing.T) {
	entry := models.ScheduleEntry{
		Date:         "2024-02-29",
		IsRepeating:  true,
		RepeatConfig: models.RepeatConfig{Type: models.RepeatYearly, Interval: 1},
	}

	if !OccursOn(entry, mustDate(t, "2028-02-29")) {
		t.Error("Expected leap-day entry in 2028")
	}
	if OccursOn(entry, mustDate(t, "2025-02-28")) {
		t.Error("Expected no shift to Feb 28th in a non-leap year")
	}
}

func TestOccursOn_NoneType(t *testing.T) {
	entry := models.ScheduleEntry{
		Date:         "2024-02-01",
		IsRepeating:  true,
		RepeatConfig: models.RepeatConfig{Type: models.RepeatNone},
	}
	if OccursOn(entry, mustDate(t, "2024-02-02")) {
		t.Error("Expected NONE repeat type to match no other date")
	}
}
