package utils

import (
	"reflect"
	"testing"
	"time"
)

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Weekday
		wantErr bool
	}{
		{"Monday", time.Monday, false},
		{"mon", time.Monday, false},
		{" SUNDAY ", time.Sunday, false},
		{"6", time.Saturday, false},
		{"7", 0, true},
		{"funday", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeekday(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWeekday(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseWeekday(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseWeekdayNames(t *testing.T) {
	got, err := ParseWeekdayNames("tue, thursday,")
	if err != nil {
		t.Fatalf("ParseWeekdayNames() error = %v", err)
	}
	want := []string{"Tuesday", "Thursday"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseWeekdayNames() = %v, want %v", got, want)
	}
}

func TestDaysBetween(t *testing.T) {
	a, _ := ParseDate("2024-03-09")
	b, _ := ParseDate("2024-03-12")
	if got := DaysBetween(a, b); got != 3 {
		t.Errorf("DaysBetween() = %d, want 3", got)
	}
	if got := DaysBetween(b, a); got != -3 {
		t.Errorf("DaysBetween() reversed = %d, want -3", got)
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := FormatHour(7); got != "07:00" {
		t.Errorf("FormatHour(7) = %s", got)
	}
	if got := FormatMinutes(9*60 + 5); got != "09:05" {
		t.Errorf("FormatMinutes() = %s", got)
	}
	mins, err := ParseTimeToMinutes("13:45")
	if err != nil || mins != 13*60+45 {
		t.Errorf("ParseTimeToMinutes() = %d, %v", mins, err)
	}
}
