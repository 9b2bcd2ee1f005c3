package models

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

type EntryType string

const (
	EntryTypeFixed EntryType = "FIXED"
	EntryTypeTask  EntryType = "TASK"
)

type EntryStatus string

const (
	StatusActive    EntryStatus = "ACTIVE"
	StatusCompleted EntryStatus = "COMPLETED"
	StatusInvalid   EntryStatus = "INVALID"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyNormal Difficulty = "Normal"
	DifficultyHard   Difficulty = "Hard"
)

type RepeatType string

const (
	RepeatNone    RepeatType = "NONE"
	RepeatDaily   RepeatType = "DAILY"
	RepeatWeekly  RepeatType = "WEEKLY"
	RepeatMonthly RepeatType = "MONTHLY"
	RepeatYearly  RepeatType = "YEARLY"
)

type RepeatConfig struct {
	Type       RepeatType `json:"type"`
	Interval   int        `json:"interval"`
	DaysOfWeek []string   `json:"daysOfWeek,omitempty"` // full English weekday names
	DayOfMonth int        `json:"dayOfMonth,omitempty"`
}

// ScheduleEntry is a single schedule item. Its Date is the anchor occurrence;
// repeated occurrences are derived, never stored.
type ScheduleEntry struct {
	ID                string       `json:"id"`
	Title             string       `json:"title"`
	Memo              string       `json:"memo"`
	Type              EntryType    `json:"type"`
	DayOfWeek         string       `json:"dayOfWeek,omitempty"` // only meaningful for FIXED
	Category          string       `json:"category,omitempty"`
	Date              string       `json:"date"`      // YYYY-MM-DD
	StartTime         string       `json:"startTime"` // HH:MM
	EndTime           string       `json:"endTime"`   // HH:MM
	ProjectID         string       `json:"projectId"`
	Completed         bool         `json:"completed"`
	Status            EntryStatus  `json:"status"`
	Priority          Priority     `json:"priority"`
	Difficulty        Difficulty   `json:"difficulty"`
	EstimatedDuration int          `json:"estimatedDuration"` // minutes
	Tags              []string     `json:"tags"`
	IsLocked          bool         `json:"isLocked"`
	IsRepeating       bool         `json:"isRepeating"`
	RepeatConfig      RepeatConfig `json:"repeatConfig"`
	XPEarned          *int         `json:"xpEarned,omitempty"`
	IsPenaltyDeducted bool         `json:"isPenaltyDeducted,omitempty"`
	CounterValue      int          `json:"counterValue,omitempty"`
}

// StartHour returns the hour component of StartTime. ok is false when the
// hour cannot be parsed.
func (e ScheduleEntry) StartHour() (int, bool) {
	head, _, _ := strings.Cut(e.StartTime, ":")
	h, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0, false
	}
	return h, true
}

// IsActive reports whether the entry can still be completed or invalidated.
func (e ScheduleEntry) IsActive() bool {
	return e.Status == StatusActive
}

// Movable reports whether the entry may be dragged to another slot.
func (e ScheduleEntry) Movable() bool {
	return !e.IsLocked
}

// Deletable reports whether the entry may be removed. Locked entries can
// only be removed once they have been marked invalid.
func (e ScheduleEntry) Deletable() bool {
	return !e.IsLocked || e.Status == StatusInvalid
}

// AddTags merges tags into the entry's tag set, keeping first-seen order.
func (e *ScheduleEntry) AddTags(tags ...string) {
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || slices.Contains(e.Tags, t) {
			continue
		}
		e.Tags = append(e.Tags, t)
	}
}

func (e *ScheduleEntry) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("entry title cannot be empty")
	}
	if e.Type == EntryTypeFixed {
		if _, ok := weekdayNames[e.DayOfWeek]; !ok {
			return fmt.Errorf("fixed entry needs a full weekday name, got %q", e.DayOfWeek)
		}
	} else if _, err := time.Parse("2006-01-02", e.Date); err != nil {
		return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
	}
	if _, err := time.Parse("15:04", e.StartTime); err != nil {
		return fmt.Errorf("invalid start time format (expected HH:MM): %w", err)
	}
	if e.EndTime != "" {
		if _, err := time.Parse("15:04", e.EndTime); err != nil {
			return fmt.Errorf("invalid end time format (expected HH:MM): %w", err)
		}
	}
	if e.EstimatedDuration < 0 {
		return fmt.Errorf("estimated duration cannot be negative")
	}
	if e.IsRepeating {
		switch e.RepeatConfig.Type {
		case RepeatWeekly:
			if len(e.RepeatConfig.DaysOfWeek) == 0 {
				return fmt.Errorf("weekdays must be specified for weekly repetition")
			}
			for _, d := range e.RepeatConfig.DaysOfWeek {
				if _, ok := weekdayNames[d]; !ok {
					return fmt.Errorf("invalid weekday %q", d)
				}
			}
		case RepeatMonthly:
			if e.RepeatConfig.DayOfMonth < 0 || e.RepeatConfig.DayOfMonth > 31 {
				return fmt.Errorf("day of month must be between 1 and 31")
			}
		}
	}
	return nil
}

var weekdayNames = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}
