package utils

import (
	"slices"
	"time"

	"github.com/julianstephens/vibequest/internal/models"
)

// OccursOn reports whether entry occupies the given calendar date, ignoring
// the time of day. An entry occurs on a date when it is anchored there, when
// it is a FIXED entry for that weekday, or when its repeat rule produces the
// date on or after the anchor.
func OccursOn(entry models.ScheduleEntry, date time.Time) bool {
	dateStr := FormatDate(date)
	if entry.Date == dateStr {
		return true
	}
	if entry.Type == models.EntryTypeFixed && entry.DayOfWeek == WeekdayName(date) {
		return true
	}
	if !entry.IsRepeating {
		return false
	}
	anchor, err := ParseDate(entry.Date)
	if err != nil {
		return false
	}
	// Recurrence never reaches back before the anchor.
	if date.Before(anchor) {
		return false
	}
	return repeatMatches(entry.RepeatConfig, anchor, date)
}

func repeatMatches(rc models.RepeatConfig, anchor, date time.Time) bool {
	interval := rc.Interval
	if interval < 1 {
		interval = 1
	}

	switch rc.Type {
	case models.RepeatDaily:
		return DaysBetween(anchor, date)%interval == 0
	case models.RepeatWeekly:
		// Weekly rules are driven by daysOfWeek alone; interval does not apply.
		return slices.Contains(rc.DaysOfWeek, WeekdayName(date))
	case models.RepeatMonthly:
		day := rc.DayOfMonth
		if day == 0 {
			day = anchor.Day()
		}
		// Months without that day (e.g. the 31st in April) are skipped.
		if date.Day() != day {
			return false
		}
		months := (date.Year()-anchor.Year())*12 + int(date.Month()) - int(anchor.Month())
		return months%interval == 0
	case models.RepeatYearly:
		// Feb 29 anchors only recur in leap years.
		if date.Month() != anchor.Month() || date.Day() != anchor.Day() {
			return false
		}
		return (date.Year()-anchor.Year())%interval == 0
	default:
		return false
	}
}

