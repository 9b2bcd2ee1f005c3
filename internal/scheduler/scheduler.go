package scheduler

import (
	"sort"
	"time"

	"github.com/julianstephens/vibequest/internal/models"
	"github.com/julianstephens/vibequest/internal/utils"
)

type Scheduler struct{}

func New() *Scheduler {
	return &Scheduler{}
}

// EntriesForSlot returns, in input order, every entry that renders in the
// (date, hour) cell. An entry is drawn only in the row of its start hour,
// regardless of how long it runs.
func (s *Scheduler) EntriesForSlot(date time.Time, hour int, entries []models.ScheduleEntry) []models.ScheduleEntry {
	var out []models.ScheduleEntry
	for _, e := range entries {
		h, ok := e.StartHour()
		if !ok || h != hour {
			continue
		}
		if utils.OccursOn(e, date) {
			out = append(out, e)
		}
	}
	return out
}

// EntriesForDate returns every entry occurring on date, ordered by start
// time. Entries with an unparsable start time are left out.
func (s *Scheduler) EntriesForDate(date time.Time, entries []models.ScheduleEntry) []models.ScheduleEntry {
	var out []models.ScheduleEntry
	for _, e := range entries {
		if _, ok := e.StartHour(); !ok {
			continue
		}
		if utils.OccursOn(e, date) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

// WeekDates returns the seven consecutive dates starting at start. The
// timetable week begins on whatever day it is opened, not on a fixed weekday.
func (s *Scheduler) WeekDates(start time.Time) []time.Time {
	start = utils.DateOf(start)
	dates := make([]time.Time, 0, 7)
	for i := 0; i < 7; i++ {
		dates = append(dates, start.AddDate(0, 0, i))
	}
	return dates
}

// WeekStartForOffset returns the first day of the week shown offset weeks
// away from today.
func (s *Scheduler) WeekStartForOffset(today time.Time, offset int) time.Time {
	return utils.DateOf(today).AddDate(0, 0, offset*7)
}

// Hours returns the visible timetable rows, from the wake hour to the sleep
// hour inclusive. Unparsable settings fall back to 08:00-22:00.
func (s *Scheduler) Hours(settings models.Settings) []int {
	first, last := 8, 22
	if t, err := utils.ParseTime(settings.WakeTime); err == nil {
		first = t.Hour()
	}
	if t, err := utils.ParseTime(settings.SleepTime); err == nil {
		last = t.Hour()
	}
	if last < first {
		first, last = 8, 22
	}
	hours := make([]int, 0, last-first+1)
	for h := first; h <= last; h++ {
		hours = append(hours, h)
	}
	return hours
}

// CurrentAndNext finds the entry running at now and the next one starting
// later the same day. Completed and invalid entries are skipped.
func (s *Scheduler) CurrentAndNext(now time.Time, entries []models.ScheduleEntry) (current, next *models.ScheduleEntry) {
	nowMin := now.Hour()*60 + now.Minute()
	for _, e := range s.EntriesForDate(utils.DateOf(now), entries) {
		if !e.IsActive() {
			continue
		}
		start, err := utils.ParseTimeToMinutes(e.StartTime)
		if err != nil {
			continue
		}
		end := start + e.EstimatedDuration
		if t, err := utils.ParseTimeToMinutes(e.EndTime); err == nil && t > start {
			end = t
		}
		switch {
		case current == nil && start <= nowMin && nowMin < end:
			current = &e
		case start > nowMin && next == nil:
			next = &e
		}
		if current != nil && next != nil {
			return current, next
		}
	}
	return current, next
}
