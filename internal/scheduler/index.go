package scheduler

import (
	"time"

	"github.com/julianstephens/vibequest/internal/models"
	"github.com/julianstephens/vibequest/internal/utils"
)

// WeekIndex is a precomputed date -> hour -> entries lookup for one week
// window. It answers exactly what EntriesForSlot would for dates inside the
// window and must be rebuilt whenever the entries change.
type WeekIndex struct {
	slots map[string]map[int][]models.ScheduleEntry
}

// BuildWeekIndex resolves every entry against every date of the window once.
func (s *Scheduler) BuildWeekIndex(dates []time.Time, entries []models.ScheduleEntry) *WeekIndex {
	idx := &WeekIndex{
		slots: make(map[string]map[int][]models.ScheduleEntry, len(dates)),
	}
	for _, d := range dates {
		byHour := make(map[int][]models.ScheduleEntry)
		for _, e := range entries {
			h, ok := e.StartHour()
			if !ok {
				continue
			}
			if utils.OccursOn(e, d) {
				byHour[h] = append(byHour[h], e)
			}
		}
		idx.slots[utils.FormatDate(d)] = byHour
	}
	return idx
}

// Slot returns the entries for a cell. ok is false when date is outside the
// window, in which case the caller must resolve the slot directly.
func (w *WeekIndex) Slot(date time.Time, hour int) (entries []models.ScheduleEntry, ok bool) {
	byHour, ok := w.slots[utils.FormatDate(date)]
	if !ok {
		return nil, false
	}
	return byHour[hour], true
}
