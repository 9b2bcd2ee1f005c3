package templates

import (
	"errors"
	"strings"
	"time"

	"github.com/julianstephens/vibequest/internal/constants"
	"github.com/julianstephens/vibequest/internal/models"
	"github.com/julianstephens/vibequest/internal/utils"
)

var (
	ErrNameRequired = errors.New("template name is required")
	ErrEmptyWeek    = errors.New("no entries dated inside the selected week")
)

// Engine snapshots a week of entries into a day-offset template and
// re-instantiates templates onto other weeks.
type Engine struct {
	// NewID mints entry and template ids.
	NewID func() string
}

// Save captures every entry whose literal date falls inside weekDates.
// Fixed and recurring entries anchored outside the window are not captured.
func (e *Engine) Save(name string, weekDates []time.Time, entries []models.ScheduleEntry) (models.Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Template{}, ErrNameRequired
	}
	if len(weekDates) == 0 {
		return models.Template{}, ErrEmptyWeek
	}

	inWeek := make(map[string]bool, len(weekDates))
	for _, d := range weekDates {
		inWeek[utils.FormatDate(d)] = true
	}

	var captured []models.TemplateEntry
	for _, entry := range entries {
		if !inWeek[entry.Date] {
			continue
		}
		d, err := utils.ParseDate(entry.Date)
		if err != nil {
			continue
		}
		captured = append(captured, models.TemplateEntry{
			ScheduleEntry: strip(entry),
			DayOffset:     utils.DaysBetween(weekDates[0], d),
		})
	}
	if len(captured) == 0 {
		return models.Template{}, ErrEmptyWeek
	}

	return models.Template{
		ID:      constants.TemplateIDPrefix + e.NewID(),
		Name:    name,
		Entries: captured,
	}, nil
}

// Apply instantiates t onto the week beginning weekStart. The template is
// not modified. Offsets are not range-checked.
func (e *Engine) Apply(t models.Template, weekStart time.Time) []models.ScheduleEntry {
	out := make([]models.ScheduleEntry, 0, len(t.Entries))
	for _, te := range t.Entries {
		entry := te.ScheduleEntry
		entry.ID = constants.EntryIDPrefix + e.NewID()
		entry.Date = utils.FormatDate(weekStart.AddDate(0, 0, te.DayOffset))
		entry.Status = models.StatusActive
		entry.Completed = false
		entry.IsLocked = false
		entry.XPEarned = nil
		if entry.ProjectID == "" {
			entry.ProjectID = constants.FallbackProjectID
		}
		if entry.Tags == nil {
			entry.Tags = []string{}
		} else {
			entry.Tags = append([]string(nil), entry.Tags...)
		}
		if entry.RepeatConfig.DaysOfWeek != nil {
			entry.RepeatConfig.DaysOfWeek = append([]string(nil), entry.RepeatConfig.DaysOfWeek...)
		}
		out = append(out, entry)
	}
	return out
}

func strip(entry models.ScheduleEntry) models.ScheduleEntry {
	entry.ID = ""
	entry.Date = ""
	entry.Status = ""
	entry.Completed = false
	entry.XPEarned = nil
	if entry.Tags != nil {
		entry.Tags = append([]string(nil), entry.Tags...)
	}
	return entry
}
