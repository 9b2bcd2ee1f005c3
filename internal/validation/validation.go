package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/vibequest/internal/constants"
	"github.com/julianstephens/vibequest/internal/models"
	"github.com/julianstephens/vibequest/internal/scheduler"
	"github.com/julianstephens/vibequest/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictOverlappingSlot        ConflictType = "overlapping_slot"
	ConflictInvalidTime            ConflictType = "invalid_time"
	ConflictInvalidDate            ConflictType = "invalid_date"
	ConflictUnknownProject         ConflictType = "unknown_project"
	ConflictTemplateOffsetOutRange ConflictType = "template_offset_out_of_range"
	ConflictDuplicateID            ConflictType = "duplicate_id"
	ConflictInvalidPriority        ConflictType = "invalid_priority"
)

// Conflict represents a detected problem in the stored schedule
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD (if applicable)
	Hour        int      // timetable row (overlapping_slot only)
	Items       []string // entry or template titles involved
	EntryIDs    []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Count returns the number of conflicts of one type.
func (vr *ValidationResult) Count(t ConflictType) int {
	n := 0
	for _, c := range vr.Conflicts {
		if c.Type == t {
			n++
		}
	}
	return n
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- [%s] %s\n", c.Type, c.Description)
	}
	return b.String()
}

// Validator checks entries, projects and templates for inconsistencies the
// editing surfaces do not prevent.
type Validator struct {
	sched *scheduler.Scheduler
}

func New() *Validator {
	return &Validator{sched: scheduler.New()}
}

// ValidateEntries checks entry fields and references. Entry ids must be
// unique and every projectId must name a known project.
func (v *Validator) ValidateEntries(entries []models.ScheduleEntry, projects []models.Project) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	known := make(map[string]bool, len(projects))
	for _, p := range projects {
		known[p.ID] = true
	}

	seen := make(map[string][]string)
	var order []string
	for _, e := range entries {
		if _, ok := seen[e.ID]; !ok {
			order = append(order, e.ID)
		}
		seen[e.ID] = append(seen[e.ID], e.Title)
	}
	for _, id := range order {
		if titles := seen[id]; len(titles) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateID,
				Description: fmt.Sprintf("Entry id %q is used %d times", id, len(titles)),
				Items:       titles,
				EntryIDs:    []string{id},
			})
		}
	}

	for _, e := range entries {
		if e.Type != models.EntryTypeFixed && !utils.ValidateDateFormat(e.Date) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Entry %q has invalid date: %q", e.Title, e.Date),
				Date:        e.Date,
				Items:       []string{e.Title},
				EntryIDs:    []string{e.ID},
			})
		}

		if !utils.ValidateTimeFormat(e.StartTime) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTime,
				Description: fmt.Sprintf("Entry %q has invalid start time: %q", e.Title, e.StartTime),
				Items:       []string{e.Title},
				EntryIDs:    []string{e.ID},
			})
		}
		if e.EndTime != "" && !utils.ValidateTimeFormat(e.EndTime) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTime,
				Description: fmt.Sprintf("Entry %q has invalid end time: %q", e.Title, e.EndTime),
				Items:       []string{e.Title},
				EntryIDs:    []string{e.ID},
			})
		}

		if e.Priority != "" && !e.Priority.IsValid() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidPriority,
				Description: fmt.Sprintf("Entry %q has unknown priority %q (scored as Medium)", e.Title, e.Priority),
				Items:       []string{e.Title},
				EntryIDs:    []string{e.ID},
			})
		}

		if e.ProjectID != "" && !known[e.ProjectID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownProject,
				Description: fmt.Sprintf("Entry %q references missing project %q", e.Title, e.ProjectID),
				Items:       []string{e.Title},
				EntryIDs:    []string{e.ID},
			})
		}
	}

	return result
}

// ValidateWeek reports every timetable cell in the window that more than one
// entry renders into. Invalidated entries are ignored.
func (v *Validator) ValidateWeek(dates []time.Time, entries []models.ScheduleEntry) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	var live []models.ScheduleEntry
	for _, e := range entries {
		if e.Status != models.StatusInvalid {
			live = append(live, e)
		}
	}

	idx := v.sched.BuildWeekIndex(dates, live)
	for _, d := range dates {
		for h := 0; h < 24; h++ {
			slot, _ := idx.Slot(d, h)
			if len(slot) < 2 {
				continue
			}
			c := Conflict{
				Type: ConflictOverlappingSlot,
				Date: utils.FormatDate(d),
				Hour: h,
			}
			for _, e := range slot {
				c.Items = append(c.Items, e.Title)
				c.EntryIDs = append(c.EntryIDs, e.ID)
			}
			c.Description = fmt.Sprintf("%s %s has %d entries: %s",
				c.Date, utils.FormatHour(h), len(slot), strings.Join(c.Items, ", "))
			result.Conflicts = append(result.Conflicts, c)
		}
	}
	return result
}

// ValidateTemplates reports template entries whose dayOffset would land
// outside the week they are applied to.
func (v *Validator) ValidateTemplates(templates []models.Template) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	for _, t := range templates {
		for _, e := range t.Entries {
			if e.DayOffset >= 0 && e.DayOffset < constants.DaysPerWeek {
				continue
			}
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: ConflictTemplateOffsetOutRange,
				Description: fmt.Sprintf("Template %q entry %q has day offset %d (expected 0-%d)",
					t.Name, e.Title, e.DayOffset, constants.DaysPerWeek-1),
				Items: []string{t.Name, e.Title},
			})
		}
	}
	return result
}

// ValidateAll runs every check against a whole state and the given week.
// Conflicts are grouped by type in a stable order.
func (v *Validator) ValidateAll(entries []models.ScheduleEntry, projects []models.Project, templates []models.Template, week []time.Time) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	for _, r := range []ValidationResult{
		v.ValidateEntries(entries, projects),
		v.ValidateWeek(week, entries),
		v.ValidateTemplates(templates),
	} {
		result.Conflicts = append(result.Conflicts, r.Conflicts...)
	}
	sort.SliceStable(result.Conflicts, func(i, j int) bool {
		return typeRank[result.Conflicts[i].Type] < typeRank[result.Conflicts[j].Type]
	})
	return result
}

var typeRank = map[ConflictType]int{
	ConflictDuplicateID:            0,
	ConflictInvalidDate:            1,
	ConflictInvalidTime:            2,
	ConflictInvalidPriority:        3,
	ConflictUnknownProject:         4,
	ConflictOverlappingSlot:        5,
	ConflictTemplateOffsetOutRange: 6,
}
