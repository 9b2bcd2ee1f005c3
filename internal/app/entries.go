package app

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/vibequest/internal/constants"
	"github.com/julianstephens/vibequest/internal/logger"
	"github.com/julianstephens/vibequest/internal/models"
	"github.com/julianstephens/vibequest/internal/progression"
	"github.com/julianstephens/vibequest/internal/utils"
)

// EntryPatch is a partial update. Nil fields are left unchanged.
type EntryPatch struct {
	Title             *string
	Memo              *string
	Type              *models.EntryType
	DayOfWeek         *string
	Category          *string
	Date              *string
	StartTime         *string
	EndTime           *string
	ProjectID         *string
	Priority          *models.Priority
	Difficulty        *models.Difficulty
	EstimatedDuration *int
	Tags              *[]string
	IsRepeating       *bool
	RepeatConfig      *models.RepeatConfig
}

func (p EntryPatch) apply(e *models.ScheduleEntry) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Memo != nil {
		e.Memo = *p.Memo
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.DayOfWeek != nil {
		e.DayOfWeek = *p.DayOfWeek
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.StartTime != nil {
		e.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		e.EndTime = *p.EndTime
	}
	if p.ProjectID != nil {
		e.ProjectID = *p.ProjectID
	}
	if p.Priority != nil {
		e.Priority = *p.Priority
	}
	if p.Difficulty != nil {
		e.Difficulty = *p.Difficulty
	}
	if p.EstimatedDuration != nil {
		e.EstimatedDuration = *p.EstimatedDuration
	}
	if p.Tags != nil {
		e.Tags = []string{}
		e.AddTags(*p.Tags...)
	}
	if p.IsRepeating != nil {
		e.IsRepeating = *p.IsRepeating
	}
	if p.RepeatConfig != nil {
		e.RepeatConfig = *p.RepeatConfig
	}
}

func (a *App) findEntry(id string) (int, error) {
	i := slices.IndexFunc(a.state.Entries, func(e models.ScheduleEntry) bool { return e.ID == id })
	if i < 0 {
		return -1, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	return i, nil
}

// Entry returns a copy of the entry with the given id.
func (a *App) Entry(id string) (models.ScheduleEntry, error) {
	i, err := a.findEntry(id)
	if err != nil {
		return models.ScheduleEntry{}, err
	}
	return a.state.Entries[i], nil
}

// withDefaults fills the fields the creation form would have prefilled.
func withDefaults(e models.ScheduleEntry) models.ScheduleEntry {
	if e.Type == "" {
		e.Type = models.EntryTypeTask
	}
	if e.ProjectID == "" {
		e.ProjectID = constants.FallbackProjectID
	}
	if e.Priority == "" {
		e.Priority = models.PriorityMedium
	}
	if e.Difficulty == "" {
		e.Difficulty = models.DifficultyNormal
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	if e.RepeatConfig.Type == "" {
		e.RepeatConfig.Type = models.RepeatNone
	}
	if e.RepeatConfig.Interval < 1 {
		e.RepeatConfig.Interval = 1
	}
	if e.Type == models.EntryTypeFixed && e.DayOfWeek == "" {
		if d, err := utils.ParseDate(e.Date); err == nil {
			e.DayOfWeek = utils.WeekdayName(d)
		}
	}
	return e
}

// AddEntry stores a new ACTIVE, unlocked entry with a fresh id. An entry
// that fails validation is rejected and nothing is stored.
func (a *App) AddEntry(ctx context.Context, e models.ScheduleEntry) (models.ScheduleEntry, error) {
	e = withDefaults(e)
	e.ID = constants.EntryIDPrefix + a.NewID()
	e.Status = models.StatusActive
	e.Completed = false
	e.IsLocked = false
	e.XPEarned = nil
	e.Title = strings.TrimSpace(e.Title)

	if err := e.Validate(); err != nil {
		return models.ScheduleEntry{}, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	a.state.Entries = append(a.state.Entries, e)
	if err := a.persist(ctx); err != nil {
		return models.ScheduleEntry{}, err
	}
	logger.Debug("Entry added", "id", e.ID, "date", e.Date, "start", e.StartTime)
	return e, nil
}

// QuickAdd returns a prefilled draft for an empty timetable cell. The draft
// is not stored; pass it to AddEntry once the title is filled in. End times
// past midnight wrap around.
func (a *App) QuickAdd(date time.Time, hour, durationMin int) models.ScheduleEntry {
	endHour := (hour + durationMin/60) % 24
	return withDefaults(models.ScheduleEntry{
		Type:              models.EntryTypeTask,
		Date:              utils.FormatDate(date),
		StartTime:         utils.FormatHour(hour),
		EndTime:           utils.FormatHour(endHour),
		EstimatedDuration: durationMin,
		Status:            models.StatusActive,
	})
}

// UpdateEntry merges patch into the entry. Identity and lifecycle fields are
// not patchable. The entry is left unchanged when the result is invalid.
func (a *App) UpdateEntry(ctx context.Context, id string, patch EntryPatch) (models.ScheduleEntry, error) {
	i, err := a.findEntry(id)
	if err != nil {
		return models.ScheduleEntry{}, err
	}

	updated := a.state.Entries[i]
	updated.Tags = slices.Clone(updated.Tags)
	patch.apply(&updated)
	if updated.Tags == nil {
		updated.Tags = []string{}
	}
	updated.Title = strings.TrimSpace(updated.Title)
	if err := updated.Validate(); err != nil {
		return models.ScheduleEntry{}, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	a.state.Entries[i] = updated
	return updated, a.persist(ctx)
}

// DeleteEntry removes an entry. Locked entries can only be deleted once they
// have been marked invalid.
func (a *App) DeleteEntry(ctx context.Context, id string) error {
	i, err := a.findEntry(id)
	if err != nil {
		return err
	}
	if !a.state.Entries[i].Deletable() {
		return fmt.Errorf("%w: mark it invalid or unlock it before deleting", ErrEntryLocked)
	}
	a.state.Entries = slices.Delete(a.state.Entries, i, i+1)
	return a.persist(ctx)
}

// CompleteEntry awards XP for an ACTIVE entry. Completing an entry twice is
// a no-op the second time; the result then has Awarded false.
func (a *App) CompleteEntry(ctx context.Context, id string) (progression.CompleteResult, error) {
	i, err := a.findEntry(id)
	if err != nil {
		return progression.CompleteResult{}, err
	}
	res := progression.Complete(&a.state.Persona, &a.state.Entries[i], a.Now())
	if !res.Awarded {
		return res, nil
	}
	if res.LeveledUp {
		logger.Info("Level up", "level", res.Level)
	}
	return res, a.persist(ctx)
}

// MarkInvalid gives up on an ACTIVE entry. It reports false when the entry
// had already been completed or invalidated.
func (a *App) MarkInvalid(ctx context.Context, id string) (bool, error) {
	i, err := a.findEntry(id)
	if err != nil {
		return false, err
	}
	if !progression.Invalidate(&a.state.Persona, &a.state.Entries[i]) {
		return false, nil
	}
	return true, a.persist(ctx)
}

// MoveEntry drops an entry onto a timetable cell: it becomes a one-hour
// slot starting at hour on date. Locked entries cannot be moved.
func (a *App) MoveEntry(ctx context.Context, id string, date time.Time, hour int) (models.ScheduleEntry, error) {
	if hour < 0 || hour > 23 {
		return models.ScheduleEntry{}, fmt.Errorf("%w: hour %d out of range", ErrInvalidEntry, hour)
	}
	i, err := a.findEntry(id)
	if err != nil {
		return models.ScheduleEntry{}, err
	}
	e := &a.state.Entries[i]
	if !e.Movable() {
		return models.ScheduleEntry{}, ErrEntryLocked
	}

	e.Date = utils.FormatDate(date)
	e.StartTime = utils.FormatHour(hour)
	e.EndTime = utils.FormatHour((hour + 1) % 24)
	if e.Type == models.EntryTypeFixed {
		e.DayOfWeek = utils.WeekdayName(date)
	}
	return *e, a.persist(ctx)
}

// SetLocked locks or unlocks an entry without spending anything.
func (a *App) SetLocked(ctx context.Context, id string, locked bool) error {
	i, err := a.findEntry(id)
	if err != nil {
		return err
	}
	if a.state.Entries[i].IsLocked == locked {
		return nil
	}
	a.state.Entries[i].IsLocked = locked
	return a.persist(ctx)
}

// UnlockWithTicket spends an edit ticket to unlock a locked entry.
func (a *App) UnlockWithTicket(ctx context.Context, id string) error {
	i, err := a.findEntry(id)
	if err != nil {
		return err
	}
	if err := progression.UseEditTicket(&a.state.Persona, &a.state.Entries[i]); err != nil {
		return err
	}
	return a.persist(ctx)
}

// RecentByProject returns the last few entries of a project in insertion
// order, used to prefill the creation form.
func (a *App) RecentByProject(projectID string) []models.ScheduleEntry {
	var out []models.ScheduleEntry
	for _, e := range a.state.Entries {
		if e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	if n := len(out); n > constants.RecentEntriesPerProject {
		out = out[n-constants.RecentEntriesPerProject:]
	}
	return out
}

// EntriesForDate lists the entries occurring on date ordered by start time.
func (a *App) EntriesForDate(date time.Time) []models.ScheduleEntry {
	return a.sched.EntriesForDate(date, a.state.Entries)
}

// CurrentAndNext returns the running and upcoming entries for focus mode.
func (a *App) CurrentAndNext() (current, next *models.ScheduleEntry) {
	return a.sched.CurrentAndNext(a.Now(), a.state.Entries)
}
