package app

import (
	"context"
	"slices"
	"time"

	"github.com/julianstephens/vibequest/internal/ai"
	"github.com/julianstephens/vibequest/internal/constants"
	"github.com/julianstephens/vibequest/internal/logger"
	"github.com/julianstephens/vibequest/internal/models"
	"github.com/julianstephens/vibequest/internal/utils"
)

// SuggestTags asks the assistant for tags for a title. It never fails; an
// unavailable assistant yields no tags.
func (a *App) SuggestTags(ctx context.Context, title string) []string {
	return a.ai.SuggestTags(ctx, title)
}

// TagEntry merges suggested tags into an existing entry.
func (a *App) TagEntry(ctx context.Context, id string) ([]string, error) {
	i, err := a.findEntry(id)
	if err != nil {
		return nil, err
	}
	tags := a.ai.SuggestTags(ctx, a.state.Entries[i].Title)
	if len(tags) == 0 {
		return tags, nil
	}
	a.state.Entries[i].AddTags(tags...)
	return tags, a.persist(ctx)
}

// GenerateProjectPlan returns markdown for a project, or the fallback text.
func (a *App) GenerateProjectPlan(ctx context.Context, projectID string) (string, error) {
	p, err := a.Project(projectID)
	if err != nil {
		return "", err
	}
	return a.ai.GenerateProjectPlan(ctx, p), nil
}

// AutoSchedule asks for free slots in the week starting at weekStart.
func (a *App) AutoSchedule(ctx context.Context, projectID string, weekStart time.Time) ([]ai.Suggestion, error) {
	p, err := a.Project(projectID)
	if err != nil {
		return nil, err
	}
	return a.ai.SuggestSchedule(ctx, a.BusySlots(weekStart), p), nil
}

// BusySlots lists one record per occurrence in the week starting at
// weekStart, dated on the day it occurs. The result shares no memory with
// the state, so it may be handed to a background AI request.
func (a *App) BusySlots(weekStart time.Time) []models.ScheduleEntry {
	var busy []models.ScheduleEntry
	for _, d := range a.sched.WeekDates(weekStart) {
		for _, e := range a.sched.EntriesForDate(d, a.state.Entries) {
			e.Date = utils.FormatDate(d)
			e.DayOfWeek = utils.WeekdayName(d)
			e.Tags = slices.Clone(e.Tags)
			e.RepeatConfig.DaysOfWeek = slices.Clone(e.RepeatConfig.DaysOfWeek)
			busy = append(busy, e)
		}
	}
	return busy
}

// AcceptSuggestions turns suggestions into entries of the project.
// Suggestions with an unusable date or time are skipped.
func (a *App) AcceptSuggestions(ctx context.Context, projectID string, suggestions []ai.Suggestion) ([]models.ScheduleEntry, error) {
	if _, err := a.Project(projectID); err != nil {
		return nil, err
	}

	var created []models.ScheduleEntry
	for _, s := range suggestions {
		start, err := utils.ParseTimeToMinutes(s.StartTime)
		if err != nil || !utils.ValidateDateFormat(s.Date) {
			logger.Warn("Skipping unusable suggestion", "title", s.Title, "date", s.Date, "start", s.StartTime)
			continue
		}
		duration := max(s.EstimatedDuration, 0)
		end := min(start+duration, 24*60-1)

		e := withDefaults(models.ScheduleEntry{
			ID:                constants.EntryIDPrefix + a.NewID(),
			Title:             s.Title,
			Type:              models.EntryTypeTask,
			Date:              s.Date,
			StartTime:         utils.FormatMinutes(start),
			EndTime:           utils.FormatMinutes(end),
			ProjectID:         projectID,
			EstimatedDuration: duration,
			Status:            models.StatusActive,
		})
		if err := e.Validate(); err != nil {
			logger.Warn("Skipping invalid suggestion", "title", s.Title, "error", err)
			continue
		}
		created = append(created, e)
	}
	if len(created) == 0 {
		return created, nil
	}
	a.state.Entries = append(a.state.Entries, created...)
	return created, a.persist(ctx)
}

// FocusQuote picks the quote shown after elapsed time in focus mode.
func (a *App) FocusQuote(elapsed time.Duration) string {
	pool := a.QuotePool()
	if len(pool) == 0 {
		return constants.DefaultFocusQuote
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return pool[int(elapsed/constants.QuoteRotationEvery)%len(pool)]
}
