package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/vibequest/internal/ai"
	"github.com/julianstephens/vibequest/internal/backup"
	"github.com/julianstephens/vibequest/internal/logger"
	"github.com/julianstephens/vibequest/internal/models"
	"github.com/julianstephens/vibequest/internal/progression"
	"github.com/julianstephens/vibequest/internal/scheduler"
	"github.com/julianstephens/vibequest/internal/storage"
	"github.com/julianstephens/vibequest/internal/templates"
	"github.com/julianstephens/vibequest/internal/utils"
)

var (
	ErrEntryNotFound    = errors.New("entry not found")
	ErrProjectNotFound  = errors.New("project not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrItemNotFound     = errors.New("shop item not found")
	ErrEntryLocked      = errors.New("entry is locked")
	ErrInvalidEntry     = errors.New("invalid entry")
	ErrInvalidProject   = errors.New("invalid project")
	ErrInsufficientXP   = errors.New("not enough XP")
)

// Options carries the optional collaborators of an App.
type Options struct {
	// Assistant serves the AI operations. Nil disables them; they then
	// return their fallback values.
	Assistant *ai.Assistant
	// Backups, when set, takes a snapshot before bulk imports.
	Backups *backup.Manager
}

// App is the single owner of the application state. Every mutation goes
// through one of its methods and is persisted before the method returns.
type App struct {
	store   storage.Provider
	state   *storage.State
	sched   *scheduler.Scheduler
	tmpl    *templates.Engine
	ai      *ai.Assistant
	backups *backup.Manager

	// Now and NewID are the clock and id source.
	Now   func() time.Time
	NewID func() string

	index      *scheduler.WeekIndex
	indexStart string
}

// New loads the state from store. The persona's level is re-derived from its
// lifetime XP so blobs written by older versions come up consistent.
func New(ctx context.Context, store storage.Provider, opts Options) (*App, error) {
	state, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if progression.SyncLevel(&state.Persona) {
		logger.Debug("Persona level re-derived on load", "level", state.Persona.Level, "totalXp", state.Persona.TotalXP)
	}

	assistant := opts.Assistant
	if assistant == nil {
		assistant = ai.NewAssistant(nil)
	}

	a := &App{
		store:   store,
		state:   state,
		sched:   scheduler.New(),
		ai:      assistant,
		backups: opts.Backups,
		Now:     time.Now,
		NewID:   uuid.NewString,
	}
	// Templates mint ids through the same source as every other entry.
	a.tmpl = &templates.Engine{NewID: func() string { return a.NewID() }}
	return a, nil
}

// persist writes the whole state and drops derived caches.
func (a *App) persist(ctx context.Context) error {
	a.invalidate()
	if err := a.store.Save(ctx, a.state); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

func (a *App) invalidate() {
	a.index = nil
	a.indexStart = ""
}

// autoBackup snapshots the current state. Failures are logged, never
// returned.
func (a *App) autoBackup(ctx context.Context, reason string) {
	if a.backups == nil {
		return
	}
	if _, err := a.backups.CreateBackup(ctx); err != nil {
		logger.Warn("Automatic backup failed", "reason", reason, "error", err)
	}
}

func (a *App) Store() storage.Provider {
	return a.store
}

func (a *App) Scheduler() *scheduler.Scheduler {
	return a.sched
}

func (a *App) Assistant() *ai.Assistant {
	return a.ai
}

func (a *App) Backups() *backup.Manager {
	return a.backups
}

// Entries returns the stored entries. Callers must not modify the slice.
func (a *App) Entries() []models.ScheduleEntry {
	return a.state.Entries
}

func (a *App) Projects() []models.Project {
	return a.state.Projects
}

func (a *App) Templates() []models.Template {
	return a.state.Templates
}

func (a *App) ShopItems() []models.ShopItem {
	return a.state.ShopItems
}

func (a *App) Persona() models.Persona {
	return a.state.Persona
}

func (a *App) Settings() models.Settings {
	return a.state.Settings
}

// Today is the current calendar date.
func (a *App) Today() time.Time {
	return utils.DateOf(a.Now())
}

// WeekDates returns the visible week offset weeks away from today.
func (a *App) WeekDates(offset int) []time.Time {
	return a.sched.WeekDates(a.sched.WeekStartForOffset(a.Today(), offset))
}

// WeekIndex returns the slot index for the week starting at start, reusing
// the cached one until the next mutation.
func (a *App) WeekIndex(start time.Time) *scheduler.WeekIndex {
	key := utils.FormatDate(start)
	if a.index != nil && a.indexStart == key {
		return a.index
	}
	a.index = a.sched.BuildWeekIndex(a.sched.WeekDates(start), a.state.Entries)
	a.indexStart = key
	return a.index
}

// EntriesForSlot answers from the cached week index when it covers date and
// resolves directly otherwise.
func (a *App) EntriesForSlot(date time.Time, hour int) []models.ScheduleEntry {
	if a.index != nil {
		if entries, ok := a.index.Slot(date, hour); ok {
			return entries
		}
	}
	return a.sched.EntriesForSlot(date, hour, a.state.Entries)
}

// UpdateSettings applies fn to a copy of the settings and persists the
// result. Wake and sleep times must be HH:MM.
func (a *App) UpdateSettings(ctx context.Context, fn func(*models.Settings)) error {
	next := a.state.Settings
	fn(&next)
	for _, t := range []string{next.WakeTime, next.SleepTime} {
		if !utils.ValidateTimeFormat(t) {
			return fmt.Errorf("invalid time %q (expected HH:MM)", t)
		}
	}
	a.state.Settings = next
	return a.persist(ctx)
}

// Hours returns the visible timetable rows.
func (a *App) Hours() []int {
	return a.sched.Hours(a.state.Settings)
}
