package app

import (
	"time"

	"github.com/julianstephens/vibequest/internal/validation"
)

// Validate reports inconsistencies in the stored state, checking slot
// overlaps for the week starting at weekStart.
func (a *App) Validate(weekStart time.Time) validation.ValidationResult {
	v := validation.New()
	return v.ValidateAll(a.state.Entries, a.state.Projects, a.state.Templates, a.sched.WeekDates(weekStart))
}
