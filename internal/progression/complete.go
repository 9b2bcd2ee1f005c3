package progression

import (
	"time"

	"github.com/julianstephens/vibequest/internal/models"
	"github.com/julianstephens/vibequest/internal/utils"
)

type CompleteResult struct {
	Awarded   bool
	XP        int
	LeveledUp bool
	Level     int
}

// Complete awards XP for an ACTIVE entry and moves it to COMPLETED. Entries
// in any other status are left alone and nothing is awarded.
func Complete(p *models.Persona, e *models.ScheduleEntry, now time.Time) CompleteResult {
	if !e.IsActive() {
		return CompleteResult{Level: p.Level}
	}

	xp := AwardFor(*e)
	p.XP += xp
	p.TotalXP += xp
	p.LastActivityDate = utils.FormatDate(now)
	p.Expression = models.ExpressionHappy

	e.Status = models.StatusCompleted
	e.Completed = true
	e.XPEarned = &xp

	leveled := SyncLevel(p)
	return CompleteResult{Awarded: true, XP: xp, LeveledUp: leveled, Level: p.Level}
}

// Invalidate moves an ACTIVE entry to INVALID. It reports false when the
// entry had already reached a terminal status.
func Invalidate(p *models.Persona, e *models.ScheduleEntry) bool {
	if !e.IsActive() {
		return false
	}
	e.Status = models.StatusInvalid
	e.Completed = false
	p.Expression = models.ExpressionSad
	return true
}

// FocusExpression is the face shown on the focus screen.
func FocusExpression(working bool) models.Expression {
	if working {
		return models.ExpressionFocused
	}
	return models.ExpressionHappy
}
