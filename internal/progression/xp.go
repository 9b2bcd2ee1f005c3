package progression

import (
	"math"

	"github.com/julianstephens/vibequest/internal/constants"
	"github.com/julianstephens/vibequest/internal/models"
)

// Multiplier returns the completion XP factor for p. Unknown priorities are
// treated as Medium.
func Multiplier(p models.Priority) int {
	switch p {
	case models.PriorityLow:
		return constants.XPMultiplierLow
	case models.PriorityMedium:
		return constants.XPMultiplierMedium
	case models.PriorityHigh:
		return constants.XPMultiplierHigh
	default:
		return constants.XPMultiplierUnknown
	}
}

// AwardFor is the XP an entry yields when completed with its current
// duration and priority.
func AwardFor(e models.ScheduleEntry) int {
	if e.EstimatedDuration <= 0 {
		return 0
	}
	return e.EstimatedDuration * Multiplier(e.Priority)
}

// XPRequiredForLevel returns the lifetime XP needed to be at level.
// Level 1 needs nothing.
func XPRequiredForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	req := constants.LevelCurveCoef * math.Pow(float64(level-1), constants.LevelCurveExponent)
	return int(math.Ceil(req))
}

// LevelForTotalXP returns the highest level L with totalXP >= XPRequiredForLevel(L).
func LevelForTotalXP(totalXP int) int {
	if totalXP <= 0 {
		return 1
	}

	low, high := 1, 2
	for XPRequiredForLevel(high) <= totalXP {
		low = high
		high *= 2
		if high > 1_000_000 {
			break
		}
	}
	for low+1 < high {
		mid := low + (high-low)/2
		if XPRequiredForLevel(mid) <= totalXP {
			low = mid
		} else {
			high = mid
		}
	}
	return low
}

// SyncLevel recomputes Level and NextLevelXP from TotalXP and reports
// whether the level went up.
func SyncLevel(p *models.Persona) bool {
	before := p.Level
	p.Level = LevelForTotalXP(p.TotalXP)
	p.NextLevelXP = XPRequiredForLevel(p.Level + 1)
	return p.Level > before
}
