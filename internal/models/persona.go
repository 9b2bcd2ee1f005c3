package models

import (
	"slices"

	"github.com/julianstephens/vibequest/internal/constants"
)

type Expression string

const (
	ExpressionHappy   Expression = "HAPPY"
	ExpressionNeutral Expression = "NEUTRAL"
	ExpressionSad     Expression = "SAD"
	ExpressionAngry   Expression = "ANGRY"
	ExpressionFocused Expression = "FOCUSED"
)

type Inventory struct {
	EditTickets        int      `json:"editTickets"`
	UnlockedThemes     []string `json:"unlockedThemes"`
	UnlockedQuotePacks []string `json:"unlockedQuotePacks"`
}

// Persona is the singleton progression state. XP is the spendable balance;
// TotalXP only ever grows and drives the level.
type Persona struct {
	Level                int        `json:"level"`
	XP                   int        `json:"xp"`
	TotalXP              int        `json:"totalXp"`
	NextLevelXP          int        `json:"nextLevelXp"`
	FlameCount           int        `json:"flameCount"`
	Avatar               string     `json:"avatar"`
	Decorations          []string   `json:"decorations"`
	Expression           Expression `json:"expression"`
	UnlockedAchievements []string   `json:"unlockedAchievements"`
	LastActivityDate     string     `json:"lastActivityDate,omitempty"`
	Inventory            Inventory  `json:"inventory"`
}

func DefaultPersona() Persona {
	return Persona{
		Level:                constants.DefaultLevel,
		NextLevelXP:          constants.DefaultNextLevelXP,
		Avatar:               constants.DefaultAvatar,
		Decorations:          []string{},
		Expression:           ExpressionNeutral,
		UnlockedAchievements: []string{},
		Inventory: Inventory{
			EditTickets:        constants.DefaultEditTickets,
			UnlockedThemes:     []string{},
			UnlockedQuotePacks: []string{},
		},
	}
}

func (p *Persona) HasAchievement(id string) bool {
	return slices.Contains(p.UnlockedAchievements, id)
}

func (p *Persona) HasTheme(id string) bool {
	return slices.Contains(p.Inventory.UnlockedThemes, id)
}

// Settings holds user preferences stored alongside the state blob.
type Settings struct {
	WakeTime     string `json:"wakeTime"`  // first visible timetable hour, HH:MM
	SleepTime    string `json:"sleepTime"` // last visible timetable hour, HH:MM
	HasOnboarded bool   `json:"hasOnboarded"`
	CurrentTheme string `json:"currentTheme"`
}

func DefaultSettings() Settings {
	return Settings{
		WakeTime:  constants.DefaultWakeTime,
		SleepTime: constants.DefaultSleepTime,
	}
}
