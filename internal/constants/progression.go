package constants

import "time"

const (
	// Priority XP multipliers applied to estimatedDuration on completion.
	XPMultiplierLow     = 1
	XPMultiplierMedium  = 2
	XPMultiplierHigh    = 4
	XPMultiplierUnknown = XPMultiplierMedium

	// Level curve: total lifetime XP needed to reach level L is
	// ceil(LevelCurveCoef * (L-1)^LevelCurveExponent).
	LevelCurveCoef     = 1000.0
	LevelCurveExponent = 1.5

	// Persona defaults
	DefaultLevel       = 1
	DefaultNextLevelXP = 1000
	DefaultAvatar      = "👤"
	DefaultEditTickets = 3

	// Focus mode
	FocusTickInterval  = time.Second
	QuoteRotationEvery = 15 * time.Second
	DefaultFocusQuote  = "지금 이 순간에 집중하세요. 당신은 빛나고 있어요!"

	// AI
	DefaultTagModel    = "gemini-3-flash-preview"
	DefaultPlanModel   = "gemini-3-pro-preview"
	PlanFallbackText   = "플랜을 생성할 수 없습니다."
	AIScheduleEarliest = "09:00"
	AIScheduleLatest   = "21:00"
)

// FocusQuotes rotate on the focus screen.
var FocusQuotes = []string{
	"작은 성취가 모여 큰 승리가 됩니다!",
	"당신의 노력이 미래를 바꿉니다.",
	"지금 하는 일에 온 마음을 다하세요.",
	"힘들면 잠시 커피 한 잔 어때요?",
	"거의 다 왔어요! 조금만 더 힘내요!",
	"당신은 오늘 최고로 멋진 퀘스트를 수행 중입니다.",
}
