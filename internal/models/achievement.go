package models

type AchievementCategory string

const (
	CategoryCombat  AchievementCategory = "COMBAT"
	CategoryStudy   AchievementCategory = "STUDY"
	CategoryLife    AchievementCategory = "LIFE"
	CategoryCollect AchievementCategory = "COLLECT"
	CategoryMystic  AchievementCategory = "MYSTIC"
)

// AchievementCategories lists categories in gallery order.
var AchievementCategories = []AchievementCategory{
	CategoryCombat, CategoryStudy, CategoryLife, CategoryCollect, CategoryMystic,
}

type Achievement struct {
	ID          string
	Category    AchievementCategory
	Title       string
	Description string
	Icon        string
	RewardXP    int
}

// Achievements is the static catalog. Unlock state lives in
// Persona.UnlockedAchievements.
var Achievements = []Achievement{
	{ID: "c1", Category: CategoryCombat, Title: "슬라임 학살자", Description: "쉬움 난이도 퀘스트 5개 완수", Icon: "🟢", RewardXP: 100},
	{ID: "c2", Category: CategoryCombat, Title: "드래곤 슬레이어", Description: "어려움 난이도 퀘스트 완수", Icon: "🐲", RewardXP: 500},
	{ID: "c3", Category: CategoryCombat, Title: "전설의 용사", Description: "어려움 난이도 퀘스트 10개 완수", Icon: "⚔️", RewardXP: 2000},
	{ID: "c4", Category: CategoryCombat, Title: "콤보 마스터", Description: "하루에 퀘스트 10개 완수", Icon: "🔥", RewardXP: 1000},
	{ID: "c5", Category: CategoryCombat, Title: "무혈 입성", Description: "미루지 않고 예정된 모든 퀘스트 완료", Icon: "🛡️", RewardXP: 800},
	{ID: "c6", Category: CategoryCombat, Title: "그림자 추적자", Description: "오전 8시 이전 퀘스트 3개 연속 완료", Icon: "👤", RewardXP: 400},
	{ID: "c7", Category: CategoryCombat, Title: "파괴의 전차", Description: "하루에 High 난이도 3개 완료", Icon: "🚜", RewardXP: 1200},
	{ID: "c8", Category: CategoryCombat, Title: "평화주의자", Description: "전투(운동) 없이 공부만 5시간 수행", Icon: "🕊️", RewardXP: 500},
	{ID: "c9", Category: CategoryCombat, Title: "검은 기사", Description: "밤 12시 이후 퀘스트 완료", Icon: "🌒", RewardXP: 300},

	{ID: "s1", Category: CategoryStudy, Title: "미라클 모닝의 화신", Description: "오전 7시 이전 퀘스트 시작", Icon: "☀️", RewardXP: 300},
	{ID: "s2", Category: CategoryStudy, Title: "올빼미족의 역습", Description: "오후 11시 이후 퀘스트 완수", Icon: "🦉", RewardXP: 300},
	{ID: "s3", Category: CategoryStudy, Title: "부동석", Description: "집중 모드 2시간 유지", Icon: "🗿", RewardXP: 1200},
	{ID: "s4", Category: CategoryStudy, Title: "지식의 탐구자", Description: "자기계발 프로젝트 퀘스트 20개 완수", Icon: "📖", RewardXP: 1500},

	{ID: "m1", Category: CategoryMystic, Title: "행운의 주인공", Description: "아바타를 정지 상태에서 50번 클릭", Icon: "🍀", RewardXP: 777},
	{ID: "m2", Category: CategoryMystic, Title: "시간의 지배자", Description: "새벽 4시 44분에 퀘스트 완료", Icon: "⏳", RewardXP: 444},
	{ID: "m3", Category: CategoryMystic, Title: "디지털 금식", Description: "집중 모드 중 한 번도 마우스를 이탈하지 않음", Icon: "📵", RewardXP: 2000},
	{ID: "m4", Category: CategoryMystic, Title: "완벽주의자의 비애", Description: "이미 완료된 퀘스트의 메모를 5회 이상 수정", Icon: "💎", RewardXP: 100},
	{ID: "m5", Category: CategoryMystic, Title: "이스터 에그 발견", Description: "상점 아이콘을 1분간 주시", Icon: "🥚", RewardXP: 500},
	{ID: "m6", Category: CategoryMystic, Title: "프로젝트 중독", Description: "동시에 5개 이상의 프로젝트 생성", Icon: "📂", RewardXP: 1000},
}
