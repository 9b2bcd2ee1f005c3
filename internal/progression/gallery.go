package progression

import (
	"math"
	"time"

	"github.com/julianstephens/vibequest/internal/models"
)

const (
	hiddenTitle       = "???"
	hiddenDescription = "이 퀘스트의 해금 조건은 아직 베일에 싸여 있습니다."
	hiddenIcon        = "❓"
	lockedIcon        = "🔒"
)

var categoryLabels = map[models.AchievementCategory]string{
	models.CategoryCombat:  "전투 & 완수",
	models.CategoryStudy:   "집중 & 학습",
	models.CategoryLife:    "생활 & 기행",
	models.CategoryCollect: "수집",
	models.CategoryMystic:  "미스테리",
}

// GalleryItem is an achievement as it should be displayed. Locked MYSTIC
// achievements have their title, description and icon masked.
type GalleryItem struct {
	ID          string
	Title       string
	Description string
	Icon        string
	RewardXP    int
	Unlocked    bool
	Hidden      bool
}

type GalleryGroup struct {
	Category models.AchievementCategory
	Label    string
	Items    []GalleryItem
	Unlocked int
}

// Gallery groups the static achievement catalog by category, in display
// order, with unlock state taken from the persona. Empty categories are
// left out.
func Gallery(p models.Persona) []GalleryGroup {
	var groups []GalleryGroup
	for _, cat := range models.AchievementCategories {
		g := GalleryGroup{Category: cat, Label: categoryLabels[cat]}
		for _, a := range models.Achievements {
			if a.Category != cat {
				continue
			}
			item := GalleryItem{
				ID:          a.ID,
				Title:       a.Title,
				Description: a.Description,
				Icon:        a.Icon,
				RewardXP:    a.RewardXP,
				Unlocked:    p.HasAchievement(a.ID),
			}
			if item.Unlocked {
				g.Unlocked++
			} else if cat == models.CategoryMystic {
				item.Hidden = true
				item.Title = hiddenTitle
				item.Description = hiddenDescription
				item.Icon = hiddenIcon
			} else {
				item.Icon = lockedIcon
			}
			g.Items = append(g.Items, item)
		}
		if len(g.Items) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}

// DaysUntilReset counts days until the first of next month, the gallery's
// monthly countdown.
func DaysUntilReset(now time.Time) int {
	next := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
	return int(math.Ceil(next.Sub(now).Hours() / 24))
}
