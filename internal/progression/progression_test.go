package progression

import (
	"testing"
	"time"

	"github.com/julianstephens/vibequest/internal/models"
)

var now = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func TestXPBoundaries(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{0, 0},
		{1, 0},
		{2, 1000},
		{3, 2829},
		{4, 5197},
	}
	for _, tt := range tests {
		if got := XPRequiredForLevel(tt.level); got != tt.want {
			t.Errorf("XPRequiredForLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}

	if got := LevelForTotalXP(0); got != 1 {
		t.Errorf("LevelForTotalXP(0) = %d, want 1", got)
	}
	if got := LevelForTotalXP(999); got != 1 {
		t.Errorf("LevelForTotalXP(999) = %d, want 1", got)
	}
	if got := LevelForTotalXP(1000); got != 2 {
		t.Errorf("LevelForTotalXP(1000) = %d, want 2", got)
	}
	l9 := XPRequiredForLevel(9)
	if got := LevelForTotalXP(l9); got != 9 {
		t.Errorf("LevelForTotalXP(l9) = %d, want 9", got)
	}
	if got := LevelForTotalXP(l9 - 1); got != 8 {
		t.Errorf("LevelForTotalXP(l9-1) = %d, want 8", got)
	}
}

func TestCompleteAwardsOnce(t *testing.T) {
	tests := []struct {
		priority models.Priority
		mult     int
	}{
		{models.PriorityLow, 1},
		{models.PriorityMedium, 2},
		{models.PriorityHigh, 4},
		{models.Priority("Urgent"), 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.priority), func(t *testing.T) {
			p := models.DefaultPersona()
			p.XP = 50
			e := models.ScheduleEntry{ID: "e", Status: models.StatusActive, EstimatedDuration: 45, Priority: tt.priority}

			before := p.XP
			res := Complete(&p, &e, now)
			if !res.Awarded {
				t.Fatal("first Complete() should award XP")
			}
			if got, want := p.XP-before, 45*tt.mult; got != want {
				t.Errorf("xp delta = %d, want %d", got, want)
			}
			if e.Status != models.StatusCompleted || !e.Completed {
				t.Errorf("status = %s completed = %v", e.Status, e.Completed)
			}
			if e.XPEarned == nil || *e.XPEarned != 45*tt.mult {
				t.Errorf("xpEarned = %v, want %d", e.XPEarned, 45*tt.mult)
			}

			again := Complete(&p, &e, now)
			if again.Awarded {
				t.Error("second Complete() must be a no-op")
			}
			if got, want := p.XP-before, 45*tt.mult; got != want {
				t.Errorf("xp delta after second call = %d, want %d", got, want)
			}
		})
	}
}

func TestCompleteIgnoresInvalid(t *testing.T) {
	p := models.DefaultPersona()
	e := models.ScheduleEntry{Status: models.StatusActive, EstimatedDuration: 60}

	if !Invalidate(&p, &e) {
		t.Fatal("Invalidate() on an ACTIVE entry should succeed")
	}
	if Invalidate(&p, &e) {
		t.Error("Invalidate() on an INVALID entry should report false")
	}
	if res := Complete(&p, &e, now); res.Awarded || p.XP != 0 {
		t.Errorf("Complete() on INVALID entry awarded %+v, xp %d", res, p.XP)
	}
}

func TestCompleteLevelsUpFromTotalXP(t *testing.T) {
	p := models.DefaultPersona()
	e := models.ScheduleEntry{Status: models.StatusActive, EstimatedDuration: 250, Priority: models.PriorityHigh}

	res := Complete(&p, &e, now)
	if !res.LeveledUp || p.Level != 2 {
		t.Fatalf("expected level 2 after 1000 XP, got level %d (%+v)", p.Level, res)
	}
	if p.NextLevelXP != 2829 {
		t.Errorf("NextLevelXP = %d, want 2829", p.NextLevelXP)
	}
	if p.LastActivityDate != "2024-05-01" {
		t.Errorf("LastActivityDate = %q", p.LastActivityDate)
	}

	item := models.ShopItem{ID: "tk1", Cost: 1000, Kind: models.EditTicketKind{}}
	if r := Buy(&p, &item); !r.OK {
		t.Fatal("Buy() should succeed")
	}
	if p.Level != 2 || p.TotalXP != 1000 {
		t.Errorf("spending must not lower level or total, got level %d total %d", p.Level, p.TotalXP)
	}
}

func TestBuyNeverGoesNegative(t *testing.T) {
	p := models.DefaultPersona()
	p.XP = 2999
	item := models.ShopItem{ID: "tk1", Cost: 3000, Kind: models.EditTicketKind{}}
	snapshot := p

	res := Buy(&p, &item)
	if res.OK {
		t.Fatal("Buy() should fail when cost exceeds xp")
	}
	if res.Shortfall != 1 {
		t.Errorf("Shortfall = %d, want 1", res.Shortfall)
	}
	if p.XP != snapshot.XP || p.Inventory.EditTickets != snapshot.Inventory.EditTickets {
		t.Errorf("persona changed on failed buy: %+v", p)
	}
	if item.Owned || item.Kind.(models.EditTicketKind).Count != 0 {
		t.Errorf("item changed on failed buy: %+v", item)
	}
}

func TestBuyVariantEffects(t *testing.T) {
	p := models.DefaultPersona()
	p.XP = 100000

	ticket := models.ShopItem{ID: "tk1", Cost: 3000, Kind: models.EditTicketKind{}}
	Buy(&p, &ticket)
	Buy(&p, &ticket)
	if got := ticket.Kind.(models.EditTicketKind).Count; got != 2 {
		t.Errorf("ticket count = %d, want 2", got)
	}
	if p.Inventory.EditTickets != 5 {
		t.Errorf("EditTickets = %d, want 5", p.Inventory.EditTickets)
	}

	theme := models.ShopItem{ID: "th1", Cost: 25000, Kind: models.ThemeKind{Color: "#f43f5e"}}
	Buy(&p, &theme)
	if !p.HasTheme("th1") || !theme.Owned {
		t.Error("theme purchase should unlock the theme")
	}

	pack := models.ShopItem{ID: "qp1", Cost: 8000, Kind: models.QuotePackKind{Quotes: []string{"q"}}}
	Buy(&p, &pack)
	if len(p.Inventory.UnlockedQuotePacks) != 1 {
		t.Errorf("UnlockedQuotePacks = %v", p.Inventory.UnlockedQuotePacks)
	}
	if want := 100000 - 3000*2 - 25000 - 8000; p.XP != want {
		t.Errorf("XP = %d, want %d", p.XP, want)
	}

	quotes := QuotePool(p, []models.ShopItem{pack})
	if quotes[len(quotes)-1] != "q" {
		t.Errorf("QuotePool() does not include the unlocked pack: %v", quotes)
	}

	if CanBuy(theme) {
		t.Error("owned theme should not be offered again")
	}
	if !CanBuy(ticket) {
		t.Error("edit tickets stay purchasable")
	}
}

func TestEquipAvatarAndTheme(t *testing.T) {
	p := models.DefaultPersona()
	wizard := models.ShopItem{ID: "av2", Icon: "🧙", Kind: models.AvatarKind{}}

	if err := EquipAvatar(&p, wizard); err != ErrNotOwned {
		t.Errorf("EquipAvatar(unowned) error = %v, want %v", err, ErrNotOwned)
	}
	wizard.Owned = true
	if err := EquipAvatar(&p, wizard); err != nil {
		t.Fatalf("EquipAvatar() failed: %v", err)
	}
	if p.Avatar != "🧙" {
		t.Errorf("Avatar = %q, want 🧙", p.Avatar)
	}

	s := models.DefaultSettings()
	if err := SelectTheme(&s, p, &wizard); err != ErrWrongItemType {
		t.Errorf("SelectTheme(avatar) error = %v, want %v", err, ErrWrongItemType)
	}
	theme := models.ShopItem{ID: "th2", Kind: models.ThemeKind{Color: "#10b981"}, Owned: true}
	if err := SelectTheme(&s, p, &theme); err != nil || s.CurrentTheme != "th2" {
		t.Errorf("SelectTheme() = %v, current %q", err, s.CurrentTheme)
	}
	if err := SelectTheme(&s, p, nil); err != nil || s.CurrentTheme != "" {
		t.Errorf("SelectTheme(nil) should reset, got %v %q", err, s.CurrentTheme)
	}
}

func TestUseEditTicket(t *testing.T) {
	p := models.DefaultPersona()
	p.Inventory.EditTickets = 1
	e := models.ScheduleEntry{IsLocked: true}

	if err := UseEditTicket(&p, &e); err != nil {
		t.Fatalf("UseEditTicket() failed: %v", err)
	}
	if e.IsLocked || p.Inventory.EditTickets != 0 {
		t.Errorf("locked=%v tickets=%d", e.IsLocked, p.Inventory.EditTickets)
	}
	if err := UseEditTicket(&p, &e); err != ErrNotLocked {
		t.Errorf("error = %v, want %v", err, ErrNotLocked)
	}
	e.IsLocked = true
	if err := UseEditTicket(&p, &e); err != ErrNoEditTickets {
		t.Errorf("error = %v, want %v", err, ErrNoEditTickets)
	}
}

func TestGallery(t *testing.T) {
	p := models.DefaultPersona()
	p.UnlockedAchievements = []string{"c2", "m3"}

	groups := Gallery(p)
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want COMBAT, STUDY and MYSTIC", len(groups))
	}
	if groups[0].Category != models.CategoryCombat || groups[0].Unlocked != 1 {
		t.Errorf("combat group = %+v", groups[0])
	}

	mystic := groups[2]
	for _, item := range mystic.Items {
		switch item.ID {
		case "m3":
			if item.Hidden || item.Title != "디지털 금식" {
				t.Errorf("unlocked mystic achievement should be revealed: %+v", item)
			}
		default:
			if !item.Hidden || item.Title != "???" {
				t.Errorf("locked mystic achievement %s should be hidden: %+v", item.ID, item)
			}
		}
	}

	for _, item := range groups[1].Items {
		if item.Hidden {
			t.Errorf("non-mystic achievement %s must not be hidden", item.ID)
		}
	}
}

func TestDaysUntilReset(t *testing.T) {
	if got := DaysUntilReset(time.Date(2024, 2, 28, 12, 0, 0, 0, time.UTC)); got != 2 {
		t.Errorf("DaysUntilReset(Feb 28 noon) = %d, want 2", got)
	}
	if got := DaysUntilReset(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)); got != 31 {
		t.Errorf("DaysUntilReset(Dec 1) = %d, want 31", got)
	}
}
