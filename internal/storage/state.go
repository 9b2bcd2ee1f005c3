package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/julianstephens/vibequest/internal/logger"
	"github.com/julianstephens/vibequest/internal/models"
)

// State is the whole application aggregate. It is always read and written
// as one JSON document.
type State struct {
	Entries   []models.ScheduleEntry `json:"entries"`
	Persona   models.Persona         `json:"persona"`
	ShopItems []models.ShopItem      `json:"shopItems"`
	Projects  []models.Project       `json:"projects"`
	Templates []models.Template      `json:"templates"`
	Settings  models.Settings        `json:"settings"`
}

// NewState returns the first-run state: seed projects, the seed shop
// catalog and a default persona.
func NewState() *State {
	return &State{
		Entries:   []models.ScheduleEntry{},
		Persona:   models.DefaultPersona(),
		ShopItems: models.DefaultShopItems(),
		Projects:  models.DefaultProjects(),
		Templates: []models.Template{},
		Settings:  models.DefaultSettings(),
	}
}

func Encode(s *State) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize state: %w", err)
	}
	return data, nil
}

// Decode parses a stored blob. A malformed top-level document is an error;
// a missing, null or malformed field falls back to its default instead.
// List fields are decoded element by element, so one bad entry is dropped
// on its own, and fractional numbers are rounded to the nearest integer.
func Decode(data []byte) (*State, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse state: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("failed to parse state: document is null")
	}

	s := NewState()

	if msg, ok := present(raw, "entries"); ok {
		if entries, ok := decodeList[models.ScheduleEntry]("entries", msg); ok {
			s.Entries = entries
		}
	}
	for i := range s.Entries {
		if s.Entries[i].Tags == nil {
			s.Entries[i].Tags = []string{}
		}
	}

	if msg, ok := present(raw, "persona"); ok {
		p, err := decodeValue(msg, models.DefaultPersona())
		if err != nil {
			logger.Warn("Ignoring malformed state field", "field", "persona", "error", err)
		} else {
			s.Persona = normalizePersona(p)
		}
	}

	if msg, ok := present(raw, "projects"); ok {
		if projects, ok := decodeList[models.Project]("projects", msg); ok {
			s.Projects = projects
		}
	}

	if msg, ok := present(raw, "templates"); ok {
		if templates, ok := decodeList[models.Template]("templates", msg); ok {
			s.Templates = templates
		}
	}

	if msg, ok := present(raw, "settings"); ok {
		settings := models.DefaultSettings()
		if decodeField("settings", msg, &settings) {
			if settings.WakeTime == "" {
				settings.WakeTime = models.DefaultSettings().WakeTime
			}
			if settings.SleepTime == "" {
				settings.SleepTime = models.DefaultSettings().SleepTime
			}
			s.Settings = settings
		}
	}

	if msg, ok := present(raw, "shopItems"); ok {
		var items []json.RawMessage
		if decodeField("shopItems", msg, &items) {
			s.ShopItems = mergeShop(models.DefaultShopItems(), items)
		}
	}

	return s, nil
}

func present(raw map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	msg, ok := raw[key]
	if !ok || string(msg) == "null" {
		return nil, false
	}
	return msg, true
}

func decodeField(name string, msg json.RawMessage, v any) bool {
	if err := json.Unmarshal(msg, v); err != nil {
		logger.Warn("Ignoring malformed state field", "field", name, "error", err)
		return false
	}
	return true
}

// decodeList decodes a JSON array one element at a time. Elements that do
// not decode are logged and skipped; ok is false only when msg is not an array.
func decodeList[T any](name string, msg json.RawMessage) (list []T, ok bool) {
	var items []json.RawMessage
	if !decodeField(name, msg, &items) {
		return nil, false
	}
	list = make([]T, 0, len(items))
	for i, item := range items {
		var zero T
		v, err := decodeValue(item, zero)
		if err != nil {
			logger.Warn("Skipping malformed state element", "field", name, "index", i, "error", err)
			continue
		}
		list = append(list, v)
	}
	return list, true
}

// decodeValue unmarshals msg over base. On a type mismatch it retries once
// with every fractional number rounded, since stored durations and XP may
// have been written as plain JSON numbers.
func decodeValue[T any](msg json.RawMessage, base T) (T, error) {
	v := base
	err := json.Unmarshal(msg, &v)
	if err == nil {
		return v, nil
	}
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return base, err
	}

	dec := json.NewDecoder(bytes.NewReader(msg))
	dec.UseNumber()
	var generic any
	if dec.Decode(&generic) != nil {
		return base, err
	}
	rounded, mErr := json.Marshal(roundNumbers(generic))
	if mErr != nil {
		return base, err
	}
	v = base
	if json.Unmarshal(rounded, &v) != nil {
		return base, err
	}
	return v, nil
}

func roundNumbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = roundNumbers(e)
		}
	case []any:
		for i, e := range t {
			t[i] = roundNumbers(e)
		}
	case json.Number:
		if _, err := t.Int64(); err == nil {
			return t
		}
		if f, err := t.Float64(); err == nil {
			return json.Number(strconv.FormatFloat(math.Round(f), 'f', -1, 64))
		}
	}
	return v
}

func normalizePersona(p models.Persona) models.Persona {
	if p.Decorations == nil {
		p.Decorations = []string{}
	}
	if p.UnlockedAchievements == nil {
		p.UnlockedAchievements = []string{}
	}
	if p.Inventory.UnlockedThemes == nil {
		p.Inventory.UnlockedThemes = []string{}
	}
	if p.Inventory.UnlockedQuotePacks == nil {
		p.Inventory.UnlockedQuotePacks = []string{}
	}
	if p.Avatar == "" {
		p.Avatar = models.DefaultPersona().Avatar
	}
	if p.Expression == "" {
		p.Expression = models.ExpressionNeutral
	}
	// Older blobs carry no lifetime total; the balance is a lower bound.
	if p.TotalXP < p.XP {
		p.TotalXP = p.XP
	}
	return p
}

// mergeShop overlays persisted ownership onto the seed catalog by id.
// Seed names, prices and payloads always win; only owned and the ticket
// count come from storage. Persisted items unknown to the seed list are
// kept at the end when they decode.
func mergeShop(seed []models.ShopItem, persisted []json.RawMessage) []models.ShopItem {
	index := make(map[string]int, len(seed))
	for i, item := range seed {
		index[item.ID] = i
	}

	for _, msg := range persisted {
		var item models.ShopItem
		if err := json.Unmarshal(msg, &item); err != nil {
			var partial struct {
				ID    string `json:"id"`
				Owned bool   `json:"owned"`
			}
			if json.Unmarshal(msg, &partial) == nil {
				if i, ok := index[partial.ID]; ok {
					seed[i].Owned = partial.Owned
					continue
				}
			}
			logger.Warn("Ignoring malformed shop item", "error", err)
			continue
		}

		i, ok := index[item.ID]
		if !ok {
			index[item.ID] = len(seed)
			seed = append(seed, item)
			continue
		}
		seed[i].Owned = item.Owned
		if stored, ok := item.Kind.(models.EditTicketKind); ok {
			if k, ok := seed[i].Kind.(models.EditTicketKind); ok {
				k.Count = stored.Count
				seed[i].Kind = k
			}
		}
	}
	return seed
}
