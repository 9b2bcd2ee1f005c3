package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/julianstephens/vibequest/internal/constants"
	"github.com/julianstephens/vibequest/internal/logger"
	"github.com/julianstephens/vibequest/internal/models"
)

// ErrNoAPIKey is returned by NewGeminiGenerator when no key is configured.
var ErrNoAPIKey = errors.New("no AI API key configured (use 'vibequest keyring set-api-key' or set VIBEQUEST_API_KEY)")

// Generator produces text for a prompt. When schema is non-nil the model is
// asked for JSON matching it.
type Generator interface {
	Generate(ctx context.Context, model, prompt string, schema *genai.Schema) (string, error)
}

// GeminiGenerator calls the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
}

func NewGeminiGenerator(ctx context.Context, apiKey string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiGenerator{client: client}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, model, prompt string, schema *genai.Schema) (string, error) {
	var config *genai.GenerateContentConfig
	if schema != nil {
		config = &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		}
	}
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// Suggestion is one auto-scheduled slot proposed by the model.
type Suggestion struct {
	Title             string `json:"title"`
	StartTime         string `json:"startTime"`
	Date              string `json:"date"`
	EstimatedDuration int    `json:"estimatedDuration"`
}

// UnmarshalJSON accepts fractional durations, which the schema allows.
func (s *Suggestion) UnmarshalJSON(data []byte) error {
	var w struct {
		Title             string  `json:"title"`
		StartTime         string  `json:"startTime"`
		Date              string  `json:"date"`
		EstimatedDuration float64 `json:"estimatedDuration"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*s = Suggestion{
		Title:             w.Title,
		StartTime:         w.StartTime,
		Date:              w.Date,
		EstimatedDuration: int(w.EstimatedDuration),
	}
	return nil
}

// Assistant wraps a Generator with the application's prompts. Every call is
// attempted once; failures degrade to an empty result and are logged. A nil
// Generator behaves as a permanently failing one.
type Assistant struct {
	gen       Generator
	TagModel  string
	PlanModel string
}

func NewAssistant(gen Generator) *Assistant {
	return &Assistant{
		gen:       gen,
		TagModel:  constants.DefaultTagModel,
		PlanModel: constants.DefaultPlanModel,
	}
}

// Available reports whether a backend is configured.
func (a *Assistant) Available() bool {
	return a != nil && a.gen != nil
}

var tagSchema = &genai.Schema{
	Type:  genai.TypeArray,
	Items: &genai.Schema{Type: genai.TypeString},
}

var suggestionSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":             {Type: genai.TypeString},
			"startTime":         {Type: genai.TypeString},
			"date":              {Type: genai.TypeString},
			"estimatedDuration": {Type: genai.TypeNumber},
		},
		Required: []string{"title", "startTime", "date", "estimatedDuration"},
	},
}

func (a *Assistant) generate(ctx context.Context, op, model, prompt string, schema *genai.Schema) (string, bool) {
	if !a.Available() {
		logger.Warn("AI request skipped, no generator configured", "op", op)
		return "", false
	}
	text, err := a.gen.Generate(ctx, model, prompt, schema)
	if err != nil {
		logger.Warn("AI request failed", "op", op, "model", model, "error", err)
		return "", false
	}
	return text, true
}

// SuggestTags asks for 3-5 short Korean tags for a task title. Any failure
// yields an empty slice.
func (a *Assistant) SuggestTags(ctx context.Context, title string) []string {
	prompt := fmt.Sprintf("Suggest 3-5 short relevant tags for this task title: %q. Return only the tags as a JSON array of strings. Language: Korean.", title)
	text, ok := a.generate(ctx, "suggest_tags", a.TagModel, prompt, tagSchema)
	if !ok {
		return []string{}
	}

	var tags []string
	if err := json.Unmarshal([]byte(text), &tags); err != nil {
		logger.Warn("AI returned malformed tags", "error", err)
		return []string{}
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// GenerateProjectPlan returns a markdown execution plan for a project, or
// constants.PlanFallbackText when the model gives nothing back.
func (a *Assistant) GenerateProjectPlan(ctx context.Context, p models.Project) string {
	prompt := fmt.Sprintf("Project Name: %s\nDescription: %s\nDifficulty: %s\n\n"+
		"Create a step-by-step execution plan or flowchart description for this project. Use markdown. Language: Korean.",
		p.Name, p.Description, p.Difficulty)
	text, ok := a.generate(ctx, "project_plan", a.PlanModel, prompt, nil)
	if !ok || strings.TrimSpace(text) == "" {
		return constants.PlanFallbackText
	}
	return text
}

type slotContext struct {
	Day   string `json:"day"`
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// SuggestSchedule asks for 3-5 free slots this week filled with tasks for
// project. Suggestions missing a title, date or start time are dropped.
func (a *Assistant) SuggestSchedule(ctx context.Context, entries []models.ScheduleEntry, p models.Project) []Suggestion {
	busy := make([]slotContext, 0, len(entries))
	for _, e := range entries {
		busy = append(busy, slotContext{Day: e.DayOfWeek, Date: e.Date, Start: e.StartTime, End: e.EndTime})
	}
	busyJSON, err := json.Marshal(busy)
	if err != nil {
		logger.Warn("Failed to encode schedule context", "error", err)
		return []Suggestion{}
	}

	prompt := fmt.Sprintf(`Project: %s (%s)
Existing Schedule: %s

Find 3-5 empty slots (between %s and %s) this week.
Suggest tasks for this project to fill those slots.
Return a JSON array of objects with: title, startTime (HH:mm), date (YYYY-MM-DD), estimatedDuration (minutes).`,
		p.Name, p.Description, busyJSON, constants.AIScheduleEarliest, constants.AIScheduleLatest)

	text, ok := a.generate(ctx, "suggest_schedule", a.TagModel, prompt, suggestionSchema)
	if !ok {
		return []Suggestion{}
	}

	var raw []Suggestion
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		logger.Warn("AI returned malformed schedule", "error", err)
		return []Suggestion{}
	}
	out := make([]Suggestion, 0, len(raw))
	for _, s := range raw {
		if strings.TrimSpace(s.Title) == "" || s.Date == "" || s.StartTime == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
