package models

import "fmt"

type Project struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Color       string     `json:"color"`
	Difficulty  Difficulty `json:"difficulty,omitempty"`
}

func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	return nil
}

// DefaultProjects is the seed list used when no projects are stored.
func DefaultProjects() []Project {
	return []Project{
		{ID: "p1", Name: "기본 루틴", Color: "#6366f1"},
		{ID: "p2", Name: "자기 계발", Color: "#10b981"},
	}
}

// TemplateEntry is an entry snapshot positioned relative to the template's
// first day instead of an absolute date.
type TemplateEntry struct {
	ScheduleEntry
	DayOffset int `json:"dayOffset"`
}

type Template struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Entries []TemplateEntry `json:"entries"`
}
