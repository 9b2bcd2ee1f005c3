package tui

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/vibequest/internal/models"
	"github.com/julianstephens/vibequest/internal/utils"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func validateTime(s string) error {
	if _, err := utils.ParseTime(s); err != nil {
		return fmt.Errorf("use HH:MM")
	}
	return nil
}

func validateDuration(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("enter minutes greater than zero")
	}
	return nil
}

func validateColor(s string) error {
	if s != "" && !hexColor.MatchString(s) {
		return fmt.Errorf("expected #rrggbb")
	}
	return nil
}

func newEntryFormModel(draft models.ScheduleEntry) *EntryFormModel {
	return &EntryFormModel{
		Title:     draft.Title,
		StartTime: draft.StartTime,
		EndTime:   draft.EndTime,
		Duration:  strconv.Itoa(draft.EstimatedDuration),
		Priority:  draft.Priority,
		ProjectID: draft.ProjectID,
		Tags:      strings.Join(draft.Tags, ", "),
	}
}

// Entry applies the form to draft.
func (f EntryFormModel) Entry(draft models.ScheduleEntry) (models.ScheduleEntry, error) {
	dur, err := strconv.Atoi(strings.TrimSpace(f.Duration))
	if err != nil {
		return models.ScheduleEntry{}, fmt.Errorf("invalid duration %q", f.Duration)
	}
	e := draft
	e.Title = strings.TrimSpace(f.Title)
	e.StartTime = f.StartTime
	e.EndTime = f.EndTime
	e.EstimatedDuration = dur
	e.Priority = f.Priority
	e.ProjectID = f.ProjectID
	e.Tags = nil
	for t := range strings.SplitSeq(f.Tags, ",") {
		e.AddTags(strings.TrimSpace(t))
	}
	return e, nil
}

// recentTitles offers the latest titles across projects as input suggestions.
func (m Model) recentTitles() []string {
	var titles []string
	for _, p := range m.app.Projects() {
		for _, e := range m.app.RecentByProject(p.ID) {
			if !slices.Contains(titles, e.Title) {
				titles = append(titles, e.Title)
			}
		}
	}
	return titles
}

func (m Model) projectOptions() []huh.Option[string] {
	var opts []huh.Option[string]
	for _, p := range m.app.Projects() {
		opts = append(opts, huh.NewOption(p.Name, p.ID))
	}
	return opts
}

func NewEntryForm(f *EntryFormModel, projects []huh.Option[string], titles []string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&f.Title).
				Suggestions(titles).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Start (HH:MM)").
				Value(&f.StartTime).
				Validate(validateTime),
			huh.NewInput().
				Title("End (HH:MM)").
				Value(&f.EndTime).
				Validate(validateTime),
			huh.NewInput().
				Title("Estimated duration (min)").
				Value(&f.Duration).
				Validate(validateDuration),
		),
		huh.NewGroup(
			huh.NewSelect[models.Priority]().
				Title("Priority").
				Options(
					huh.NewOption("Low", models.PriorityLow),
					huh.NewOption("Medium", models.PriorityMedium),
					huh.NewOption("High", models.PriorityHigh),
				).
				Value(&f.Priority),
			huh.NewSelect[string]().
				Title("Project").
				Options(projects...).
				Value(&f.ProjectID),
			huh.NewInput().
				Title("Tags (comma-separated)").
				Value(&f.Tags),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewProjectForm(f *ProjectFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&f.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&f.Description),
			huh.NewInput().
				Title("Color").
				Placeholder("#6366f1").
				Value(&f.Color).
				Validate(validateColor),
			huh.NewSelect[models.Difficulty]().
				Title("Difficulty").
				Options(
					huh.NewOption("Easy", models.DifficultyEasy),
					huh.NewOption("Normal", models.DifficultyNormal),
					huh.NewOption("Hard", models.DifficultyHard),
				).
				Value(&f.Difficulty),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewProjectPickForm(title string, value *string, projects []huh.Option[string]) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(projects...).
				Value(value),
		),
	).WithTheme(huh.ThemeDracula())
}
