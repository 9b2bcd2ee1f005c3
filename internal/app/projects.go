package app

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/vibequest/internal/constants"
	"github.com/julianstephens/vibequest/internal/models"
	"github.com/julianstephens/vibequest/internal/utils"
)

// ProjectPatch is a partial project update. Nil fields are left unchanged.
type ProjectPatch struct {
	Name        *string
	Description *string
	Color       *string
	Difficulty  *models.Difficulty
}

const defaultProjectColor = "#6366f1"

func (a *App) findProject(id string) (int, error) {
	i := slices.IndexFunc(a.state.Projects, func(p models.Project) bool { return p.ID == id })
	if i < 0 {
		return -1, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	return i, nil
}

func (a *App) Project(id string) (models.Project, error) {
	i, err := a.findProject(id)
	if err != nil {
		return models.Project{}, err
	}
	return a.state.Projects[i], nil
}

func (a *App) AddProject(ctx context.Context, p models.Project) (models.Project, error) {
	p.ID = constants.ProjectIDPrefix + a.NewID()
	p.Name = strings.TrimSpace(p.Name)
	if p.Color == "" {
		p.Color = defaultProjectColor
	}
	if err := p.Validate(); err != nil {
		return models.Project{}, fmt.Errorf("%w: %v", ErrInvalidProject, err)
	}
	a.state.Projects = append(a.state.Projects, p)
	return p, a.persist(ctx)
}

func (a *App) UpdateProject(ctx context.Context, id string, patch ProjectPatch) (models.Project, error) {
	i, err := a.findProject(id)
	if err != nil {
		return models.Project{}, err
	}
	p := a.state.Projects[i]
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Color != nil {
		p.Color = *patch.Color
	}
	if patch.Difficulty != nil {
		p.Difficulty = *patch.Difficulty
	}
	if err := p.Validate(); err != nil {
		return models.Project{}, fmt.Errorf("%w: %v", ErrInvalidProject, err)
	}
	a.state.Projects[i] = p
	return p, a.persist(ctx)
}

// DeleteProject removes a project. Entries and templates that reference it
// keep the dangling id.
func (a *App) DeleteProject(ctx context.Context, id string) error {
	i, err := a.findProject(id)
	if err != nil {
		return err
	}
	a.state.Projects = slices.Delete(a.state.Projects, i, i+1)
	return a.persist(ctx)
}

// SaveTemplate captures the entries dated inside the week starting at
// weekStart.
func (a *App) SaveTemplate(ctx context.Context, name string, weekStart time.Time) (models.Template, error) {
	t, err := a.tmpl.Save(name, a.sched.WeekDates(weekStart), a.state.Entries)
	if err != nil {
		return models.Template{}, err
	}
	a.state.Templates = append(a.state.Templates, t)
	return t, a.persist(ctx)
}

func (a *App) findTemplate(id string) (int, error) {
	i := slices.IndexFunc(a.state.Templates, func(t models.Template) bool { return t.ID == id })
	if i < 0 {
		return -1, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	return i, nil
}

// ApplyTemplate appends fresh entries for the week starting at weekStart.
// The template itself is left untouched.
func (a *App) ApplyTemplate(ctx context.Context, id string, weekStart time.Time) ([]models.ScheduleEntry, error) {
	i, err := a.findTemplate(id)
	if err != nil {
		return nil, err
	}
	a.autoBackup(ctx, "template apply")

	created := a.tmpl.Apply(a.state.Templates[i], utils.DateOf(weekStart))
	a.state.Entries = append(a.state.Entries, created...)
	return created, a.persist(ctx)
}

func (a *App) DeleteTemplate(ctx context.Context, id string) error {
	i, err := a.findTemplate(id)
	if err != nil {
		return err
	}
	a.state.Templates = slices.Delete(a.state.Templates, i, i+1)
	return a.persist(ctx)
}
