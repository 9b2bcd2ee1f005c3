package tui

import (
	"context"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/vibequest/internal/ai"
	"github.com/julianstephens/vibequest/internal/app"
	"github.com/julianstephens/vibequest/internal/models"
	"github.com/julianstephens/vibequest/internal/tui/components/focus"
	"github.com/julianstephens/vibequest/internal/tui/components/gallery"
	"github.com/julianstephens/vibequest/internal/tui/components/plan"
	"github.com/julianstephens/vibequest/internal/tui/components/shop"
	"github.com/julianstephens/vibequest/internal/tui/components/tasklist"
	"github.com/julianstephens/vibequest/internal/tui/components/timetable"
)

type SessionState int

// The first four states are the tabs, in display order.
const (
	StateTimetable SessionState = iota
	StateTasks
	StateShop
	StateAchievements
	StateAddEntry
	StateAddProject
	StatePickProject
	StateFocus
	StatePlan
	StateSuggestions
	StateConfirmDelete
)

const tabCount = 4

var tabTitles = []string{"Timetable", "Tasks", "Shop", "Achievements"}

func (s SessionState) isTab() bool {
	return s < tabCount
}

type EntryFormModel struct {
	Title     string
	StartTime string
	EndTime   string
	Duration  string
	Priority  models.Priority
	ProjectID string
	Tags      string
}

type ProjectFormModel struct {
	Name        string
	Description string
	Color       string
	Difficulty  models.Difficulty
}

// pickPurpose is what the chosen project is for.
type pickPurpose int

const (
	pickForPlan pickPurpose = iota
	pickForSchedule
)

type Model struct {
	app           *app.App
	ctx           context.Context
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	styles        styles

	timetable timetable.Model
	taskList  tasklist.Model
	shop      shop.Model
	gallery   gallery.Model
	focus     focus.Model
	plan      plan.Model

	form        *huh.Form
	entryForm   *EntryFormModel
	entryDraft  models.ScheduleEntry
	projectForm *ProjectFormModel
	pickForm    *string
	pick        pickPurpose

	entryToDelete string

	// AI requests in flight. A result is applied only when its seq matches.
	aiSeq           int
	pendingPlan     int
	pendingTags     int
	pendingSchedule int
	suggestions     []ai.Suggestion
	suggestProject  models.Project
	suggestLoading  bool

	status    string
	statusErr bool
	quitting  bool
	width     int
	height    int
}

func NewModel(a *app.App) Model {
	st := newStyles(a.ThemeColor())
	m := Model{
		app:       a,
		ctx:       context.Background(),
		state:     StateTimetable,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		styles:    st,
		timetable: timetable.New(a, st.accent),
		taskList:  tasklist.New(nil, 0, 0),
		shop:      shop.New(st.accent),
		gallery:   gallery.New(0, 0),
		focus:     focus.New(a, func() time.Time { return a.Now() }, st.accent),
		plan:      plan.New(0, 0),
	}
	m.refresh()
	return m
}

// refresh reloads every view from the application state.
func (m *Model) refresh() {
	m.taskList.SetEntries(slices.Clone(m.app.Entries()))
	m.shop.SetData(slices.Clone(m.app.ShopItems()), m.app.Persona(), m.app.Settings())
	m.gallery.SetGroups(m.app.Gallery(), m.app.Now())

	st := newStyles(m.app.ThemeColor())
	if st.accent != m.styles.accent {
		m.styles = st
		m.timetable.SetAccent(st.accent)
		m.shop.SetAccent(st.accent)
	}
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) setError(msg string) {
	m.status = msg
	m.statusErr = true
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateTimetable:
		tk := m.timetable.Keys()
		keys = append(keys, tk.Add, tk.Move, tk.Complete, m.keys.Focus)
	case StateTasks:
		keys = append(keys, m.keys.Focus, m.keys.Plan)
	case StateShop:
		sk := m.shop.Keys()
		keys = append(keys, sk.Buy, sk.Use)
	case StateFocus, StatePlan:
		keys = []key.Binding{m.keys.Back}
	case StateSuggestions, StateConfirmDelete:
		keys = []key.Binding{m.keys.Accept, m.keys.Reject}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	aiKeys := []key.Binding{m.keys.Focus, m.keys.Plan, m.keys.Schedule, m.keys.AddProject}

	var actions []key.Binding
	switch m.state {
	case StateTimetable:
		tk := m.timetable.Keys()
		actions = []key.Binding{tk.Left, tk.Right, tk.Up, tk.Down, tk.PrevWeek, tk.NextWeek, tk.Today, tk.Cycle, tk.Add, tk.Move, tk.Complete, tk.Cancel}
	case StateShop:
		sk := m.shop.Keys()
		actions = []key.Binding{sk.Up, sk.Down, sk.Buy, sk.Use, sk.Reset}
	}
	return [][]key.Binding{global, aiKeys, actions}
}

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("vibequest")
}
