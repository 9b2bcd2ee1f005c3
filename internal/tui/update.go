package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/vibequest/internal/app"
	"github.com/julianstephens/vibequest/internal/logger"
	"github.com/julianstephens/vibequest/internal/models"
	"github.com/julianstephens/vibequest/internal/progression"
	"github.com/julianstephens/vibequest/internal/tui/components/focus"
	"github.com/julianstephens/vibequest/internal/tui/components/shop"
	"github.com/julianstephens/vibequest/internal/tui/components/tasklist"
	"github.com/julianstephens/vibequest/internal/tui/components/timetable"
)

// chromeHeight is the space taken by the header, tabs, status and help.
const chromeHeight = 7

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case focus.TickMsg:
		var cmd tea.Cmd
		m.focus, cmd = m.focus.Update(msg)
		return m, cmd
	case planResultMsg:
		m.handlePlanResult(msg)
		return m, nil
	case tagsResultMsg:
		m.handleTagsResult(msg)
		return m, nil
	case scheduleResultMsg:
		m.handleScheduleResult(msg)
		return m, nil
	}

	if handled, cmd := m.handleComponentMsg(msg); handled {
		return m, cmd
	}

	switch m.state {
	case StateAddEntry, StateAddProject, StatePickProject:
		return m, m.updateForm(msg)
	case StateFocus:
		if msg, ok := msg.(tea.KeyMsg); ok && (key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Focus) || key.Matches(msg, m.keys.Quit)) {
			m.focus.Stop()
			m.state = m.previousState
		}
		return m, nil
	case StatePlan:
		if msg, ok := msg.(tea.KeyMsg); ok && (key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Quit)) {
			m.pendingPlan = 0
			m.state = m.previousState
			return m, nil
		}
		var cmd tea.Cmd
		m.plan, cmd = m.plan.Update(msg)
		return m, cmd
	case StateSuggestions:
		return m, m.updateSuggestions(msg)
	case StateConfirmDelete:
		return m, m.updateConfirmDelete(msg)
	}

	return m, m.updateTabs(msg)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	body := max(height-chromeHeight, 3)
	m.timetable.SetSize(width, body)
	m.taskList.SetSize(width-4, body)
	m.gallery.SetSize(width-4, body)
	m.plan.SetSize(width-4, body)
	m.focus.SetSize(width, body)
}

func (m *Model) updateTabs(msg tea.Msg) tea.Cmd {
	keyMsg, isKey := msg.(tea.KeyMsg)
	filtering := m.state == StateTasks && m.taskList.Filtering()
	if isKey && !filtering {
		switch {
		case key.Matches(keyMsg, m.keys.Quit):
			m.quitting = true
			return tea.Quit
		case key.Matches(keyMsg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return nil
		case key.Matches(keyMsg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return nil
		case key.Matches(keyMsg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return nil
		case key.Matches(keyMsg, m.keys.Focus):
			m.previousState = m.state
			m.state = StateFocus
			return m.focus.Start()
		case key.Matches(keyMsg, m.keys.Plan):
			return m.openProjectPick(pickForPlan)
		case key.Matches(keyMsg, m.keys.Schedule):
			return m.openProjectPick(pickForSchedule)
		case key.Matches(keyMsg, m.keys.AddProject):
			return m.openProjectForm()
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateTimetable:
		m.timetable, cmd = m.timetable.Update(msg)
	case StateTasks:
		m.taskList, cmd = m.taskList.Update(msg)
	case StateShop:
		m.shop, cmd = m.shop.Update(msg)
	case StateAchievements:
		m.gallery, cmd = m.gallery.Update(msg)
	}
	return cmd
}

// handleComponentMsg applies the requests emitted by the tab components.
func (m *Model) handleComponentMsg(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case timetable.AddEntryMsg:
		return true, m.openEntryForm(m.app.QuickAdd(msg.Date, msg.Hour, 60))
	case tasklist.AddEntryMsg:
		date, hour := m.timetable.Cursor()
		return true, m.openEntryForm(m.app.QuickAdd(date, hour, 60))
	case timetable.MoveEntryMsg:
		m.moveEntry(msg)
	case timetable.LockedMsg:
		m.setError(fmt.Sprintf("🔒 %s is locked. Unlock it first.", msg.Title))
	case timetable.CompleteEntryMsg:
		m.completeEntry(msg.ID)
	case tasklist.CompleteEntryMsg:
		m.completeEntry(msg.ID)
	case tasklist.InvalidateEntryMsg:
		m.invalidateEntry(msg.ID)
	case tasklist.DeleteEntryMsg:
		m.entryToDelete = msg.ID
		m.previousState = m.state
		m.state = StateConfirmDelete
	case tasklist.ToggleLockMsg:
		m.setLocked(msg.ID, msg.Locked)
	case tasklist.UseTicketMsg:
		m.useTicket(msg.ID)
	case tasklist.SuggestTagsMsg:
		return true, m.startTags(msg.ID, msg.Title)
	case shop.BuyMsg:
		m.buyItem(msg.ID)
	case shop.EquipMsg:
		m.mutate("equip avatar", func() error { return m.app.EquipAvatar(m.ctx, msg.ID) }, "Avatar equipped.")
	case shop.ThemeMsg:
		done := "Theme applied."
		if msg.ID == "" {
			done = "Default theme restored."
		}
		m.mutate("select theme", func() error { return m.app.SetTheme(m.ctx, msg.ID) }, done)
	default:
		return false, nil
	}
	return true, nil
}

// mutate runs fn, refreshes the views and reports the outcome.
func (m *Model) mutate(action string, fn func() error, done string) bool {
	if err := fn(); err != nil {
		logger.Warn("TUI action failed", "action", action, "error", err)
		m.setError(fmt.Sprintf("Failed to %s: %v", action, err))
		return false
	}
	m.refresh()
	if done != "" {
		m.setStatus(done)
	}
	return true
}

func (m *Model) moveEntry(msg timetable.MoveEntryMsg) {
	moved, err := m.app.MoveEntry(m.ctx, msg.ID, msg.Date, msg.Hour)
	if errors.Is(err, app.ErrEntryLocked) {
		m.setError("🔒 That entry is locked. Unlock it first.")
		return
	}
	if err != nil {
		logger.Warn("TUI action failed", "action", "move entry", "id", msg.ID, "error", err)
		m.setError("Failed to move entry: " + err.Error())
		return
	}
	m.refresh()
	m.setStatus(fmt.Sprintf("Moved %s to %s %s.", moved.Title, moved.Date, moved.StartTime))
}

func (m *Model) completeEntry(id string) {
	res, err := m.app.CompleteEntry(m.ctx, id)
	if err != nil {
		logger.Warn("TUI action failed", "action", "complete entry", "id", id, "error", err)
		m.setError("Failed to complete entry: " + err.Error())
		return
	}
	m.refresh()
	switch {
	case !res.Awarded:
		m.setError("✗ Only active entries can be completed.")
	case res.LeveledUp:
		m.setStatus(fmt.Sprintf("+%d XP  Level up! You are now level %d.", res.XP, res.Level))
	default:
		m.setStatus(fmt.Sprintf("+%d XP", res.XP))
	}
}

func (m *Model) invalidateEntry(id string) {
	changed, err := m.app.MarkInvalid(m.ctx, id)
	if err != nil {
		logger.Warn("TUI action failed", "action", "invalidate entry", "id", id, "error", err)
		m.setError("Failed to mark entry: " + err.Error())
		return
	}
	m.refresh()
	if !changed {
		m.setError("✗ Entry already finished.")
		return
	}
	m.setStatus("Entry marked as failed.")
}

func (m *Model) setLocked(id string, locked bool) {
	done := "Entry unlocked."
	if locked {
		done = "🔒 Entry locked."
	}
	m.mutate("change lock", func() error { return m.app.SetLocked(m.ctx, id, locked) }, done)
}

func (m *Model) useTicket(id string) {
	err := m.app.UnlockWithTicket(m.ctx, id)
	if errors.Is(err, progression.ErrNoEditTickets) {
		m.setError("No edit tickets left. Buy one in the shop.")
		return
	}
	if err != nil {
		logger.Warn("TUI action failed", "action", "use ticket", "id", id, "error", err)
		m.setError("Failed to unlock entry: " + err.Error())
		return
	}
	m.refresh()
	m.setStatus(fmt.Sprintf("Entry unlocked. %d edit tickets left.", m.app.Persona().Inventory.EditTickets))
}

func (m *Model) buyItem(id string) {
	res, err := m.app.BuyItem(m.ctx, id)
	if err != nil {
		logger.Warn("TUI action failed", "action", "buy item", "id", id, "error", err)
		m.setError("Failed to buy item: " + err.Error())
		return
	}
	if !res.OK {
		m.setError(fmt.Sprintf("Not enough XP (%d more needed).", res.Shortfall))
		return
	}
	m.refresh()
	m.setStatus(fmt.Sprintf("Purchased. Balance: %d XP", m.app.Persona().XP))
}

func (m *Model) deleteEntry(id string) {
	m.mutate("delete entry", func() error { return m.app.DeleteEntry(m.ctx, id) }, "Entry deleted.")
}

func (m *Model) updateConfirmDelete(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Accept):
		if m.entryToDelete != "" {
			m.deleteEntry(m.entryToDelete)
		}
		m.entryToDelete = ""
		m.state = m.previousState
	case key.Matches(keyMsg, m.keys.Reject):
		m.entryToDelete = ""
		m.state = m.previousState
	}
	return nil
}

func (m *Model) updateSuggestions(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Accept):
		if m.suggestLoading {
			return nil
		}
		if len(m.suggestions) > 0 {
			m.acceptSuggestions()
		}
		m.suggestions = nil
		m.state = m.previousState
	case key.Matches(keyMsg, m.keys.Reject), key.Matches(keyMsg, m.keys.Quit):
		m.pendingSchedule = 0
		m.suggestLoading = false
		m.suggestions = nil
		m.state = m.previousState
	}
	return nil
}

func (m *Model) openEntryForm(draft models.ScheduleEntry) tea.Cmd {
	m.entryDraft = draft
	m.entryForm = newEntryFormModel(draft)
	m.form = NewEntryForm(m.entryForm, m.projectOptions(), m.recentTitles())
	m.previousState = m.state
	m.state = StateAddEntry
	return m.form.Init()
}

func (m *Model) openProjectForm() tea.Cmd {
	m.projectForm = &ProjectFormModel{Difficulty: models.DifficultyNormal}
	m.form = NewProjectForm(m.projectForm)
	m.previousState = m.state
	m.state = StateAddProject
	return m.form.Init()
}

func (m *Model) openProjectPick(purpose pickPurpose) tea.Cmd {
	projects := m.app.Projects()
	if len(projects) == 0 {
		m.setError("Add a project first (P).")
		return nil
	}
	title := "Generate a plan for"
	if purpose == pickForSchedule {
		title = "Find free slots for"
	}
	value := projects[0].ID
	m.pick = purpose
	m.pickForm = &value
	m.form = NewProjectPickForm(title, m.pickForm, m.projectOptions())
	m.previousState = m.state
	m.state = StatePickProject
	return m.form.Init()
}

// updateForm drives whichever huh form is open.
func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		cmds = append(cmds, m.submitForm())
	case huh.StateAborted:
		m.state = m.previousState
	}
	return tea.Batch(cmds...)
}

func (m *Model) submitForm() tea.Cmd {
	switch m.state {
	case StateAddEntry:
		if !m.submitEntryForm() {
			m.form.State = huh.StateNormal
			return nil
		}
	case StateAddProject:
		if !m.submitProjectForm() {
			m.form.State = huh.StateNormal
			return nil
		}
	case StatePickProject:
		m.state = m.previousState
		p, err := m.app.Project(*m.pickForm)
		if err != nil {
			m.setError(err.Error())
			return nil
		}
		if m.pick == pickForSchedule {
			return m.startSchedule(p)
		}
		return m.startPlan(p)
	}
	m.state = m.previousState
	return nil
}

// submitEntryForm stores the entry described by the open form.
func (m *Model) submitEntryForm() bool {
	e, err := m.entryForm.Entry(m.entryDraft)
	if err != nil {
		m.setError(err.Error())
		return false
	}
	var added models.ScheduleEntry
	ok := m.mutate("add entry", func() error {
		var err error
		added, err = m.app.AddEntry(m.ctx, e)
		return err
	}, "")
	if ok {
		m.setStatus(fmt.Sprintf("Added %s on %s at %s.", added.Title, added.Date, added.StartTime))
	}
	return ok
}

func (m *Model) submitProjectForm() bool {
	f := m.projectForm
	p := models.Project{Name: f.Name, Description: f.Description, Color: f.Color, Difficulty: f.Difficulty}
	return m.mutate("add project", func() error {
		_, err := m.app.AddProject(m.ctx, p)
		return err
	}, "Project "+f.Name+" added.")
}
