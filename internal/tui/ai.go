package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/vibequest/internal/ai"
	"github.com/julianstephens/vibequest/internal/app"
	"github.com/julianstephens/vibequest/internal/logger"
	"github.com/julianstephens/vibequest/internal/models"
)

const aiTimeout = 90 * time.Second

type planResultMsg struct {
	seq  int
	text string
}

type tagsResultMsg struct {
	seq  int
	id   string
	tags []string
}

type scheduleResultMsg struct {
	seq         int
	suggestions []ai.Suggestion
}

func (m *Model) nextSeq() int {
	m.aiSeq++
	return m.aiSeq
}

// The commands below run off the update loop. They capture copies only.

func generatePlanCmd(assistant *ai.Assistant, seq int, p models.Project) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), aiTimeout)
		defer cancel()
		return planResultMsg{seq: seq, text: assistant.GenerateProjectPlan(ctx, p)}
	}
}

func suggestTagsCmd(assistant *ai.Assistant, seq int, id, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), aiTimeout)
		defer cancel()
		return tagsResultMsg{seq: seq, id: id, tags: assistant.SuggestTags(ctx, title)}
	}
}

func suggestScheduleCmd(assistant *ai.Assistant, seq int, busy []models.ScheduleEntry, p models.Project) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), aiTimeout)
		defer cancel()
		return scheduleResultMsg{seq: seq, suggestions: assistant.SuggestSchedule(ctx, busy, p)}
	}
}

func (m *Model) startPlan(p models.Project) tea.Cmd {
	seq := m.nextSeq()
	m.pendingPlan = seq
	m.previousState = m.state
	m.state = StatePlan
	m.plan.Start(p.Name)
	if !m.app.Assistant().Available() {
		m.setError("AI unavailable: showing the fallback text. Set a key with `vibequest keyring set-api-key`.")
	}
	return generatePlanCmd(m.app.Assistant(), seq, p)
}

func (m *Model) startSchedule(p models.Project) tea.Cmd {
	if !m.app.Assistant().Available() {
		m.setError("AI unavailable. Set a key with `vibequest keyring set-api-key`.")
		return nil
	}
	seq := m.nextSeq()
	m.pendingSchedule = seq
	m.previousState = m.state
	m.state = StateSuggestions
	m.suggestProject = p
	m.suggestions = nil
	m.suggestLoading = true
	busy := m.app.BusySlots(m.app.WeekDates(m.timetable.Offset)[0])
	return suggestScheduleCmd(m.app.Assistant(), seq, busy, p)
}

func (m *Model) startTags(id, title string) tea.Cmd {
	if !m.app.Assistant().Available() {
		m.setError("AI unavailable. Set a key with `vibequest keyring set-api-key`.")
		return nil
	}
	seq := m.nextSeq()
	m.pendingTags = seq
	m.setStatus("Asking for tags...")
	return suggestTagsCmd(m.app.Assistant(), seq, id, title)
}

func (m *Model) handlePlanResult(msg planResultMsg) {
	if msg.seq != m.pendingPlan || m.state != StatePlan {
		logger.Debug("Dropping stale plan result", "seq", msg.seq)
		return
	}
	m.pendingPlan = 0
	m.plan.SetPlan(msg.text)
}

func (m *Model) handleScheduleResult(msg scheduleResultMsg) {
	if msg.seq != m.pendingSchedule || m.state != StateSuggestions {
		logger.Debug("Dropping stale schedule result", "seq", msg.seq)
		return
	}
	m.pendingSchedule = 0
	m.suggestLoading = false
	m.suggestions = msg.suggestions
}

func (m *Model) handleTagsResult(msg tagsResultMsg) {
	if msg.seq != m.pendingTags {
		logger.Debug("Dropping stale tag result", "seq", msg.seq)
		return
	}
	m.pendingTags = 0
	if len(msg.tags) == 0 {
		m.setStatus("No tag suggestions.")
		return
	}
	e, err := m.app.Entry(msg.id)
	if err != nil {
		logger.Debug("Tagged entry is gone", "id", msg.id)
		m.setStatus("Entry was removed before tags arrived.")
		return
	}
	e.AddTags(msg.tags...)
	if _, err := m.app.UpdateEntry(m.ctx, msg.id, app.EntryPatch{Tags: &e.Tags}); err != nil {
		logger.Warn("Failed to apply tags", "id", msg.id, "error", err)
		m.setError("Failed to apply tags: " + err.Error())
		return
	}
	m.refresh()
	m.setStatus("Tagged " + e.Title + ": " + strings.Join(msg.tags, ", "))
}

func (m *Model) acceptSuggestions() {
	created, err := m.app.AcceptSuggestions(m.ctx, m.suggestProject.ID, m.suggestions)
	if err != nil {
		logger.Warn("Failed to add suggestions", "project", m.suggestProject.ID, "error", err)
		m.setError("Failed to add suggestions: " + err.Error())
		return
	}
	m.refresh()
	m.setStatus(fmt.Sprintf("Added %d entries for %s.", len(created), m.suggestProject.Name))
}
