package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/vibequest/internal/ai"
	"github.com/julianstephens/vibequest/internal/app"
	"github.com/julianstephens/vibequest/internal/backup"
	"github.com/julianstephens/vibequest/internal/keyring"
	"github.com/julianstephens/vibequest/internal/logger"
	"github.com/julianstephens/vibequest/internal/models"
	"github.com/julianstephens/vibequest/internal/storage"
)

// Context is handed to every command's Run method.
type Context struct {
	Store storage.Provider
	// ConfigDir holds logs and, for PostgreSQL, backups.
	ConfigDir string

	// Out and In default to stdout and stdin.
	Out io.Writer
	In  io.Reader

	// Assistant overrides the AI collaborator resolved from the keyring
	// and environment.
	Assistant *ai.Assistant

	app    *app.App
	reader *bufio.Reader
}

// Ctx is the context for store and AI calls made by a command.
func (c *Context) Ctx() context.Context {
	return context.Background()
}

func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Stdout(), args...)
}

// Backups returns the snapshot manager for the active store.
func (c *Context) Backups() *backup.Manager {
	return backup.NewManager(c.Store, backup.DirFor(c.Store.Location(), c.ConfigDir))
}

// App loads the state on first use and returns the shared controller.
func (c *Context) App() (*app.App, error) {
	if c.app != nil {
		return c.app, nil
	}
	a, err := app.New(c.Ctx(), c.Store, app.Options{
		Assistant: c.resolveAssistant(),
		Backups:   c.Backups(),
	})
	if err != nil {
		return nil, err
	}
	c.app = a
	return a, nil
}

func (c *Context) resolveAssistant() *ai.Assistant {
	if c.Assistant != nil {
		return c.Assistant
	}
	key := keyring.ResolveAPIKey()
	if key == "" {
		logger.Debug("No AI API key configured, AI helpers disabled")
		return ai.NewAssistant(nil)
	}
	gen, err := ai.NewGeminiGenerator(c.Ctx(), key)
	if err != nil {
		logger.Warn("Failed to create AI client", "error", err)
		return ai.NewAssistant(nil)
	}
	return ai.NewAssistant(gen)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if _, err := c.Backups().CreateBackup(c.Ctx()); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Confirm asks a yes/no question and reports whether the answer was yes.
func (c *Context) Confirm(prompt string) (bool, error) {
	if c.reader == nil {
		in := c.In
		if in == nil {
			in = os.Stdin
		}
		c.reader = bufio.NewReader(in)
	}
	c.Printf("%s [y/N]: ", prompt)
	response, err := c.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// ParsePriority accepts low, medium or high in any case.
func ParsePriority(s string) (models.Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return models.PriorityLow, nil
	case "medium":
		return models.PriorityMedium, nil
	case "high":
		return models.PriorityHigh, nil
	}
	return "", fmt.Errorf("invalid priority %q (expected low|medium|high)", s)
}

// ParseDifficulty accepts easy, normal or hard in any case.
func ParseDifficulty(s string) (models.Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return models.DifficultyEasy, nil
	case "normal":
		return models.DifficultyNormal, nil
	case "hard":
		return models.DifficultyHard, nil
	}
	return "", fmt.Errorf("invalid difficulty %q (expected easy|normal|hard)", s)
}

// ParseRepeat maps a --repeat flag value to a RepeatType.
func ParseRepeat(s string) (models.RepeatType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return models.RepeatNone, nil
	case "daily":
		return models.RepeatDaily, nil
	case "weekly":
		return models.RepeatWeekly, nil
	case "monthly":
		return models.RepeatMonthly, nil
	case "yearly":
		return models.RepeatYearly, nil
	}
	return "", fmt.Errorf("invalid repeat type %q (expected none|daily|weekly|monthly|yearly)", s)
}

// FormatRepeat formats an entry's repetition into a human-readable string
func FormatRepeat(e models.ScheduleEntry) string {
	if e.Type == models.EntryTypeFixed {
		return "every " + e.DayOfWeek
	}
	if !e.IsRepeating {
		return "once"
	}
	rc := e.RepeatConfig
	every := ""
	if rc.Interval > 1 {
		every = fmt.Sprintf(" (every %d)", rc.Interval)
	}
	switch rc.Type {
	case models.RepeatDaily:
		return "daily" + every
	case models.RepeatWeekly:
		days := make([]string, 0, len(rc.DaysOfWeek))
		for _, d := range rc.DaysOfWeek {
			if len(d) >= 3 {
				d = d[:3]
			}
			days = append(days, d)
		}
		return "weekly on " + strings.Join(days, ",")
	case models.RepeatMonthly:
		if rc.DayOfMonth > 0 {
			return fmt.Sprintf("monthly on day %d%s", rc.DayOfMonth, every)
		}
		return "monthly" + every
	case models.RepeatYearly:
		return "yearly" + every
	default:
		return "once"
	}
}

// StatusMark is the one-character status column used by listings.
func StatusMark(e models.ScheduleEntry) string {
	switch e.Status {
	case models.StatusCompleted:
		return "✓"
	case models.StatusInvalid:
		return "✗"
	}
	if e.IsLocked {
		return "🔒"
	}
	return " "
}

// PrintEntry writes one listing line for e.
func (c *Context) PrintEntry(e models.ScheduleEntry) {
	end := e.EndTime
	if end == "" {
		end = "--:--"
	}
	when := e.Date
	if e.Type == models.EntryTypeFixed {
		when = e.DayOfWeek
	}
	c.Printf("%s %-10s %s-%s  %-28s [%s] %s %s  (%s)\n",
		StatusMark(e), when, e.StartTime, end, e.Title, e.ProjectID, e.Priority, FormatRepeat(e), e.ID)
}
