package entries

import (
	"fmt"
	"strings"

	"github.com/julianstephens/vibequest/internal/cli"
	"github.com/julianstephens/vibequest/internal/models"
	"github.com/julianstephens/vibequest/internal/utils"
)

type EntryAddCmd struct {
	Title      string `arg:"" help:"Entry title."`
	Date       string `short:"D" help:"Anchor date (YYYY-MM-DD). Defaults to today."`
	Start      string `short:"s" help:"Start time (HH:MM)." required:""`
	End        string `short:"e" help:"End time (HH:MM)."`
	Duration   int    `short:"d" help:"Estimated duration in minutes; drives the XP award." default:"60"`
	Project    string `short:"P" help:"Project ID." default:"p1"`
	Priority   string `short:"p" help:"Priority (low|medium|high)." default:"medium"`
	Difficulty string `help:"Difficulty (easy|normal|hard)." default:"normal"`
	Fixed      bool   `short:"f" help:"Fixed weekly entry: recurs every week on the anchor date's weekday."`
	Memo       string `short:"m" help:"Free-form memo."`
	Category   string `help:"Category label."`
	Tags       string `short:"t" help:"Comma-separated tags."`
	Repeat     string `short:"r" help:"Repetition (none|daily|weekly|monthly|yearly)." default:"none"`
	Interval   int    `short:"i" help:"Repeat every N periods." default:"1"`
	Weekdays   string `short:"w" help:"Comma-separated weekdays for weekly repetition."`
	MonthDay   int    `help:"Day of month (1-31) for monthly repetition."`
	SuggestTag bool   `name:"ai-tags" help:"Ask the AI helper for tag suggestions."`
}

func (c *EntryAddCmd) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if c.Duration < 0 {
		return fmt.Errorf("duration cannot be negative")
	}
	if c.Interval < 1 {
		return fmt.Errorf("interval must be at least 1")
	}
	if c.MonthDay < 0 || c.MonthDay > 31 {
		return fmt.Errorf("--month-day must be between 1 and 31")
	}
	return nil
}

func (c *EntryAddCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}

	date := a.Today()
	if c.Date != "" {
		if date, err = utils.ParseDate(c.Date); err != nil {
			return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
		}
	}
	priority, err := cli.ParsePriority(c.Priority)
	if err != nil {
		return err
	}
	difficulty, err := cli.ParseDifficulty(c.Difficulty)
	if err != nil {
		return err
	}
	repeat, err := cli.ParseRepeat(c.Repeat)
	if err != nil {
		return err
	}

	entry := models.ScheduleEntry{
		Title:             c.Title,
		Memo:              c.Memo,
		Type:              models.EntryTypeTask,
		Category:          c.Category,
		Date:              utils.FormatDate(date),
		StartTime:         c.Start,
		EndTime:           c.End,
		ProjectID:         c.Project,
		Priority:          priority,
		Difficulty:        difficulty,
		EstimatedDuration: c.Duration,
		IsRepeating:       repeat != models.RepeatNone,
		RepeatConfig: models.RepeatConfig{
			Type:       repeat,
			Interval:   c.Interval,
			DayOfMonth: c.MonthDay,
		},
	}
	if c.Fixed {
		entry.Type = models.EntryTypeFixed
		entry.DayOfWeek = utils.WeekdayName(date)
	}
	if c.Weekdays != "" {
		days, err := utils.ParseWeekdayNames(c.Weekdays)
		if err != nil {
			return err
		}
		entry.RepeatConfig.DaysOfWeek = days
	}
	if c.Tags != "" {
		entry.AddTags(strings.Split(c.Tags, ",")...)
	}
	if c.SuggestTag {
		entry.AddTags(a.SuggestTags(ctx.Ctx(), c.Title)...)
	}

	added, err := a.AddEntry(ctx.Ctx(), entry)
	if err != nil {
		return err
	}

	ctx.Printf("Added entry: %s (ID: %s)\n", added.Title, added.ID)
	if len(added.Tags) > 0 {
		ctx.Printf("Tags: %s\n", strings.Join(added.Tags, ", "))
	}
	return nil
}
