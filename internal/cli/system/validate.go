package system

import (
	"fmt"

	"github.com/julianstephens/vibequest/internal/cli"
	"github.com/julianstephens/vibequest/internal/models"
	"github.com/julianstephens/vibequest/internal/utils"
)

type ValidateCmd struct {
	Offset int  `short:"o" help:"Week to check for overlapping slots, relative to the current one." default:"0"`
	Strict bool `help:"Exit with an error when conflicts are found."`
}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	dates := a.WeekDates(cmd.Offset)
	ctx.Printf("Validating entries, projects, templates and the week of %s...\n", utils.FormatDate(dates[0]))

	result := a.Validate(dates[0])
	ctx.Println(result.FormatReport())

	if cmd.Strict && result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) found", len(result.Conflicts))
	}
	return nil
}

type SettingsCmd struct {
	Wake  *string `help:"First visible timetable hour (HH:MM)."`
	Sleep *string `help:"Last visible timetable hour (HH:MM)."`
}

func (cmd *SettingsCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	if cmd.Wake != nil || cmd.Sleep != nil {
		err := a.UpdateSettings(ctx.Ctx(), func(s *models.Settings) {
			if cmd.Wake != nil {
				s.WakeTime = *cmd.Wake
			}
			if cmd.Sleep != nil {
				s.SleepTime = *cmd.Sleep
			}
		})
		if err != nil {
			return err
		}
		ctx.Println("Settings updated.")
	}

	s := a.Settings()
	hours := a.Hours()
	ctx.Printf("Wake time:  %s\n", s.WakeTime)
	ctx.Printf("Sleep time: %s\n", s.SleepTime)
	if len(hours) > 0 {
		ctx.Printf("Timetable:  %s - %s (%d rows)\n", utils.FormatHour(hours[0]), utils.FormatHour(hours[len(hours)-1]), len(hours))
	}
	theme := s.CurrentTheme
	if theme == "" {
		theme = "default"
	}
	ctx.Printf("Theme:      %s\n", theme)
	return nil
}
