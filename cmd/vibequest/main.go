package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/vibequest/internal/cli"
	"github.com/julianstephens/vibequest/internal/cli/assist"
	"github.com/julianstephens/vibequest/internal/cli/backups"
	"github.com/julianstephens/vibequest/internal/cli/entries"
	"github.com/julianstephens/vibequest/internal/cli/projects"
	"github.com/julianstephens/vibequest/internal/cli/schedule"
	"github.com/julianstephens/vibequest/internal/cli/shop"
	"github.com/julianstephens/vibequest/internal/cli/system"
	"github.com/julianstephens/vibequest/internal/cli/transfer"
	"github.com/julianstephens/vibequest/internal/constants"
	"github.com/julianstephens/vibequest/internal/errors"
	"github.com/julianstephens/vibequest/internal/keyring"
	"github.com/julianstephens/vibequest/internal/logger"
	"github.com/julianstephens/vibequest/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"State location: a *.json file, a SQLite *.db file, or a PostgreSQL connection string. PostgreSQL credentials must NOT be embedded; use the OS keyring or VIBEQUEST_DB_CONNECTION instead." type:"string" default:"~/.config/vibequest/vibequest.db"`
	Debug   bool   `help:"Log at debug level and mirror logs to stderr."`

	Init     system.InitCmd     `cmd:"" help:"Initialize vibequest storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Week     schedule.WeekCmd   `cmd:"" help:"Show the weekly timetable."`
	Slot     schedule.SlotCmd   `cmd:"" help:"Show the entries in one timetable cell."`
	Validate system.ValidateCmd `cmd:"" help:"Check entries, projects and templates for conflicts."`
	History  system.HistoryCmd  `cmd:"" help:"List previous state revisions kept by the database."`
	Settings system.SettingsCmd `cmd:"" help:"Show or change timetable settings."`
	Entry    struct {
		Add        entries.EntryAddCmd        `cmd:"" help:"Add a new entry."`
		Edit       entries.EntryEditCmd       `cmd:"" help:"Edit an existing entry."`
		Delete     entries.EntryDeleteCmd     `cmd:"" help:"Delete an entry."`
		Complete   entries.EntryCompleteCmd   `cmd:"" help:"Complete an entry and earn XP."`
		Invalidate entries.EntryInvalidateCmd `cmd:"" help:"Mark an entry as failed."`
		Move       entries.EntryMoveCmd       `cmd:"" help:"Move an entry to another timetable cell."`
		Lock       entries.EntryLockCmd       `cmd:"" help:"Lock an entry in place."`
		Unlock     entries.EntryUnlockCmd     `cmd:"" help:"Unlock an entry."`
		List       entries.EntryListCmd       `cmd:"" help:"List entries." default:"1"`
		Recent     entries.EntryRecentCmd     `cmd:"" help:"Show the latest entries of a project."`
	} `cmd:"" help:"Manage schedule entries."`
	Project struct {
		Add    projects.ProjectAddCmd    `cmd:"" help:"Add a project."`
		Edit   projects.ProjectEditCmd   `cmd:"" help:"Edit a project."`
		Delete projects.ProjectDeleteCmd `cmd:"" help:"Delete a project."`
		List   projects.ProjectListCmd   `cmd:"" help:"List projects." default:"1"`
		Plan   projects.ProjectPlanCmd   `cmd:"" help:"Generate an AI plan for a project."`
	} `cmd:"" help:"Manage projects."`
	Template struct {
		Save   schedule.TemplateSaveCmd   `cmd:"" help:"Save a week as a template."`
		Apply  schedule.TemplateApplyCmd  `cmd:"" help:"Apply a template to a week."`
		Delete schedule.TemplateDeleteCmd `cmd:"" help:"Delete a template."`
		List   schedule.TemplateListCmd   `cmd:"" help:"List templates." default:"1"`
	} `cmd:"" help:"Manage week templates."`
	Shop struct {
		List  shop.ShopListCmd  `cmd:"" help:"Show the shop catalog." default:"1"`
		Buy   shop.ShopBuyCmd   `cmd:"" help:"Buy an item with XP."`
		Equip shop.ShopEquipCmd `cmd:"" help:"Equip an owned avatar."`
		Theme shop.ShopThemeCmd `cmd:"" help:"Select an owned theme."`
	} `cmd:"" help:"Spend XP in the shop."`
	Persona      shop.PersonaCmd      `cmd:"" help:"Show level, XP and inventory."`
	Achievements shop.AchievementsCmd `cmd:"" help:"Show the achievement gallery."`
	CSV          struct {
		Export transfer.CSVExportCmd `cmd:"" help:"Export entries as CSV."`
		Import transfer.CSVImportCmd `cmd:"" help:"Import entries from CSV."`
	} `cmd:"" name:"csv" help:"Import and export entries as CSV."`
	AI struct {
		Tags     assist.AITagsCmd     `cmd:"" help:"Suggest tags for a title or an entry."`
		Schedule assist.AIScheduleCmd `cmd:"" help:"Suggest free slots for a project."`
	} `cmd:"" name:"ai" help:"AI helpers."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage state backups."`
	Keyring struct {
		SetAPIKey     system.KeyringSetAPIKeyCmd     `cmd:"" name:"set-api-key" help:"Store the AI API key in the OS keyring."`
		SetConnection system.KeyringSetConnectionCmd `cmd:"" name:"set-connection" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get           system.KeyringGetCmd           `cmd:"" help:"Show stored secrets (masked)."`
		Delete        system.KeyringDeleteCmd        `cmd:"" help:"Delete a stored secret."`
		Status        system.KeyringStatusCmd        `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" help:"Manage secrets in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Gamified weekly scheduler: plan your week, finish quests, earn XP"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configDir := expandHome(filepath.Dir(constants.DefaultConfigPath))
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}

	store, err := openStore(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	logger.Debug("Storage selected", "location", store.Location(), "command", ctx.Command())

	appCtx := &cli.Context{
		Store:     store,
		ConfigDir: configDir,
	}

	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close storage", "error", closeErr)
	}
	errors.Fatal(err)
}

// openStore resolves the state location. VIBEQUEST_DB_CONNECTION wins, then
// an explicit --config, then a connection string stored in the keyring, then
// the default SQLite file.
func openStore(config string) (storage.Provider, error) {
	if conn := strings.TrimSpace(os.Getenv(constants.EnvDBConnection)); conn != "" {
		return storage.NewTrustedPostgresStore(conn), nil
	}
	if config == constants.DefaultConfigPath {
		if conn, err := keyring.Get(keyring.ConnectionString); err == nil && conn != "" {
			return storage.NewTrustedPostgresStore(conn), nil
		} else if err != nil {
			logger.Debug("No connection string from keyring", "error", err)
		}
	}
	if storage.IsPostgres(config) {
		return storage.Open(config)
	}
	return storage.Open(expandHome(config))
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
