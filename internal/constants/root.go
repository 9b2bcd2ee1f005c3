package constants

const (
	AppName            = "vibequest"
	Version            = "v0.3.0"
	DefaultConfigPath  = "~/.config/vibequest/vibequest.db"
	DefaultKeyringUser = "database-connection"
	APIKeyKeyringUser  = "gemini-api-key"

	// StateKey is the key under which the whole application state blob is stored.
	StateKey = "vibe_focus_v12"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Environment variables
	EnvDBConnection = "VIBEQUEST_DB_CONNECTION"
	EnvAPIKey       = "VIBEQUEST_API_KEY"
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvLegacyAPIKey = "API_KEY"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "vibequest-"
	BackupFileSuffix = ".json"

	// Timetable defaults
	DefaultWakeTime  = "08:00"
	DefaultSleepTime = "22:00"
	DaysPerWeek      = 7

	// Id prefixes. The random part comes from the app's id source.
	EntryIDPrefix    = "task-"
	ProjectIDPrefix  = "p-"
	TemplateIDPrefix = "template-"

	// FallbackProjectID is assigned to entries created without a project.
	FallbackProjectID = "p1"

	// RecentEntriesPerProject is how many entries the "recent" list shows per project.
	RecentEntriesPerProject = 5
)
