package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "habitkit"
	DefaultConfigPath  = "~/.config/habitkit/habitkit.db"
	DefaultKeyringUser = "database-connection"
	APIKeyKeyringUser  = "openai-api-key"
	APIKeyEnvVar       = "HABITKIT_OPENAI_API_KEY"
	DBConnectionEnvVar = "HABITKIT_DB_CONNECTION"
	Version            = "v0.2.0"

	// DateFormat is the standard calendar-day format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitkit-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "habitkit-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.habitkit"

	// Inference constants
	DefaultInferenceModel   = "gpt-4o-mini"
	DefaultInferenceRetries = 3
	InferenceTimeout        = 30 * time.Second
)

// Session States
const (
	StateHabits SessionState = iota
	StateAddHabit
	StateConfirmDelete
	StateConfirmArchive
)
