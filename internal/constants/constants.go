package constants

import "time"

const (
	AppName = "tinywins"

	// Date and Time Formats
	DateFormat      = "2006-01-02"
	MonthFormat     = "2006-01"
	TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

	// StorageKey is the key the whole application state is stored under.
	StorageKey = "routineData_v1"

	// Working draft
	AnchorSlots = 3
	DefaultMood = 3
	MinMood     = 1
	MaxMood     = 5

	// Autosave timing
	DefaultSaveDebounce = 300 * time.Millisecond
	DefaultFlushDelay   = 50 * time.Millisecond

	// Storage backends
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendDiskv    = "diskv"
	BackendFile     = "file"
	BackendMemory   = "memory"

	// Keyring
	DefaultKeyringUser = "database-connection"
	ConnectionEnvVar   = "TINYWINS_DB_CONNECTION"

	// Backup
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "tinywins-"
	BackupFileSuffix = ".json"

	// Server
	DefaultServerAddr = "127.0.0.1:7450"
)
