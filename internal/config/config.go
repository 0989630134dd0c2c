package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Timezone string         `yaml:"timezone" env:"TINYWINS_TIMEZONE" env-default:"Local"`
	Storage  StorageConfig  `yaml:"storage"`
	Autosave AutosaveConfig `yaml:"autosave"`
	Log      LogConfig      `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`

	// Path is the config file that was read, empty when none was.
	Path string `yaml:"-"`
}

// StorageConfig selects and locates the blob store.
type StorageConfig struct {
	Backend   string `yaml:"backend"    env:"TINYWINS_STORAGE_BACKEND" env-default:"sqlite"`
	Path      string `yaml:"path"       env:"TINYWINS_STORAGE_PATH"    env-default:"~/.config/tinywins/tinywins.db"`
	Key       string `yaml:"key"        env:"TINYWINS_STORAGE_KEY"     env-default:"routineData_v1"`
	DSN       string `yaml:"dsn"        env:"TINYWINS_DB_CONNECTION"`
	BackupDir string `yaml:"backup_dir" env:"TINYWINS_BACKUP_DIR"      env-default:"~/.config/tinywins/backups"`
}

// AutosaveConfig holds persistence timing.
type AutosaveConfig struct {
	Debounce   time.Duration `yaml:"debounce"    env:"TINYWINS_AUTOSAVE_DEBOUNCE"    env-default:"300ms"`
	FlushDelay time.Duration `yaml:"flush_delay" env:"TINYWINS_AUTOSAVE_FLUSH_DELAY" env-default:"50ms"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Debug bool   `yaml:"debug" env:"TINYWINS_DEBUG"   env-default:"false"`
	Dir   string `yaml:"dir"   env:"TINYWINS_LOG_DIR" env-default:"~/.config/tinywins/logs"`
}

// ServerConfig holds the read-only HTTP API settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"             env:"TINYWINS_SERVER_ADDR"             env-default:"127.0.0.1:7450"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"TINYWINS_SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"TINYWINS_SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"TINYWINS_SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}
