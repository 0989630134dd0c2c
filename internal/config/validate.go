package config

import (
	"fmt"

	"github.com/julianstephens/tinywins/internal/constants"
	"github.com/julianstephens/tinywins/internal/utils"
)

// Validate performs validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case constants.BackendSQLite, constants.BackendFile, constants.BackendDiskv, constants.BackendMemory:
		if c.Storage.Path == "" && c.Storage.Backend != constants.BackendMemory {
			return fmt.Errorf("storage.path is required for the %s backend", c.Storage.Backend)
		}
	case constants.BackendPostgres:
		// The DSN may also come from the OS keyring, checked when the store is opened.
	default:
		return fmt.Errorf("storage.backend must be one of sqlite, postgres, diskv, file, memory (got %q)", c.Storage.Backend)
	}

	if c.Storage.Key == "" {
		return fmt.Errorf("storage.key must not be empty")
	}
	if c.Autosave.Debounce <= 0 {
		return fmt.Errorf("autosave.debounce must be > 0 (got %v)", c.Autosave.Debounce)
	}
	if c.Autosave.FlushDelay <= 0 {
		return fmt.Errorf("autosave.flush_delay must be > 0 (got %v)", c.Autosave.FlushDelay)
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("timezone %q is not a valid IANA timezone", c.Timezone)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	return nil
}
