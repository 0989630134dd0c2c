package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/tinywins/internal/config"
	"github.com/julianstephens/tinywins/internal/constants"
	"github.com/julianstephens/tinywins/internal/keyring"
	"github.com/julianstephens/tinywins/internal/logger"
	"github.com/julianstephens/tinywins/internal/storage"
	"github.com/julianstephens/tinywins/internal/storage/postgres"
	"github.com/julianstephens/tinywins/internal/storage/sqlite"
)

// ErrNoConnectionString is returned when the postgres backend has no DSN.
var ErrNoConnectionString = errors.New("no PostgreSQL connection string: set " + constants.ConnectionEnvVar + ", storage.dsn, or run 'tinywins keyring set'")

// NewStore builds the configured storage provider. For postgres the
// connection string is resolved from the environment, the config file or the
// OS keyring, and one read from the config file must not embed a password.
func NewStore(cfg *config.Config, creds keyring.Credentials) (storage.Provider, error) {
	switch cfg.Storage.Backend {
	case constants.BackendSQLite, "":
		return sqlite.NewStore(cfg.Storage.Path), nil
	case constants.BackendFile:
		return storage.NewJSONStore(cfg.Storage.Path), nil
	case constants.BackendDiskv:
		return storage.NewDiskvStore(cfg.Storage.Path), nil
	case constants.BackendMemory:
		return storage.NewMemoryStore(), nil
	case constants.BackendPostgres:
		connStr, src, err := creds.Resolve(cfg.Storage.DSN)
		if err != nil {
			return nil, err
		}
		if connStr == "" {
			return nil, ErrNoConnectionString
		}
		if src == keyring.SourceConfig {
			if _, err := postgres.ValidateConnString(connStr); err != nil {
				if errors.Is(err, postgres.ErrEmbeddedCredentials) {
					return nil, fmt.Errorf("%w: keep the password in %s, the OS keyring or .pgpass", err, constants.ConnectionEnvVar)
				}
				return nil, err
			}
		}
		logger.Debug("Using PostgreSQL storage", "source", string(src), "dsn", postgres.MaskPassword(connStr))
		return postgres.New(connStr), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
