// Package keyring keeps the postgres connection string in the OS keyring
// and resolves which connection string a run should use.
package keyring

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/tinywins/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Source says where a resolved connection string came from.
type Source string

const (
	SourceNone    Source = ""
	SourceEnv     Source = "env"
	SourceConfig  Source = "config"
	SourceKeyring Source = "keyring"
)

// Credentials stores secrets under one keyring service/user pair.
type Credentials struct {
	Service string
	User    string
}

// Default returns the application's credential slot.
func Default() Credentials {
	return Credentials{Service: constants.AppName, User: constants.DefaultKeyringUser}
}

// Get retrieves the connection string. Returns ErrNotFound if nothing is stored.
func (c Credentials) Get() (string, error) {
	connStr, err := keyring.Get(c.Service, c.User)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

// Set stores the connection string.
func (c Credentials) Set(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(c.Service, c.User, connStr); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// Delete removes the connection string.
func (c Credentials) Delete() error {
	if err := keyring.Delete(c.Service, c.User); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// IsAvailable is a best-effort probe of the OS keyring.
func (c Credentials) IsAvailable() bool {
	_, err := keyring.Get(c.Service, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

// Resolve picks the connection string for this run.
// Order: the TINYWINS_DB_CONNECTION env var, then configured, then the keyring.
// A missing keyring entry is not an error; SourceNone is returned instead.
func (c Credentials) Resolve(configured string) (string, Source, error) {
	if v := os.Getenv(constants.ConnectionEnvVar); v != "" {
		return v, SourceEnv, nil
	}
	if configured != "" {
		return configured, SourceConfig, nil
	}
	connStr, err := c.Get()
	switch {
	case err == nil:
		return connStr, SourceKeyring, nil
	case errors.Is(err, ErrNotFound):
		return "", SourceNone, nil
	default:
		return "", SourceNone, err
	}
}

// Status summarises the keyring slot for diagnostics.
type Status struct {
	Available bool
	Stored    bool
}

// Status reports whether the keyring works and holds a connection string.
func (c Credentials) Status() Status {
	st := Status{Available: c.IsAvailable()}
	if !st.Available {
		return st
	}
	_, err := c.Get()
	st.Stored = err == nil
	return st
}
