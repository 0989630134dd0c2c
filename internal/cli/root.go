package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/julianstephens/tinywins/internal/backup"
	"github.com/julianstephens/tinywins/internal/config"
	"github.com/julianstephens/tinywins/internal/logger"
	"github.com/julianstephens/tinywins/internal/persist"
	"github.com/julianstephens/tinywins/internal/storage"
	"github.com/julianstephens/tinywins/internal/tracker"
	"github.com/julianstephens/tinywins/internal/utils"
)

// Context is handed to every command's Run method.
type Context struct {
	Config   *config.Config
	Store    storage.Provider
	Gateway  *persist.Gateway
	Tracker  *tracker.Tracker
	Clock    clockwork.Clock
	Location *time.Location
	Out      io.Writer
}

// NewContext wires the tracker to a gateway over store. State is not loaded
// until Open is called.
func NewContext(cfg *config.Config, store storage.Provider, clock clockwork.Clock) (*Context, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	loc, err := utils.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	gw := persist.New(store, persist.Options{
		Key:        cfg.Storage.Key,
		Debounce:   cfg.Autosave.Debounce,
		FlushDelay: cfg.Autosave.FlushDelay,
		Clock:      clock,
	})
	tr := tracker.New(utils.Today(clock.Now(), loc))
	tr.SetPersister(gw)
	gw.Attach(tr)

	return &Context{
		Config:   cfg,
		Store:    store,
		Gateway:  gw,
		Tracker:  tr,
		Clock:    clock,
		Location: loc,
		Out:      os.Stdout,
	}, nil
}

// Now returns the current time in the configured timezone.
func (c *Context) Now() time.Time {
	return c.Clock.Now().In(c.Location)
}

// Today returns the local calendar date.
func (c *Context) Today() string {
	return utils.Today(c.Clock.Now(), c.Location)
}

// Open loads the store and restores the saved state into the tracker. An
// unreadable blob is logged and the defaults are kept.
func (c *Context) Open() error {
	if err := c.Store.Load(); err != nil {
		return err
	}
	patch, err := c.Gateway.Load()
	if err != nil {
		logger.Warn("Starting from defaults", "error", err)
		return nil
	}
	c.Tracker.Restore(patch)
	return nil
}

// Close writes anything still pending and releases the store.
func (c *Context) Close() error {
	return errors.Join(c.Gateway.Close(), c.Store.Close())
}

// BackupManager returns a backup manager for the configured store.
func (c *Context) BackupManager() *backup.Manager {
	return backup.NewManager(c.Store, c.Gateway.Key(), c.Config.Storage.BackupDir, c.Clock)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if _, err := c.BackupManager().CreateBackup(); err != nil && !errors.Is(err, backup.ErrNothingToBackup) {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Printf writes to the command output.
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

// Println writes a line to the command output.
func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}
