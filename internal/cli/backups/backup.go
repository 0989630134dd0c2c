package backups

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/tinywins/internal/backup"
	"github.com/julianstephens/tinywins/internal/cli"
	"github.com/julianstephens/tinywins/internal/constants"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Gateway.SaveNow(); err != nil {
		return fmt.Errorf("failed to save current state: %w", err)
	}
	backupPath, err := ctx.BackupManager().CreateBackup()
	if err != nil {
		if errors.Is(err, backup.ErrNothingToBackup) {
			return fmt.Errorf("nothing to back up yet, plan a day first")
		}
		return fmt.Errorf("backup failed: %w", err)
	}

	ctx.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr := ctx.BackupManager()
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.Println("No backups found.")
		ctx.Printf("Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	now := ctx.Clock.Now()
	ctx.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		ctx.Printf("  %s  %s  %-8s (%s)\n",
			b.Timestamp.Format("2006-01-02 15:04"),
			filepath.Base(b.Path),
			humanize.IBytes(uint64(b.Size)),
			humanize.RelTime(b.Timestamp, now, "ago", "from now"))
	}
	ctx.Printf("\nBackup directory: %s\n", mgr.GetBackupDir())

	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Restore without asking for confirmation."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr := ctx.BackupManager()

	backupPath, err := resolveBackupPath(c.BackupFile, mgr.GetBackupDir())
	if err != nil {
		return err
	}

	if !c.Yes {
		confirmed := false
		err := huh.NewConfirm().
			Title("Replace the current state with this backup?").
			Description(fmt.Sprintf("Restore from: %s\nStop any running tinywins TUI or server first. The current state is backed up before restoring.", backupPath)).
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			ctx.Println("Restore cancelled.")
			return nil
		}
	}

	safety, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	if safety != "" {
		ctx.Printf("Previous state saved to %s\n", filepath.Base(safety))
	}

	patch, err := ctx.Gateway.Load()
	if err != nil {
		return fmt.Errorf("restored state could not be loaded: %w", err)
	}
	ctx.Tracker.Restore(patch)

	ctx.Printf("✓ Restored %d entries from %s\n", len(patch.History), filepath.Base(backupPath))
	return nil
}

// resolveBackupPath accepts an absolute path, a path relative to the working
// directory or a bare file name inside the backup directory.
func resolveBackupPath(name, backupDir string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("backup file not found: %s", name)
		}
		return name, nil
	}
	if _, err := os.Stat(name); err == nil {
		abs, err := filepath.Abs(name)
		if err != nil {
			return "", fmt.Errorf("failed to resolve backup path: %w", err)
		}
		return abs, nil
	}
	candidate := filepath.Join(backupDir, name)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", backupDir)
}
