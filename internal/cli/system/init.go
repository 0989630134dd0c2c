package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/tinywins/internal/backup"
	"github.com/julianstephens/tinywins/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Overwrite existing state with an empty one. A backup is taken first."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	existing, err := ctx.Store.Get(ctx.Gateway.Key())
	if err != nil {
		return fmt.Errorf("failed to read existing state: %w", err)
	}

	if len(existing) > 0 && !c.Force {
		ctx.Printf("tinywins storage already initialized at: %s\n", ctx.Store.GetConfigPath())
		return nil
	}

	if len(existing) > 0 {
		path, err := ctx.BackupManager().CreateBackup()
		if err != nil && !errors.Is(err, backup.ErrNothingToBackup) {
			return fmt.Errorf("failed to back up existing state: %w", err)
		}
		if path != "" {
			ctx.Printf("Backed up existing state to: %s\n", path)
		}
	}

	if err := ctx.Gateway.SaveNow(); err != nil {
		return fmt.Errorf("failed to write initial state: %w", err)
	}
	ctx.Printf("Initialized tinywins storage (%s) at: %s\n", ctx.Store.Backend(), ctx.Store.GetConfigPath())
	return nil
}
