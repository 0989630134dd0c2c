package system

import (
	"github.com/julianstephens/tinywins/internal/cli"
	"github.com/julianstephens/tinywins/internal/config"
)

// EnvCmd prints the resolved configuration and the environment variables
// that override it.
type EnvCmd struct{}

func (c *EnvCmd) Run(ctx *cli.Context) error {
	cfg := ctx.Config
	configFile := cfg.Path
	if configFile == "" {
		configFile = "(none, using defaults)"
	}
	ctx.Printf("Config file:   %s\n", configFile)
	ctx.Printf("Timezone:      %s\n", cfg.Timezone)
	ctx.Printf("Backend:       %s\n", cfg.Storage.Backend)
	ctx.Printf("Storage path:  %s\n", ctx.Store.GetConfigPath())
	ctx.Printf("Backups:       %s\n", cfg.Storage.BackupDir)
	ctx.Printf("Logs:          %s\n", cfg.Log.Dir)
	ctx.Printf("Autosave:      %s debounce, %s flush\n", cfg.Autosave.Debounce, cfg.Autosave.FlushDelay)
	ctx.Printf("Server:        %s\n", cfg.Server.Addr)
	ctx.Println()
	ctx.Println(config.Usage())
	return nil
}
