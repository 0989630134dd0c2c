package system

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/tinywins/internal/cli"
	"github.com/julianstephens/tinywins/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Listen address. Overrides server.addr from the config file."`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	cfg := ctx.Config.Server
	if c.Addr != "" {
		cfg.Addr = c.Addr
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.NewStoreReader(ctx.Gateway), cfg, ctx.Location, ctx.Clock)
	ctx.Printf("Serving tinywins on http://%s (Ctrl+C to stop)\n", cfg.Addr)
	return srv.Run(runCtx)
}
