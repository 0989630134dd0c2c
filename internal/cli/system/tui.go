package system

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tinywins/internal/cli"
	"github.com/julianstephens/tinywins/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	// Back up on startup, after the state has loaded
	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(ctx.Tracker, ctx.Clock, ctx.Location), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return ctx.Gateway.Close()
}
