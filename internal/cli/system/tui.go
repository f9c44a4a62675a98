package system

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/smokelog/internal/cli"
	"github.com/julianstephens/smokelog/internal/logger"
	"github.com/julianstephens/smokelog/internal/session"
	"github.com/julianstephens/smokelog/internal/tui"
)

type TuiCmd struct {
	ExportDir string `help:"Directory that receives exported summaries." type:"path" default:"."`
}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if ctx.ConfigDir != "" {
		lock, err := session.Acquire(ctx.ConfigDir, ctx.Clock())
		switch {
		case errors.Is(err, session.ErrActive):
			ctx.Printf("⚠️  %v; the most recent write wins.\n", err)
		case err != nil:
			logger.Warn("Could not acquire session lock", "error", err)
		default:
			defer func() {
				if err := lock.Release(); err != nil {
					logger.Warn("Failed to release session lock", "error", err)
				}
			}()
		}
	}

	// Automatic backup on startup, after the store has loaded.
	ctx.PerformAutomaticBackup()

	model := tui.NewModel(tui.Options{
		Store:     ctx.Store,
		Config:    ctx.Settings(),
		Location:  ctx.Loc(),
		Now:       ctx.Now,
		ExportDir: c.ExportDir,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive session failed: %w", err)
	}
	return nil
}
