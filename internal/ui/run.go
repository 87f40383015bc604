package ui

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/tmenu/internal/menu"
	"github.com/oakwood-commons/tmenu/pkg/logger"
)

// RunConfig configures Run beyond the model options.
type RunConfig struct {
	// Width and Height force a terminal size; 0 waits for the terminal to
	// report one.
	Width     int
	Height    int
	StartKeys []string
}

// Run starts the menu on a bubbletea program and blocks until the session
// ends. Extra ProgramOptions (custom IO, context) are passed through.
func Run(ctx context.Context, src Source, opts Options, cfg RunConfig, progOpts ...tea.ProgramOption) (Result, error) {
	log := logger.FromContext(ctx)

	m := NewModel(src, opts)
	if cfg.Width > 0 || cfg.Height > 0 {
		m.SetSize(cfg.Width, cfg.Height)
		progOpts = append(progOpts, tea.WithWindowSize(m.width, m.height))
	}
	ApplyStartupKeys(m, cfg.StartKeys)
	if m.Done() {
		log.V(1).Info("session ended before the first frame", "status", m.Result().Status)
		return m.Result(), m.Err()
	}

	progOpts = append(progOpts, tea.WithContext(ctx))
	final, err := tea.NewProgram(m, progOpts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return Result{Status: menu.StatusFailure}, ctx.Err()
		}
		return Result{}, fmt.Errorf("run menu: %w", err)
	}
	fm, ok := final.(*Model)
	if !ok || fm == nil {
		return Result{}, fmt.Errorf("run menu: unexpected final model %T", final)
	}
	if fm.Err() != nil {
		return fm.Result(), fmt.Errorf("load candidates: %w", fm.Err())
	}
	log.V(1).Info("menu finished", "status", fm.Result().Status, "lines", len(fm.Result().Output))
	return fm.Result(), nil
}
