package tui

import (
	"fmt"

	"github.com/oakwood-commons/tmenu/internal/match"
	"github.com/oakwood-commons/tmenu/internal/menu"
	"github.com/oakwood-commons/tmenu/internal/ui"
)

// Options holds host-provided settings for a menu.
type Options struct {
	Prompt string
	// Lines > 0 lists candidates vertically; 0 lays them out on one row.
	Lines  int
	Height int
	Width  int

	// Strategy is one of "ranked" (default), "token" or "fuzzy".
	Strategy    string
	IgnoreCase  bool
	Filter      bool // emit every match, selection first
	Instant     bool // commit as soon as one candidate is left
	Incremental bool // report the input after every key through Emit
	ScrollOff   *int

	Mask     bool
	Quiet    bool
	Bottom   bool
	VertFull bool

	// ThemeName picks a preset from the embedded configuration ("dark",
	// "light", "terminal", "none"). NoColor wins over it.
	ThemeName string
	NoColor   bool
	// Keys rebinds actions, e.g. {"accept": ["enter", "ctrl+j"]}.
	Keys map[string][]string

	StartKeys []string
	Emit      func(string)
}

// DefaultOptions returns the defaults of the embedded configuration.
func DefaultOptions() Options {
	scrollOff := menu.DefaultScrollOff
	opts := Options{Strategy: string(match.DefaultStrategy), ScrollOff: &scrollOff}
	cfg, err := ui.EmbeddedDefaultConfig()
	if err != nil {
		return opts
	}
	mc := cfg.UI.Menu
	opts.Lines = ui.IntValue(mc.Lines, 0)
	opts.Height = ui.IntValue(mc.Height, 0)
	opts.Width = ui.IntValue(mc.Width, 0)
	opts.Prompt = ui.StringValue(mc.Prompt, "")
	opts.Strategy = ui.StringValue(mc.Strategy, opts.Strategy)
	opts.IgnoreCase = ui.BoolValue(mc.IgnoreCase, false)
	opts.Bottom = ui.BoolValue(mc.Bottom, false)
	opts.VertFull = ui.BoolValue(mc.VertFull, false)
	scrollOff = ui.IntValue(mc.ScrollOff, scrollOff)
	opts.ThemeName = cfg.UI.Theme.Default
	return opts
}

// uiOptions converts o into the model options.
func (o Options) uiOptions() (ui.Options, error) {
	strategy, err := match.ParseStrategy(o.Strategy)
	if err != nil {
		return ui.Options{}, err
	}
	scrollOff := menu.DefaultScrollOff
	if o.ScrollOff != nil {
		scrollOff = *o.ScrollOff
	}
	if scrollOff < 0 {
		return ui.Options{}, fmt.Errorf("scrolloff must be non-negative, got %d", scrollOff)
	}

	cfg, err := ui.EmbeddedDefaultConfig()
	if err != nil {
		return ui.Options{}, err
	}
	theme := ui.NoColorTheme()
	if !o.NoColor {
		if theme, err = ui.ThemeByName(cfg, o.ThemeName); err != nil {
			return ui.Options{}, err
		}
	}
	keys, err := ui.DefaultKeyMap().ApplyOverrides(o.Keys)
	if err != nil {
		return ui.Options{}, err
	}

	return ui.Options{
		Menu: menu.Options{
			Strategy:    strategy,
			IgnoreCase:  o.IgnoreCase,
			Filter:      o.Filter,
			Instant:     o.Instant,
			Incremental: o.Incremental,
			ScrollOff:   scrollOff,
		},
		Lines:    o.Lines,
		Height:   o.Height,
		Width:    o.Width,
		Prompt:   o.Prompt,
		Mask:     o.Mask,
		Quiet:    o.Quiet,
		Bottom:   o.Bottom,
		VertFull: o.VertFull,
		Keys:     &keys,
		Theme:    theme,
		Emit:     o.Emit,
	}, nil
}
