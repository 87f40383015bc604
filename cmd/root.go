package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oakwood-commons/tmenu/internal/candidate"
	"github.com/oakwood-commons/tmenu/internal/cel"
	"github.com/oakwood-commons/tmenu/internal/limiter"
	"github.com/oakwood-commons/tmenu/internal/match"
	"github.com/oakwood-commons/tmenu/internal/menu"
	"github.com/oakwood-commons/tmenu/internal/ui"
	"github.com/oakwood-commons/tmenu/pkg/logger"
	"github.com/oakwood-commons/tmenu/pkg/settings"
	"github.com/oakwood-commons/tmenu/pkg/tui"
)

// ErrCancelled is returned when the user leaves the menu without choosing.
// The process exits non-zero without printing it.
var ErrCancelled = errors.New("selection cancelled")

var (
	ignoreCase  bool
	filterMode  bool
	instant     bool
	fuzzy       bool
	tokenMatch  bool
	mask        bool
	noInput     bool
	incremental bool
	quiet       bool
	fast        bool
	bottom      bool
	vertFull    bool

	lines      int
	menuHeight int
	menuWidth  int
	scrollOff  int
	prompt     string

	normalBG   string
	normalFG   string
	selectedBG string
	selectedFG string
	themeName  string
	noColor    bool

	configFile   string
	configOutput string
	where        string

	limitRecords  int
	offsetRecords int
	tailRecords   int

	startKeys      []string
	renderSnapshot bool
	snapshotWidth  int
	snapshotHeight int

	debug   bool
	logFile string
)

var (
	rootCtx   = context.Background()
	rootCfg   ui.Config
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " [flags]",
	Short: "Filter and select lines from stdin in the terminal",
	Long: `tmenu reads newline-separated candidates from stdin, lets you narrow them
by typing and prints the chosen line to stdout.

Exit status is 0 when a selection is made and 1 when the menu is cancelled
or fails.`,
	Example: "\n  ls | tmenu\n  ls | tmenu -l 10 -p 'open:'\n  git branch --format='%(refname:short)' | tmenu -z -i\n  seq 100 | tmenu --where 'int(line) % 7 == 0' --press '<CR>'\n",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadMergedConfig(resolveConfigPath(configFile))
		if err != nil {
			return err
		}
		rootCfg = cfg

		run := settings.Defaults()
		run.NoColor = noColor
		run.Interactive = !renderSnapshot
		run.LogFile = logFile
		if run.LogFile == "" {
			run.LogFile = cfg.App.Debug.LogFile
		}
		if debug {
			run.LogLevel = logger.DebugLevel
		}

		sink, err := logSink(run)
		if err != nil {
			return err
		}
		lgr := logger.Init(logger.Options{Level: run.LogLevel, Sink: sink}).
			WithValues(logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		rootCtx = settings.IntoContext(logger.WithLogger(ctx, &lgr), run)
		return nil
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMenu(rootCtx, cmd.Flags(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// logSink picks where log entries go: the configured file, or stderr when
// debugging and stderr is not the terminal the menu draws on.
func logSink(run *settings.Run) (io.Writer, error) {
	if run.LogFile != "" {
		f, err := logger.OpenSink(run.LogFile)
		if err != nil {
			return nil, err
		}
		logCloser = f
		return f, nil
	}
	if run.Debug() && !stderrIsTerminal() {
		return os.Stderr, nil
	}
	return nil, nil
}

func runMenu(ctx context.Context, flags *pflag.FlagSet, in io.Reader, out io.Writer) error {
	log := logger.FromContext(ctx)
	run := settings.FromContextOrDefaults(ctx)

	opts, err := menuOptions(flags, rootCfg, run.NoColor)
	if err != nil {
		return err
	}
	loadOpts, err := candidateLoadOptions()
	if err != nil {
		return err
	}

	var src ui.Source = candidate.New(nil)
	switch {
	case noInput:
	case fast && run.Interactive && len(startKeys) == 0:
		opts.Load = func() (ui.Source, error) {
			store, err := candidate.Load(in, loadOpts)
			if err != nil {
				return nil, err
			}
			return store, nil
		}
	default:
		store, err := candidate.Load(in, loadOpts)
		if err != nil {
			return err
		}
		log.V(1).Info("candidates loaded", "count", store.Len())
		src = store
	}

	if incremental {
		opts.Emit = func(line string) { _, _ = fmt.Fprintln(out, line) }
	}

	if !run.Interactive {
		w, h := snapshotWidth, snapshotHeight
		if w <= 0 || h <= 0 {
			dw, dh := tui.DetectTerminalSize()
			if w <= 0 {
				w = dw
			}
			if h <= 0 {
				h = dh
			}
		}
		view, _ := ui.RenderSnapshot(src, opts, ui.SnapshotConfig{
			Width:     w,
			Height:    h,
			StartKeys: startKeys,
			Plain:     run.NoColor,
		})
		_, err := fmt.Fprintln(out, view)
		return err
	}

	progOpts, cleanup := getProgramOptions()
	defer cleanup()
	res, err := ui.Run(ctx, src, opts, ui.RunConfig{StartKeys: startKeys}, progOpts...)
	if err != nil {
		return err
	}
	if !res.Accepted() {
		return ErrCancelled
	}
	for _, line := range res.Output {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("write selection: %w", err)
		}
	}
	return nil
}

// menuOptions combines the merged config with the command line. A flag given
// explicitly wins over the config value.
func menuOptions(flags *pflag.FlagSet, cfg ui.Config, plain bool) (ui.Options, error) {
	mc := cfg.UI.Menu
	intOpt := func(name string, val int, conf *int) int {
		if flags.Changed(name) {
			return val
		}
		return ui.IntValue(conf, val)
	}
	boolOpt := func(name string, val bool, conf *bool) bool {
		if flags.Changed(name) {
			return val
		}
		return ui.BoolValue(conf, val)
	}

	nLines := intOpt("lines", lines, mc.Lines)
	nHeight := intOpt("height", menuHeight, mc.Height)
	nWidth := intOpt("width", menuWidth, mc.Width)
	nScroll := intOpt("scrolloff", scrollOff, mc.ScrollOff)
	for name, v := range map[string]int{"lines": nLines, "height": nHeight, "width": nWidth, "scrolloff": nScroll} {
		if v < 0 {
			return ui.Options{}, fmt.Errorf("--%s must be non-negative, got %d", name, v)
		}
	}

	strategyName := ui.StringValue(mc.Strategy, string(match.DefaultStrategy))
	switch {
	case fuzzy:
		strategyName = string(match.StrategyFuzzy)
	case tokenMatch:
		strategyName = string(match.StrategyToken)
	}
	strategy, err := match.ParseStrategy(strategyName)
	if err != nil {
		return ui.Options{}, err
	}

	theme := ui.NoColorTheme()
	if !plain {
		if theme, err = ui.ThemeByName(cfg, themeName); err != nil {
			return ui.Options{}, err
		}
		theme = theme.WithOverrides(normalFG, normalBG, selectedFG, selectedBG)
	}

	keys, err := ui.DefaultKeyMap().ApplyOverrides(cfg.UI.Keys)
	if err != nil {
		return ui.Options{}, fmt.Errorf("config keys: %w", err)
	}

	promptText := prompt
	if !flags.Changed("prompt") {
		promptText = ui.StringValue(mc.Prompt, prompt)
	}

	return ui.Options{
		Menu: menu.Options{
			Strategy:    strategy,
			IgnoreCase:  boolOpt("ignorecase", ignoreCase, mc.IgnoreCase),
			Filter:      filterMode,
			Instant:     instant,
			Incremental: incremental,
			ScrollOff:   nScroll,
			MaxInput:    ui.IntValue(mc.MaxInput, menu.DefaultMaxBytes),
		},
		Lines:    nLines,
		Height:   nHeight,
		Width:    nWidth,
		Prompt:   promptText,
		Mask:     mask,
		Quiet:    quiet,
		Bottom:   boolOpt("bottom", bottom, mc.Bottom),
		VertFull: boolOpt("vertfull", vertFull, mc.VertFull),
		Keys:     &keys,
		Theme:    theme,
	}, nil
}

func candidateLoadOptions() (candidate.LoadOptions, error) {
	opts := candidate.LoadOptions{
		Window: limiter.Config{Limit: limitRecords, Offset: offsetRecords, Tail: tailRecords},
	}
	if err := opts.Window.Validate(); err != nil {
		return opts, err
	}
	if where != "" {
		pred, err := cel.NewPredicate(where)
		if err != nil {
			return opts, err
		}
		opts.Where = pred
	}
	return opts, nil
}

func init() { //nolint:gochecknoinits
	f := rootCmd.Flags()
	f.BoolVarP(&ignoreCase, "ignorecase", "i", false, "match case-insensitively")
	f.BoolVarP(&filterMode, "filter", "r", false, "print every match on accept, selection first")
	f.BoolVarP(&instant, "instant", "n", false, "accept as soon as a single match is left")
	f.BoolVarP(&fuzzy, "fuzzy", "z", false, "fuzzy (subsequence) matching")
	f.BoolVarP(&tokenMatch, "token", "t", false, "match every space-separated token anywhere")
	f.BoolVarP(&mask, "mask", "M", false, "draw the input as asterisks")
	f.BoolVarP(&noInput, "noinput", "Q", false, "do not read candidates from stdin")
	f.BoolVarP(&incremental, "incremental", "N", false, "print the input after every key")
	f.BoolVarP(&quiet, "quiet", "q", false, "hide the candidates until something is typed")
	f.BoolVarP(&fast, "fast", "f", false, "show the menu before stdin is fully read")
	f.BoolVarP(&bottom, "bottom", "b", false, "draw the menu on the bottom rows of the terminal")
	f.BoolVarP(&vertFull, "vertfull", "F", false, "draw a rule between the input and a vertical list")
	f.IntVarP(&lines, "lines", "l", 0, "list candidates vertically on this many rows")
	f.IntVarP(&menuHeight, "height", "H", 0, "menu height in rows including the input row")
	f.IntVarP(&menuWidth, "width", "w", 0, "menu width in columns (0 = terminal width)")
	f.StringVarP(&prompt, "prompt", "p", "", "text drawn left of the input")
	f.IntVar(&scrollOff, "scrolloff", menu.DefaultScrollOff, "items a wheel step moves by, plus one (0 = whole pages)")
	f.StringVar(&normalBG, "nb", "", "normal background color")
	f.StringVar(&normalFG, "nf", "", "normal foreground color")
	f.StringVar(&selectedBG, "sb", "", "selected background color")
	f.StringVar(&selectedFG, "sf", "", "selected foreground color")
	f.StringVar(&themeName, "theme", "", "theme name (default from config; see 'tmenu themes')")
	f.BoolVar(&noColor, "no-color", false, "disable color output")
	f.StringVar(&where, "where", "", "CEL predicate over line, index and fields that candidates must satisfy")
	f.IntVar(&limitRecords, "limit", 0, "keep only this many candidates")
	f.IntVar(&offsetRecords, "offset", 0, "skip the first N candidates")
	f.IntVar(&tailRecords, "tail", 0, "keep the last N candidates (mutually exclusive with --limit; ignores --offset)")
	f.StringArrayVar(&startKeys, "press", nil, "simulate keys on startup. Use <Key> for special keys (e.g. <CR>, <Esc>, <C-n>, <Tab>); literal text types normally")
	f.BoolVar(&renderSnapshot, "snapshot", false, "render a single frame after --press and exit")
	f.IntVar(&snapshotWidth, "snapshot-width", 0, "terminal width used by --snapshot")
	f.IntVar(&snapshotHeight, "snapshot-height", 0, "terminal height used by --snapshot")
	rootCmd.MarkFlagsMutuallyExclusive("fuzzy", "token")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config-file", "", "path to a YAML or TOML config file")
	pf.BoolVar(&debug, "debug", false, "enable debug logging")
	pf.StringVar(&logFile, "log-file", "", "append JSON logs to this file")

	rootCmd.Version = cliVersionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	configCmd.Flags().StringVarP(&configOutput, "output", "o", "yaml", "output format: yaml|toml")
	rootCmd.AddCommand(versionCmd, configCmd, themesCmd)
}

// Execute runs the root command.
func Execute() error {
	defer func() {
		if logCloser != nil {
			_ = logCloser.Close()
			logCloser = nil
		}
	}()
	return rootCmd.Execute()
}
