// Package tui runs a tmenu selection menu inside a host application.
package tui

import (
	"context"
	"io"
	"os"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/oakwood-commons/tmenu/internal/candidate"
	"github.com/oakwood-commons/tmenu/internal/ui"
)

// defaultFallbackTermWidth is used when terminal size cannot be detected.
const defaultFallbackTermWidth = 80

var termGetSize = term.GetSize

// DetectTerminalSize returns the best-effort terminal width and height by probing
// stdout, stderr, and stdin, then falling back to $COLUMNS and $LINES, then 80x24.
func DetectTerminalSize() (width int, height int) {
	for _, f := range []*os.File{os.Stdout, os.Stderr, os.Stdin} {
		if w, h, err := termGetSize(int(f.Fd())); err == nil && w > 0 && h > 0 { //nolint:gosec // fd fits in int
			return w, h
		}
	}
	width, height = defaultFallbackTermWidth, 24
	if col, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && col > 0 {
		width = col
	}
	if rows, err := strconv.Atoi(os.Getenv("LINES")); err == nil && rows > 0 {
		height = rows
	}
	return width, height
}

// Result is the outcome of a menu.
type Result struct {
	// Accepted is false when the user cancelled.
	Accepted bool
	// Output holds the chosen lines: one normally, every match in filter mode.
	Output []string
}

// Select shows candidates and blocks until the user commits or cancels.
// Pass WithIO to draw on something other than the process terminal.
func Select(ctx context.Context, candidates []string, opts Options, progOpts ...tea.ProgramOption) (Result, error) {
	uo, err := opts.uiOptions()
	if err != nil {
		return Result{}, err
	}
	res, err := ui.Run(ctx, candidate.New(candidates), uo, ui.RunConfig{StartKeys: opts.StartKeys}, progOpts...)
	if err != nil {
		return Result{}, err
	}
	return Result{Accepted: res.Accepted(), Output: res.Output}, nil
}

// RenderSnapshot renders the menu frame after opts.StartKeys without a
// terminal. Escape sequences are kept unless opts.NoColor is set.
func RenderSnapshot(candidates []string, opts Options, width, height int) (string, Result, error) {
	uo, err := opts.uiOptions()
	if err != nil {
		return "", Result{}, err
	}
	view, res := ui.RenderSnapshot(candidate.New(candidates), uo, ui.SnapshotConfig{
		Width:     width,
		Height:    height,
		StartKeys: opts.StartKeys,
		Plain:     opts.NoColor,
	})
	return view, Result{Accepted: res.Accepted(), Output: res.Output}, nil
}

// WithIO returns tea.ProgramOptions to set custom input/output.
func WithIO(in io.Reader, out io.Writer) []tea.ProgramOption {
	opts := []tea.ProgramOption{}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	return opts
}
