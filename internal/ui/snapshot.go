package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// SnapshotConfig configures a single-frame render without a terminal.
type SnapshotConfig struct {
	Width     int
	Height    int
	StartKeys []string
	// Plain strips every escape sequence from the frame.
	Plain bool
}

// RenderSnapshot renders the frame the model shows after the start keys. It
// returns the frame and the result when the keys ended the session.
func RenderSnapshot(src Source, opts Options, cfg SnapshotConfig) (string, Result) {
	opts.Load = nil
	m := NewModel(src, opts)
	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	m.SetSize(w, h)
	ApplyStartupKeys(m, cfg.StartKeys)

	view := m.render(m.layout())
	if cfg.Plain {
		view = ansi.Strip(view)
	}
	if cfg.Height > 0 {
		view = padSnapshotHeight(view, cfg.Height, w)
	}
	return view, m.Result()
}

func padSnapshotHeight(view string, height, width int) string {
	lines := strings.Split(strings.TrimRight(view, "\n"), "\n")
	if len(lines) >= height {
		return strings.Join(lines[:height], "\n")
	}
	padLine := strings.Repeat(" ", max(width, 1))
	for len(lines) < height {
		lines = append(lines, padLine)
	}
	return strings.Join(lines, "\n")
}
