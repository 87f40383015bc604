package ui

import (
	"strings"
	"unicode"

	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
)

// readClipboardFn is the active clipboard reader. Tests replace it through
// StubClipboard to avoid touching the real clipboard.
var readClipboardFn = clipboard.ReadAll

// StubClipboard makes clipboard reads return text and returns a restore
// function.
func StubClipboard(text string, err error) (restore func()) {
	orig := readClipboardFn
	readClipboardFn = func() (string, error) { return text, err }
	return func() { readClipboardFn = orig }
}

// clipboardMsg carries the result of an asynchronous clipboard read.
type clipboardMsg struct {
	text string
	err  error
}

func readClipboard() tea.Msg {
	text, err := readClipboardFn()
	return clipboardMsg{text: text, err: err}
}

// pasteLine reduces pasted text to its first line with control characters
// removed.
func pasteLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, line)
}
