package ui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/tmenu/internal/menu"
)

func keyPress(code rune, mod tea.KeyMod) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Mod: mod}
}

func textPress(s string) tea.KeyPressMsg {
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestDefaultKeyMapResolve(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyPressMsg
		want Action
	}{
		{"enter", keyPress(tea.KeyEnter, 0), Action{Cmd: menu.CmdCommit}},
		{"ctrl+j", keyPress('j', tea.ModCtrl), Action{Cmd: menu.CmdCommit}},
		{"shift+enter", keyPress(tea.KeyEnter, tea.ModShift), Action{Cmd: menu.CmdCommitText}},
		{"esc", keyPress(tea.KeyEscape, 0), Action{Cmd: menu.CmdCancel}},
		{"ctrl+c", keyPress('c', tea.ModCtrl), Action{Cmd: menu.CmdCancel}},
		{"tab", keyPress(tea.KeyTab, 0), Action{Cmd: menu.CmdTab}},
		{"shift+tab", keyPress(tea.KeyTab, tea.ModShift), Action{Cmd: menu.CmdBackTab}},
		{"ctrl+n", keyPress('n', tea.ModCtrl), Action{Cmd: menu.CmdDown}},
		{"alt+h", keyPress('h', tea.ModAlt), Action{Cmd: menu.CmdUp}},
		{"pgdown", keyPress(tea.KeyPgDown, 0), Action{Cmd: menu.CmdPageDown}},
		{"alt+g", keyPress('g', tea.ModAlt), Action{Cmd: menu.CmdHome}},
		{"backspace", keyPress(tea.KeyBackspace, 0), Action{Cmd: menu.CmdDeleteLeft}},
		{"ctrl+w", keyPress('w', tea.ModCtrl), Action{Cmd: menu.CmdDeleteWordLeft}},
		{"ctrl+u", keyPress('u', tea.ModCtrl), Action{Cmd: menu.CmdDeleteToStart}},
		{"ctrl+k", keyPress('k', tea.ModCtrl), Action{Cmd: menu.CmdDeleteToEnd}},
		{"ctrl+y", keyPress('y', tea.ModCtrl), Action{Paste: true}},
		{"f1", keyPress(tea.KeyF1, 0), Action{Help: true}},
		{"text", textPress("x"), Action{Cmd: menu.CmdInsert}},
		{"space", tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}, Action{Cmd: menu.CmdInsert}},
		{"unbound ctrl", keyPress('x', tea.ModCtrl), Action{}},
		{"unbound key", keyPress(tea.KeyF5, 0), Action{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, km.Resolve(tt.msg))
		})
	}
}

func TestKeyMapApplyOverrides(t *testing.T) {
	base := DefaultKeyMap()
	km, err := base.ApplyOverrides(map[string][]string{
		"accept": {"ctrl+o", " "},
		"cancel": {},
		"help":   {"f2"},
	})
	require.NoError(t, err)

	assert.Equal(t, Action{Cmd: menu.CmdCommit}, km.Resolve(keyPress('o', tea.ModCtrl)))
	assert.Equal(t, Action{}, km.Resolve(keyPress(tea.KeyEnter, 0)), "enter lost its binding")
	assert.Equal(t, Action{}, km.Resolve(keyPress(tea.KeyEscape, 0)), "cancel is disabled")
	assert.Equal(t, Action{Help: true}, km.Resolve(keyPress(tea.KeyF2, 0)))

	b, ok := km.Binding(menu.CmdCommit)
	require.True(t, ok)
	assert.Equal(t, []string{"ctrl+o"}, b.Keys())
	assert.Equal(t, "ctrl+o", b.Help().Key)
	assert.Equal(t, "select", b.Help().Desc)

	// The receiver keeps its bindings.
	assert.Equal(t, Action{Cmd: menu.CmdCommit}, base.Resolve(keyPress(tea.KeyEnter, 0)))
	assert.Equal(t, Action{Cmd: menu.CmdCancel}, base.Resolve(keyPress(tea.KeyEscape, 0)))
}

func TestKeyMapApplyOverridesErrors(t *testing.T) {
	_, err := DefaultKeyMap().ApplyOverrides(map[string][]string{"launch": {"f5"}})
	require.ErrorContains(t, err, `unknown key action "launch"`)

	_, err = DefaultKeyMap().ApplyOverrides(map[string][]string{"pick": {"f5"}})
	require.ErrorContains(t, err, `action "pick" cannot be bound to keys`)
}

func TestKeyMapHelpGroups(t *testing.T) {
	km := DefaultKeyMap()
	assert.Len(t, km.ShortHelp(), 5)

	groups := km.FullHelp()
	require.Len(t, groups, 3)
	total := 0
	for _, g := range groups {
		total += len(g)
	}
	// Every command binding plus paste and help.
	assert.Equal(t, len(defaultBindings)+2, total)
}
