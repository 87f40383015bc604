package ui

import (
	"fmt"
	"sort"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/tmenu/internal/menu"
)

// Action is what a key press resolves to: a menu command or one of the
// UI-level actions the menu does not know about.
type Action struct {
	Cmd   menu.Command
	Paste bool
	Help  bool
}

// KeyMap binds keys to menu commands. It implements help.KeyMap.
type KeyMap struct {
	commands map[menu.Command]*key.Binding
	order    []menu.Command
	Paste    key.Binding
	Help     key.Binding
}

type defaultBinding struct {
	cmd  menu.Command
	keys []string
	desc string
}

var defaultBindings = []defaultBinding{
	{menu.CmdCommit, []string{"enter", "ctrl+j", "ctrl+m"}, "select"},
	{menu.CmdCommitText, []string{"shift+enter", "ctrl+shift+j", "ctrl+shift+m"}, "select input"},
	{menu.CmdCancel, []string{"esc", "ctrl+c", "ctrl+g"}, "cancel"},
	{menu.CmdTab, []string{"tab", "ctrl+i"}, "complete"},
	{menu.CmdBackTab, []string{"shift+tab"}, "complete back"},
	{menu.CmdUp, []string{"up", "ctrl+p", "alt+h"}, "previous"},
	{menu.CmdDown, []string{"down", "ctrl+n", "alt+l"}, "next"},
	{menu.CmdLeft, []string{"left", "ctrl+b"}, "left"},
	{menu.CmdRight, []string{"right", "ctrl+f"}, "right"},
	{menu.CmdPageUp, []string{"pgup", "alt+k"}, "page up"},
	{menu.CmdPageDown, []string{"pgdown", "alt+j"}, "page down"},
	{menu.CmdHome, []string{"home", "ctrl+a", "alt+g"}, "first"},
	{menu.CmdEnd, []string{"end", "ctrl+e", "alt+G", "alt+shift+g"}, "last"},
	{menu.CmdDeleteLeft, []string{"backspace", "ctrl+h"}, "delete"},
	{menu.CmdDeleteRight, []string{"delete", "ctrl+d"}, "delete right"},
	{menu.CmdDeleteWordLeft, []string{"ctrl+w"}, "delete word"},
	{menu.CmdDeleteToStart, []string{"ctrl+u"}, "delete to start"},
	{menu.CmdDeleteToEnd, []string{"ctrl+k"}, "delete to end"},
}

// DefaultKeyMap returns the built-in bindings.
func DefaultKeyMap() KeyMap {
	km := KeyMap{commands: make(map[menu.Command]*key.Binding, len(defaultBindings))}
	for _, d := range defaultBindings {
		b := key.NewBinding(key.WithKeys(d.keys...), key.WithHelp(strings.Join(d.keys, "/"), d.desc))
		km.commands[d.cmd] = &b
		km.order = append(km.order, d.cmd)
	}
	km.Paste = key.NewBinding(
		key.WithKeys("ctrl+y", "ctrl+shift+y", "shift+insert"),
		key.WithHelp("ctrl+y", "paste"),
	)
	km.Help = key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "toggle help"))
	return km
}

// ApplyOverrides rebinds commands from a config key table. A listed command
// loses all of its default keys; an empty list disables it.
func (km KeyMap) ApplyOverrides(overrides map[string][]string) (KeyMap, error) {
	out := km.clone()
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		keys := normalizeKeys(overrides[name])
		var b *key.Binding
		switch name {
		case "paste":
			b = &out.Paste
		case "help":
			b = &out.Help
		default:
			cmd, ok := menu.ParseCommand(name)
			if !ok {
				return km, fmt.Errorf("unknown key action %q", name)
			}
			if b, ok = out.commands[cmd]; !ok {
				return km, fmt.Errorf("action %q cannot be bound to keys", name)
			}
		}
		if len(keys) == 0 {
			b.SetEnabled(false)
			continue
		}
		b.SetKeys(keys...)
		b.SetHelp(strings.Join(keys, "/"), b.Help().Desc)
		b.SetEnabled(true)
	}
	return out, nil
}

func (km KeyMap) clone() KeyMap {
	out := KeyMap{
		commands: make(map[menu.Command]*key.Binding, len(km.commands)),
		order:    append([]menu.Command(nil), km.order...),
		Paste:    km.Paste,
		Help:     km.Help,
	}
	for cmd, b := range km.commands {
		cp := *b
		out.commands[cmd] = &cp
	}
	return out
}

func normalizeKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// Binding returns the binding of a menu command.
func (km KeyMap) Binding(cmd menu.Command) (key.Binding, bool) {
	b, ok := km.commands[cmd]
	if !ok {
		return key.Binding{}, false
	}
	return *b, true
}

// Resolve maps a key press to an action. Printable text with no ctrl or alt
// modifier that no binding claims becomes an insert.
func (km KeyMap) Resolve(msg tea.KeyPressMsg) Action {
	if key.Matches(msg, km.Help) {
		return Action{Help: true}
	}
	if key.Matches(msg, km.Paste) {
		return Action{Paste: true}
	}
	for _, cmd := range km.order {
		if key.Matches(msg, *km.commands[cmd]) {
			return Action{Cmd: cmd}
		}
	}
	k := msg.Key()
	if k.Text != "" && k.Mod&(tea.ModCtrl|tea.ModAlt) == 0 {
		return Action{Cmd: menu.CmdInsert}
	}
	return Action{}
}

// ShortHelp implements help.KeyMap.
func (km KeyMap) ShortHelp() []key.Binding {
	return km.pick(menu.CmdCommit, menu.CmdCancel, menu.CmdTab, menu.CmdDown, menu.CmdUp)
}

// FullHelp implements help.KeyMap.
func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		km.pick(menu.CmdCommit, menu.CmdCommitText, menu.CmdCancel, menu.CmdTab, menu.CmdBackTab),
		km.pick(menu.CmdUp, menu.CmdDown, menu.CmdLeft, menu.CmdRight, menu.CmdPageUp, menu.CmdPageDown, menu.CmdHome, menu.CmdEnd),
		append(km.pick(menu.CmdDeleteLeft, menu.CmdDeleteRight, menu.CmdDeleteWordLeft, menu.CmdDeleteToStart, menu.CmdDeleteToEnd), km.Paste, km.Help),
	}
}

func (km KeyMap) pick(cmds ...menu.Command) []key.Binding {
	out := make([]key.Binding, 0, len(cmds))
	for _, cmd := range cmds {
		if b, ok := km.commands[cmd]; ok {
			out = append(out, *b)
		}
	}
	return out
}
