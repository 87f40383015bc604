package ui

import (
	"strings"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
)

// ApplyStartupKeys simulates keypresses before the first frame. Tokens mix
// literal text with Vim-like key names, e.g. "foo<Tab><CR>". A leading
// backslash makes the whole token literal. Keys after the session ends are
// dropped.
func ApplyStartupKeys(m *Model, keys []string) {
	if len(keys) == 0 || m == nil {
		return
	}
	press := func(msg tea.KeyPressMsg) bool {
		if m.Done() {
			return false
		}
		m.Update(msg)
		return true
	}
	typeText := func(text string) bool {
		for _, r := range text {
			if !press(tea.KeyPressMsg{Code: r, Text: string(r)}) {
				return false
			}
		}
		return true
	}

	for _, raw := range keys {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}
		if strings.HasPrefix(token, `\`) {
			if !typeText(strings.TrimPrefix(token, `\`)) {
				return
			}
			continue
		}
		for _, segment := range parseTokenSegments(token) {
			if !segment.isKey {
				if !typeText(segment.text) {
					return
				}
				continue
			}
			msg, ok := keyMsgFromToken(segment.text)
			if !ok {
				// Unknown names are typed as they were written.
				if !typeText(segment.text) {
					return
				}
				continue
			}
			if !press(msg) {
				return
			}
		}
	}
}

// tokenSegment is a parsed part of a token: a <key> name or literal text.
type tokenSegment struct {
	text  string
	isKey bool
}

// parseTokenSegments splits a token into key names and literal text.
// Example: "<F1>rwo" -> [{"<F1>", key}, {"rwo", text}]
func parseTokenSegments(token string) []tokenSegment {
	var segments []tokenSegment
	remaining := token
	for len(remaining) > 0 {
		start := strings.Index(remaining, "<")
		if start == -1 {
			segments = append(segments, tokenSegment{text: remaining})
			break
		}
		if start > 0 {
			segments = append(segments, tokenSegment{text: remaining[:start]})
		}
		end := strings.Index(remaining[start:], ">")
		if end == -1 {
			segments = append(segments, tokenSegment{text: remaining[start:]})
			break
		}
		segments = append(segments, tokenSegment{text: remaining[start : start+end+1], isKey: true})
		remaining = remaining[start+end+1:]
	}
	return segments
}

var namedKeys = map[string]rune{
	"esc":      tea.KeyEscape,
	"escape":   tea.KeyEscape,
	"cr":       tea.KeyEnter,
	"enter":    tea.KeyEnter,
	"return":   tea.KeyEnter,
	"tab":      tea.KeyTab,
	"bs":       tea.KeyBackspace,
	"del":      tea.KeyDelete,
	"delete":   tea.KeyDelete,
	"left":     tea.KeyLeft,
	"right":    tea.KeyRight,
	"up":       tea.KeyUp,
	"down":     tea.KeyDown,
	"home":     tea.KeyHome,
	"end":      tea.KeyEnd,
	"pageup":   tea.KeyPgUp,
	"pagedown": tea.KeyPgDown,
	"pgup":     tea.KeyPgUp,
	"pgdown":   tea.KeyPgDown,
	"insert":   tea.KeyInsert,
	"f1":       tea.KeyF1,
	"f2":       tea.KeyF2,
	"f3":       tea.KeyF3,
	"f4":       tea.KeyF4,
	"f5":       tea.KeyF5,
	"f6":       tea.KeyF6,
	"f7":       tea.KeyF7,
	"f8":       tea.KeyF8,
	"f9":       tea.KeyF9,
	"f10":      tea.KeyF10,
	"f11":      tea.KeyF11,
	"f12":      tea.KeyF12,
}

// keyMsgFromToken parses a <...> key name. Modifier prefixes C- (ctrl),
// M- or A- (alt) and S- (shift) combine, e.g. <C-w>, <M-G>, <S-Tab>, <S-CR>.
func keyMsgFromToken(token string) (tea.KeyPressMsg, bool) {
	if !strings.HasPrefix(token, "<") || !strings.HasSuffix(token, ">") {
		return tea.KeyPressMsg{}, false
	}
	inner := token[1 : len(token)-1]
	if strings.EqualFold(inner, "C-[") {
		return tea.KeyPressMsg{Code: tea.KeyEscape}, true
	}
	var mod tea.KeyMod
	for len(inner) > 2 && inner[1] == '-' {
		switch inner[0] {
		case 'C', 'c':
			mod |= tea.ModCtrl
		case 'M', 'm', 'A', 'a':
			mod |= tea.ModAlt
		case 'S', 's':
			mod |= tea.ModShift
		default:
			return tea.KeyPressMsg{}, false
		}
		inner = inner[2:]
	}

	lower := strings.ToLower(inner)
	if lower == "space" {
		inner, lower = " ", " "
	}
	if code, ok := namedKeys[lower]; ok {
		return tea.KeyPressMsg{Code: code, Mod: mod}, true
	}
	r, size := utf8.DecodeRuneInString(inner)
	if size != len(inner) || r == utf8.RuneError {
		return tea.KeyPressMsg{}, false
	}
	if mod == 0 || mod == tea.ModShift {
		return tea.KeyPressMsg{Code: r, Text: inner}, true
	}
	// Modified letters are reported lower-case with the shift bit, the way
	// terminals with keyboard enhancements send them.
	if lr := []rune(strings.ToLower(inner))[0]; lr != r {
		return tea.KeyPressMsg{Code: lr, ShiftedCode: r, Mod: mod | tea.ModShift}, true
	}
	return tea.KeyPressMsg{Code: r, Mod: mod}, true
}
