package ui

import (
	"strings"
	"unicode/utf8"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/tmenu/internal/menu"
)

// Page indicators of the horizontal layout. Both take the same room.
const (
	arrowPrev = " <"
	arrowNext = "> "
	arrowW    = 2
)

// layout is the geometry of one frame. All x positions are cells from the
// left edge, rows are relative to top.
type layout struct {
	width   int // menu width
	lines   int // item rows in the vertical layout; 0 is horizontal
	rule    bool
	promptW int
	inputW  int // input field width, the rest of the row when no list follows
	top     int // terminal row of the input line
	items   []menu.Item
	hasPrev bool
	hasNext bool
	hidden  bool // list suppressed by quiet mode or loading
	help    string
}

// lines returns the number of item rows, or 0 for the horizontal layout.
func (m *Model) lines() int {
	n := m.opts.Lines
	if m.opts.Height > 0 {
		n = m.opts.Height - 1
		if m.opts.VertFull {
			n--
		}
		n = max(n, 1)
	}
	if n <= 0 {
		return 0
	}
	room := m.height - 1
	if m.opts.VertFull {
		room--
	}
	return max(min(n, room), 1)
}

func (m *Model) menuWidth() int {
	if m.opts.Width > 0 && m.opts.Width < m.width {
		return m.opts.Width
	}
	return m.width
}

func (m *Model) promptWidth() int {
	if m.opts.Prompt == "" {
		return 0
	}
	return lipgloss.Width(m.opts.Prompt) + 2
}

// inputWidth is the input field width of the horizontal layout: wide enough
// for the longest candidate, but never more than a third of the menu.
func (m *Model) inputWidth() int {
	w := m.menuWidth()
	return min(cellWidth(m.src.Longest()), w/3)
}

// budget derives the room left to the list.
func (m *Model) budget() menu.Budget {
	if n := m.lines(); n > 0 {
		return menu.Budget{Lines: n}
	}
	room := m.menuWidth() - m.promptWidth() - m.inputWidth() - 2*arrowW
	return menu.Budget{Width: max(room, 1)}
}

func (m *Model) blockHeight(lines int, rule bool) int {
	if lines == 0 {
		return 1
	}
	h := 1 + min(lines, m.session.CandidateCount())
	if rule {
		h++
	}
	return h
}

func (m *Model) layout() layout {
	s := m.session
	l := layout{
		width:   m.menuWidth(),
		lines:   m.lines(),
		promptW: m.promptWidth(),
		hidden:  m.loading || (m.opts.Quiet && s.Input() == ""),
	}
	l.rule = m.opts.VertFull && l.lines > 0
	if !l.hidden {
		l.items = s.Visible()
		l.hasPrev = s.HasPrev()
		l.hasNext = s.HasNext()
	}
	if l.lines > 0 || len(l.items) == 0 {
		l.inputW = max(l.width-l.promptW, 0)
	} else {
		l.inputW = m.inputWidth()
	}
	h := m.blockHeight(l.lines, l.rule)
	if m.showHelp {
		l.help = m.help.View(m.keys)
		h += 1 + lipgloss.Height(l.help)
	}
	if m.opts.Bottom {
		l.top = max(m.height-h, 0)
	}
	return l
}

// Hit areas of a pointer position.
type area int

const (
	areaNone area = iota
	areaInput
	areaPrev
	areaNext
	areaItem
)

type hit struct {
	area area
	item int // offset into the visible page for areaItem
}

func (l layout) hit(x, y int) hit {
	row := y - l.top
	if row < 0 || x < 0 || x >= l.width {
		return hit{}
	}
	if row == 0 {
		if x >= l.promptW && x < l.promptW+l.inputW {
			return hit{area: areaInput}
		}
		if l.lines > 0 || l.hidden {
			return hit{}
		}
		return l.hitRow(x)
	}
	if l.lines == 0 || l.hidden {
		return hit{}
	}
	row--
	if l.rule {
		row--
	}
	if row >= 0 && row < len(l.items) {
		return hit{area: areaItem, item: row}
	}
	return hit{}
}

func (l layout) hitRow(x int) hit {
	x0 := l.promptW + l.inputW
	if x < x0+arrowW {
		return hit{area: areaPrev}
	}
	if x >= l.width-arrowW {
		return hit{area: areaNext}
	}
	pos := x0 + arrowW
	limit := l.width - arrowW - pos
	for i, it := range l.items {
		w := min(cellWidth(it.Text), limit)
		if x < pos+w {
			return hit{area: areaItem, item: i}
		}
		pos += w
		limit -= w
	}
	return hit{}
}

// inputView returns the visible part of the input field and the cell column
// of the cursor within it. The field keeps one cell of padding on the left
// and room for the cursor on the right.
func (m *Model) inputView(fieldW int) (string, int) {
	b := m.session.Buffer()
	pre, post := b.BeforeCursor(), b.String()[b.Cursor():]
	if m.opts.Mask {
		pre = strings.Repeat("*", utf8.RuneCountInString(pre))
		post = strings.Repeat("*", utf8.RuneCountInString(post))
	}
	room := max(fieldW-2, 0)
	if w := runewidth.StringWidth(pre); w > room {
		pre = runewidth.TruncateLeft(pre, w-room, "")
	}
	col := 1 + runewidth.StringWidth(pre)
	text := runewidth.Truncate(" "+pre+post, fieldW, "")
	return text, col
}

// cursor returns the terminal position of the text cursor.
func (m *Model) cursor(l layout) (int, int) {
	_, col := m.inputView(l.inputW)
	return l.promptW + col, l.top
}

// render draws the frame for l.
func (m *Model) render(l layout) string {
	st := m.styles
	rows := make([]string, 0, l.top+l.lines+2)
	for range l.top {
		rows = append(rows, "")
	}

	var top strings.Builder
	if l.promptW > 0 {
		top.WriteString(st.prompt.Render(fit(" "+m.opts.Prompt, l.promptW)))
	}
	field := l.inputW
	status := ""
	if m.loading {
		status = " " + m.spinner.View() + " loading"
		field = max(field-lipgloss.Width(status), 0)
	}
	text, _ := m.inputView(field)
	top.WriteString(st.normal.Render(fit(text, field)))
	if status != "" {
		top.WriteString(st.arrow.Render(status))
	}
	if l.lines == 0 && len(l.items) > 0 {
		top.WriteString(m.renderRow(l))
	}
	rows = append(rows, top.String())

	if l.lines > 0 {
		if l.rule {
			rows = append(rows, st.rule.Render(strings.Repeat("─", l.width)))
		}
		count := min(l.lines, m.session.CandidateCount())
		for i := range count {
			if i >= len(l.items) {
				rows = append(rows, st.normal.Render(fit("", l.width)))
				continue
			}
			it := l.items[i]
			style := st.normal
			if it.Selected {
				style = st.selected
			}
			rows = append(rows, style.Render(fit(" "+it.Text, l.width)))
		}
	}

	if l.help != "" {
		rows = append(rows, st.rule.Render(strings.Repeat("─", l.width)), l.help)
	}
	return strings.Join(rows, "\n")
}

// renderRow draws the horizontal list that follows the input field.
func (m *Model) renderRow(l layout) string {
	st := m.styles
	var b strings.Builder
	prev := "  "
	if l.hasPrev {
		prev = arrowPrev
	}
	b.WriteString(st.arrow.Render(prev))

	limit := l.width - l.promptW - l.inputW - 2*arrowW
	used := 0
	for _, it := range l.items {
		w := min(cellWidth(it.Text), limit-used)
		if w <= 0 {
			break
		}
		style := st.normal
		if it.Selected {
			style = st.selected
		}
		b.WriteString(style.Render(fit(" "+it.Text, w)))
		used += w
	}
	if used < limit {
		b.WriteString(st.normal.Render(strings.Repeat(" ", limit-used)))
	}

	next := "  "
	if l.hasNext {
		next = arrowNext
	}
	b.WriteString(st.arrow.Render(next))
	return b.String()
}

func pad(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return pad(runewidth.Truncate(s, w, ""), w)
}
