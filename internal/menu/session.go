// Package menu implements the selection state machine: the input buffer, the
// paginated view of the current matches and the highlighted item, driven by
// discrete commands.
package menu

import (
	"github.com/oakwood-commons/tmenu/internal/match"
)

// DefaultScrollOff is the number of items a wheel step moves by, plus one.
const DefaultScrollOff = 4

// Options configure a Session. They are fixed for its lifetime.
type Options struct {
	Strategy   match.Strategy
	IgnoreCase bool
	// Filter emits the whole reordered match list on commit.
	Filter bool
	// Instant commits as soon as a re-match leaves exactly one item.
	Instant bool
	// Incremental reports the input text after every keyboard command.
	Incremental bool
	// ScrollOff controls wheel scrolling; 0 scrolls by pages.
	ScrollOff int
	MaxInput  int
	Budget    Budget
	Measure   Measurer
}

// Session holds the complete menu state. It is not safe for concurrent use;
// every event is applied to completion before the next.
type Session struct {
	opts    Options
	matcher match.Matcher
	src     match.Source
	budget  Budget
	measure Measurer

	buf   *Buffer
	stash string

	result match.Result
	// Positions in result.Indices. sel is -1 when nothing is selected.
	prev, curr, next int
	sel              int

	done bool
}

// New creates a session over src. Call Start before applying events.
func New(src match.Source, opts Options) *Session {
	measure := opts.Measure
	if measure == nil {
		measure = RuneWidth
	}
	return &Session{
		opts:    opts,
		matcher: match.New(opts.Strategy, opts.IgnoreCase),
		src:     src,
		budget:  opts.Budget,
		measure: measure,
		buf:     NewBuffer(opts.MaxInput),
		sel:     -1,
	}
}

// Start runs the first match. It reports a terminal transition when instant
// mode already finds a single candidate.
func (s *Session) Start() Transition {
	return s.rematch()
}

// SetCandidates swaps in candidates that finished loading after Start and
// re-matches the current input.
func (s *Session) SetCandidates(src match.Source) Transition {
	if s.done {
		return Transition{}
	}
	s.src = src
	return s.rematch()
}

// Resize replaces the size budget and recomputes the page.
func (s *Session) Resize(b Budget) Transition {
	if s.done {
		return Transition{}
	}
	s.budget = b
	s.paginate()
	s.follow()
	return Transition{Redraw: true}
}

// Input returns the current input text.
func (s *Session) Input() string { return s.buf.String() }

// Cursor returns the cursor byte offset in Input.
func (s *Session) Cursor() int { return s.buf.Cursor() }

// Buffer exposes the input buffer for rendering. Mutating it directly bypasses
// re-matching.
func (s *Session) Buffer() *Buffer { return s.buf }

// Budget returns the current size budget.
func (s *Session) Budget() Budget { return s.budget }

// Options returns the session options.
func (s *Session) Options() Options { return s.opts }

// Done reports whether a terminal transition happened.
func (s *Session) Done() bool { return s.done }

// MatchCount returns the number of current matches.
func (s *Session) MatchCount() int { return s.result.Len() }

// CandidateCount returns the number of candidates.
func (s *Session) CandidateCount() int {
	if s.src == nil {
		return 0
	}
	return s.src.Len()
}

// Matches returns the texts of all current matches in order.
func (s *Session) Matches() []string {
	out := make([]string, 0, s.result.Len())
	for p := range s.result.Indices {
		out = append(out, s.text(p))
	}
	return out
}

// Selected returns the highlighted text.
func (s *Session) Selected() (string, bool) {
	if s.sel < 0 {
		return "", false
	}
	return s.text(s.sel), true
}

// Item is one visible entry of the current page.
type Item struct {
	// Index is the candidate index in the source.
	Index    int
	Text     string
	Selected bool
}

// Visible returns the items of the current page in order.
func (s *Session) Visible() []Item {
	out := make([]Item, 0, s.next-s.curr)
	for p := s.curr; p < s.next; p++ {
		out = append(out, Item{Index: s.result.Indices[p], Text: s.text(p), Selected: p == s.sel})
	}
	return out
}

// HasPrev reports whether matches precede the current page.
func (s *Session) HasPrev() bool { return s.curr > 0 }

// HasNext reports whether matches follow the current page.
func (s *Session) HasNext() bool { return s.next < s.result.Len() }

func (s *Session) text(p int) string {
	return s.src.Text(s.result.Indices[p])
}

func (s *Session) last() int { return s.result.Len() - 1 }

func (s *Session) paginate() {
	count := s.result.Len()
	if s.budget.Vertical() {
		s.prev, s.next = Paginate(s.curr, count, s.budget.Lines, func(int) int { return 1 })
		return
	}
	s.prev, s.next = Paginate(s.curr, count, s.budget.Width, func(p int) int {
		return max(s.measure.Width(s.text(p)), 1)
	})
}

// follow re-anchors the page until it contains the selection.
func (s *Session) follow() {
	if s.sel < 0 {
		return
	}
	for s.sel >= s.next && s.next < s.result.Len() {
		s.curr = s.next
		s.paginate()
	}
	for s.sel < s.curr {
		s.curr = s.prev
		s.paginate()
	}
}

// rematch rebuilds the match list for the current input and anchors the page
// at its head. The previous selection survives when its candidate still
// matches on the first page.
func (s *Session) rematch() Transition {
	keep := -1
	if s.sel >= 0 {
		keep = s.result.Indices[s.sel]
	}
	s.result = s.matcher.Match(s.buf.String(), s.src)
	s.curr = 0
	s.paginate()
	s.sel = -1
	if s.result.Len() > 0 {
		s.sel = 0
		for p := s.curr; p < s.next; p++ {
			if s.result.Indices[p] == keep {
				s.sel = p
				break
			}
		}
	}
	if s.opts.Instant && s.result.Single() {
		return s.finish(StatusSuccess, s.text(0))
	}
	return Transition{Redraw: true}
}

func (s *Session) finish(status Status, lines ...string) Transition {
	s.done = true
	return Transition{Redraw: true, Done: true, Status: status, Output: lines}
}

// Apply runs one event to completion. Events after a terminal transition are
// ignored.
func (s *Session) Apply(ev Event) Transition {
	if s.done {
		return Transition{}
	}
	t := s.apply(ev)
	if s.opts.Incremental && t.Redraw && !t.Done && !ev.Cmd.IsPointer() {
		t.Output = append(t.Output, s.buf.String())
	}
	return t
}

func (s *Session) apply(ev Event) Transition {
	switch ev.Cmd {
	case CmdInsert:
		return s.edit(s.buf.Insert(ev.Text))
	case CmdDeleteLeft:
		return s.edit(s.buf.DeleteLeft())
	case CmdDeleteRight:
		return s.edit(s.buf.DeleteRight())
	case CmdDeleteWordLeft:
		return s.edit(s.buf.DeleteWordLeft())
	case CmdDeleteToStart, CmdClearInput:
		return s.edit(s.buf.DeleteToStart())
	case CmdDeleteToEnd:
		return s.edit(s.buf.DeleteToEnd())
	case CmdLeft:
		return s.left()
	case CmdRight:
		return s.right()
	case CmdUp:
		return s.up()
	case CmdDown:
		return s.down()
	case CmdPageUp:
		return s.pageUp()
	case CmdPageDown:
		return s.pageDown()
	case CmdHome:
		return s.home()
	case CmdEnd:
		return s.end()
	case CmdTab:
		return s.complete(true)
	case CmdBackTab:
		return s.complete(false)
	case CmdCommit:
		return s.commit()
	case CmdCommitText:
		return s.finish(StatusSuccess, s.buf.String())
	case CmdCancel:
		return s.finish(StatusFailure)
	case CmdHover:
		return s.hover(ev.Item)
	case CmdPick:
		return s.pick(ev.Item)
	case CmdScrollUp:
		return s.scrollUp()
	case CmdScrollDown:
		return s.scrollDown()
	}
	return Transition{}
}

func (s *Session) edit(changed bool) Transition {
	if !changed {
		return Transition{}
	}
	return s.rematch()
}

func (s *Session) left() Transition {
	vertical := s.budget.Vertical()
	if s.buf.Cursor() > 0 && (s.sel <= 0 || vertical) {
		s.buf.Left()
		return Transition{Redraw: true}
	}
	if vertical {
		return Transition{}
	}
	return s.up()
}

func (s *Session) right() Transition {
	if s.buf.Right() {
		return Transition{Redraw: true}
	}
	if s.budget.Vertical() {
		return Transition{}
	}
	return s.down()
}

func (s *Session) up() Transition {
	if s.sel <= 0 {
		return Transition{}
	}
	s.sel--
	if s.sel < s.curr {
		s.curr = s.prev
		s.paginate()
	}
	return Transition{Redraw: true}
}

func (s *Session) down() Transition {
	if s.sel < 0 || s.sel >= s.last() {
		return Transition{}
	}
	s.sel++
	if s.sel == s.next {
		s.curr = s.next
		s.paginate()
	}
	return Transition{Redraw: true}
}

func (s *Session) pageDown() Transition {
	if !s.HasNext() {
		return Transition{}
	}
	s.curr = s.next
	s.sel = s.curr
	s.paginate()
	return Transition{Redraw: true}
}

func (s *Session) pageUp() Transition {
	if !s.HasPrev() {
		return Transition{}
	}
	s.curr = s.prev
	s.sel = s.curr
	s.paginate()
	return Transition{Redraw: true}
}

func (s *Session) home() Transition {
	if s.sel <= 0 {
		return Transition{Redraw: s.buf.MoveStart()}
	}
	s.sel, s.curr = 0, 0
	s.paginate()
	return Transition{Redraw: true}
}

// end moves the cursor to the end of the input, or when it is already there,
// selects the last match and rebuilds the page backwards from it.
func (s *Session) end() Transition {
	if s.buf.MoveEnd() {
		return Transition{Redraw: true}
	}
	if s.sel < 0 {
		return Transition{}
	}
	if s.HasNext() {
		s.curr = s.last()
		s.paginate()
		s.curr = s.prev
		s.paginate()
		for s.HasNext() {
			s.curr++
			s.paginate()
		}
	}
	s.sel = s.last()
	return Transition{Redraw: true}
}

// complete copies the selection into the input. Repeating it on an input that
// already equals the selection cycles to the neighbour, and past the end of
// the list restores the text typed before completion started.
func (s *Session) complete(forward bool) Transition {
	if s.sel < 0 {
		return Transition{}
	}
	input := s.buf.String()
	switch {
	case input != s.text(s.sel):
		if !forward {
			s.sel = s.last()
		}
		s.stash = input
		s.buf.Set(s.text(s.sel))
	case forward && s.sel < s.last():
		s.sel++
		s.buf.Set(s.text(s.sel))
	case !forward && s.sel > 0:
		s.sel--
		s.buf.Set(s.text(s.sel))
	default:
		s.buf.Set(s.stash)
		return s.rematch()
	}
	s.follow()
	return Transition{Redraw: true}
}

func (s *Session) commit() Transition {
	if s.sel < 0 {
		return s.finish(StatusSuccess, s.buf.String())
	}
	if !s.opts.Filter {
		return s.finish(StatusSuccess, s.text(s.sel))
	}
	lines := make([]string, 0, s.result.Len())
	for p := s.sel; p < s.result.Len(); p++ {
		lines = append(lines, s.text(p))
	}
	for p := 0; p < s.sel; p++ {
		lines = append(lines, s.text(p))
	}
	return s.finish(StatusSuccess, lines...)
}

func (s *Session) visible(offset int) (int, bool) {
	p := s.curr + offset
	if offset < 0 || p >= s.next {
		return 0, false
	}
	return p, true
}

func (s *Session) hover(offset int) Transition {
	p, ok := s.visible(offset)
	if !ok || p == s.sel {
		return Transition{}
	}
	s.sel = p
	return Transition{Redraw: true}
}

func (s *Session) pick(offset int) Transition {
	p, ok := s.visible(offset)
	if !ok {
		return Transition{}
	}
	return s.finish(StatusSuccess, s.text(p))
}

func (s *Session) scrollUp() Transition {
	if s.sel < 0 || !s.HasPrev() {
		return Transition{}
	}
	if s.opts.ScrollOff > 0 {
		for i := 1; i < s.opts.ScrollOff && s.sel > 0 && s.curr > 0; i++ {
			s.curr--
			s.sel--
		}
	} else {
		s.curr = s.prev
		s.sel = s.curr
	}
	s.paginate()
	s.follow()
	return Transition{Redraw: true}
}

func (s *Session) scrollDown() Transition {
	if s.sel < 0 || !s.HasNext() {
		return Transition{}
	}
	if s.opts.ScrollOff > 0 {
		for i := 1; i < s.opts.ScrollOff && s.sel < s.last() && s.curr < s.last(); i++ {
			s.curr++
			s.sel++
		}
	} else {
		s.curr = s.next
		s.sel = s.curr
	}
	s.paginate()
	s.follow()
	return Transition{Redraw: true}
}
