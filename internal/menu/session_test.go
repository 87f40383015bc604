package menu

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/tmenu/internal/match"
)

func numbered(n int) match.Strings {
	out := make(match.Strings, n)
	for i := range out {
		out[i] = fmt.Sprintf("c%d", i)
	}
	return out
}

func start(t *testing.T, src match.Source, opts Options) *Session {
	t.Helper()
	s := New(src, opts)
	tr := s.Start()
	require.False(t, tr.Done)
	return s
}

func visibleTexts(s *Session) []string {
	var out []string
	for _, it := range s.Visible() {
		out = append(out, it.Text)
	}
	return out
}

func selected(t *testing.T, s *Session) string {
	t.Helper()
	text, ok := s.Selected()
	require.True(t, ok, "expected a selection")
	return text
}

func insert(text string) Event { return Event{Cmd: CmdInsert, Text: text} }

func cmd(c Command) Event { return Event{Cmd: c} }

func TestRankedMatchOrder(t *testing.T) {
	s := start(t, match.Strings{"apple", "banana", "grape"}, Options{Budget: Budget{Lines: 5}})
	tr := s.Apply(insert("a"))
	assert.True(t, tr.Redraw)
	assert.Equal(t, []string{"apple", "banana", "grape"}, s.Matches())
	assert.Equal(t, "apple", selected(t, s))
}

func TestTokenMatchOrder(t *testing.T) {
	s := start(t, match.Strings{"foo bar", "bar foo", "baz"}, Options{
		Strategy: match.StrategyToken,
		Budget:   Budget{Lines: 5},
	})
	s.Apply(insert("foo bar"))
	assert.Equal(t, []string{"foo bar", "bar foo"}, s.Matches())
}

func TestCommitEmptyInputWithoutSelection(t *testing.T) {
	s := start(t, match.Strings{}, Options{Budget: Budget{Lines: 5}})
	_, ok := s.Selected()
	require.False(t, ok)

	tr := s.Apply(cmd(CmdCommit))
	assert.True(t, tr.Done)
	assert.Equal(t, StatusSuccess, tr.Status)
	assert.Equal(t, []string{""}, tr.Output)
	assert.True(t, s.Done())
}

func TestCommitRawTextWhenNothingMatches(t *testing.T) {
	s := start(t, match.Strings{"alpha"}, Options{Budget: Budget{Lines: 5}})
	s.Apply(insert("zzz"))
	assert.Equal(t, 0, s.MatchCount())

	tr := s.Apply(cmd(CmdCommit))
	assert.Equal(t, []string{"zzz"}, tr.Output)
}

func TestInsertAtCapacityIsIgnored(t *testing.T) {
	s := start(t, match.Strings{"abc"}, Options{MaxInput: 3, Budget: Budget{Lines: 5}})
	s.Apply(insert("abc"))

	tr := s.Apply(insert("d"))
	assert.False(t, tr.Redraw)
	assert.Equal(t, "abc", s.Input())
	assert.Equal(t, 3, s.Cursor())
}

func TestUnchangedEditDoesNotRedraw(t *testing.T) {
	s := start(t, numbered(3), Options{Budget: Budget{Lines: 5}})
	assert.False(t, s.Apply(cmd(CmdDeleteLeft)).Redraw)
	assert.False(t, s.Apply(cmd(CmdDeleteWordLeft)).Redraw)
	assert.False(t, s.Apply(cmd(CmdDeleteToEnd)).Redraw)
}

func TestVerticalNavigation(t *testing.T) {
	s := start(t, numbered(10), Options{Budget: Budget{Lines: 3}})
	assert.Equal(t, []string{"c0", "c1", "c2"}, visibleTexts(s))
	assert.False(t, s.HasPrev())
	assert.True(t, s.HasNext())

	s.Apply(cmd(CmdDown))
	s.Apply(cmd(CmdDown))
	assert.Equal(t, "c2", selected(t, s))
	assert.Equal(t, []string{"c0", "c1", "c2"}, visibleTexts(s))

	s.Apply(cmd(CmdDown))
	assert.Equal(t, "c3", selected(t, s))
	assert.Equal(t, []string{"c3", "c4", "c5"}, visibleTexts(s))
	assert.True(t, s.HasPrev())

	s.Apply(cmd(CmdUp))
	assert.Equal(t, "c2", selected(t, s))
	assert.Equal(t, []string{"c0", "c1", "c2"}, visibleTexts(s))

	s.Apply(cmd(CmdUp))
	s.Apply(cmd(CmdUp))
	assert.False(t, s.Apply(cmd(CmdUp)).Redraw)
	assert.Equal(t, "c0", selected(t, s))
}

func TestVerticalLeftRightOnlyMoveCursor(t *testing.T) {
	s := start(t, numbered(10), Options{Budget: Budget{Lines: 3}})
	assert.False(t, s.Apply(cmd(CmdLeft)).Redraw)
	assert.False(t, s.Apply(cmd(CmdRight)).Redraw)
	assert.Equal(t, "c0", selected(t, s))

	s.Apply(insert("c"))
	s.Apply(cmd(CmdDown))
	require.True(t, s.Apply(cmd(CmdLeft)).Redraw)
	assert.Equal(t, 0, s.Cursor())
	assert.Equal(t, "c1", selected(t, s))
}

func TestPaging(t *testing.T) {
	s := start(t, numbered(10), Options{Budget: Budget{Lines: 3}})

	assert.False(t, s.Apply(cmd(CmdPageUp)).Redraw)

	s.Apply(cmd(CmdPageDown))
	assert.Equal(t, "c3", selected(t, s))
	s.Apply(cmd(CmdPageDown))
	s.Apply(cmd(CmdPageDown))
	assert.Equal(t, []string{"c9"}, visibleTexts(s))
	assert.Equal(t, "c9", selected(t, s))
	assert.False(t, s.Apply(cmd(CmdPageDown)).Redraw)

	s.Apply(cmd(CmdPageUp))
	assert.Equal(t, []string{"c6", "c7", "c8"}, visibleTexts(s))
	assert.Equal(t, "c6", selected(t, s))
}

func TestHomeAndEnd(t *testing.T) {
	s := start(t, numbered(10), Options{Budget: Budget{Lines: 3}})

	s.Apply(cmd(CmdEnd))
	assert.Equal(t, "c9", selected(t, s))
	assert.Equal(t, []string{"c7", "c8", "c9"}, visibleTexts(s))

	s.Apply(cmd(CmdHome))
	assert.Equal(t, "c0", selected(t, s))
	assert.Equal(t, []string{"c0", "c1", "c2"}, visibleTexts(s))

	// With the cursor inside the text, Home and End move the cursor first.
	s.Apply(insert("c"))
	s.Apply(cmd(CmdHome))
	assert.Equal(t, 0, s.Cursor())
	assert.Equal(t, "c0", selected(t, s))
	s.Apply(cmd(CmdEnd))
	assert.Equal(t, 1, s.Cursor())
	assert.Equal(t, "c0", selected(t, s))
	s.Apply(cmd(CmdEnd))
	assert.Equal(t, "c9", selected(t, s))
}

func TestHorizontalNavigation(t *testing.T) {
	padded := MeasureFunc(func(text string) int { return len(text) + 2 })
	s := start(t, match.Strings{"a1", "a2", "a3", "a4", "a5"}, Options{
		Budget:  Budget{Width: 10},
		Measure: padded,
	})
	assert.Equal(t, []string{"a1", "a2"}, visibleTexts(s))

	s.Apply(insert("a"))
	require.True(t, s.Apply(cmd(CmdLeft)).Redraw)
	assert.Equal(t, 0, s.Cursor())
	assert.Equal(t, "a1", selected(t, s))

	s.Apply(cmd(CmdRight))
	assert.Equal(t, 1, s.Cursor())
	s.Apply(cmd(CmdRight))
	assert.Equal(t, "a2", selected(t, s))
	s.Apply(cmd(CmdRight))
	assert.Equal(t, "a3", selected(t, s))
	assert.Equal(t, []string{"a3", "a4"}, visibleTexts(s))

	// Once something past the head is selected, Left walks the list.
	s.Apply(cmd(CmdLeft))
	assert.Equal(t, "a2", selected(t, s))
	assert.Equal(t, []string{"a1", "a2"}, visibleTexts(s))
	assert.Equal(t, 1, s.Cursor())
}

func TestTabCyclesAndRestores(t *testing.T) {
	s := start(t, match.Strings{"alpha", "alps", "beta"}, Options{Budget: Budget{Lines: 5}})
	s.Apply(insert("al"))
	require.Equal(t, []string{"alpha", "alps"}, s.Matches())

	s.Apply(cmd(CmdTab))
	assert.Equal(t, "alpha", s.Input())
	assert.Equal(t, len("alpha"), s.Cursor())
	s.Apply(cmd(CmdTab))
	assert.Equal(t, "alps", s.Input())
	assert.Equal(t, "alps", selected(t, s))
	s.Apply(cmd(CmdTab))
	assert.Equal(t, "al", s.Input())
	assert.Equal(t, []string{"alpha", "alps"}, s.Matches())
}

func TestBackTabStartsFromLast(t *testing.T) {
	s := start(t, match.Strings{"alpha", "alps", "beta"}, Options{Budget: Budget{Lines: 5}})
	s.Apply(insert("al"))

	s.Apply(cmd(CmdBackTab))
	assert.Equal(t, "alps", s.Input())
	s.Apply(cmd(CmdBackTab))
	assert.Equal(t, "alpha", s.Input())
	s.Apply(cmd(CmdBackTab))
	assert.Equal(t, "al", s.Input())
}

func TestTabKeepsSelectionVisible(t *testing.T) {
	s := start(t, numbered(10), Options{Budget: Budget{Lines: 3}})
	s.Apply(cmd(CmdBackTab))
	assert.Equal(t, "c9", s.Input())
	assert.Contains(t, visibleTexts(s), "c9")
}

func TestFilterCommitRotatesList(t *testing.T) {
	s := start(t, match.Strings{"a", "b", "c", "d"}, Options{Filter: true, Budget: Budget{Lines: 5}})
	s.Apply(cmd(CmdDown))
	s.Apply(cmd(CmdDown))

	tr := s.Apply(cmd(CmdCommit))
	assert.Equal(t, []string{"c", "d", "a", "b"}, tr.Output)
}

func TestCommitTextIgnoresSelection(t *testing.T) {
	s := start(t, match.Strings{"abc"}, Options{Budget: Budget{Lines: 5}})
	s.Apply(insert("a"))
	tr := s.Apply(cmd(CmdCommitText))
	assert.Equal(t, StatusSuccess, tr.Status)
	assert.Equal(t, []string{"a"}, tr.Output)
}

func TestCancel(t *testing.T) {
	s := start(t, numbered(3), Options{Budget: Budget{Lines: 5}})
	tr := s.Apply(cmd(CmdCancel))
	assert.True(t, tr.Done)
	assert.Equal(t, StatusFailure, tr.Status)
	assert.Empty(t, tr.Output)

	assert.Equal(t, Transition{}, s.Apply(insert("x")))
	assert.Equal(t, "", s.Input())
}

func TestInstantCommitsSingleMatch(t *testing.T) {
	s := start(t, match.Strings{"apple", "banana", "cherry"}, Options{Instant: true, Budget: Budget{Lines: 5}})
	tr := s.Apply(insert("ch"))
	assert.True(t, tr.Done)
	assert.Equal(t, []string{"cherry"}, tr.Output)
}

func TestInstantAtStartup(t *testing.T) {
	s := New(match.Strings{"only"}, Options{Instant: true, Budget: Budget{Lines: 5}})
	tr := s.Start()
	assert.True(t, tr.Done)
	assert.Equal(t, []string{"only"}, tr.Output)
}

func TestIncrementalReportsInput(t *testing.T) {
	s := start(t, numbered(5), Options{Incremental: true, Budget: Budget{Lines: 5}})

	assert.Equal(t, []string{"c"}, s.Apply(insert("c")).Output)
	assert.Equal(t, []string{"c"}, s.Apply(cmd(CmdDown)).Output)
	assert.Empty(t, s.Apply(Event{Cmd: CmdHover, Item: 2}).Output)

	tr := s.Apply(cmd(CmdCommit))
	assert.Equal(t, []string{"c2"}, tr.Output)
}

func TestIncrementalSkipsNoOps(t *testing.T) {
	s := start(t, numbered(3), Options{Incremental: true, Budget: Budget{Lines: 5}})

	assert.Empty(t, s.Apply(cmd(CmdPageDown)).Output, "no next page")
	assert.Empty(t, s.Apply(cmd(CmdUp)).Output, "already at the top")
	assert.Empty(t, s.Apply(cmd(CmdDeleteLeft)).Output, "nothing to delete")
	assert.Equal(t, []string{"c"}, s.Apply(insert("c")).Output)
}

func TestHoverAndPick(t *testing.T) {
	s := start(t, numbered(10), Options{Budget: Budget{Lines: 3}})
	s.Apply(cmd(CmdPageDown))

	require.True(t, s.Apply(Event{Cmd: CmdHover, Item: 1}).Redraw)
	assert.Equal(t, "c4", selected(t, s))
	assert.False(t, s.Apply(Event{Cmd: CmdHover, Item: 1}).Redraw)
	assert.False(t, s.Apply(Event{Cmd: CmdHover, Item: 5}).Redraw)
	assert.False(t, s.Apply(Event{Cmd: CmdPick, Item: -1}).Done)

	tr := s.Apply(Event{Cmd: CmdPick, Item: 2})
	assert.True(t, tr.Done)
	assert.Equal(t, []string{"c5"}, tr.Output)
}

func TestClearInput(t *testing.T) {
	s := start(t, numbered(3), Options{Budget: Budget{Lines: 5}})
	s.Apply(insert("c1"))
	require.Equal(t, 1, s.MatchCount())

	s.Apply(Event{Cmd: CmdClearInput})
	assert.Equal(t, "", s.Input())
	assert.Equal(t, 3, s.MatchCount())
}

func TestScrollByStep(t *testing.T) {
	s := start(t, numbered(10), Options{ScrollOff: DefaultScrollOff, Budget: Budget{Lines: 3}})

	s.Apply(cmd(CmdScrollDown))
	assert.Equal(t, []string{"c3", "c4", "c5"}, visibleTexts(s))
	assert.Equal(t, "c3", selected(t, s))

	s.Apply(cmd(CmdScrollUp))
	assert.Equal(t, []string{"c0", "c1", "c2"}, visibleTexts(s))
	assert.Equal(t, "c0", selected(t, s))
	assert.False(t, s.Apply(cmd(CmdScrollUp)).Redraw)
}

func TestScrollByPage(t *testing.T) {
	s := start(t, numbered(10), Options{Budget: Budget{Lines: 3}})
	s.Apply(cmd(CmdScrollDown))
	assert.Equal(t, "c3", selected(t, s))
	s.Apply(cmd(CmdScrollUp))
	assert.Equal(t, "c0", selected(t, s))
}

func TestSelectionSurvivesRematch(t *testing.T) {
	s := start(t, match.Strings{"apple", "apricot", "banana"}, Options{Budget: Budget{Lines: 5}})
	s.Apply(cmd(CmdDown))
	require.Equal(t, "apricot", selected(t, s))

	s.Apply(insert("ap"))
	assert.Equal(t, "apricot", selected(t, s))

	s.Apply(insert("r"))
	assert.Equal(t, "apricot", selected(t, s))

	s.Apply(cmd(CmdDeleteToStart))
	assert.Equal(t, 3, s.MatchCount())
	assert.Equal(t, "apricot", selected(t, s))

	s.Apply(insert("ban"))
	assert.Equal(t, "banana", selected(t, s))
}

func TestResizeKeepsSelectionVisible(t *testing.T) {
	s := start(t, numbered(10), Options{Budget: Budget{Lines: 3}})
	s.Apply(cmd(CmdEnd))

	tr := s.Resize(Budget{Lines: 2})
	assert.True(t, tr.Redraw)
	assert.Contains(t, visibleTexts(s), "c9")
	assert.Equal(t, Budget{Lines: 2}, s.Budget())
}

func TestLateCandidates(t *testing.T) {
	s := start(t, nil, Options{Budget: Budget{Lines: 5}})
	assert.Equal(t, 0, s.MatchCount())
	assert.Equal(t, 0, s.CandidateCount())

	s.Apply(insert("x"))
	s.SetCandidates(match.Strings{"xa", "b", "xb"})
	assert.Equal(t, []string{"xa", "xb"}, s.Matches())
	assert.Equal(t, "xa", selected(t, s))
	assert.Equal(t, 3, s.CandidateCount())
}

func TestVisibleReportsSourceIndex(t *testing.T) {
	s := start(t, match.Strings{"b1", "a", "b2"}, Options{Budget: Budget{Lines: 5}})
	s.Apply(insert("b"))
	items := s.Visible()
	require.Len(t, items, 2)
	assert.Equal(t, Item{Index: 0, Text: "b1", Selected: true}, items[0])
	assert.Equal(t, Item{Index: 2, Text: "b2"}, items[1])
}

func TestCommandNames(t *testing.T) {
	for c, name := range commandNames {
		got, ok := ParseCommand(name)
		require.True(t, ok, name)
		assert.Equal(t, c, got)
		assert.Equal(t, name, c.String())
	}
	_, ok := ParseCommand("bogus")
	assert.False(t, ok)
	assert.True(t, CmdPick.IsPointer())
	assert.False(t, CmdCommit.IsPointer())
}
