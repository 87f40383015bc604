// Package match turns the typed input and the candidate list into an ordered
// list of matching candidates. Matching is pure: it never mutates the
// candidates and the same input always yields the same result.
package match

import (
	"strings"
	"unicode/utf8"
)

// Source is the read-only candidate list a Matcher runs against.
type Source interface {
	Len() int
	Text(i int) string
}

// Strings adapts a plain slice to Source.
type Strings []string

func (s Strings) Len() int          { return len(s) }
func (s Strings) Text(i int) string { return s[i] }

// Result is an ordered match list. Indices refer to positions in the Source.
type Result struct {
	Indices []int

	// Bucket sizes for the ranked strategy. Token and fuzzy results report
	// every match as Exact.
	Exact     int
	Prefix    int
	Substring int
}

// Len returns the number of matches.
func (r Result) Len() int {
	return len(r.Indices)
}

// Single reports whether exactly one candidate matched, counting every bucket.
func (r Result) Single() bool {
	return len(r.Indices) == 1
}

// Matcher applies one strategy with one set of comparisons.
type Matcher struct {
	Strategy Strategy
	Compare  Comparer
}

// New returns a Matcher for strategy. ignoreCase enables case folding in all
// comparisons.
func New(strategy Strategy, ignoreCase bool) Matcher {
	if strategy == "" {
		strategy = DefaultStrategy
	}
	return Matcher{Strategy: strategy, Compare: Comparer{Fold: ignoreCase}}
}

// Tokenize splits input on whitespace. Empty input yields no tokens.
func Tokenize(input string) []string {
	return strings.Fields(input)
}

// Match runs the configured strategy over src.
func (m Matcher) Match(input string, src Source) Result {
	if src == nil {
		return Result{}
	}
	switch m.Strategy {
	case StrategyToken:
		return m.matchTokens(input, src)
	case StrategyFuzzy:
		return m.matchFuzzy(input, src)
	default:
		return m.matchRanked(input, src)
	}
}

func (m Matcher) containsAll(text string, tokens []string) bool {
	for _, tok := range tokens {
		if !m.Compare.Contains(text, tok) {
			return false
		}
	}
	return true
}

func (m Matcher) matchTokens(input string, src Source) Result {
	tokens := Tokenize(input)
	var out []int
	for i := 0; i < src.Len(); i++ {
		if m.containsAll(src.Text(i), tokens) {
			out = append(out, i)
		}
	}
	return Result{Indices: out, Exact: len(out)}
}

func (m Matcher) matchRanked(input string, src Source) Result {
	tokens := Tokenize(input)
	var exact, prefix, substr []int
	for i := 0; i < src.Len(); i++ {
		text := src.Text(i)
		if !m.containsAll(text, tokens) {
			continue
		}
		switch {
		case len(tokens) == 0 || m.Compare.Equal(text, tokens[0]):
			exact = append(exact, i)
		case m.Compare.HasPrefix(text, tokens[0]):
			prefix = append(prefix, i)
		default:
			substr = append(substr, i)
		}
	}
	out := make([]int, 0, len(exact)+len(prefix)+len(substr))
	out = append(out, exact...)
	out = append(out, prefix...)
	out = append(out, substr...)
	return Result{Indices: out, Exact: len(exact), Prefix: len(prefix), Substring: len(substr)}
}

func (m Matcher) matchFuzzy(input string, src Source) Result {
	var out []int
	for i := 0; i < src.Len(); i++ {
		if m.subsequence(src.Text(i), input) {
			out = append(out, i)
		}
	}
	return Result{Indices: out, Exact: len(out)}
}

// subsequence reports whether the runes of pattern appear in text in order.
func (m Matcher) subsequence(text, pattern string) bool {
	for pattern != "" {
		r, n := utf8.DecodeRuneInString(pattern)
		at, size := m.Compare.IndexRune(text, r)
		if at < 0 {
			return false
		}
		text = text[at+size:]
		pattern = pattern[n:]
	}
	return true
}
