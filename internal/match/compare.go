package match

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Comparer holds the text comparisons used by every strategy. The zero value
// compares bytes exactly; with Fold set, runes are compared under Unicode
// simple case folding.
type Comparer struct {
	Fold bool
}

// Contains reports whether sub occurs in s.
func (c Comparer) Contains(s, sub string) bool {
	if !c.Fold {
		return strings.Contains(s, sub)
	}
	if sub == "" {
		return true
	}
	for i := range s {
		if hasPrefixFold(s[i:], sub) {
			return true
		}
	}
	return false
}

// HasPrefix reports whether s begins with prefix.
func (c Comparer) HasPrefix(s, prefix string) bool {
	if !c.Fold {
		return strings.HasPrefix(s, prefix)
	}
	return hasPrefixFold(s, prefix)
}

// Equal reports whether a and b are the same text.
func (c Comparer) Equal(a, b string) bool {
	if !c.Fold {
		return a == b
	}
	return strings.EqualFold(a, b)
}

// IndexRune returns the byte offset of the first rune in s equal to r, and
// the encoded width of that rune in s. It returns -1, 0 when r is absent.
func (c Comparer) IndexRune(s string, r rune) (int, int) {
	for i, sr := range s {
		if sr == r || (c.Fold && equalFoldRune(sr, r)) {
			_, size := utf8.DecodeRuneInString(s[i:])
			return i, size
		}
	}
	return -1, 0
}

func hasPrefixFold(s, prefix string) bool {
	for prefix != "" {
		if s == "" {
			return false
		}
		pr, pn := utf8.DecodeRuneInString(prefix)
		sr, sn := utf8.DecodeRuneInString(s)
		if !equalFoldRune(sr, pr) {
			return false
		}
		s, prefix = s[sn:], prefix[pn:]
	}
	return true
}

// equalFoldRune walks the SimpleFold orbit of a looking for b.
func equalFoldRune(a, b rune) bool {
	if a == b {
		return true
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}
