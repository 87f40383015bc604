// Package candidate holds the list of selectable lines read once at startup.
package candidate

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/oakwood-commons/tmenu/internal/limiter"
)

// Item is one candidate line. Items never change after loading.
type Item struct {
	Text string
}

// Predicate decides whether a raw input line becomes a candidate.
// index is the zero-based line number in the source.
type Predicate interface {
	Keep(index int, line string) (bool, error)
}

// LoadOptions tunes Load. The zero value keeps every line.
type LoadOptions struct {
	Where  Predicate
	Window limiter.Config
}

// Store is the ordered, read-only candidate list. Candidates are addressed by
// index; the zero value is an empty store.
type Store struct {
	items   []Item
	longest int
}

// New builds a store from already split lines. Lines are sanitized the same
// way Load sanitizes them.
func New(lines []string) *Store {
	s := &Store{items: make([]Item, 0, len(lines))}
	for _, line := range lines {
		s.add(sanitize(line))
	}
	return s
}

// Load reads newline-delimited records from r until EOF. The trailing line
// terminator of each record is stripped.
func Load(r io.Reader, opts LoadOptions) (*Store, error) {
	if err := opts.Window.Validate(); err != nil {
		return nil, err
	}
	br := bufio.NewReader(r)
	window := limiter.NewCollector[string](opts.Window)
	for index := 0; ; index++ {
		raw, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read candidates: %w", err)
		}
		if raw != "" {
			line := sanitize(trimTerminator(raw))
			keep := true
			if opts.Where != nil {
				var perr error
				if keep, perr = opts.Where.Keep(index, line); perr != nil {
					return nil, fmt.Errorf("candidate %d: %w", index+1, perr)
				}
			}
			// The window is full; the rest of r is left unread.
			if keep && !window.Add(line) {
				break
			}
		}
		if err != nil {
			break
		}
	}
	lines := window.Items()

	s := &Store{items: make([]Item, 0, len(lines))}
	for _, line := range lines {
		s.add(line)
	}
	return s, nil
}

func (s *Store) add(text string) {
	s.items = append(s.items, Item{Text: text})
	if len(text) > len(s.items[s.longest].Text) {
		s.longest = len(s.items) - 1
	}
}

// Len returns the number of candidates.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Text returns the text of candidate i.
func (s *Store) Text(i int) string {
	return s.items[i].Text
}

// Item returns candidate i.
func (s *Store) Item(i int) Item {
	return s.items[i]
}

// Longest returns the longest candidate text by byte length, or "" when empty.
func (s *Store) Longest() string {
	if s.Len() == 0 {
		return ""
	}
	return s.items[s.longest].Text
}

// Texts returns a copy of every candidate text in order.
func (s *Store) Texts() []string {
	out := make([]string, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		out = append(out, s.items[i].Text)
	}
	return out
}

func trimTerminator(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// sanitize drops NUL bytes and replaces invalid UTF-8 so matching never sees
// malformed text.
func sanitize(line string) string {
	if strings.IndexByte(line, 0) >= 0 {
		line = strings.ReplaceAll(line, "\x00", "")
	}
	return strings.ToValidUTF8(line, "�")
}
