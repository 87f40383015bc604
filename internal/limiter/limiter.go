// Package limiter keeps a window of the candidate records while they are
// read, so large inputs never have to be held in full.
package limiter

import "fmt"

// Config selects the window. The zero value keeps everything.
type Config struct {
	Limit  int // keep at most this many records after Offset (0 = all)
	Offset int // skip this many records first
	Tail   int // keep only the last N records; excludes Limit, ignores Offset
}

// Validate rejects negative values and Limit combined with Tail.
func (c Config) Validate() error {
	for _, f := range []struct {
		flag string
		v    int
	}{{"limit", c.Limit}, {"offset", c.Offset}, {"tail", c.Tail}} {
		if f.v < 0 {
			return fmt.Errorf("--%s must be non-negative, got %d", f.flag, f.v)
		}
	}
	if c.Limit > 0 && c.Tail > 0 {
		return fmt.Errorf("--limit and --tail are mutually exclusive")
	}
	return nil
}

// Collector receives records one at a time and keeps those inside the
// window.
type Collector[T any] struct {
	cfg   Config
	seen  int
	items []T
}

// NewCollector returns an empty collector for c. c must be valid.
func NewCollector[T any](c Config) *Collector[T] {
	return &Collector[T]{cfg: c}
}

// Add offers the next record. It returns false once no later record can be
// kept, so the caller may stop reading.
func (w *Collector[T]) Add(v T) bool {
	w.seen++
	switch {
	case w.cfg.Tail > 0:
		w.items = append(w.items, v)
		// Compact once the buffer holds two windows.
		if len(w.items) >= 2*w.cfg.Tail {
			n := copy(w.items, w.items[len(w.items)-w.cfg.Tail:])
			w.items = w.items[:n]
		}
		return true
	case w.seen <= w.cfg.Offset:
		return true
	}
	w.items = append(w.items, v)
	return w.cfg.Limit == 0 || len(w.items) < w.cfg.Limit
}

// Items returns the kept records in input order.
func (w *Collector[T]) Items() []T {
	if w.cfg.Tail > 0 && len(w.items) > w.cfg.Tail {
		return w.items[len(w.items)-w.cfg.Tail:]
	}
	return w.items
}
