package menu

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxBytes bounds the input text length in bytes.
const DefaultMaxBytes = 8191

// Buffer is the bounded input text with a cursor. The cursor is a byte offset
// that always sits on a rune boundary; callers move it only through the
// methods below.
type Buffer struct {
	text   string
	cursor int
	max    int
}

// NewBuffer returns an empty buffer holding at most max bytes. A non-positive
// max selects DefaultMaxBytes.
func NewBuffer(max int) *Buffer {
	if max <= 0 {
		max = DefaultMaxBytes
	}
	return &Buffer{max: max}
}

func (b *Buffer) String() string { return b.text }

// Cursor returns the cursor byte offset.
func (b *Buffer) Cursor() int { return b.cursor }

// Len returns the text length in bytes.
func (b *Buffer) Len() int { return len(b.text) }

// Max returns the capacity in bytes.
func (b *Buffer) Max() int { return b.max }

// AtEnd reports whether the cursor is past the last rune.
func (b *Buffer) AtEnd() bool { return b.cursor == len(b.text) }

// BeforeCursor returns the text left of the cursor.
func (b *Buffer) BeforeCursor() string { return b.text[:b.cursor] }

// RuneCount returns the number of runes in the text.
func (b *Buffer) RuneCount() int { return utf8.RuneCountInString(b.text) }

// Insert splices s in at the cursor and advances the cursor past it. An
// insert that would overflow the buffer is rejected whole and reports false.
func (b *Buffer) Insert(s string) bool {
	s = strings.ToValidUTF8(s, "")
	if s == "" {
		return false
	}
	if len(b.text)+len(s) > b.max {
		return false
	}
	b.text = b.text[:b.cursor] + s + b.text[b.cursor:]
	b.cursor += len(s)
	return true
}

// Set replaces the whole text and moves the cursor to the end. Text longer
// than the capacity is cut at the last rune boundary that fits.
func (b *Buffer) Set(s string) {
	s = strings.ToValidUTF8(s, "")
	if len(s) > b.max {
		cut := b.max
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	b.text = s
	b.cursor = len(s)
}

func (b *Buffer) prevBoundary() int {
	_, n := utf8.DecodeLastRuneInString(b.text[:b.cursor])
	return b.cursor - n
}

func (b *Buffer) nextBoundary() int {
	_, n := utf8.DecodeRuneInString(b.text[b.cursor:])
	return b.cursor + n
}

// Left moves the cursor one rune left.
func (b *Buffer) Left() bool {
	if b.cursor == 0 {
		return false
	}
	b.cursor = b.prevBoundary()
	return true
}

// Right moves the cursor one rune right.
func (b *Buffer) Right() bool {
	if b.AtEnd() {
		return false
	}
	b.cursor = b.nextBoundary()
	return true
}

// MoveStart moves the cursor to offset 0.
func (b *Buffer) MoveStart() bool {
	moved := b.cursor != 0
	b.cursor = 0
	return moved
}

// MoveEnd moves the cursor past the last rune.
func (b *Buffer) MoveEnd() bool {
	moved := !b.AtEnd()
	b.cursor = len(b.text)
	return moved
}

func (b *Buffer) cut(from, to int) {
	b.text = b.text[:from] + b.text[to:]
	b.cursor = from
}

// DeleteLeft removes the rune before the cursor.
func (b *Buffer) DeleteLeft() bool {
	if b.cursor == 0 {
		return false
	}
	b.cut(b.prevBoundary(), b.cursor)
	return true
}

// DeleteRight removes the rune under the cursor.
func (b *Buffer) DeleteRight() bool {
	if b.AtEnd() {
		return false
	}
	b.cut(b.cursor, b.nextBoundary())
	return true
}

// DeleteToStart removes everything left of the cursor.
func (b *Buffer) DeleteToStart() bool {
	if b.cursor == 0 {
		return false
	}
	b.cut(0, b.cursor)
	return true
}

// DeleteToEnd removes everything right of the cursor.
func (b *Buffer) DeleteToEnd() bool {
	if b.AtEnd() {
		return false
	}
	b.text = b.text[:b.cursor]
	return true
}

// IsWordSeparator reports whether r ends a word for DeleteWordLeft.
func IsWordSeparator(r rune) bool {
	return r == ' ' || r == '/'
}

// DeleteWordLeft removes separators left of the cursor, then the word before
// them.
func (b *Buffer) DeleteWordLeft() bool {
	start := b.cursor
	for b.cursor > 0 && IsWordSeparator(b.precedingRune()) {
		b.DeleteLeft()
	}
	for b.cursor > 0 && !IsWordSeparator(b.precedingRune()) {
		b.DeleteLeft()
	}
	return b.cursor != start
}

func (b *Buffer) precedingRune() rune {
	r, _ := utf8.DecodeLastRuneInString(b.text[:b.cursor])
	return r
}
