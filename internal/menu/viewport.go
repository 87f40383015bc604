package menu

import "unicode/utf8"

// Budget is the room available to the match list. Lines > 0 selects the
// vertical layout with a fixed row count; otherwise items are laid out on one
// row and Width is the capacity in display cells.
type Budget struct {
	Lines int
	Width int
}

// Vertical reports whether the budget counts rows.
func (b Budget) Vertical() bool { return b.Lines > 0 }

// Measurer reports how many cells a candidate occupies in the horizontal
// layout, padding included.
type Measurer interface {
	Width(text string) int
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(text string) int

func (f MeasureFunc) Width(text string) int { return f(text) }

// RuneWidth measures one cell per rune. It is the fallback Measurer.
var RuneWidth = MeasureFunc(utf8.RuneCountInString)

// Paginate computes the page around curr for a list of count items where item
// i occupies unit(i) of capacity (never more than capacity itself).
//
// next is the first item after curr that no longer fits, or count when the
// list ends first. prev is the first item of the page that ends right before
// curr; it equals curr when curr is the head.
func Paginate(curr, count, capacity int, unit func(i int) int) (prev, next int) {
	if capacity < 1 {
		capacity = 1
	}
	used := 0
	for next = curr; next < count; next++ {
		if used += min(unit(next), capacity); used > capacity {
			break
		}
	}
	used = 0
	for prev = curr; prev > 0; prev-- {
		if used += min(unit(prev-1), capacity); used > capacity {
			break
		}
	}
	return prev, next
}
