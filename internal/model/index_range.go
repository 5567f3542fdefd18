package model

import "fmt"

// IndexRange is an inclusive interval of sibling indices at one tree level.
type IndexRange struct {
	Begin int
	End   int
}

// NewIndexRange returns the range spanning a and b in either order.
func NewIndexRange(a, b int) IndexRange {
	if a > b {
		a, b = b, a
	}

	return IndexRange{Begin: a, End: b}
}

// Empty reports whether the range holds no index. Only Split produces empty
// ranges.
func (r IndexRange) Empty() bool {
	return r.Begin > r.End
}

// Count returns the number of indices in the range.
func (r IndexRange) Count() int {
	if r.Empty() {
		return 0
	}

	return r.End - r.Begin + 1
}

// Contains reports whether index lies inside the range.
func (r IndexRange) Contains(index int) bool {
	return index >= r.Begin && index <= r.End
}

// Intersects reports whether the two ranges share at least one index.
func (r IndexRange) Intersects(other IndexRange) bool {
	return r.Begin <= other.End && other.Begin <= r.End
}

// Split cuts the range after at: before is [Begin, at] and after is
// [at+1, End]. Either half may be empty and must then be discarded.
func (r IndexRange) Split(at int) (IndexRange, IndexRange) {
	return IndexRange{Begin: r.Begin, End: at}, IndexRange{Begin: at + 1, End: r.End}
}

// Shift returns the range moved by delta.
func (r IndexRange) Shift(delta int) IndexRange {
	return IndexRange{Begin: r.Begin + delta, End: r.End + delta}
}

func (r IndexRange) String() string {
	return fmt.Sprintf("[%d,%d]", r.Begin, r.End)
}
