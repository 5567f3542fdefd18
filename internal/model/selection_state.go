package model

// SelectionState is the tri-state answer to "is this position selected".
type SelectionState int

const (
	// NotSelected means neither the position nor any descendant is selected.
	NotSelected SelectionState = iota

	// Selected means the position is selected, or every descendant is.
	Selected

	// PartiallySelected means some but not all descendants are selected.
	PartiallySelected
)

// String returns a human-readable name for the state.
func (s SelectionState) String() string {
	switch s {
	case NotSelected:
		return "not-selected"
	case Selected:
		return "selected"
	case PartiallySelected:
		return "partial"
	default:
		return "unknown"
	}
}

// Bool maps the state onto a nullable boolean: known is false for
// PartiallySelected.
func (s SelectionState) Bool() (value bool, known bool) {
	switch s {
	case Selected:
		return true, true
	case NotSelected:
		return false, true
	default:
		return false, false
	}
}
