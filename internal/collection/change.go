// Package collection provides the backing-collection abstraction the
// selection core wraps: a read view over lists and slices, and an observable
// list that reports structural edits.
package collection

// Action identifies the kind of structural edit carried by a Change.
type Action int

const (
	// ActionAdd means NewItems were inserted at NewStartingIndex.
	ActionAdd Action = iota

	// ActionRemove means OldItems were removed from OldStartingIndex.
	ActionRemove

	// ActionReplace means OldItems at OldStartingIndex were replaced by
	// NewItems at the same position.
	ActionReplace

	// ActionReset means the collection changed in a way that cannot be
	// described incrementally.
	ActionReset
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionRemove:
		return "remove"
	case ActionReplace:
		return "replace"
	case ActionReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Change describes one structural edit of a collection.
type Change struct {
	Action           Action
	NewStartingIndex int
	NewItems         []any
	OldStartingIndex int
	OldItems         []any
}

// ChangeHandler receives structural edits. Handlers run synchronously on the
// goroutine that performed the edit.
type ChangeHandler func(Change)

// List is the read capability every backing collection offers.
type List interface {
	Len() int
	At(i int) any
}

// Notifier is implemented by collections that report structural edits.
type Notifier interface {
	Subscribe(handler ChangeHandler) (unsubscribe func())
}
