package collection

import (
	"fmt"

	"github.com/mouse-blink/treesel/internal/model"
)

type subscription struct {
	id      uint64
	handler ChangeHandler
}

// ObservableList is a mutable list that notifies subscribers of every
// structural edit, in subscription order, before the mutating call returns.
//
// ObservableList is not safe for concurrent use.
type ObservableList struct {
	items  []any
	subs   []subscription
	nextID uint64
}

// NewObservableList returns a list holding a copy of items.
func NewObservableList(items ...any) *ObservableList {
	l := &ObservableList{}
	l.items = append(l.items, items...)

	return l
}

// Len returns the number of items.
func (l *ObservableList) Len() int {
	return len(l.items)
}

// At returns the item at index i.
func (l *ObservableList) At(i int) any {
	return l.items[i]
}

// Items returns a copy of the current items.
func (l *ObservableList) Items() []any {
	out := make([]any, len(l.items))
	copy(out, l.items)

	return out
}

// Subscribe registers handler and returns a function that removes it. The
// returned function is idempotent.
func (l *ObservableList) Subscribe(handler ChangeHandler) func() {
	l.nextID++
	id := l.nextID
	l.subs = append(l.subs, subscription{id: id, handler: handler})

	return func() {
		for i, s := range l.subs {
			if s.id == id {
				l.subs = append(l.subs[:i:i], l.subs[i+1:]...)
				return
			}
		}
	}
}

// Subscribers returns the number of registered handlers.
func (l *ObservableList) Subscribers() int {
	return len(l.subs)
}

// Append adds items at the end.
func (l *ObservableList) Append(items ...any) {
	_ = l.Insert(len(l.items), items...)
}

// Insert adds items before index. Index may equal Len().
func (l *ObservableList) Insert(index int, items ...any) error {
	if index < 0 || index > len(l.items) {
		return fmt.Errorf("insert at %d of %d: %w", index, len(l.items), model.ErrIndexOutOfRange)
	}

	if len(items) == 0 {
		return nil
	}

	added := make([]any, len(items))
	copy(added, items)

	grown := make([]any, 0, len(l.items)+len(added))
	grown = append(grown, l.items[:index]...)
	grown = append(grown, added...)
	grown = append(grown, l.items[index:]...)
	l.items = grown

	l.notify(Change{Action: ActionAdd, NewStartingIndex: index, NewItems: added, OldStartingIndex: -1})

	return nil
}

// RemoveAt removes count items starting at index.
func (l *ObservableList) RemoveAt(index, count int) error {
	if count <= 0 {
		return nil
	}

	if index < 0 || index+count > len(l.items) {
		return fmt.Errorf("remove %d at %d of %d: %w", count, index, len(l.items), model.ErrIndexOutOfRange)
	}

	removed := make([]any, count)
	copy(removed, l.items[index:index+count])
	l.items = append(l.items[:index:index], l.items[index+count:]...)

	l.notify(Change{Action: ActionRemove, OldStartingIndex: index, OldItems: removed, NewStartingIndex: -1})

	return nil
}

// Replace swaps the item at index for item.
func (l *ObservableList) Replace(index int, item any) error {
	if index < 0 || index >= len(l.items) {
		return fmt.Errorf("replace at %d of %d: %w", index, len(l.items), model.ErrIndexOutOfRange)
	}

	old := l.items[index]
	l.items[index] = item

	l.notify(Change{
		Action:           ActionReplace,
		OldStartingIndex: index,
		OldItems:         []any{old},
		NewStartingIndex: index,
		NewItems:         []any{item},
	})

	return nil
}

// Reset replaces the whole content.
func (l *ObservableList) Reset(items ...any) {
	l.items = append([]any(nil), items...)
	l.notify(Change{Action: ActionReset, NewStartingIndex: -1, OldStartingIndex: -1})
}

func (l *ObservableList) notify(change Change) {
	// Handlers may unsubscribe while being notified.
	subs := make([]subscription, len(l.subs))
	copy(subs, l.subs)

	for _, s := range subs {
		s.handler(change)
	}
}
