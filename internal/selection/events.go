package selection

import "github.com/mouse-blink/treesel/internal/model"

// Property names reported through PropertyChanged.
const (
	PropertySource          = "Source"
	PropertySingleSelect    = "SingleSelect"
	PropertyAnchorIndex     = "AnchorIndex"
	PropertySelectedIndex   = "SelectedIndex"
	PropertySelectedIndices = "SelectedIndices"
	PropertySelectedItem    = "SelectedItem"
	PropertySelectedItems   = "SelectedItems"
)

// SelectionChangedHandler is called after the selection changed. It carries
// no payload; handlers re-read the query API.
type SelectionChangedHandler func(m *SelectionModel)

// PropertyChangedHandler is called after a property of the model changed.
type PropertyChangedHandler func(m *SelectionModel, property string)

// ChildrenRequestedHandler lets a consumer decide whether a value realized
// while walking the tree has children. Setting args.Children to a collection
// makes the value a composite; leaving it nil makes it a leaf.
type ChildrenRequestedHandler func(m *SelectionModel, args *ChildrenRequestedArgs)

// ChildrenRequestedArgs is passed to ChildrenRequested handlers.
type ChildrenRequestedArgs struct {
	// Source is the item being realized.
	Source any

	// SourceIndexPath is the path of Source from the root.
	SourceIndexPath model.IndexPath

	// Children is set by the handler.
	Children any
}

type handlerEntry[H any] struct {
	id      uint64
	handler H
}

// event is an ordered list of handlers. Handlers are invoked on the calling
// goroutine in registration order.
type event[H any] struct {
	entries []handlerEntry[H]
	nextID  uint64
}

func (e *event[H]) add(handler H) func() {
	e.nextID++
	id := e.nextID
	e.entries = append(e.entries, handlerEntry[H]{id: id, handler: handler})

	return func() {
		for i, entry := range e.entries {
			if entry.id == id {
				e.entries = append(e.entries[:i:i], e.entries[i+1:]...)
				return
			}
		}
	}
}

func (e *event[H]) len() int {
	return len(e.entries)
}

// handlers returns a snapshot so handlers may unsubscribe while running.
func (e *event[H]) handlers() []H {
	out := make([]H, len(e.entries))
	for i, entry := range e.entries {
		out[i] = entry.handler
	}

	return out
}
