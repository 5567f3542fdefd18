package controller

import (
	"fmt"

	"github.com/mouse-blink/treesel/internal/adapter"
	"github.com/mouse-blink/treesel/internal/model"
	"github.com/mouse-blink/treesel/internal/selection"
)

// treeRow is one visible line of a flattened document.
type treeRow struct {
	path   model.IndexPath
	node   *adapter.Node
	parent *adapter.Node
	depth  int
}

// name is what jump-to-item compares against.
func (r treeRow) name() string {
	if r.node.Key != "" {
		return r.node.Key
	}

	return fmt.Sprint(r.node.Value)
}

func (r treeRow) label() string {
	return r.node.Label(r.path.Last())
}

// flatten lists the rows of doc in document order. Children of a branch are
// listed only when expanded reports true for it; a nil expanded lists every
// row.
func flatten(doc *adapter.Node, expanded func(*adapter.Node) bool) []treeRow {
	var rows []treeRow

	stack := []treeRow{{node: doc}}

	for len(stack) > 0 {
		row := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		isRoot := row.path.IsRoot()
		if !isRoot {
			rows = append(rows, row)
		}

		if !isRoot && expanded != nil && !expanded(row.node) {
			continue
		}

		for i := row.node.Len() - 1; i >= 0; i-- {
			stack = append(stack, treeRow{
				path:   row.path.CloneWithChildIndex(i),
				node:   row.node.Child(i),
				parent: row.node,
				depth:  row.path.Len(),
			})
		}
	}

	return rows
}

func stateMarker(state model.SelectionState) string {
	switch state {
	case model.Selected:
		return "[x]"
	case model.PartiallySelected:
		return "[-]"
	default:
		return "[ ]"
	}
}

func isAnchor(sel *selection.SelectionModel, path model.IndexPath) bool {
	anchor, ok := sel.AnchorIndex()

	return ok && anchor.Equal(path)
}

// describeItem renders a selected item for reports.
func describeItem(path model.IndexPath, item any) string {
	if n, ok := item.(*adapter.Node); ok {
		return n.Label(path.Last())
	}

	return fmt.Sprint(item)
}

// selectionEntry pairs a selected path with its item.
type selectionEntry struct {
	path model.IndexPath
	item any
}

func selectionEntries(sel *selection.SelectionModel) ([]selectionEntry, error) {
	paths, err := sel.SelectedIndices().All()
	if err != nil {
		return nil, err
	}

	items, err := sel.SelectedItems().All()
	if err != nil {
		return nil, err
	}

	entries := make([]selectionEntry, len(paths))
	for i := range paths {
		entries[i] = selectionEntry{path: paths[i], item: items[i]}
	}

	return entries, nil
}
