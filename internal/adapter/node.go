// Package adapter connects the selection core to documents on disk: it loads
// YAML and JSON into observable trees, applies structural patches to them and
// evaluates match expressions over their nodes.
package adapter

import (
	"fmt"

	"github.com/mouse-blink/treesel/internal/collection"
	"github.com/mouse-blink/treesel/internal/selection"
)

// Kind tells how a node was written in its document.
type Kind int

// Available node kinds.
const (
	KindScalar Kind = iota
	KindMap
	KindSeq
)

func (k Kind) String() string {
	switch k {
	case KindMap:
		return "map"
	case KindSeq:
		return "seq"
	default:
		return "scalar"
	}
}

// Node is one entry of a loaded document. Maps and sequences keep their
// entries in an observable list of *Node so edits reach any selection model
// watching them; scalars carry a Value and no children.
type Node struct {
	Key      string
	Kind     Kind
	Value    any
	Children *collection.ObservableList
}

// NewLeaf returns a scalar node.
func NewLeaf(key string, value any) *Node {
	return &Node{Key: key, Kind: KindScalar, Value: value}
}

// NewBranch returns a map or sequence node holding children.
func NewBranch(key string, kind Kind, children ...*Node) *Node {
	items := make([]any, len(children))
	for i, c := range children {
		items[i] = c
	}

	return &Node{Key: key, Kind: kind, Children: collection.NewObservableList(items...)}
}

// IsLeaf reports whether the node has no children list.
func (n *Node) IsLeaf() bool {
	return n.Children == nil
}

// Len returns the number of children.
func (n *Node) Len() int {
	if n.Children == nil {
		return 0
	}

	return n.Children.Len()
}

// Child returns the i-th child, or nil when i is out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= n.Len() {
		return nil
	}

	child, _ := n.Children.At(i).(*Node)

	return child
}

// Lookup returns the index of the child with key, or -1.
func (n *Node) Lookup(key string) int {
	for i := range n.Len() {
		if c := n.Child(i); c != nil && c.Key == key {
			return i
		}
	}

	return -1
}

// Label renders the node for listings. Sequence entries have no key and are
// labelled by their position.
func (n *Node) Label(position int) string {
	key := n.Key
	if key == "" {
		key = fmt.Sprintf("[%d]", position)
	}

	if n.IsLeaf() {
		return fmt.Sprintf("%s: %v", key, n.Value)
	}

	return fmt.Sprintf("%s (%s, %d)", key, n.Kind, n.Len())
}

// Plain converts the subtree back to maps, slices and scalars.
func (n *Node) Plain() any {
	switch n.Kind {
	case KindMap:
		out := make(map[string]any, n.Len())
		for i := range n.Len() {
			c := n.Child(i)
			out[c.Key] = c.Plain()
		}

		return out
	case KindSeq:
		out := make([]any, 0, n.Len())
		for i := range n.Len() {
			out = append(out, n.Child(i).Plain())
		}

		return out
	default:
		return n.Value
	}
}

// ResolveChildren is a ChildrenRequested handler that exposes the children
// list of a *Node. Scalars stay leaves.
func ResolveChildren(_ *selection.SelectionModel, args *selection.ChildrenRequestedArgs) {
	n, ok := args.Source.(*Node)
	if !ok || n.IsLeaf() {
		return
	}

	args.Children = n.Children
}

// Bind points sel at the children of root and registers ResolveChildren.
// The returned func removes the handler.
func Bind(sel *selection.SelectionModel, root *Node) (func(), error) {
	unsubscribe := sel.OnChildrenRequested(ResolveChildren)

	if root.IsLeaf() {
		unsubscribe()
		return nil, fmt.Errorf("document %q is a scalar: %w", root.Key, ErrNotBranch)
	}

	if err := sel.SetSource(root.Children); err != nil {
		unsubscribe()
		return nil, err
	}

	return unsubscribe, nil
}
