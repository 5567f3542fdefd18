package selection

import "github.com/mouse-blink/treesel/internal/model"

// treeWalkInfo describes a composite node visited by a traversal.
type treeWalkInfo struct {
	node   *selectionNode
	path   model.IndexPath
	parent *selectionNode
}

// traverse visits every composite node depth first, parents before
// children. With realize it materializes the whole tree; otherwise it only
// visits realized nodes. Children are queued before fn runs, so fn may clear
// the visited node.
func (m *SelectionModel) traverse(realize bool, fn func(info treeWalkInfo)) {
	pending := []treeWalkInfo{{node: m.rootNode()}}

	for len(pending) > 0 {
		info := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		count := len(info.node.children)
		if realize {
			count = info.node.dataCount()
		}

		for i := count - 1; i >= 0; i-- {
			child := info.node.childAt(i, realize)
			if child == noNode || child == leafNode {
				continue
			}

			pending = append(pending, treeWalkInfo{
				node:   m.nodes[child],
				path:   info.path.CloneWithChildIndex(i),
				parent: info.node,
			})
		}

		fn(info)
	}
}

// traverseIndexPath walks path top-down, calling fn with the node that owns
// each component. It returns false, without calling fn for the remaining
// components, when the path leaves the tree.
func (m *SelectionModel) traverseIndexPath(path model.IndexPath, realize bool, fn func(n *selectionNode, depth, childIndex int)) bool {
	n := m.rootNode()
	last := path.Len() - 1

	for depth, childIndex := range path.Indices() {
		if !n.validIndex(childIndex) {
			return false
		}

		if fn != nil {
			fn(n, depth, childIndex)
		}

		if depth == last {
			break
		}

		child := n.childAt(childIndex, realize)
		if child == noNode || child == leafNode {
			return false
		}

		n = m.nodes[child]
	}

	return true
}

// validPath reports whether every component of path addresses an item,
// realizing intermediate levels as needed.
func (m *SelectionModel) validPath(path model.IndexPath) bool {
	return !path.IsRoot() && m.traverseIndexPath(path, true, nil)
}

// rangePosition is an item waiting to be visited by traverseRange. low and
// high record whether the item still sits on the start or end boundary path.
type rangePosition struct {
	parent *selectionNode
	index  int
	depth  int
	low    bool
	high   bool
}

// traverseRange calls fn for every leaf position whose path lies between
// start and end inclusive, in path order, realizing nodes on the way. A leaf
// position is an item without children; composites are descended into.
func (m *SelectionModel) traverseRange(start, end model.IndexPath, fn func(parent *selectionNode, index int)) {
	if end.IsRoot() || start.Compare(end) > 0 {
		return
	}

	startIdx := start.Indices()
	endIdx := end.Indices()

	var pending []rangePosition

	expand := func(n *selectionNode, depth int, low, high bool) {
		count := n.dataCount()
		if count == 0 {
			return
		}

		from, to := 0, count-1
		if low {
			from = startIdx[depth]
		}

		if high {
			to = min(to, endIdx[depth])
		}

		for i := to; i >= from; i-- {
			pending = append(pending, rangePosition{
				parent: n,
				index:  i,
				depth:  depth,
				low:    low && i == startIdx[depth],
				high:   high && i == endIdx[depth],
			})
		}
	}

	expand(m.rootNode(), 0, len(startIdx) > 0, true)

	for len(pending) > 0 {
		pos := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		startsDeeper := pos.low && pos.depth < len(startIdx)-1
		endsDeeper := pos.high && pos.depth < len(endIdx)-1

		child := pos.parent.childAt(pos.index, true)
		if child == noNode || child == leafNode || m.nodes[child].dataCount() == 0 {
			// The item is a proper prefix of start, so it sorts before it.
			if !startsDeeper {
				fn(pos.parent, pos.index)
			}

			continue
		}

		// The composite is end itself; its descendants sort after end.
		if pos.high && !endsDeeper {
			continue
		}

		expand(m.nodes[child], pos.depth+1, startsDeeper, endsDeeper)
	}
}
