package selection

import (
	"slices"
	"sort"

	"github.com/mouse-blink/treesel/internal/collection"
	"github.com/mouse-blink/treesel/internal/model"
)

// nodeID addresses a node in the model's arena.
type nodeID uint64

const (
	// noNode marks an unrealized child slot and the parent of the root.
	noNode nodeID = 0

	// leafNode is the shared sentinel referenced by every childless slot.
	leafNode nodeID = 1
)

// selectionNode tracks the selection of one level of the tree. Selected
// local indices are stored as disjoint ranges; ranges are never merged.
type selectionNode struct {
	id     nodeID
	owner  *SelectionModel
	parent nodeID

	view        *collection.View
	unsubscribe func()

	// children is empty until the first realizing access, then holds one
	// slot per item.
	children []nodeID
	realized int

	selected      []model.IndexRange
	selectedCount int
	anchor        int

	// sorted is a copy of selected ordered by Begin, rebuilt on demand.
	sorted []model.IndexRange

	// countAdjust is subtracted from the source count while evaluating the
	// state a node had before the edit currently being applied.
	countAdjust int
}

func newSelectionNode(id nodeID, owner *SelectionModel, parent nodeID) *selectionNode {
	return &selectionNode{
		id:     id,
		owner:  owner,
		parent: parent,
		anchor: -1,
	}
}

func (n *selectionNode) dataCount() int {
	if n.view == nil {
		return 0
	}

	return n.view.Count() - n.countAdjust
}

func (n *selectionNode) validIndex(index int) bool {
	return index >= 0 && index < n.dataCount()
}

// setSource clears the node and its realized subtree and attaches source.
// It reports whether any selection was dropped.
func (n *selectionNode) setSource(source any) bool {
	hadSelection := n.selectedCount > 0 || n.realized > 0

	n.clearSelection()
	n.dispose()
	n.view = nil

	if view, ok := collection.NewView(source); ok {
		n.view = view
		n.unsubscribe = view.Subscribe(n.onSourceChanged)
	}

	return hadSelection
}

// dispose detaches from the source. It is safe to call more than once.
func (n *selectionNode) dispose() {
	if n.unsubscribe != nil {
		n.unsubscribe()
		n.unsubscribe = nil
	}
}

// childAt returns the child at index. Without realize it only reports
// already realized children.
func (n *selectionNode) childAt(index int, realize bool) nodeID {
	if !realize {
		if index >= 0 && index < len(n.children) {
			return n.children[index]
		}

		return noNode
	}

	if !n.validIndex(index) {
		return noNode
	}

	if count := n.dataCount(); len(n.children) < count {
		n.children = append(n.children, make([]nodeID, count-len(n.children))...)
	}

	if n.children[index] == noNode {
		n.children[index] = n.owner.realizeChild(n, index)
		n.realized++
	}

	return n.children[index]
}

func (n *selectionNode) isSelected(index int) bool {
	for _, r := range n.selected {
		if r.Contains(index) {
			return true
		}
	}

	return false
}

// isSelectedWithPartial reports the state of the item at index, looking
// into its realized subtree when it has one.
func (n *selectionNode) isSelectedWithPartial(index int) model.SelectionState {
	child := n.childAt(index, false)
	if child == noNode || child == leafNode {
		if n.isSelected(index) {
			return model.Selected
		}

		return model.NotSelected
	}

	return n.owner.nodes[child].evaluateFromChildren()
}

// evaluateFromChildren derives the state of this node as seen by its parent.
func (n *selectionNode) evaluateFromChildren() model.SelectionState {
	if n.realized == 0 && n.selectedCount == 0 {
		return model.NotSelected
	}

	count := n.dataCount()

	if n.realized == 0 {
		return classify(n.selectedCount, count)
	}

	selected, notSelected := 0, 0

	for i := range n.children {
		if n.children[i] != noNode {
			switch n.isSelectedWithPartial(i) {
			case model.PartiallySelected:
				return model.PartiallySelected
			case model.Selected:
				selected++
			default:
				notSelected++
			}
		} else if n.isSelected(i) {
			selected++
		} else {
			notSelected++
		}

		if selected > 0 && notSelected > 0 {
			return model.PartiallySelected
		}
	}

	return classify(selected, count)
}

func classify(selected, count int) model.SelectionState {
	switch {
	case selected == 0:
		return model.NotSelected
	case selected == count:
		return model.Selected
	default:
		return model.PartiallySelected
	}
}

// selectIndex sets the state of one local index. valid is false when index
// is outside the source.
func (n *selectionNode) selectIndex(index int, sel bool) (valid, changed bool) {
	if !n.validIndex(index) {
		return false, false
	}

	if n.isSelected(index) == sel {
		return true, false
	}

	r := model.IndexRange{Begin: index, End: index}
	if sel {
		return true, n.addRange(r)
	}

	return true, n.removeRange(r)
}

// selectRange sets the state of every index in r. Ranges reaching outside
// the source are rejected.
func (n *selectionNode) selectRange(r model.IndexRange, sel bool) (valid, changed bool) {
	if r.Empty() || !n.validIndex(r.Begin) || !n.validIndex(r.End) {
		return false, false
	}

	if sel {
		return true, n.addRange(r)
	}

	return true, n.removeRange(r)
}

func (n *selectionNode) selectAll() bool {
	count := n.dataCount()
	if count == 0 {
		return false
	}

	return n.addRange(model.IndexRange{Begin: 0, End: count - 1})
}

// addRange selects the indices of r that are not selected yet. Each
// uncovered run is stored as its own range.
func (n *selectionNode) addRange(r model.IndexRange) bool {
	var covered []model.IndexRange

	for _, cur := range n.selected {
		if cur.Intersects(r) {
			covered = append(covered, clip(cur, r))
		}
	}

	sort.Slice(covered, func(i, j int) bool { return covered[i].Begin < covered[j].Begin })

	added := 0
	next := r.Begin

	for _, c := range covered {
		if c.Begin > next {
			gap := model.IndexRange{Begin: next, End: c.Begin - 1}
			n.selected = append(n.selected, gap)
			added += gap.Count()
		}

		next = c.End + 1
	}

	if next <= r.End {
		gap := model.IndexRange{Begin: next, End: r.End}
		n.selected = append(n.selected, gap)
		added += gap.Count()
	}

	if added == 0 {
		return false
	}

	n.selectedCount += added
	n.sorted = nil

	return true
}

// removeRange deselects every index of r, splitting stored ranges at both
// removal boundaries.
func (n *selectionNode) removeRange(r model.IndexRange) bool {
	removed := 0

	for _, cur := range n.selected {
		if cur.Intersects(r) {
			removed += clip(cur, r).Count()
		}
	}

	if removed == 0 {
		return false
	}

	kept := make([]model.IndexRange, 0, len(n.selected)+1)

	for _, cur := range n.selected {
		if !cur.Intersects(r) {
			kept = append(kept, cur)
			continue
		}

		if cur.Contains(r.Begin - 1) {
			before, _ := cur.Split(r.Begin - 1)
			kept = append(kept, before)
		}

		if cur.Contains(r.End) {
			if _, after := cur.Split(r.End); !after.Empty() {
				kept = append(kept, after)
			}
		}
	}

	n.selected = kept
	n.selectedCount -= removed
	n.sorted = nil

	return true
}

func clip(r, bounds model.IndexRange) model.IndexRange {
	return model.IndexRange{Begin: max(r.Begin, bounds.Begin), End: min(r.End, bounds.End)}
}

// clearSelection drops the local selection and anchor and releases every
// realized child.
func (n *selectionNode) clearSelection() {
	n.selected = nil
	n.selectedCount = 0
	n.sorted = nil
	n.anchor = -1

	for _, child := range n.children {
		if child != noNode && child != leafNode {
			n.owner.releaseSubtree(child)
		}
	}

	n.children = nil
	n.realized = 0
}

func (n *selectionNode) sortedRanges() []model.IndexRange {
	if n.sorted == nil && len(n.selected) > 0 {
		n.sorted = slices.Clone(n.selected)
		sort.Slice(n.sorted, func(i, j int) bool { return n.sorted[i].Begin < n.sorted[j].Begin })
	}

	return n.sorted
}

// rankBelow returns how many selected local indices are smaller than limit.
func (n *selectionNode) rankBelow(limit int) int {
	rank := 0

	for _, r := range n.selected {
		if r.Begin >= limit {
			continue
		}

		rank += min(r.End, limit-1) - r.Begin + 1
	}

	return rank
}

// selectedAt returns the local index of the rank-th selected item in
// ascending order.
func (n *selectionNode) selectedAt(rank int) (int, bool) {
	for _, r := range n.sortedRanges() {
		if rank < r.Count() {
			return r.Begin + rank, true
		}

		rank -= r.Count()
	}

	return 0, false
}

func (n *selectionNode) onSourceChanged(change collection.Change) {
	delta := len(change.NewItems) - len(change.OldItems)

	var before []model.SelectionState
	if change.Action != collection.ActionReset {
		n.countAdjust = delta
		before = n.owner.chainStates(n)
		n.countAdjust = 0
	}

	invalidated := false

	switch change.Action {
	case collection.ActionAdd:
		invalidated = n.onItemsAdded(change.NewStartingIndex, len(change.NewItems))
	case collection.ActionRemove:
		invalidated = n.onItemsRemoved(change.OldStartingIndex, len(change.OldItems))
	case collection.ActionReplace:
		invalidated = n.onItemsRemoved(change.OldStartingIndex, len(change.OldItems))
		invalidated = n.onItemsAdded(change.NewStartingIndex, len(change.NewItems)) || invalidated
	case collection.ActionReset:
		invalidated = n.selectedCount > 0 || n.realized > 0
		n.clearSelection()
	}

	if !invalidated && before != nil {
		invalidated = !slices.Equal(before, n.owner.chainStates(n))
	}

	n.owner.onStructureChanged(n, change, invalidated)
}

func (n *selectionNode) onItemsAdded(index, count int) bool {
	if count == 0 {
		return false
	}

	invalidated := false

	var pieces []model.IndexRange

	for i, r := range n.selected {
		if r.End < index {
			continue
		}

		begin := r.Begin
		if r.Contains(index - 1) {
			before, _ := r.Split(index - 1)
			pieces = append(pieces, before)
			begin = index
		}

		n.selected[i] = model.IndexRange{Begin: begin + count, End: r.End + count}
		invalidated = true
	}

	n.selected = append(n.selected, pieces...)
	n.sorted = nil

	if len(n.children) > 0 {
		at := min(max(index, 0), len(n.children))
		n.children = slices.Insert(n.children, at, make([]nodeID, count)...)
		invalidated = true
	}

	if n.anchor >= index {
		n.anchor += count
	}

	return invalidated
}

// onItemsRemoved drops the removed span from the selection and shifts later
// ranges left. An anchor after the span shifts with it; an anchor inside the
// span becomes unset (-1).
func (n *selectionNode) onItemsRemoved(index, count int) bool {
	if count == 0 {
		return false
	}

	invalidated := false

	if n.selectedCount > 0 {
		invalidated = n.removeRange(model.IndexRange{Begin: index, End: index + count - 1})

		for i, r := range n.selected {
			if r.End > index {
				n.selected[i] = r.Shift(-count)
				invalidated = true
			}
		}

		n.sorted = nil
	}

	if len(n.children) > 0 {
		start := min(max(index, 0), len(n.children))
		end := min(start+count, len(n.children))

		for _, child := range n.children[start:end] {
			if child == noNode {
				continue
			}

			n.realized--

			if child != leafNode {
				n.owner.releaseSubtree(child)
			}
		}

		n.children = slices.Delete(n.children, start, end)
		invalidated = true
	}

	switch {
	case n.anchor >= index+count:
		n.anchor -= count
	case n.anchor >= index:
		n.anchor = -1
	}

	return invalidated
}
