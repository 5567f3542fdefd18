// Package selection tracks which items of a nested, mutable collection are
// selected. A SelectionModel owns a tree of lazily realized nodes that
// mirrors only the parts of the source that selection operations touched.
//
// The model is single-threaded: every call, and every structural
// notification of the observed collections, must happen on the goroutine
// that owns it.
package selection

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/mouse-blink/treesel/internal/collection"
	"github.com/mouse-blink/treesel/internal/model"
)

// Option configures a SelectionModel.
type Option func(*SelectionModel)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(m *SelectionModel) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithSingleSelect starts the model in single selection mode.
func WithSingleSelect(single bool) Option {
	return func(m *SelectionModel) {
		m.singleSelect = single
	}
}

// SelectionModel is the root-owning façade over the selection tree.
type SelectionModel struct {
	nodes      map[nodeID]*selectionNode
	nextNodeID nodeID
	root       nodeID

	source       any
	singleSelect bool

	// generation increases on every mutation; cached views remember the
	// generation they were built at.
	generation  uint64
	indicesView *IndexPathView
	itemsView   *ItemView

	selectionChanged  event[SelectionChangedHandler]
	propertyChanged   event[PropertyChangedHandler]
	childrenRequested event[ChildrenRequestedHandler]

	logger *slog.Logger
}

// New returns an empty model without a source.
func New(opts ...Option) *SelectionModel {
	m := &SelectionModel{
		nodes:      make(map[nodeID]*selectionNode),
		nextNodeID: leafNode,
		logger:     slog.New(slog.DiscardHandler),
	}

	m.nodes[leafNode] = newSelectionNode(leafNode, m, noNode)
	m.root = m.newNode(noNode).id

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *SelectionModel) newNode(parent nodeID) *selectionNode {
	m.nextNodeID++
	n := newSelectionNode(m.nextNodeID, m, parent)
	m.nodes[n.id] = n

	return n
}

func (m *SelectionModel) rootNode() *selectionNode {
	return m.nodes[m.root]
}

// releaseSubtree disposes id and every node below it and drops them from
// the arena.
func (m *SelectionModel) releaseSubtree(id nodeID) {
	pending := []nodeID{id}

	for len(pending) > 0 {
		cur := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		n, ok := m.nodes[cur]
		if !ok || cur == leafNode {
			continue
		}

		for _, child := range n.children {
			if child != noNode && child != leafNode {
				pending = append(pending, child)
			}
		}

		n.dispose()
		n.children = nil
		n.selected = nil
		n.sorted = nil
		n.selectedCount = 0
		n.realized = 0
		n.view = nil

		delete(m.nodes, cur)
	}
}

// realizeChild decides whether the item at index of parent is a composite
// and returns the node for it.
func (m *SelectionModel) realizeChild(parent *selectionNode, index int) nodeID {
	value := parent.view.At(index)
	if value == nil {
		return leafNode
	}

	children, ok := m.resolvePath(value, m.pathOf(parent).CloneWithChildIndex(index))
	if !ok {
		return leafNode
	}

	child := m.newNode(parent.id)
	child.setSource(children)

	return child.id
}

// resolvePath asks the ChildrenRequested handlers for the children of value,
// or falls back to treating collection-shaped values as composites.
func (m *SelectionModel) resolvePath(value any, path model.IndexPath) (any, bool) {
	if m.childrenRequested.len() == 0 {
		if collection.IsCollection(value) {
			return value, true
		}

		return nil, false
	}

	args := &ChildrenRequestedArgs{Source: value, SourceIndexPath: path}
	for _, h := range m.childrenRequested.handlers() {
		h(m, args)
	}

	if !collection.IsCollection(args.Children) {
		return nil, false
	}

	return args.Children, true
}

// pathOf returns the path of n from the root.
func (m *SelectionModel) pathOf(n *selectionNode) model.IndexPath {
	var reversed []int

	for cur := n; cur.parent != noNode; {
		parent := m.nodes[cur.parent]
		reversed = append(reversed, slices.Index(parent.children, cur.id))
		cur = parent
	}

	slices.Reverse(reversed)

	return model.IndexPathFromIndices(reversed...)
}

// chainStates evaluates n and each of its ancestors, innermost first.
func (m *SelectionModel) chainStates(n *selectionNode) []model.SelectionState {
	var states []model.SelectionState

	for cur := n; cur != nil; {
		states = append(states, cur.evaluateFromChildren())

		if cur.parent == noNode {
			break
		}

		cur = m.nodes[cur.parent]
	}

	return states
}

func (m *SelectionModel) onStructureChanged(n *selectionNode, change collection.Change, invalidated bool) {
	m.logger.Debug("source collection changed",
		slog.String("action", change.Action.String()),
		slog.String("path", m.pathOf(n).String()),
		slog.Bool("selection_invalidated", invalidated))

	m.invalidate()

	if invalidated {
		m.onSelectionChanged()
	}
}

func (m *SelectionModel) invalidate() {
	m.generation++
	m.indicesView = nil
	m.itemsView = nil
}

func (m *SelectionModel) onSelectionChanged() {
	m.invalidate()

	for _, h := range m.selectionChanged.handlers() {
		h(m)
	}

	m.raisePropertyChanged(PropertySelectedIndex)
	m.raisePropertyChanged(PropertySelectedIndices)

	if m.source != nil {
		m.raisePropertyChanged(PropertySelectedItem)
		m.raisePropertyChanged(PropertySelectedItems)
	}
}

func (m *SelectionModel) raisePropertyChanged(name string) {
	for _, h := range m.propertyChanged.handlers() {
		h(m, name)
	}
}

// OnSelectionChanged registers a handler and returns its unsubscribe func.
func (m *SelectionModel) OnSelectionChanged(handler SelectionChangedHandler) func() {
	return m.selectionChanged.add(handler)
}

// OnPropertyChanged registers a handler and returns its unsubscribe func.
func (m *SelectionModel) OnPropertyChanged(handler PropertyChangedHandler) func() {
	return m.propertyChanged.add(handler)
}

// OnChildrenRequested registers a handler and returns its unsubscribe func.
// While at least one handler is registered, handlers alone decide which
// items have children.
func (m *SelectionModel) OnChildrenRequested(handler ChildrenRequestedHandler) func() {
	return m.childrenRequested.add(handler)
}

// Source returns the root collection.
func (m *SelectionModel) Source() any {
	return m.source
}

// SetSource replaces the root collection, dropping all selection state.
// Passing nil detaches the model.
func (m *SelectionModel) SetSource(source any) error {
	if source != nil && !collection.IsCollection(source) {
		return fmt.Errorf("source of type %T: %w", source, model.ErrNotCollection)
	}

	m.rootNode().setSource(source)
	m.source = source

	m.logger.Debug("selection source assigned",
		slog.String("type", fmt.Sprintf("%T", source)),
		slog.Int("count", m.rootNode().dataCount()))

	m.onSelectionChanged()
	m.raisePropertyChanged(PropertySource)

	return nil
}

// SingleSelect reports whether at most one item may be selected.
func (m *SelectionModel) SingleSelect() bool {
	return m.singleSelect
}

// SetSingleSelect switches selection mode. Switching to single selection
// while several items are selected keeps only the first selected path and
// raises SelectionChanged once.
func (m *SelectionModel) SetSingleSelect(single bool) {
	if m.singleSelect == single {
		return
	}

	m.singleSelect = single

	if single {
		indices := m.SelectedIndices()
		if indices.Len() > 1 {
			first, err := indices.At(0)
			if err == nil {
				m.logger.Debug("collapsing selection to single item",
					slog.Int("selected", indices.Len()),
					slog.String("kept", first.String()))

				m.clearSelection(false)
				m.selectAlongPath(first, true)
				m.onSelectionChanged()
			}
		}
	}

	m.raisePropertyChanged(PropertySingleSelect)
}

// Dispose clears the selection and detaches every realized node from its
// source. The model is empty afterwards.
func (m *SelectionModel) Dispose() {
	root := m.rootNode()
	root.clearSelection()
	root.dispose()
	root.view = nil
	m.source = nil
	m.invalidate()
}

// Select selects the item at index of the root collection.
func (m *SelectionModel) Select(index int) bool {
	return m.selectPath(model.NewIndexPath(index), true)
}

// SelectGroup selects item itemIndex of group groupIndex.
func (m *SelectionModel) SelectGroup(groupIndex, itemIndex int) bool {
	return m.selectPath(model.NewGroupIndexPath(groupIndex, itemIndex), true)
}

// SelectAt selects the item at path.
func (m *SelectionModel) SelectAt(path model.IndexPath) bool {
	return m.selectPath(path, true)
}

// Deselect deselects the item at index of the root collection.
func (m *SelectionModel) Deselect(index int) bool {
	return m.selectPath(model.NewIndexPath(index), false)
}

// DeselectGroup deselects item itemIndex of group groupIndex.
func (m *SelectionModel) DeselectGroup(groupIndex, itemIndex int) bool {
	return m.selectPath(model.NewGroupIndexPath(groupIndex, itemIndex), false)
}

// DeselectAt deselects the item at path.
func (m *SelectionModel) DeselectAt(path model.IndexPath) bool {
	return m.selectPath(path, false)
}

// selectPath toggles the leaf-most component of path. Intermediate levels
// are realized but keep their selection. It returns false when path does
// not address an item.
func (m *SelectionModel) selectPath(path model.IndexPath, sel bool) bool {
	m.invalidate()

	if !m.validPath(path) {
		return false
	}

	changed := false

	// Deselecting needs no clearing: at most one item is selected.
	if m.singleSelect && sel {
		if current, ok := m.SelectedIndex(); ok && current.Equal(path) {
			return true
		}

		changed = m.clearSelection(false)
	}

	if m.selectAlongPath(path, sel) {
		changed = true
	}

	if changed {
		m.onSelectionChanged()
	}

	return true
}

func (m *SelectionModel) selectAlongPath(path model.IndexPath, sel bool) bool {
	changed := false
	last := path.Len() - 1

	m.traverseIndexPath(path, true, func(n *selectionNode, depth, childIndex int) {
		if depth == last {
			_, changed = n.selectIndex(childIndex, sel)
		}
	})

	return changed
}

// clearSelection drops every selection. Unless resetAnchor is set the
// anchor path survives. It reports whether anything was selected.
func (m *SelectionModel) clearSelection(resetAnchor bool) bool {
	hadSelection := m.hasSelection()
	anchor, hasAnchor := m.AnchorIndex()

	m.rootNode().clearSelection()
	m.invalidate()

	if !resetAnchor && hasAnchor {
		m.setAnchor(anchor)
	}

	return hadSelection
}

func (m *SelectionModel) hasSelection() bool {
	found := false

	m.traverse(false, func(info treeWalkInfo) {
		if info.node.selectedCount > 0 {
			found = true
		}
	})

	return found
}

// ClearSelection deselects everything and resets the anchor.
func (m *SelectionModel) ClearSelection() {
	_, hadAnchor := m.AnchorIndex()

	if m.clearSelection(true) {
		m.onSelectionChanged()
	}

	if hadAnchor {
		m.raisePropertyChanged(PropertyAnchorIndex)
	}
}

// SelectAll selects every item at every level, realizing the whole tree.
// It does nothing in single selection mode.
func (m *SelectionModel) SelectAll() {
	m.invalidate()

	if m.singleSelect {
		return
	}

	changed := false

	m.traverse(true, func(info treeWalkInfo) {
		if info.node.selectAll() {
			changed = true
		}
	})

	if changed {
		m.onSelectionChanged()
	}
}

// AnchorIndex returns the path range gestures are measured from.
func (m *SelectionModel) AnchorIndex() (model.IndexPath, bool) {
	root := m.rootNode()
	if root.anchor < 0 {
		return model.IndexPath{}, false
	}

	var indices []int

	for n := root; n.anchor >= 0; {
		indices = append(indices, n.anchor)

		child := n.childAt(n.anchor, false)
		if child == noNode || child == leafNode {
			break
		}

		n = m.nodes[child]
	}

	return model.IndexPathFromIndices(indices...), true
}

// SetAnchorIndex moves the anchor to path. The root path clears it. It
// returns false, leaving the anchor unchanged, when path does not address
// an item.
func (m *SelectionModel) SetAnchorIndex(path model.IndexPath) bool {
	if !path.IsRoot() && !m.validPath(path) {
		return false
	}

	m.setAnchor(path)
	m.raisePropertyChanged(PropertyAnchorIndex)

	return true
}

func (m *SelectionModel) setAnchor(path model.IndexPath) {
	if path.IsRoot() {
		m.rootNode().anchor = -1
		return
	}

	last := path.Len() - 1

	m.traverseIndexPath(path, true, func(n *selectionNode, depth, childIndex int) {
		n.anchor = childIndex

		if depth == last {
			// A stale anchor below the new end would extend the path on read.
			if child := n.childAt(childIndex, false); child != noNode && child != leafNode {
				m.nodes[child].anchor = -1
			}
		}
	})
}

// SelectRangeFromAnchor selects the root items between the anchor and
// index. Without an anchor the range starts at 0.
func (m *SelectionModel) SelectRangeFromAnchor(index int) bool {
	return m.rangeFromAnchor(index, true)
}

// DeselectRangeFromAnchor deselects the root items between the anchor and
// index.
func (m *SelectionModel) DeselectRangeFromAnchor(index int) bool {
	return m.rangeFromAnchor(index, false)
}

func (m *SelectionModel) rangeFromAnchor(index int, sel bool) bool {
	m.invalidate()

	if m.singleSelect {
		return m.selectPath(model.NewIndexPath(index), sel)
	}

	start := 0
	if anchor, ok := m.AnchorIndex(); ok {
		start, _ = anchor.At(0)
	}

	valid, changed := m.rootNode().selectRange(model.NewIndexRange(start, index), sel)
	if changed {
		m.onSelectionChanged()
	}

	return valid
}

// SelectRangeFromAnchorGroup selects every item between the anchor and
// (endGroupIndex, endItemIndex) in a two-level source. Groups strictly
// between the ends are selected in full. An end outside its group rejects
// the whole gesture.
func (m *SelectionModel) SelectRangeFromAnchorGroup(endGroupIndex, endItemIndex int) bool {
	return m.groupRangeFromAnchor(endGroupIndex, endItemIndex, true)
}

// DeselectRangeFromAnchorGroup is the deselecting mirror of
// SelectRangeFromAnchorGroup.
func (m *SelectionModel) DeselectRangeFromAnchorGroup(endGroupIndex, endItemIndex int) bool {
	return m.groupRangeFromAnchor(endGroupIndex, endItemIndex, false)
}

func (m *SelectionModel) groupRangeFromAnchor(endGroup, endItem int, sel bool) bool {
	m.invalidate()

	if m.singleSelect {
		return m.selectPath(model.NewGroupIndexPath(endGroup, endItem), sel)
	}

	startGroup, startItem := 0, 0
	if anchor, ok := m.AnchorIndex(); ok {
		startGroup, _ = anchor.At(0)
		if anchor.Len() > 1 {
			startItem, _ = anchor.At(1)
		}
	}

	if startGroup > endGroup || (startGroup == endGroup && startItem > endItem) {
		startGroup, endGroup = endGroup, startGroup
		startItem, endItem = endItem, startItem
	}

	if !m.validGroupItem(startGroup, startItem) || !m.validGroupItem(endGroup, endItem) {
		return false
	}

	root := m.rootNode()

	changed := false

	for g := startGroup; g <= endGroup; g++ {
		child := root.childAt(g, true)
		if child == noNode || child == leafNode {
			continue
		}

		group := m.nodes[child]

		count := group.dataCount()
		if count == 0 {
			continue
		}

		lo, hi := 0, count-1
		if g == startGroup {
			lo = startItem
		}

		if g == endGroup {
			hi = endItem
		}

		if _, c := group.selectRange(model.IndexRange{Begin: lo, End: hi}, sel); c {
			changed = true
		}
	}

	if changed {
		m.onSelectionChanged()
	}

	return true
}

// validGroupItem reports whether item addresses an entry of the composite
// root item group.
func (m *SelectionModel) validGroupItem(group, item int) bool {
	root := m.rootNode()
	if !root.validIndex(group) {
		return false
	}

	child := root.childAt(group, true)
	if child == noNode || child == leafNode {
		return false
	}

	return m.nodes[child].validIndex(item)
}

// SelectRangeFromAnchorTo selects every leaf between the anchor and path.
// Without an anchor the range starts at the first root item.
func (m *SelectionModel) SelectRangeFromAnchorTo(path model.IndexPath) bool {
	return m.SelectRange(m.anchorOrFirst(), path)
}

// DeselectRangeFromAnchorTo deselects every leaf between the anchor and path.
func (m *SelectionModel) DeselectRangeFromAnchorTo(path model.IndexPath) bool {
	return m.DeselectRange(m.anchorOrFirst(), path)
}

func (m *SelectionModel) anchorOrFirst() model.IndexPath {
	if anchor, ok := m.AnchorIndex(); ok {
		return anchor
	}

	return model.NewIndexPath(0)
}

// SelectRange selects every leaf whose path lies between start and end
// inclusive, in either order. Items with children are not selected
// themselves; their descendants are. Both ends must address items;
// otherwise nothing changes and it returns false.
func (m *SelectionModel) SelectRange(start, end model.IndexPath) bool {
	return m.pathRange(start, end, true)
}

// DeselectRange deselects every leaf between start and end inclusive.
func (m *SelectionModel) DeselectRange(start, end model.IndexPath) bool {
	return m.pathRange(start, end, false)
}

func (m *SelectionModel) pathRange(start, end model.IndexPath, sel bool) bool {
	m.invalidate()

	if !m.validPath(start) || !m.validPath(end) {
		return false
	}

	if m.singleSelect {
		return m.selectPath(end, sel)
	}

	if start.Compare(end) > 0 {
		start, end = end, start
	}

	visited, changed := false, false

	m.traverseRange(start, end, func(parent *selectionNode, index int) {
		visited = true

		if _, c := parent.selectIndex(index, sel); c {
			changed = true
		}
	})

	if changed {
		m.onSelectionChanged()
	}

	return visited
}

// IsSelected reports the state of the root item at index.
func (m *SelectionModel) IsSelected(index int) model.SelectionState {
	return m.rootNode().isSelectedWithPartial(index)
}

// IsSelectedGroup reports the state of item itemIndex of group groupIndex.
func (m *SelectionModel) IsSelectedGroup(groupIndex, itemIndex int) model.SelectionState {
	child := m.rootNode().childAt(groupIndex, false)
	if child == noNode || child == leafNode {
		return model.NotSelected
	}

	return m.nodes[child].isSelectedWithPartial(itemIndex)
}

// IsSelectedAt reports the state of the item at path. The root path reports
// the aggregate state of the whole source.
func (m *SelectionModel) IsSelectedAt(path model.IndexPath) model.SelectionState {
	indices := path.Indices()
	n := m.rootNode()

	if len(indices) == 0 {
		return n.evaluateFromChildren()
	}

	for _, childIndex := range indices[:len(indices)-1] {
		child := n.childAt(childIndex, false)
		if child == noNode || child == leafNode {
			return model.NotSelected
		}

		n = m.nodes[child]
	}

	return n.isSelectedWithPartial(indices[len(indices)-1])
}

// SelectedIndex returns the first selected path.
func (m *SelectionModel) SelectedIndex() (model.IndexPath, bool) {
	indices := m.SelectedIndices()
	if indices.Len() == 0 {
		return model.IndexPath{}, false
	}

	first, err := indices.At(0)
	if err != nil {
		return model.IndexPath{}, false
	}

	return first, true
}

// SetSelectedIndex makes path the only selected item unless it is already
// selected. It returns false when path does not address an item.
func (m *SelectionModel) SetSelectedIndex(path model.IndexPath) bool {
	if m.IsSelectedAt(path) == model.Selected {
		return true
	}

	if !m.validPath(path) {
		return false
	}

	m.clearSelection(false)
	m.selectAlongPath(path, true)
	m.onSelectionChanged()

	return true
}

// SelectedIndices returns the selected paths in IndexPath order.
func (m *SelectionModel) SelectedIndices() *IndexPathView {
	if m.indicesView == nil || !m.indicesView.Valid() {
		m.indicesView = &IndexPathView{snap: m.buildSnapshot()}
	}

	return m.indicesView
}

// SelectedItem returns the item at SelectedIndex.
func (m *SelectionModel) SelectedItem() (any, bool) {
	items := m.SelectedItems()
	if items.Len() == 0 {
		return nil, false
	}

	item, err := items.At(0)
	if err != nil {
		return nil, false
	}

	return item, true
}

// SelectedItems returns the selected items in IndexPath order.
func (m *SelectionModel) SelectedItems() *ItemView {
	if m.itemsView == nil || !m.itemsView.Valid() {
		m.itemsView = &ItemView{snap: m.buildSnapshot()}
	}

	return m.itemsView
}
