package selection

import (
	"fmt"
	"sort"

	"github.com/mouse-blink/treesel/internal/model"
)

// segment is a run of consecutive entries of the flat selection that belong
// to one node: the node's selected indices with rank in [lo, hi).
type segment struct {
	node *selectionNode
	path model.IndexPath
	lo   int
	hi   int
}

// snapshot is the ordered list of segments taken at one generation of the
// model. Entries are resolved on demand.
type snapshot struct {
	owner      *SelectionModel
	generation uint64
	segments   []segment
	offsets    []int
	count      int
}

// buildSnapshot walks the realized tree once and cuts every node's
// selection at its realized composite children, which yields the entries in
// IndexPath order: an item sorts before its own descendants.
func (m *SelectionModel) buildSnapshot() *snapshot {
	s := &snapshot{owner: m, generation: m.generation}

	emit := func(n *selectionNode, path model.IndexPath, lo, hi int) {
		if hi <= lo {
			return
		}

		s.segments = append(s.segments, segment{node: n, path: path, lo: lo, hi: hi})
		s.offsets = append(s.offsets, s.count)
		s.count += hi - lo
	}

	type frame struct {
		node   *selectionNode
		path   model.IndexPath
		cursor int
		rank   int
	}

	stack := []*frame{{node: m.rootNode()}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		descended := false

		for f.cursor < len(f.node.children) {
			i := f.cursor
			f.cursor++

			child := f.node.children[i]
			if child == noNode || child == leafNode {
				continue
			}

			hi := f.node.rankBelow(i + 1)
			emit(f.node, f.path, f.rank, hi)
			f.rank = hi

			stack = append(stack, &frame{node: m.nodes[child], path: f.path.CloneWithChildIndex(i)})
			descended = true

			break
		}

		if descended {
			continue
		}

		emit(f.node, f.path, f.rank, f.node.selectedCount)
		stack = stack[:len(stack)-1]
	}

	return s
}

func (s *snapshot) check() error {
	if s.owner.generation != s.generation {
		return model.ErrInvalidState
	}

	return nil
}

// locate maps a flat position onto a node and local index.
func (s *snapshot) locate(i int) (segment, int, error) {
	if err := s.check(); err != nil {
		return segment{}, 0, err
	}

	if i < 0 || i >= s.count {
		return segment{}, 0, fmt.Errorf("selection entry %d of %d: %w", i, s.count, model.ErrIndexOutOfRange)
	}

	k := sort.Search(len(s.offsets), func(j int) bool { return s.offsets[j] > i }) - 1
	seg := s.segments[k]

	local, ok := seg.node.selectedAt(seg.lo + i - s.offsets[k])
	if !ok {
		return segment{}, 0, model.ErrInvalidState
	}

	return seg, local, nil
}

// IndexPathView is a read-only, lazily resolved list of the selected index
// paths in IndexPath order. It becomes stale as soon as the model changes;
// reads on a stale view return model.ErrInvalidState.
type IndexPathView struct {
	snap *snapshot
}

// Len returns the number of selected entries captured by the view.
func (v *IndexPathView) Len() int {
	return v.snap.count
}

// Valid reports whether the model is unchanged since the view was built.
func (v *IndexPathView) Valid() bool {
	return v.snap.check() == nil
}

// At returns the i-th selected path.
func (v *IndexPathView) At(i int) (model.IndexPath, error) {
	seg, local, err := v.snap.locate(i)
	if err != nil {
		return model.IndexPath{}, err
	}

	return seg.path.CloneWithChildIndex(local), nil
}

// All resolves every entry.
func (v *IndexPathView) All() ([]model.IndexPath, error) {
	out := make([]model.IndexPath, 0, v.snap.count)

	for i := range v.snap.count {
		p, err := v.At(i)
		if err != nil {
			return nil, err
		}

		out = append(out, p)
	}

	return out, nil
}

// Contains reports whether path is one of the selected entries.
func (v *IndexPathView) Contains(path model.IndexPath) (bool, error) {
	if err := v.snap.check(); err != nil {
		return false, err
	}

	if path.IsRoot() {
		return false, nil
	}

	parent := path.Parent()
	last := path.Last()

	for _, seg := range v.snap.segments {
		if !seg.path.Equal(parent) {
			continue
		}

		rank := seg.node.rankBelow(last)
		if rank >= seg.lo && rank < seg.hi && seg.node.isSelected(last) {
			return true, nil
		}
	}

	return false, nil
}

// ItemView is the item-valued counterpart of IndexPathView.
type ItemView struct {
	snap *snapshot
}

// Len returns the number of selected entries captured by the view.
func (v *ItemView) Len() int {
	return v.snap.count
}

// Valid reports whether the model is unchanged since the view was built.
func (v *ItemView) Valid() bool {
	return v.snap.check() == nil
}

// At returns the i-th selected item.
func (v *ItemView) At(i int) (any, error) {
	seg, local, err := v.snap.locate(i)
	if err != nil {
		return nil, err
	}

	if seg.node.view == nil {
		return nil, model.ErrInvalidState
	}

	return seg.node.view.At(local), nil
}

// All resolves every entry.
func (v *ItemView) All() ([]any, error) {
	out := make([]any, 0, v.snap.count)

	for i := range v.snap.count {
		item, err := v.At(i)
		if err != nil {
			return nil, err
		}

		out = append(out, item)
	}

	return out, nil
}
