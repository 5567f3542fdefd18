// Package model defines the value types shared by the selection core and its
// consumers.
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// IndexPath identifies a node by the sibling index taken at every level
// below the root. The zero value is the root path.
//
// IndexPath is immutable; every method that derives a new path copies.
type IndexPath struct {
	indices []int
}

// NewIndexPath returns a single-level path.
func NewIndexPath(index int) IndexPath {
	return IndexPath{indices: []int{index}}
}

// NewGroupIndexPath returns a two-level path (group, item).
func NewGroupIndexPath(groupIndex, itemIndex int) IndexPath {
	return IndexPath{indices: []int{groupIndex, itemIndex}}
}

// IndexPathFromIndices returns a path over a copy of indices.
func IndexPathFromIndices(indices ...int) IndexPath {
	if len(indices) == 0 {
		return IndexPath{}
	}

	cp := make([]int, len(indices))
	copy(cp, indices)

	return IndexPath{indices: cp}
}

// ParseIndexPath parses the textual form produced by String. Components may be
// separated by '.' or '/'. The empty string is the root path.
func ParseIndexPath(s string) (IndexPath, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return IndexPath{}, nil
	}

	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '.' || r == '/' })
	indices := make([]int, 0, len(parts))

	for _, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 {
			return IndexPath{}, fmt.Errorf("%w: %q", ErrInvalidPath, s)
		}

		indices = append(indices, v)
	}

	return IndexPath{indices: indices}, nil
}

// Len returns the number of levels in the path.
func (p IndexPath) Len() int {
	return len(p.indices)
}

// IsRoot reports whether p addresses the root.
func (p IndexPath) IsRoot() bool {
	return len(p.indices) == 0
}

// At returns the sibling index at the given depth.
func (p IndexPath) At(depth int) (int, error) {
	if depth < 0 || depth >= len(p.indices) {
		return 0, fmt.Errorf("%w: depth %d of path %s", ErrIndexOutOfRange, depth, p)
	}

	return p.indices[depth], nil
}

// Last returns the last component, or -1 for the root path.
func (p IndexPath) Last() int {
	if len(p.indices) == 0 {
		return -1
	}

	return p.indices[len(p.indices)-1]
}

// Parent returns the path without its last component. The parent of the root
// is the root.
func (p IndexPath) Parent() IndexPath {
	if len(p.indices) <= 1 {
		return IndexPath{}
	}

	return IndexPathFromIndices(p.indices[:len(p.indices)-1]...)
}

// Indices returns a copy of the components.
func (p IndexPath) Indices() []int {
	cp := make([]int, len(p.indices))
	copy(cp, p.indices)

	return cp
}

// CloneWithChildIndex returns a new path with childIndex appended.
func (p IndexPath) CloneWithChildIndex(childIndex int) IndexPath {
	cp := make([]int, len(p.indices), len(p.indices)+1)
	copy(cp, p.indices)

	return IndexPath{indices: append(cp, childIndex)}
}

// HasPrefix reports whether prefix addresses p or one of its ancestors.
func (p IndexPath) HasPrefix(prefix IndexPath) bool {
	if len(prefix.indices) > len(p.indices) {
		return false
	}

	for i, v := range prefix.indices {
		if p.indices[i] != v {
			return false
		}
	}

	return true
}

// Compare orders paths element-wise over their common prefix; when the prefix
// matches, the shorter path sorts first. It returns -1, 0 or 1.
func (p IndexPath) Compare(other IndexPath) int {
	n := min(len(p.indices), len(other.indices))
	for i := range n {
		switch {
		case p.indices[i] < other.indices[i]:
			return -1
		case p.indices[i] > other.indices[i]:
			return 1
		}
	}

	switch {
	case len(p.indices) < len(other.indices):
		return -1
	case len(p.indices) > len(other.indices):
		return 1
	default:
		return 0
	}
}

// Equal reports whether both paths have the same components.
func (p IndexPath) Equal(other IndexPath) bool {
	return p.Compare(other) == 0
}

// Key returns a string that is equal for equal paths, for use as a map key.
func (p IndexPath) Key() string {
	return p.String()
}

// String renders the path as dot separated components, e.g. "2.0.5".
func (p IndexPath) String() string {
	var b strings.Builder

	for i, v := range p.indices {
		if i > 0 {
			b.WriteByte('.')
		}

		b.WriteString(strconv.Itoa(v))
	}

	return b.String()
}
