package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIndexRange_Normalizes(t *testing.T) {
	r := NewIndexRange(8, 2)

	assert.Equal(t, IndexRange{Begin: 2, End: 8}, r)
	assert.Equal(t, 7, r.Count())
}

func TestIndexRange_ContainsAndIntersects(t *testing.T) {
	r := NewIndexRange(2, 5)

	assert.False(t, r.Contains(1))
	assert.True(t, r.Contains(2))
	assert.True(t, r.Contains(5))
	assert.False(t, r.Contains(6))

	assert.True(t, r.Intersects(NewIndexRange(5, 9)), "touching end is an overlap")
	assert.True(t, r.Intersects(NewIndexRange(0, 2)), "touching begin is an overlap")
	assert.True(t, r.Intersects(NewIndexRange(3, 4)))
	assert.False(t, r.Intersects(NewIndexRange(6, 9)))
	assert.False(t, r.Intersects(NewIndexRange(0, 1)))
}

func TestIndexRange_Split(t *testing.T) {
	tests := []struct {
		name        string
		r           IndexRange
		at          int
		before      IndexRange
		after       IndexRange
		afterEmpty  bool
		beforeEmpty bool
	}{
		{name: "middle", r: NewIndexRange(2, 8), at: 4, before: NewIndexRange(2, 4), after: NewIndexRange(5, 8)},
		{name: "at end leaves empty after", r: NewIndexRange(2, 8), at: 8, before: NewIndexRange(2, 8), afterEmpty: true},
		{name: "before begin leaves empty before", r: NewIndexRange(2, 8), at: 1, beforeEmpty: true, after: NewIndexRange(2, 8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, after := tt.r.Split(tt.at)

			assert.Equal(t, tt.beforeEmpty, before.Empty())
			assert.Equal(t, tt.afterEmpty, after.Empty())

			if !tt.beforeEmpty {
				assert.Equal(t, tt.before, before)
			}

			if !tt.afterEmpty {
				assert.Equal(t, tt.after, after)
			}
		})
	}
}

func TestSelectionState_Bool(t *testing.T) {
	v, known := Selected.Bool()
	assert.True(t, v)
	assert.True(t, known)

	v, known = NotSelected.Bool()
	assert.False(t, v)
	assert.True(t, known)

	_, known = PartiallySelected.Bool()
	assert.False(t, known)

	assert.Equal(t, "partial", PartiallySelected.String())
}
