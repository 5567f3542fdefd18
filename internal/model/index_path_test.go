package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexPath_Compare(t *testing.T) {
	tests := []struct {
		name string
		a    IndexPath
		b    IndexPath
		want int
	}{
		{name: "equal roots", a: IndexPath{}, b: IndexPath{}, want: 0},
		{name: "root before child", a: IndexPath{}, b: NewIndexPath(0), want: -1},
		{name: "first difference decides", a: IndexPathFromIndices(1, 9), b: IndexPathFromIndices(2, 0), want: -1},
		{name: "deeper difference", a: IndexPathFromIndices(1, 3, 0), b: IndexPathFromIndices(1, 2, 7), want: 1},
		{name: "prefix is lesser", a: NewIndexPath(2), b: NewGroupIndexPath(2, 0), want: -1},
		{name: "longer is greater", a: IndexPathFromIndices(2, 0, 0), b: NewGroupIndexPath(2, 0), want: 1},
		{name: "same components", a: NewGroupIndexPath(4, 1), b: IndexPathFromIndices(4, 1), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
			assert.Equal(t, -tt.want, tt.b.Compare(tt.a))
		})
	}
}

func TestIndexPath_At(t *testing.T) {
	p := IndexPathFromIndices(3, 1, 4)

	v, err := p.At(2)
	require.NoError(t, err)
	assert.Equal(t, 4, v)

	_, err = p.At(3)
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = p.At(-1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = IndexPath{}.At(0)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestIndexPath_CloneWithChildIndexDoesNotAlias(t *testing.T) {
	base := IndexPathFromIndices(1, 2)
	a := base.CloneWithChildIndex(3)
	b := base.CloneWithChildIndex(4)

	assert.Equal(t, "1.2", base.String())
	assert.Equal(t, "1.2.3", a.String())
	assert.Equal(t, "1.2.4", b.String())
}

func TestIndexPathFromIndices_Copies(t *testing.T) {
	src := []int{5, 6}
	p := IndexPathFromIndices(src...)
	src[0] = 99

	assert.Equal(t, []int{5, 6}, p.Indices())

	out := p.Indices()
	out[1] = 42
	assert.Equal(t, "5.6", p.String())
}

func TestParseIndexPath(t *testing.T) {
	tests := []struct {
		in      string
		want    IndexPath
		wantErr bool
	}{
		{in: "", want: IndexPath{}},
		{in: "3", want: NewIndexPath(3)},
		{in: "2.1", want: NewGroupIndexPath(2, 1)},
		{in: "0/4/2", want: IndexPathFromIndices(0, 4, 2)},
		{in: "1.x", wantErr: true},
		{in: "-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseIndexPath(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPath)
				return
			}

			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestIndexPath_ParentAndPrefix(t *testing.T) {
	p := IndexPathFromIndices(2, 0, 5)

	assert.Equal(t, "2.0", p.Parent().String())
	assert.True(t, IndexPath{}.Parent().IsRoot())
	assert.Equal(t, 5, p.Last())
	assert.Equal(t, -1, IndexPath{}.Last())
	assert.True(t, p.HasPrefix(NewGroupIndexPath(2, 0)))
	assert.True(t, p.HasPrefix(IndexPath{}))
	assert.False(t, p.HasPrefix(NewGroupIndexPath(2, 1)))
	assert.False(t, NewIndexPath(2).HasPrefix(p))
	assert.Equal(t, p.Key(), IndexPathFromIndices(2, 0, 5).Key())
}
