package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/treesel/internal/model"
)

func pathStrings(paths []model.IndexPath) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, p.String())
	}

	return out
}

func TestMatcher_Find(t *testing.T) {
	root := patchDoc(t)

	tests := []struct {
		name       string
		expression string
		want       []string
	}{
		{name: "by key", expression: `key == "email"`, want: []string{"2.1"}},
		{name: "by depth", expression: `depth == 0 && !leaf`, want: []string{"1", "2"}},
		{name: "sequence entries by value", expression: `value == "green"`, want: []string{"1.1"}},
		{name: "by index", expression: `leaf && index == 0`, want: []string{"0", "1.0", "2.0"}},
		{name: "by kind", expression: `kind == "seq"`, want: []string{"1"}},
		{name: "by path", expression: `path startsWith "2."`, want: []string{"2.0", "2.1"}},
		{name: "nothing", expression: `false`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMatcher(tt.expression)
			require.NoError(t, err)
			assert.Equal(t, tt.expression, m.String())

			found, err := m.Find(root)
			require.NoError(t, err)

			if tt.want == nil {
				assert.Empty(t, found)
				return
			}

			assert.Equal(t, tt.want, pathStrings(found))
		})
	}
}

func TestNewMatcher_Errors(t *testing.T) {
	t.Run("syntax", func(t *testing.T) {
		_, err := NewMatcher(`key ==`)
		require.Error(t, err)
	})

	t.Run("unknown variables", func(t *testing.T) {
		_, err := NewMatcher(`color == "red"`)
		require.Error(t, err)
	})

	t.Run("non boolean result", func(t *testing.T) {
		_, err := NewMatcher(`depth + 1`)
		require.Error(t, err)
	})
}

func TestWalk_Order(t *testing.T) {
	root := NewBranch("r", KindSeq,
		NewBranch("", KindSeq, NewLeaf("", 1), NewLeaf("", 2)),
		NewLeaf("", 3),
	)

	var visited []string
	require.NoError(t, Walk(root, func(path model.IndexPath, _ *Node) error {
		visited = append(visited, path.String())
		return nil
	}))

	assert.Equal(t, []string{"0", "0.0", "0.1", "1"}, visited)
}
