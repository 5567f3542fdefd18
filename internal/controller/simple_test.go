package controller

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/treesel/internal/adapter"
	"github.com/mouse-blink/treesel/internal/model"
	"github.com/mouse-blink/treesel/internal/selection"
)

func sampleTree() *adapter.Node {
	return adapter.NewBranch("doc", adapter.KindMap,
		adapter.NewLeaf("name", "demo"),
		adapter.NewBranch("tags", adapter.KindSeq,
			adapter.NewLeaf("", "red"),
			adapter.NewLeaf("", "green"),
		),
		adapter.NewBranch("owner", adapter.KindMap,
			adapter.NewLeaf("id", 7),
			adapter.NewLeaf("email", "demo@example.com"),
		),
	)
}

func boundSelection(t *testing.T, doc *adapter.Node) *selection.SelectionModel {
	t.Helper()

	sel := selection.New()
	unbind, err := adapter.Bind(sel, doc)
	require.NoError(t, err)
	t.Cleanup(unbind)

	return sel
}

func newTestSimpleUI() (*SimpleUI, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return NewSimpleUI(cmd), &buf
}

func TestSimpleUI_DisplayTree(t *testing.T) {
	doc := sampleTree()
	sel := boundSelection(t, doc)
	require.True(t, sel.SelectGroup(1, 1))
	require.True(t, sel.Select(0))
	require.True(t, sel.SetAnchorIndex(model.NewGroupIndexPath(2, 0)))

	ui, buf := newTestSimpleUI()
	require.NoError(t, ui.DisplayTree(doc, sel))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 7)

	assert.Contains(t, lines[0], "[x]")
	assert.Contains(t, lines[0], "name: demo")
	assert.Contains(t, lines[1], "[-]")
	assert.Contains(t, lines[1], "tags (seq, 2)")
	assert.True(t, strings.HasPrefix(lines[2], "  "))
	assert.Contains(t, lines[2], "[ ] [0]: red")
	assert.Contains(t, lines[3], "[1]: green")
	assert.Contains(t, lines[3], "[x]")
	assert.Contains(t, lines[5], "id: 7")
	assert.Contains(t, lines[5], "<anchor>")
}

func TestSimpleUI_DisplaySelection(t *testing.T) {
	t.Run("prints a table with items", func(t *testing.T) {
		doc := sampleTree()
		sel := boundSelection(t, doc)
		require.True(t, sel.SelectGroup(2, 1))
		require.True(t, sel.Select(0))

		ui, buf := newTestSimpleUI()
		require.NoError(t, ui.Start(WithSelectMode()))
		require.NoError(t, ui.DisplaySelection(sel))

		output := buf.String()
		for _, want := range []string{
			"PATH",
			"ITEM",
			"name: demo",
			"2.1",
			"email: demo@example.com",
			"TOTAL 2",
			"MULTIPLE",
		} {
			assert.Containsf(t, output, want, "output:\n%s", output)
		}

		assert.Less(t, strings.Index(output, "name: demo"), strings.Index(output, "email: demo@example.com"))
	})

	t.Run("items can be hidden", func(t *testing.T) {
		doc := sampleTree()
		sel := boundSelection(t, doc)
		require.True(t, sel.Select(0))

		ui, buf := newTestSimpleUI()
		require.NoError(t, ui.Start(WithShowItems(false)))
		require.NoError(t, ui.DisplaySelection(sel))

		assert.NotContains(t, buf.String(), "ITEM")
		assert.NotContains(t, buf.String(), "name: demo")
	})
}

func TestSimpleUI_Browse(t *testing.T) {
	ui, _ := newTestSimpleUI()

	err := ui.Browse(sampleTree(), selection.New())
	require.ErrorIs(t, err, ErrNotInteractive)
}
