package controller

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/treesel/internal/model"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m *treeModel, msgs ...tea.Msg) {
	t.Helper()

	for _, msg := range msgs {
		next, _ := m.Update(msg)
		require.Same(t, m, next)
	}
}

func cursorPath(m *treeModel) string {
	row, ok := m.current()
	if !ok {
		return ""
	}

	return row.path.String()
}

func TestTreeModel_Navigation(t *testing.T) {
	doc := sampleTree()
	m := newTreeModel(doc, boundSelection(t, doc))

	require.Len(t, m.rows, 3)
	assert.Equal(t, "0", cursorPath(m))

	press(t, m, runes("j"), tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "2", cursorPath(m))

	press(t, m, runes("l"))
	require.Len(t, m.rows, 5)

	press(t, m, runes("j"))
	assert.Equal(t, "2.0", cursorPath(m))

	press(t, m, runes("h"))
	assert.Equal(t, "2", cursorPath(m))

	press(t, m, runes("h"))
	assert.Len(t, m.rows, 3)

	press(t, m, runes("j"), runes("j"))
	assert.Equal(t, "2", cursorPath(m))

	press(t, m, tea.KeyMsg{Type: tea.KeyUp}, runes("k"), runes("k"))
	assert.Equal(t, "0", cursorPath(m))
}

func TestTreeModel_SelectionGestures(t *testing.T) {
	t.Run("toggle", func(t *testing.T) {
		doc := sampleTree()
		sel := boundSelection(t, doc)
		m := newTreeModel(doc, sel)

		press(t, m, runes(" "))
		assert.Equal(t, model.Selected, sel.IsSelected(0))
		assert.Equal(t, 1, m.changes)

		press(t, m, runes(" "))
		assert.Equal(t, model.NotSelected, sel.IsSelected(0))
		assert.Equal(t, 2, m.changes)
	})

	t.Run("anchor and range", func(t *testing.T) {
		doc := sampleTree()
		sel := boundSelection(t, doc)
		m := newTreeModel(doc, sel)

		// Open tags, anchor on its first entry, extend to owner.id.
		press(t, m, runes("j"), runes("l"), runes("j"), runes("m"))
		anchor, ok := sel.AnchorIndex()
		require.True(t, ok)
		assert.Equal(t, "1.0", anchor.String())

		press(t, m, runes("j"), runes("j"), runes("l"), runes("j"), runes("r"))
		assert.Equal(t, "2.0", cursorPath(m))

		paths, err := sel.SelectedIndices().All()
		require.NoError(t, err)

		got := make([]string, 0, len(paths))
		for _, p := range paths {
			got = append(got, p.String())
		}

		assert.Equal(t, []string{"1.0", "1.1", "2.0"}, got)
	})

	t.Run("select all, single mode and clear", func(t *testing.T) {
		doc := sampleTree()
		sel := boundSelection(t, doc)
		m := newTreeModel(doc, sel)

		press(t, m, runes("a"))
		assert.Equal(t, model.Selected, sel.IsSelectedAt(model.IndexPath{}))

		press(t, m, runes("s"))
		assert.True(t, sel.SingleSelect())
		assert.Equal(t, 1, sel.SelectedIndices().Len())
		assert.Contains(t, m.View(), "single")

		press(t, m, runes("c"))
		assert.Zero(t, sel.SelectedIndices().Len())
	})
}

func TestTreeModel_StructuralEdits(t *testing.T) {
	t.Run("delete shifts the selection", func(t *testing.T) {
		doc := sampleTree()
		sel := boundSelection(t, doc)
		require.True(t, sel.Select(2))
		m := newTreeModel(doc, sel)

		press(t, m, runes("d"))

		assert.Equal(t, 2, doc.Len())
		assert.Len(t, m.rows, 2)
		assert.Equal(t, model.Selected, sel.IsSelected(1))
		assert.Contains(t, m.View(), "deleted 0")
	})

	t.Run("insert adds a uniquely keyed sibling", func(t *testing.T) {
		doc := sampleTree()
		sel := boundSelection(t, doc)
		require.True(t, sel.Select(1))
		m := newTreeModel(doc, sel)

		press(t, m, runes("i"), runes("i"))

		require.Equal(t, 5, doc.Len())
		assert.Equal(t, "new-1", doc.Child(1).Key)
		assert.Equal(t, "new-2", doc.Child(2).Key)
		assert.Equal(t, model.Selected, sel.IsSelected(3))
		assert.Equal(t, "2", cursorPath(m))
	})

	t.Run("insert into a sequence has no key", func(t *testing.T) {
		doc := sampleTree()
		m := newTreeModel(doc, boundSelection(t, doc))

		press(t, m, runes("j"), runes("l"), runes("j"), runes("i"))

		tags := doc.Child(1)
		require.Equal(t, 3, tags.Len())
		assert.Equal(t, "", tags.Child(1).Key)
		assert.Equal(t, "new", tags.Child(1).Value)
	})
}

func TestTreeModel_Jump(t *testing.T) {
	doc := sampleTree()
	m := newTreeModel(doc, boundSelection(t, doc))

	press(t, m, runes("l"), runes("/"))
	require.True(t, m.searching)

	press(t, m, runes("ownr"), tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.searching)
	assert.Equal(t, "2", cursorPath(m))

	press(t, m, runes("/"), runes("zzz"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.searching)
	assert.Equal(t, "2", cursorPath(m))
}

func TestTreeModel_ViewAndQuit(t *testing.T) {
	doc := sampleTree()
	sel := boundSelection(t, doc)
	require.True(t, sel.SelectGroup(1, 0))
	m := newTreeModel(doc, sel)

	press(t, m, tea.WindowSizeMsg{Width: 60, Height: 10})

	view := m.View()
	assert.Contains(t, view, "1 selected")
	assert.Contains(t, view, "[-]")
	assert.Contains(t, view, "tags (seq, 2)")
	assert.Contains(t, view, "quit")

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	// The model no longer counts selection changes once it quit.
	changes := m.changes
	sel.ClearSelection()
	assert.Equal(t, changes, m.changes)
}

func TestTUI_Display(t *testing.T) {
	doc := sampleTree()
	sel := boundSelection(t, doc)
	require.True(t, sel.SelectGroup(2, 1))

	var buf bytes.Buffer
	ui := NewTUI(strings.NewReader(""), &buf)
	require.NoError(t, ui.Start(WithSelectMode()))

	require.NoError(t, ui.DisplayTree(doc, sel))
	tree := buf.String()
	assert.Contains(t, tree, "email: demo@example.com")
	assert.Contains(t, tree, "[0]: red")

	buf.Reset()
	require.NoError(t, ui.DisplaySelection(sel))
	assert.Contains(t, buf.String(), "1 selected")
	assert.Contains(t, buf.String(), "2.1")
}

func TestTruncateToWidth(t *testing.T) {
	assert.Equal(t, "", truncateToWidth("hello", 0))
	assert.Equal(t, "hello", truncateToWidth("hello", 10))
	assert.Equal(t, "…", truncateToWidth("hello", 1))
	assert.Equal(t, "h…", truncateToWidth("hello", 2))
}
