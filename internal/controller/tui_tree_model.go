package controller

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mouse-blink/treesel/internal/adapter"
	"github.com/mouse-blink/treesel/internal/model"
	"github.com/mouse-blink/treesel/internal/selection"
)

const (
	defaultTreeHeight = 20
	// Title, blank line, status and help.
	treeChromeHeight = 4
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	partialStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	anchorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// treeModel is the Bubble Tea model of the interactive browser. Every key
// maps onto one selection gesture or one structural edit of the document.
type treeModel struct {
	doc *adapter.Node
	sel *selection.SelectionModel

	rows     []treeRow
	expanded map[*adapter.Node]bool
	cursor   int
	offset   int

	keys   treeKeyMap
	help   help.Model
	search textinput.Model

	searching bool
	inserted  int
	status    string
	changes   int

	width  int
	height int

	unsubscribe func()
}

func newTreeModel(doc *adapter.Node, sel *selection.SelectionModel) *treeModel {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "item name"
	search.CharLimit = 64

	m := &treeModel{
		doc:      doc,
		sel:      sel,
		expanded: make(map[*adapter.Node]bool),
		keys:     newTreeKeyMap(),
		help:     help.New(),
		search:   search,
	}

	m.unsubscribe = sel.OnSelectionChanged(func(*selection.SelectionModel) { m.changes++ })
	m.refresh()

	return m
}

func (m *treeModel) Init() tea.Cmd {
	return nil
}

func (m *treeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.scroll()

		return m, nil
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}

		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *treeModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.jumpTo(m.search.Value())
		m.endSearch()

		return m, nil
	case tea.KeyEsc:
		m.endSearch()

		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	return m, cmd
}

func (m *treeModel) endSearch() {
	m.searching = false
	m.search.Blur()
	m.search.Reset()
}

func (m *treeModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.quit):
		m.unsubscribe()
		return m, tea.Quit
	case key.Matches(msg, m.keys.up):
		m.move(-1)
	case key.Matches(msg, m.keys.down):
		m.move(1)
	case key.Matches(msg, m.keys.expand):
		m.setExpanded(true)
	case key.Matches(msg, m.keys.collapse):
		m.collapseOrParent()
	case key.Matches(msg, m.keys.toggle):
		m.toggle()
	case key.Matches(msg, m.keys.anchor):
		if row, ok := m.current(); ok {
			m.sel.SetAnchorIndex(row.path)
			m.status = "anchor at " + row.path.String()
		}
	case key.Matches(msg, m.keys.extend):
		if row, ok := m.current(); ok && !m.sel.SelectRangeFromAnchorTo(row.path) {
			m.status = "nothing to select up to " + row.path.String()
		}
	case key.Matches(msg, m.keys.all):
		m.sel.SelectAll()
	case key.Matches(msg, m.keys.clear):
		m.sel.ClearSelection()
	case key.Matches(msg, m.keys.single):
		m.sel.SetSingleSelect(!m.sel.SingleSelect())
		m.status = modeLabel(m.sel) + " selection"
	case key.Matches(msg, m.keys.insert):
		m.insertAfter()
	case key.Matches(msg, m.keys.remove):
		m.remove()
	case key.Matches(msg, m.keys.jump):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
	}

	m.refresh()

	return m, nil
}

func (m *treeModel) current() (treeRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return treeRow{}, false
	}

	return m.rows[m.cursor], true
}

func (m *treeModel) move(delta int) {
	m.cursor = max(0, min(len(m.rows)-1, m.cursor+delta))
}

func (m *treeModel) setExpanded(open bool) {
	row, ok := m.current()
	if !ok || row.node.IsLeaf() {
		return
	}

	m.expanded[row.node] = open
}

// collapseOrParent collapses an open branch, or moves to the parent row.
func (m *treeModel) collapseOrParent() {
	row, ok := m.current()
	if !ok {
		return
	}

	if m.expanded[row.node] {
		m.expanded[row.node] = false
		return
	}

	parent := row.path.Parent()
	for i, r := range m.rows {
		if !parent.IsRoot() && r.path.Equal(parent) {
			m.cursor = i
			return
		}
	}
}

func (m *treeModel) toggle() {
	row, ok := m.current()
	if !ok {
		return
	}

	if m.sel.IsSelectedAt(row.path) == model.Selected {
		m.sel.DeselectAt(row.path)
	} else {
		m.sel.SelectAt(row.path)
	}
}

// insertAfter adds a placeholder sibling after the cursor row.
func (m *treeModel) insertAfter() {
	row, ok := m.current()
	if !ok {
		return
	}

	m.inserted++

	name := ""
	if row.parent.Kind == adapter.KindMap {
		name = fmt.Sprintf("new-%d", m.inserted)
		for row.parent.Lookup(name) >= 0 {
			m.inserted++
			name = fmt.Sprintf("new-%d", m.inserted)
		}
	}

	if err := row.parent.Children.Insert(row.path.Last()+1, adapter.NewLeaf(name, "new")); err != nil {
		m.status = err.Error()
		return
	}

	m.cursor++
	m.status = "inserted after " + row.path.String()
}

func (m *treeModel) remove() {
	row, ok := m.current()
	if !ok {
		return
	}

	if err := row.parent.Children.RemoveAt(row.path.Last(), 1); err != nil {
		m.status = err.Error()
		return
	}

	delete(m.expanded, row.node)
	m.status = "deleted " + row.path.String()
}

// jumpTo moves the cursor to the visible row whose name is closest to query.
func (m *treeModel) jumpTo(query string) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(m.rows) == 0 {
		return
	}

	best, bestScore := -1, 0

	for i, row := range m.rows {
		score := levenshtein.ComputeDistance(query, strings.ToLower(row.name()))
		if best < 0 || score < bestScore {
			best, bestScore = i, score
		}
	}

	m.cursor = best
	m.status = "jumped to " + m.rows[best].path.String()
	m.scroll()
}

// refresh rebuilds the visible rows after any change.
func (m *treeModel) refresh() {
	m.rows = flatten(m.doc, func(n *adapter.Node) bool { return m.expanded[n] })
	m.move(0)
	m.scroll()
}

func (m *treeModel) visibleRows() int {
	height := m.height
	if height <= 0 {
		height = defaultTreeHeight
	}

	return max(1, height-treeChromeHeight)
}

func (m *treeModel) scroll() {
	visible := m.visibleRows()

	if m.cursor < m.offset {
		m.offset = m.cursor
	}

	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}

	m.offset = max(0, m.offset)
}

func (m *treeModel) View() string {
	var b strings.Builder

	count := m.sel.SelectedIndices().Len()
	b.WriteString(titleStyle.Render(fmt.Sprintf("treesel · %d selected · %s", count, modeLabel(m.sel))))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(statusStyle.Render("(empty document)"))
		b.WriteString("\n")
	}

	end := min(len(m.rows), m.offset+m.visibleRows())
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(i))
		b.WriteString("\n")
	}

	switch {
	case m.searching:
		b.WriteString(m.search.View())
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m *treeModel) renderRow(i int) string {
	row := m.rows[i]

	glyph := " "
	if !row.node.IsLeaf() {
		glyph = "▸"
		if m.expanded[row.node] {
			glyph = "▾"
		}
	}

	state := m.sel.IsSelectedAt(row.path)
	marker := stateMarker(state)

	width := m.width
	if width <= 0 {
		width = 80
	}

	indent := strings.Repeat("  ", row.depth)
	label := truncateToWidth(row.label(), width-lipgloss.Width(indent)-8)

	if i == m.cursor {
		line := fmt.Sprintf("%s%s %s %s", indent, glyph, marker, label)
		if isAnchor(m.sel, row.path) {
			line += " ⚓"
		}

		return cursorStyle.Render(line)
	}

	switch state {
	case model.Selected:
		marker = selectedStyle.Render(marker)
	case model.PartiallySelected:
		marker = partialStyle.Render(marker)
	}

	line := fmt.Sprintf("%s%s %s %s", indent, glyph, marker, label)
	if isAnchor(m.sel, row.path) {
		line += anchorStyle.Render(" ⚓")
	}

	return line
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	if width <= 1 {
		return ellipsis
	}

	maxWidth := width - lipgloss.Width(ellipsis)

	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}
