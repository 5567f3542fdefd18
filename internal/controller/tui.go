package controller

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mouse-blink/treesel/internal/adapter"
	"github.com/mouse-blink/treesel/internal/selection"
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	input  io.Reader
	output io.Writer
	config StartConfig
}

// NewTUI creates a new TUI.
func NewTUI(input io.Reader, output io.Writer) *TUI {
	return &TUI{input: input, output: output, config: newStartConfig()}
}

// Start initializes the UI.
func (t *TUI) Start(options ...StartOption) error {
	t.config = newStartConfig(options...)

	return nil
}

// Close finalizes the UI.
func (t *TUI) Close() {

}

// DisplayTree prints the fully expanded document once with styled markers.
func (t *TUI) DisplayTree(doc *adapter.Node, sel *selection.SelectionModel) error {
	m := newTreeModel(doc, sel)
	defer m.unsubscribe()

	m.rows = flatten(doc, nil)
	for _, row := range m.rows {
		if !row.node.IsLeaf() {
			m.expanded[row.node] = true
		}
	}

	m.cursor = -1

	lines := make([]string, 0, len(m.rows))
	for i := range m.rows {
		lines = append(lines, m.renderRow(i))
	}

	_, _ = fmt.Fprintln(t.output, strings.Join(lines, "\n"))

	return nil
}

// DisplaySelection prints one styled line per selected path.
func (t *TUI) DisplaySelection(sel *selection.SelectionModel) error {
	entries, err := selectionEntries(sel)
	if err != nil {
		_, _ = fmt.Fprintf(t.output, "selection error: %v\n", err)

		return err
	}

	_, _ = fmt.Fprintln(t.output, titleStyle.Render(fmt.Sprintf("%d selected · %s", len(entries), modeLabel(sel))))

	for _, entry := range entries {
		line := selectedStyle.Render(entry.path.String())
		if t.config.showItems {
			line += "  " + describeItem(entry.path, entry.item)
		}

		_, _ = fmt.Fprintln(t.output, line)
	}

	return nil
}

// Browse runs the interactive tree browser until the user quits.
func (t *TUI) Browse(doc *adapter.Node, sel *selection.SelectionModel) error {
	p := tea.NewProgram(
		newTreeModel(doc, sel),
		tea.WithInput(t.input),
		tea.WithOutput(t.output),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run browser: %w", err)
	}

	return nil
}
