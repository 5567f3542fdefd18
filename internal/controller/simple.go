package controller

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mouse-blink/treesel/internal/adapter"
	"github.com/mouse-blink/treesel/internal/model"
	"github.com/mouse-blink/treesel/internal/selection"
)

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd    *cobra.Command
	config StartConfig

	selected *color.Color
	partial  *color.Color
	anchor   *color.Color
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{
		cmd:      cmd,
		config:   newStartConfig(),
		selected: color.New(color.FgGreen, color.Bold),
		partial:  color.New(color.FgYellow),
		anchor:   color.New(color.FgCyan),
	}
}

// Start initializes the UI.
func (s *SimpleUI) Start(options ...StartOption) error {
	s.config = newStartConfig(options...)

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {

}

// DisplayTree prints the whole document with a tri-state marker per row.
func (s *SimpleUI) DisplayTree(doc *adapter.Node, sel *selection.SelectionModel) error {
	for _, row := range flatten(doc, nil) {
		marker := s.marker(sel.IsSelectedAt(row.path))

		line := fmt.Sprintf("%s%s %s", strings.Repeat("  ", row.depth), marker, row.label())
		if isAnchor(sel, row.path) {
			line += s.anchor.Sprint("  <anchor>")
		}

		s.printf("%s\n", line)
	}

	return nil
}

func (s *SimpleUI) marker(state model.SelectionState) string {
	text := stateMarker(state)

	switch state {
	case model.Selected:
		return s.selected.Sprint(text)
	case model.PartiallySelected:
		return s.partial.Sprint(text)
	default:
		return text
	}
}

// DisplaySelection prints the selected paths as a table.
func (s *SimpleUI) DisplaySelection(sel *selection.SelectionModel) error {
	entries, err := selectionEntries(sel)
	if err != nil {
		s.printf("selection error: %v\n", err)
		return err
	}

	header := []string{"#", "Path"}
	alignment := []int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT}

	if s.config.showItems {
		header = append(header, "Item")
		alignment = append(alignment, tablewriter.ALIGN_LEFT)
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment(alignment)

	for i, entry := range entries {
		row := []string{fmt.Sprintf("%d", i), entry.path.String()}
		if s.config.showItems {
			row = append(row, describeItem(entry.path, entry.item))
		}

		table.Append(row)
	}

	footer := []string{"", fmt.Sprintf("Total %d", len(entries))}
	if s.config.showItems {
		footer = append(footer, modeLabel(sel))
	}

	table.SetFooter(footer)

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// Browse is not available without a terminal.
func (s *SimpleUI) Browse(_ *adapter.Node, _ *selection.SelectionModel) error {
	return ErrNotInteractive
}

func modeLabel(sel *selection.SelectionModel) string {
	if sel.SingleSelect() {
		return "single"
	}

	return "multiple"
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
