// Package controller renders documents and their selection, either as plain
// text and tables or as an interactive Bubble Tea tree browser.
package controller

import (
	"errors"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mouse-blink/treesel/internal/adapter"
	"github.com/mouse-blink/treesel/internal/selection"
)

// ErrNotInteractive is returned by Browse on a UI that cannot take input.
var ErrNotInteractive = errors.New("interactive browsing needs a terminal")

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeList StartMode = iota
	ModeSelect
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode      StartMode
	showItems bool
}

// WithListMode sets the UI to tree listing mode.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

// WithSelectMode sets the UI to selection reporting mode.
func WithSelectMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeSelect
	}
}

// WithShowItems makes selection reports include the selected items.
func WithShowItems(show bool) StartOption {
	return func(c *StartConfig) {
		c.showItems = show
	}
}

func newStartConfig(options ...StartOption) StartConfig {
	cfg := StartConfig{showItems: true}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// UI displays documents and selections.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(options ...StartOption) error
	Close()
	DisplayTree(doc *adapter.Node, sel *selection.SelectionModel) error
	DisplaySelection(sel *selection.SelectionModel) error
	Browse(doc *adapter.Node, sel *selection.SelectionModel) error
}

// NewUI creates a UI based on whether TTY mode is enabled.
// When useTTY is true, it returns a TUI (Bubble Tea).
// When useTTY is false, it returns a SimpleUI (plain text).
func NewUI(cmd *cobra.Command, useTTY bool) UI {
	if useTTY {
		return NewTUI(cmd.InOrStdin(), cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY checks if the given writer is a terminal.
// Returns false if the output is redirected to a file or pipe.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
