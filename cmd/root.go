// Package cmd provides the root command and CLI setup for treesel.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/treesel/internal/adapter"
	"github.com/mouse-blink/treesel/internal/config"
	"github.com/mouse-blink/treesel/internal/controller"
	"github.com/mouse-blink/treesel/internal/domain"
)

var workflow domain.Workflow
var ui controller.UI
var cfg config.Config

var configFlag string
var verboseFlag bool

const rootLongDescription = `Treesel loads YAML and JSON documents as trees and selects items at any
depth: single paths, ranges that cross levels, expression matches or
everything at once. Patches applied after selecting shift the selection
along with the edited document.

Sources may be:
  - doc.yaml       a single document
  - ./configs      every document in a directory
  - ./configs/...  the directory and all of its subdirectories`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "treesel",
		Short:         "Select items in nested YAML and JSON documents",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd)
		},
	}
	cmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "config file (default $TREESEL_CONFIG or ~/.config/treesel/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log debug output to stderr")

	return cmd
}

// setup loads the configuration and wires the workflow unless one is
// already set.
func setup(cmd *cobra.Command) error {
	loaded, err := config.Load(configFlag)
	if err != nil {
		return err
	}

	cfg = loaded

	if workflow != nil {
		return nil
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg, verboseFlag)
	if err != nil {
		return err
	}

	ui = controller.NewUI(cmd, useTTY(cmd, cfg.UI.Mode))

	docs := adapter.NewLocalDocumentLoader(logger)
	workflow = domain.NewWorkflow(
		docs,
		adapter.NewLocalDirLoader(docs, cfg.Load.Workers, logger),
		adapter.NewJSONPatchApplier(logger),
		ui,
		logger,
	)

	return nil
}

func newLogger(w io.Writer, c config.Config, verbose bool) (*slog.Logger, error) {
	level, err := c.Level()
	if err != nil {
		return nil, err
	}

	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

func useTTY(cmd *cobra.Command, mode string) bool {
	switch mode {
	case config.ModeTUI:
		return true
	case config.ModeSimple:
		return false
	default:
		return controller.IsTTY(cmd.OutOrStdout())
	}
}

func sourceArg(args []string) string {
	if len(args) == 0 {
		return "."
	}

	return args[0]
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "treesel:", err)
		os.Exit(1)
	}
}
