package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/treesel/internal/domain"
)

const listLongDescription = `Print the document tree with one line per item.

Every line shows the item's selection marker and its label; the index
path of an item is its position at each level, starting at 0. Patches
given with --patch are applied before printing.`

// listCmd represents the list command.
var listCmd = newListCmd()
var listPatchFlags []string

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [source]",
		Short: "Print a document tree",
		Long:  listLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.List(domain.ListArgs{
				Source:  sourceArg(args),
				Patches: listPatchFlags,
			})
		},
	}
	cmd.Flags().StringArrayVarP(&listPatchFlags, "patch", "p", nil, "JSON patch file applied before printing (can be repeated)")

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
