package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/treesel/internal/domain"
)

const selectLongDescription = `Select items of a document and print the selected index paths.

Selections combine in this order: --all, every --select path, every
--range, then every item the --match expression accepts. Patches are
applied afterwards so the printed paths follow the edits.

Paths are dot separated indices such as 1.0. Ranges are start:end pairs
and may cross levels. Match expressions see path, depth, index, key,
value, leaf and kind, for example:
  treesel select doc.yaml --match 'leaf && key == "email"'`

// selectCmd represents the select command.
var selectCmd = newSelectCmd()

var (
	selectPathFlags   []string
	selectRangeFlags  []string
	selectPatchFlags  []string
	selectAllFlag     bool
	selectMatchFlag   string
	selectSingleFlag  bool
	selectInteractive bool
	selectShowItems   bool
)

func newSelectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select [source]",
		Short: "Select items and print their paths",
		Long:  selectLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			showItems := cfg.UI.ShowItems
			if cmd.Flags().Changed("show-items") {
				showItems = selectShowItems
			}

			return workflow.Select(domain.SelectArgs{
				ListArgs: domain.ListArgs{
					Source:  sourceArg(args),
					Patches: selectPatchFlags,
				},
				Paths:       selectPathFlags,
				Ranges:      selectRangeFlags,
				All:         selectAllFlag,
				Match:       selectMatchFlag,
				Single:      selectSingleFlag || cfg.Selection.Single,
				Interactive: selectInteractive,
				ShowItems:   showItems,
			})
		},
	}
	cmd.Flags().StringArrayVarP(&selectPathFlags, "select", "s", nil, "index path to select, e.g. 1.0 (can be repeated)")
	cmd.Flags().StringArrayVarP(&selectRangeFlags, "range", "r", nil, "inclusive start:end range to select (can be repeated)")
	cmd.Flags().StringArrayVarP(&selectPatchFlags, "patch", "p", nil, "JSON patch file applied after selecting (can be repeated)")
	cmd.Flags().BoolVarP(&selectAllFlag, "all", "a", false, "select every item at every level")
	cmd.Flags().StringVarP(&selectMatchFlag, "match", "m", "", "select every item the expression accepts")
	cmd.Flags().BoolVar(&selectSingleFlag, "single", false, "keep at most one item selected")
	cmd.Flags().BoolVarP(&selectInteractive, "interactive", "i", false, "browse and edit the selection before printing")
	cmd.Flags().BoolVar(&selectShowItems, "show-items", true, "print each selected item next to its path")

	return cmd
}

func init() {
	rootCmd.AddCommand(selectCmd)
}
