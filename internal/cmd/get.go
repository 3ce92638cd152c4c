package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	getCmd := &cobra.Command{
		Use:   "get [device]",
		Short: "Print the current brightness of a device",
		Args:  argsRange(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			var id string
			if len(args) == 1 {
				id = args[0]
			}
			dev, err := a.resolve(cmd, id)
			if err != nil {
				return err
			}
			lvl, err := a.ctrl.Level(dev)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			raw, _ := cmd.Flags().GetBool("raw")
			brief, _ := cmd.Flags().GetBool("brief")
			switch {
			case raw:
				fmt.Fprintln(out, lvl.Current)
			case brief:
				fmt.Fprintln(out, int(lvl.Percent))
			default:
				fmt.Fprintf(out, "%s: %d/%d (%.1f%%)\n", dev.ID, lvl.Current, lvl.Max, lvl.Percent)
			}
			return nil
		},
	}
	getCmd.Flags().Bool("raw", false, "Print the raw brightness value")
	return getCmd
}
