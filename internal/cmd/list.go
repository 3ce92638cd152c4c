package cmd

import (
	"github.com/hoppxi/lc/pkg/displayinfo"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List backlight devices and their current level",
		Args:    argsRange(0, 0),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			infos, err := displayinfo.GetDisplayInfo(a.registry, a.ctrl)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("output")
			return displayinfo.Write(cmd.OutOrStdout(), infos, format)
		},
	}
	listCmd.Flags().StringP("output", "o", "table", "Output format: table, json or yaml")
	return listCmd
}
