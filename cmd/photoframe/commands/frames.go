package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// frames: list the catalog.
func framesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "frames",
		Short: "List available frames",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range appCtx.Frames {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", f.ID, f.Name, f.Source)
			}
			return nil
		},
	}
}
