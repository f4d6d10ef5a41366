package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/youruser/photoframe/internal/export"
)

// qr <url>: print a QR code, or save it as qr-code.png with --out.
func qrCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "qr <url>",
		Short: "Render a QR code for a link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outDir == "" {
				s, err := appCtx.QR.Terminal(args[0])
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), s)
				return nil
			}
			png, err := appCtx.QR.Render(args[0])
			if err != nil {
				return err
			}
			file := &export.FileTarget{Dir: outDir}
			if _, err := export.NewSaver(appCtx.Log, file).Save(cmd.Context(), export.QRArtifact(png)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "saved", file.Saved)
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "save qr-code.png into this directory")
	return cmd
}
