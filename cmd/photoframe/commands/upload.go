package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/youruser/photoframe/internal/export"
)

// upload <file>: publish the file, show the link as a QR code and copy it.
func uploadCmd() *cobra.Command {
	var noCopy bool
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload an image and print its link as a QR code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			link, err := appCtx.Uploader.Upload(cmd.Context(), filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, link)

			if qr, err := appCtx.QR.Terminal(link); err == nil {
				fmt.Fprint(out, qr)
			}
			if !noCopy {
				n, err := export.CopyLink(cmd.Context(), export.OSC52{W: cmd.ErrOrStderr()}, link, time.Now(), appCtx.Log)
				if err == nil {
					fmt.Fprintln(cmd.ErrOrStderr(), n.Message)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noCopy, "no-copy", false, "do not copy the link to the clipboard")
	return cmd
}
