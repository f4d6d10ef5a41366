package commands

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/youruser/photoframe/internal/export"
	"github.com/youruser/photoframe/internal/util"
)

// print <image>: write a print document next to the image or to --out.
func printCmd() *cobra.Command {
	var (
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "print <image>",
		Short: "Wrap an image in a printable page (html or pdf)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			a := &export.Artifact{
				Data:        data,
				ContentType: http.DetectContentType(data),
				Filename:    filepath.Base(args[0]),
			}

			var buf bytes.Buffer
			switch format {
			case "html":
				err = export.PrintHTML(&buf, a)
			case "pdf":
				err = export.PrintPDF(&buf, a)
			default:
				return fmt.Errorf("unknown format %q (want html or pdf)", format)
			}
			if err != nil {
				return err
			}

			if out == "" {
				out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + "." + format
			}
			if err := util.WriteFileAtomic(out, buf.Bytes()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "wrote", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "html", "html or pdf")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default <image>.<format>)")
	return cmd
}
