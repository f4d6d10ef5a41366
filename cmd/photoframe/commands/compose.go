package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/youruser/photoframe/internal/export"
	"github.com/youruser/photoframe/internal/flow"
	imagepkg "github.com/youruser/photoframe/internal/image"
)

// compose: run the whole flow non-interactively and save the result.
func composeCmd() *cobra.Command {
	var (
		frameID  string
		photo    string
		name     string
		overlay  string
		outDir   string
		share    string
		noShare  bool
		toStdout bool
	)
	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Composite a frame or photo with a name and an overlay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := flow.Initial()
			var err error
			switch {
			case photo != "":
				st, err = st.SelectBase("", flow.SelectableImage{Source: photo, DisplayName: photo}, imagepkg.DefaultLayout())
			default:
				f, ok := appCtx.Frames.Find(frameID)
				if !ok {
					return fmt.Errorf("unknown frame %q (see photoframe frames)", frameID)
				}
				st, err = st.SelectBase(f.ID, flow.SelectableImage{Source: f.Source, DisplayName: f.Name}, f.Layout)
			}
			if err != nil {
				return err
			}
			if st, err = st.SetName(name); err != nil {
				return err
			}
			if st, err = st.SelectOverlay(flow.SelectableImage{Source: overlay, DisplayName: overlay}); err != nil {
				return err
			}
			req, err := st.CompositeRequest()
			if err != nil {
				return err
			}

			res, err := appCtx.Compositor.Compose(cmd.Context(), req)
			if err != nil {
				return err
			}

			var targets []export.Target
			if share == "" {
				share = appCtx.Config.ShareCmd
			}
			if !noShare {
				targets = append(targets, export.NewShareTarget(share))
			}
			file := &export.FileTarget{Dir: outDir}
			targets = append(targets, file)
			if toStdout {
				targets = append(targets, &export.WriterTarget{W: os.Stdout})
			}
			via, err := export.NewSaver(appCtx.Log, targets...).Save(cmd.Context(), export.CompositeArtifact(res, st.Name))
			if err != nil {
				return err
			}
			if via == file.Name() && file.Saved != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), "saved", file.Saved)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&frameID, "frame", "1", "frame id from the catalog")
	cmd.Flags().StringVar(&photo, "photo", "", "use this photo (path or URL) as the base instead of a frame")
	cmd.Flags().StringVarP(&name, "name", "n", "", "name drawn on the image")
	cmd.Flags().StringVarP(&overlay, "overlay", "o", "", "overlay image (path or URL)")
	cmd.Flags().StringVar(&outDir, "out", ".", "directory the result is saved in")
	cmd.Flags().StringVar(&share, "share", "", "share command tried first when on PATH (default $PHOTOFRAME_SHARE_CMD or termux-share)")
	cmd.Flags().BoolVar(&noShare, "no-share", false, "skip the share command and save straight to --out")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "write the PNG to stdout if saving to --out fails")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("overlay")
	return cmd
}
