package commands

import (
	"github.com/spf13/cobra"

	"github.com/youruser/photoframe/internal/app"
)

var (
	dataDir  string
	fontPath string
	logLevel string
	appCtx   *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:          "photoframe",
		Short:        "Frame photos with a name and an overlay, then save, print or share them",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.ConfigFromEnv()
			if dataDir != "" {
				cfg.DataDir = dataDir
			}
			if fontPath != "" {
				cfg.FontPath = fontPath
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			w, err := app.NewWire(cfg)
			if err != nil {
				return err
			}
			appCtx = w
			return nil
		},
	}

	root.PersistentFlags().StringVar(&dataDir, "data", "", "frame data dir (default $PHOTOFRAME_DATA or ./data)")
	root.PersistentFlags().StringVar(&fontPath, "font", "", "TTF font for the name (default Go Regular)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (default $LOG_LEVEL or info)")

	root.AddCommand(framesCmd(), composeCmd(), uploadCmd(), qrCmd(), printCmd())
	return root.Execute()
}
