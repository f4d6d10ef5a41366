package app

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/youruser/photoframe/internal/blob"
	"github.com/youruser/photoframe/internal/flow"
	"github.com/youruser/photoframe/internal/frames"
	imagepkg "github.com/youruser/photoframe/internal/image"
	"github.com/youruser/photoframe/internal/upload"
)

// Wire bundles the services shared by the server and the CLI.
type Wire struct {
	Config     Config
	Log        *logrus.Logger
	Blobs      *blob.Store
	Loader     *imagepkg.SourceLoader
	Compositor *imagepkg.Compositor
	QR         *imagepkg.QRRenderer
	Uploader   *upload.Client
	Frames     frames.Catalog
	Flows      *flow.Store
}

// NewLogger builds the process logger at the named level.
func NewLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		log.WithField("level", level).Warn("unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

// NewWire constructs the dependency graph from cfg. A broken font or frame
// catalog is logged and replaced by the built-in default.
func NewWire(cfg Config) (*Wire, error) {
	log := NewLogger(cfg.LogLevel)

	fonts, err := imagepkg.LoadFonts(cfg.FontPath)
	if fonts == nil {
		return nil, err
	}
	if err != nil {
		log.WithError(err).Warn("custom font not loaded")
	}

	catalog, err := frames.LoadFromDataDir(cfg.DataDir)
	if err != nil {
		log.WithError(err).Warn("failed to load frame catalog, using default")
		catalog = frames.Default(cfg.DataDir)
	}

	blobs := blob.NewStore(cfg.BlobLimit)
	loader := imagepkg.NewSourceLoader(blobs)

	uploader := upload.New(cfg.Upload, nil)
	if !uploader.Configured() {
		log.Warn("CLOUDINARY_CLOUD_NAME / CLOUDINARY_UPLOAD_PRESET not set; uploads will fail")
	}

	return &Wire{
		Config:     cfg,
		Log:        log,
		Blobs:      blobs,
		Loader:     loader,
		Compositor: imagepkg.NewCompositor(loader, fonts, log),
		QR:         imagepkg.NewQRRenderer(),
		Uploader:   uploader,
		Frames:     catalog,
		Flows:      flow.NewStore(blobs.Release),
	}, nil
}
