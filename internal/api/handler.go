package api

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/youruser/photoframe/internal/app"
	"github.com/youruser/photoframe/internal/blob"
	"github.com/youruser/photoframe/internal/flow"
	"github.com/youruser/photoframe/internal/frames"
	imagepkg "github.com/youruser/photoframe/internal/image"
)

// Composer renders a composite from a request.
type Composer interface {
	Compose(ctx context.Context, req imagepkg.CompositeRequest) (*imagepkg.CompositeResult, error)
}

// Uploader publishes a file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// Handler holds what the HTTP handlers need.
type Handler struct {
	Frames   frames.Catalog
	Flows    *flow.Store
	Blobs    *blob.Store
	Composer Composer
	Uploader Uploader
	QR       *imagepkg.QRRenderer
	Log      logrus.FieldLogger
}

// New builds a Handler from the wired services.
func New(w *app.Wire) *Handler {
	return &Handler{
		Frames:   w.Frames,
		Flows:    w.Flows,
		Blobs:    w.Blobs,
		Composer: w.Compositor,
		Uploader: w.Uploader,
		QR:       w.QR,
		Log:      w.Log,
	}
}
