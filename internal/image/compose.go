package imagepkg

import (
	"bytes"
	"context"
	"image"
	"image/draw"
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/sirupsen/logrus"
)

// CompositeResult is a flattened PNG at the base image's native resolution.
type CompositeResult struct {
	Data     []byte
	Width    int
	Height   int
	Revision uint64
}

// CompositeRequest names the inputs of one composite. Base and Overlay are
// source references understood by the Loader.
type CompositeRequest struct {
	Base     string
	Overlay  string
	Name     string
	Layout   Layout
	Revision uint64
}

// Compositor renders a base image, a name and an overlay into one image.
type Compositor struct {
	Loader Loader
	Fonts  *Fonts
	Log    logrus.FieldLogger
}

func NewCompositor(loader Loader, fonts *Fonts, log logrus.FieldLogger) *Compositor {
	if fonts == nil {
		fonts = DefaultFonts()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Compositor{Loader: loader, Fonts: fonts, Log: log}
}

// Compose loads the base, draws it with the name, then loads and draws the
// overlay. A base that fails to load is fatal; an overlay that fails to load
// is skipped and the base+name render is returned.
func (c *Compositor) Compose(ctx context.Context, req CompositeRequest) (*CompositeResult, error) {
	base, err := c.Loader.Load(ctx, req.Base)
	if err != nil {
		return nil, &CompositeError{Stage: "base", Err: err}
	}

	s, err := newSurface(base, req.Layout)
	if err != nil {
		return nil, &CompositeError{Stage: "surface", Err: err}
	}
	if err := s.drawName(c.Fonts, req.Name); err != nil {
		return nil, &CompositeError{Stage: "text", Err: err}
	}

	overlay, err := c.Loader.Load(ctx, req.Overlay)
	if err != nil {
		c.Log.WithError(err).WithField("overlay", req.Overlay).Warn("overlay unavailable, compositing without it")
	} else {
		s.drawOverlay(overlay)
	}

	res, err := s.encode()
	if err != nil {
		return nil, &CompositeError{Stage: "encode", Err: err}
	}
	res.Revision = req.Revision
	c.Log.WithFields(logrus.Fields{
		"width":    res.Width,
		"height":   res.Height,
		"revision": res.Revision,
		"overlay":  overlay != nil,
	}).Debug("composite rendered")
	return res, nil
}

// Render composites already-decoded images. A nil overlay is skipped.
func Render(base, overlay image.Image, name string, layout Layout, fonts *Fonts) (*image.RGBA, error) {
	if fonts == nil {
		fonts = DefaultFonts()
	}
	s, err := newSurface(base, layout)
	if err != nil {
		return nil, err
	}
	if err := s.drawName(fonts, name); err != nil {
		return nil, err
	}
	if overlay != nil {
		s.drawOverlay(overlay)
	}
	return s.canvas, nil
}

type surface struct {
	canvas *image.RGBA
	place  Placement
	layout Layout
}

func newSurface(base image.Image, layout Layout) (*surface, error) {
	b := base.Bounds()
	if b.Empty() {
		return nil, errEmptyImage
	}
	canvas := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(canvas, canvas.Bounds(), base, b.Min, draw.Src)
	return &surface{
		canvas: canvas,
		place:  layout.Resolve(b.Dx(), b.Dy()),
		layout: layout,
	}, nil
}

func (s *surface) drawName(fonts *Fonts, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	face, err := fonts.Face(s.place.FontSize)
	if err != nil {
		return err
	}
	defer face.Close()

	dc := gg.NewContextForRGBA(s.canvas)
	dc.SetFontFace(face)
	dc.SetColor(s.layout.TextColor)
	dc.DrawString(name, float64(s.place.Name.X), float64(s.place.Name.Y))
	return nil
}

func (s *surface) drawOverlay(overlay image.Image) {
	r := FitWithin(overlay.Bounds().Size(), s.place.Overlay)
	if r.Empty() {
		return
	}
	scaled := imaging.Resize(overlay, r.Dx(), r.Dy(), imaging.Lanczos)
	draw.Draw(s.canvas, r, scaled, image.Point{}, draw.Over)
}

func (s *surface) encode() (*CompositeResult, error) {
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, s.canvas); err != nil {
		return nil, err
	}
	b := s.canvas.Bounds()
	return &CompositeResult{Data: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
}
