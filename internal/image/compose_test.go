package imagepkg_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	imagepkg "github.com/youruser/photoframe/internal/image"
)

type mapLoader map[string]image.Image

func (m mapLoader) Load(_ context.Context, ref string) (image.Image, error) {
	if img, ok := m[ref]; ok {
		return img, nil
	}
	return nil, &imagepkg.LoadError{Source: ref, Kind: imagepkg.KindNotFound, Err: errors.New("missing")}
}

func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

var (
	white = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	red   = color.NRGBA{0xff, 0x00, 0x00, 0xff}
)

func newCompositor(l imagepkg.Loader) (*imagepkg.Compositor, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return imagepkg.NewCompositor(l, nil, log), hook
}

func decode(t *testing.T, b []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("decode composite: %v", err)
	}
	return img
}

func isRed(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r>>8 > 0xf0 && g>>8 < 0x10 && b>>8 < 0x10
}

func redBounds(img image.Image) image.Rectangle {
	var out image.Rectangle
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if isRed(img.At(x, y)) {
				out = out.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return out
}

func TestCompose_MatchesBaseDimensions(t *testing.T) {
	sizes := []image.Point{{1000, 800}, {640, 480}, {333, 777}}
	for _, sz := range sizes {
		c, _ := newCompositor(mapLoader{
			"base":    solid(sz.X, sz.Y, white),
			"overlay": solid(120, 90, red),
		})
		res, err := c.Compose(context.Background(), imagepkg.CompositeRequest{
			Base: "base", Overlay: "overlay", Name: "Ada Lovelace", Layout: imagepkg.DefaultLayout(),
		})
		if err != nil {
			t.Fatalf("%v: compose: %v", sz, err)
		}
		img := decode(t, res.Data)
		if img.Bounds().Size() != sz {
			t.Fatalf("%v: output %v", sz, img.Bounds().Size())
		}
		if res.Width != sz.X || res.Height != sz.Y {
			t.Fatalf("%v: result reports %dx%d", sz, res.Width, res.Height)
		}
	}
}

func TestCompose_OverlayPlacedWidthConstrained(t *testing.T) {
	c, _ := newCompositor(mapLoader{
		"base":    solid(1000, 800, white),
		"overlay": solid(200, 100, red),
	})
	res, err := c.Compose(context.Background(), imagepkg.CompositeRequest{
		Base: "base", Overlay: "overlay", Layout: imagepkg.DefaultLayout(),
	})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	got := redBounds(decode(t, res.Data))
	want := image.Rect(50, 219, 550, 469) // 500x250, 115px slack above and below
	if got != want {
		t.Fatalf("overlay drawn at %v, want %v", got, want)
	}
}

func TestCompose_OverlayScalesWithBase(t *testing.T) {
	overlay := solid(250, 100, red)
	var boxes []image.Rectangle
	for _, scale := range []int{1, 2} {
		c, _ := newCompositor(mapLoader{
			"base":    solid(500*scale, 400*scale, white),
			"overlay": overlay,
		})
		res, err := c.Compose(context.Background(), imagepkg.CompositeRequest{
			Base: "base", Overlay: "overlay", Layout: imagepkg.DefaultLayout(),
		})
		if err != nil {
			t.Fatalf("compose: %v", err)
		}
		boxes = append(boxes, redBounds(decode(t, res.Data)))
	}
	if boxes[1].Min != boxes[0].Min.Mul(2) || boxes[1].Size() != boxes[0].Size().Mul(2) {
		t.Fatalf("overlay %v is not double %v", boxes[1], boxes[0])
	}
}

func TestCompose_OverlayFailureDegradesToBaseAndName(t *testing.T) {
	base := solid(600, 400, white)
	c, hook := newCompositor(mapLoader{"base": base})

	res, err := c.Compose(context.Background(), imagepkg.CompositeRequest{
		Base: "base", Overlay: "blob:gone", Name: "Grace", Layout: imagepkg.DefaultLayout(),
	})
	if err != nil {
		t.Fatalf("compose should degrade, got %v", err)
	}

	want, err := imagepkg.Render(base, nil, "Grace", imagepkg.DefaultLayout(), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, want); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(res.Data, buf.Bytes()) {
		t.Fatal("degraded composite differs from base+name render")
	}

	warned := false
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warned = true
		}
	}
	if !warned {
		t.Fatal("overlay failure was not logged")
	}
}

func TestCompose_BaseFailureIsFatal(t *testing.T) {
	c, _ := newCompositor(mapLoader{"overlay": solid(10, 10, red)})
	res, err := c.Compose(context.Background(), imagepkg.CompositeRequest{
		Base: "missing", Overlay: "overlay", Name: "x", Layout: imagepkg.DefaultLayout(),
	})
	if res != nil {
		t.Fatal("expected no artifact")
	}
	if !errors.Is(err, imagepkg.ErrBaseLoad) {
		t.Fatalf("err = %v, want ErrBaseLoad", err)
	}
	var le *imagepkg.LoadError
	if !errors.As(err, &le) || le.Source != "missing" {
		t.Fatalf("expected wrapped LoadError, got %v", err)
	}
}

func TestCompose_EmptyNameDrawsNothing(t *testing.T) {
	base := solid(400, 300, white)
	c, _ := newCompositor(mapLoader{"base": base})
	for _, name := range []string{"", "   "} {
		res, err := c.Compose(context.Background(), imagepkg.CompositeRequest{
			Base: "base", Overlay: "none", Name: name, Layout: imagepkg.DefaultLayout(),
		})
		if err != nil {
			t.Fatalf("name %q: %v", name, err)
		}
		img := decode(t, res.Data)
		b := img.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if r, g, bl, _ := img.At(x, y).RGBA(); r != 0xffff || g != 0xffff || bl != 0xffff {
					t.Fatalf("name %q: pixel (%d,%d) changed", name, x, y)
				}
			}
		}
	}
}

func TestCompose_NameIsDrawn(t *testing.T) {
	base := solid(800, 600, white)
	img, err := imagepkg.Render(base, nil, "Marie Curie", imagepkg.DefaultLayout(), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	p := imagepkg.DefaultLayout().Resolve(800, 600)
	inked := 0
	for y := p.Name.Y - int(p.FontSize); y <= p.Name.Y; y++ {
		for x := p.Name.X; x < 800; x++ {
			if img.RGBAAt(x, y) != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Fatal("no text pixels near the name baseline")
	}
}

func TestCompose_Deterministic(t *testing.T) {
	c, _ := newCompositor(mapLoader{
		"base":    solid(300, 200, white),
		"overlay": solid(50, 80, red),
	})
	req := imagepkg.CompositeRequest{Base: "base", Overlay: "overlay", Name: "Same", Layout: imagepkg.DefaultLayout(), Revision: 7}
	a, err := c.Compose(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Compose(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Data, b.Data) {
		t.Fatal("identical inputs produced different output")
	}
	if a.Revision != 7 {
		t.Fatalf("revision = %d, want 7", a.Revision)
	}
}
