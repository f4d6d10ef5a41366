package imagepkg_test

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	imagepkg "github.com/youruser/photoframe/internal/image"
)

type blobMap map[string][]byte

func (b blobMap) Bytes(h string) ([]byte, bool) {
	v, ok := b[h]
	return v, ok
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, solid(w, h, color.NRGBA{0, 0x80, 0, 0xff})); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func loadKind(t *testing.T, err error) imagepkg.LoadErrorKind {
	t.Helper()
	var le *imagepkg.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	return le.Kind
}

func TestSourceLoader_Remote(t *testing.T) {
	img := pngBytes(t, 40, 30)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			w.Header().Set("Content-Type", "image/png")
			w.Write(img)
		case "/page":
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte("<html></html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	l := imagepkg.NewSourceLoader(nil)
	got, err := l.Load(context.Background(), srv.URL+"/ok.png")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Bounds().Dx() != 40 || got.Bounds().Dy() != 30 {
		t.Fatalf("size = %v", got.Bounds())
	}

	_, err = l.Load(context.Background(), srv.URL+"/page")
	if k := loadKind(t, err); k != imagepkg.KindFormat {
		t.Fatalf("html page kind = %s", k)
	}

	_, err = l.Load(context.Background(), srv.URL+"/nope")
	if k := loadKind(t, err); k != imagepkg.KindNetwork {
		t.Fatalf("404 kind = %s", k)
	}
}

func TestSourceLoader_BlobAndFile(t *testing.T) {
	data := pngBytes(t, 8, 4)
	l := imagepkg.NewSourceLoader(blobMap{"blob:a": data, "blob:junk": []byte("nope")})

	if _, err := l.Load(context.Background(), "blob:a"); err != nil {
		t.Fatalf("blob: %v", err)
	}
	if k := loadKind(t, mustFail(l.Load(context.Background(), "blob:b"))); k != imagepkg.KindNotFound {
		t.Fatalf("released blob kind = %s", k)
	}
	if k := loadKind(t, mustFail(l.Load(context.Background(), "blob:junk"))); k != imagepkg.KindFormat {
		t.Fatalf("junk blob kind = %s", k)
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Load(context.Background(), path); err != nil {
		t.Fatalf("file: %v", err)
	}
	if k := loadKind(t, mustFail(l.Load(context.Background(), path+".missing"))); k != imagepkg.KindNotFound {
		t.Fatalf("missing file kind = %s", k)
	}
	if k := loadKind(t, mustFail(l.Load(context.Background(), ""))); k != imagepkg.KindNotFound {
		t.Fatalf("empty ref kind = %s", k)
	}
}

func mustFail(_ any, err error) error { return err }
