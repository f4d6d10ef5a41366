package imagepkg

import (
	"bytes"
	"context"
	"errors"
	"image"
	"net/http"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/youruser/photoframe/internal/util"
)

// Loader turns a source reference into a decoded image.
type Loader interface {
	Load(ctx context.Context, ref string) (image.Image, error)
}

// BlobResolver looks up in-memory preview handles ("blob:<id>").
type BlobResolver interface {
	Bytes(handle string) ([]byte, bool)
}

// SourceLoader loads http(s) URLs, blob handles and local file paths.
type SourceLoader struct {
	HTTP  *http.Client
	Blobs BlobResolver
}

// NewSourceLoader returns a loader with a bounded HTTP client.
func NewSourceLoader(blobs BlobResolver) *SourceLoader {
	return &SourceLoader{
		HTTP:  &http.Client{Timeout: util.DefaultTimeout},
		Blobs: blobs,
	}
}

func (l *SourceLoader) Load(ctx context.Context, ref string) (image.Image, error) {
	switch {
	case ref == "":
		return nil, &LoadError{Source: ref, Kind: KindNotFound, Err: errors.New("empty source")}
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return l.loadRemote(ctx, ref)
	case strings.HasPrefix(ref, "blob:"):
		if l.Blobs == nil {
			return nil, &LoadError{Source: ref, Kind: KindNotFound, Err: errors.New("no blob store")}
		}
		b, ok := l.Blobs.Bytes(ref)
		if !ok {
			return nil, &LoadError{Source: ref, Kind: KindNotFound, Err: errors.New("handle released or unknown")}
		}
		return DecodeBytes(ref, b)
	default:
		b, err := os.ReadFile(ref)
		if err != nil {
			kind := KindNetwork
			if errors.Is(err, os.ErrNotExist) {
				kind = KindNotFound
			}
			return nil, &LoadError{Source: ref, Kind: kind, Err: err}
		}
		return DecodeBytes(ref, b)
	}
}

// loadRemote fetches a remote image. A response that is neither labelled as
// an image nor decodable as one is rejected rather than drawn.
func (l *SourceLoader) loadRemote(ctx context.Context, url string) (image.Image, error) {
	b, ctype, err := util.GetBytes(ctx, l.HTTP, url)
	if err != nil {
		return nil, &LoadError{Source: url, Kind: KindNetwork, Err: err}
	}
	img, err := DecodeBytes(url, b)
	if err != nil && ctype != "" && !strings.HasPrefix(ctype, "image/") {
		return nil, &LoadError{Source: url, Kind: KindFormat, Err: errors.New("not an image: " + ctype)}
	}
	return img, err
}

// DecodeBytes decodes b, applying EXIF orientation so camera photos come out
// upright.
func DecodeBytes(source string, b []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(b), imaging.AutoOrientation(true))
	if err != nil {
		return nil, &LoadError{Source: source, Kind: KindFormat, Err: err}
	}
	return img, nil
}
