package export

import (
	"strings"

	imagepkg "github.com/youruser/photoframe/internal/image"
	"github.com/youruser/photoframe/internal/util"
)

// Artifact is an encoded file ready for delivery.
type Artifact struct {
	Data        []byte
	ContentType string
	Filename    string
}

// GuestToken stands in for a blank name in filenames.
const GuestToken = "guest"

// CompositeFilename names a composite after the user.
func CompositeFilename(name string) string {
	slug := util.Slug(name)
	if slug == "" {
		slug = GuestToken
	}
	return "certificate-" + slug + ".png"
}

// CompositeArtifact wraps a composite for export. A nil result gives a nil
// artifact, which every action rejects with ErrNoArtifact.
func CompositeArtifact(r *imagepkg.CompositeResult, name string) *Artifact {
	if r == nil {
		return nil
	}
	return &Artifact{Data: r.Data, ContentType: "image/png", Filename: CompositeFilename(name)}
}

// QRArtifact wraps a rendered QR code under its fixed filename.
func QRArtifact(png []byte) *Artifact {
	if len(png) == 0 {
		return nil
	}
	return &Artifact{Data: png, ContentType: "image/png", Filename: imagepkg.QRFilename}
}

func (a *Artifact) isImage() bool {
	return a != nil && strings.HasPrefix(a.ContentType, "image/")
}

func (a *Artifact) empty() bool {
	return a == nil || len(a.Data) == 0
}
