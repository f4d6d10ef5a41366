package imagepkg

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Fonts holds one parsed OpenType font and builds faces at arbitrary sizes.
type Fonts struct {
	parsed *opentype.Font
}

// LoadFonts parses the TTF/OTF at path. An empty path selects the embedded Go
// Regular font; so does an unreadable one, with the read error returned
// alongside a usable value.
func LoadFonts(path string) (*Fonts, error) {
	data := goregular.TTF
	var readErr error
	if path != "" {
		if b, err := os.ReadFile(path); err != nil {
			readErr = fmt.Errorf("font %q unavailable, using default: %w", path, err)
		} else {
			data = b
		}
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Fonts{parsed: parsed}, readErr
}

// DefaultFonts returns the embedded Go Regular font.
func DefaultFonts() *Fonts {
	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
	return &Fonts{parsed: parsed}
}

// Face returns a face at size pixels (72 DPI, so points equal pixels).
func (f *Fonts) Face(size float64) (font.Face, error) {
	if size < 1 {
		size = 1
	}
	face, err := opentype.NewFace(f.parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face at %.1fpx: %w", size, err)
	}
	return face, nil
}
