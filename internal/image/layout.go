package imagepkg

import (
	"image"
	"image/color"
	"math"
)

// Layout places the name and the overlay on a base template. Every position
// and size is a fraction of the canvas, so one layout serves any resolution
// of the same template.
type Layout struct {
	NameX     float64 `json:"name_x"`
	NameY     float64 `json:"name_y"` // baseline
	FontScale float64 `json:"font_scale"`

	OverlayX float64 `json:"overlay_x"`
	OverlayY float64 `json:"overlay_y"`
	OverlayW float64 `json:"overlay_w"`
	OverlayH float64 `json:"overlay_h"`

	TextColor color.NRGBA `json:"-"`
}

// DefaultLayout is tuned for the bundled certificate frame.
func DefaultLayout() Layout {
	return Layout{
		NameX:     0.33,
		NameY:     0.89,
		FontScale: 0.025,
		OverlayX:  0.05,
		OverlayY:  0.13,
		OverlayW:  0.50,
		OverlayH:  0.60,
		TextColor: color.NRGBA{R: 0x37, G: 0x41, B: 0x51, A: 0xff},
	}
}

// Placement is a layout resolved against concrete canvas dimensions.
type Placement struct {
	Name     image.Point
	FontSize float64
	Overlay  image.Rectangle
}

// Resolve converts the fractional layout into pixels for a w x h canvas.
func (l Layout) Resolve(w, h int) Placement {
	x0 := frac(l.OverlayX, w)
	y0 := frac(l.OverlayY, h)
	return Placement{
		Name:     image.Pt(frac(l.NameX, w), frac(l.NameY, h)),
		FontSize: l.FontScale * float64(w),
		Overlay:  image.Rect(x0, y0, x0+frac(l.OverlayW, w), y0+frac(l.OverlayH, h)),
	}
}

// FitWithin scales a src-sized image to fit inside box, preserving its aspect
// ratio, and centres it on the axis that has slack. Small images are scaled
// up. An empty src or box yields an empty rectangle.
func FitWithin(src image.Point, box image.Rectangle) image.Rectangle {
	if src.X <= 0 || src.Y <= 0 || box.Empty() {
		return image.Rectangle{}
	}
	bw, bh := box.Dx(), box.Dy()
	scale := math.Min(float64(bw)/float64(src.X), float64(bh)/float64(src.Y))

	w := clamp(int(math.Round(float64(src.X)*scale)), 1, bw)
	h := clamp(int(math.Round(float64(src.Y)*scale)), 1, bh)

	x := box.Min.X + (bw-w)/2
	y := box.Min.Y + (bh-h)/2
	return image.Rect(x, y, x+w, y+h)
}

func frac(f float64, n int) int {
	return int(math.Round(f * float64(n)))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
