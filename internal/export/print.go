package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"

	"github.com/signintech/gopdf"
)

// A4 landscape in points.
var landscapeA4 = gopdf.Rect{W: 841.89, H: 595.28}

var printPage = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  * { margin: 0; padding: 0; }
  html, body { width: 100%; height: 100%; background: white; }
  body { display: flex; justify-content: center; align-items: center; }
  img { width: 100%; height: 100%; object-fit: contain; }
  @page { size: landscape; margin: 0; }
  @media print {
    html, body { margin: 0 !important; padding: 0 !important; }
    img { -webkit-print-color-adjust: exact; print-color-adjust: exact; }
  }
</style>
</head>
<body>
<img id="print-image" src="{{.Src}}" alt="{{.Title}}">
<script>
(function () {
  var img = document.getElementById('print-image');
  var printed = false;
  function printOnce() {
    if (printed) { return; }
    printed = true;
    setTimeout(function () { window.print(); window.close(); }, 100);
  }
  img.addEventListener('load', printOnce);
  if (img.complete && img.naturalWidth > 0) { printOnce(); }
})();
</script>
</body>
</html>
`))

// PrintHTML writes a self-contained print document holding only the image.
// The page prints once the image has decoded, whether the load event fires
// or the image was already complete.
func PrintHTML(w io.Writer, a *Artifact) error {
	if a.empty() {
		return ErrNoArtifact
	}
	if !a.isImage() {
		return &ExportError{Action: "print", Err: fmt.Errorf("cannot print %q", a.ContentType)}
	}
	src := "data:" + a.ContentType + ";base64," + base64.StdEncoding.EncodeToString(a.Data)
	err := printPage.Execute(w, struct {
		Title string
		Src   template.URL
	}{Title: a.Filename, Src: template.URL(src)})
	if err != nil {
		return &ExportError{Action: "print", Err: err}
	}
	return nil
}

// PrintPDF writes an A4 landscape, zero-margin PDF with the image decoded and
// scaled to fill the page without cropping.
func PrintPDF(w io.Writer, a *Artifact) error {
	if a.empty() {
		return ErrNoArtifact
	}
	img, _, err := image.Decode(bytes.NewReader(a.Data))
	if err != nil {
		return &ExportError{Action: "print", Err: fmt.Errorf("decode: %w", err)}
	}

	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: landscapeA4})
	pdf.AddPage()

	x, y, pw, ph := fitPage(img.Bounds().Size(), landscapeA4)
	if err := pdf.ImageFrom(img, x, y, &gopdf.Rect{W: pw, H: ph}); err != nil {
		return &ExportError{Action: "print", Err: err}
	}
	if _, err := pdf.WriteTo(w); err != nil {
		return &ExportError{Action: "print", Err: err}
	}
	return nil
}

// fitPage centres an image of size px on page, as large as fits.
func fitPage(px image.Point, page gopdf.Rect) (x, y, w, h float64) {
	if px.X <= 0 || px.Y <= 0 {
		return 0, 0, page.W, page.H
	}
	scale := math.Min(page.W/float64(px.X), page.H/float64(px.Y))
	w, h = float64(px.X)*scale, float64(px.Y)*scale
	return (page.W - w) / 2, (page.H - h) / 2, w, h
}
