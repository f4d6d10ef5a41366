package imagepkg

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"

	qrcode "github.com/skip2/go-qrcode"
)

// QRFilename is the download name of every exported QR code.
const QRFilename = "qr-code.png"

// QRRenderer encodes a URL as-is into a scannable bitmap.
type QRRenderer struct {
	Size       int
	Level      qrcode.RecoveryLevel
	Foreground color.Color
	Background color.Color
}

// NewQRRenderer returns a renderer with the share-screen look: 280px, indigo
// modules on white.
func NewQRRenderer() *QRRenderer {
	return &QRRenderer{
		Size:       280,
		Level:      qrcode.Medium,
		Foreground: color.RGBA{R: 0x1e, G: 0x1b, B: 0x4b, A: 0xff},
		Background: color.White,
	}
}

var errEmptyPayload = errors.New("qr: empty payload")

func (r *QRRenderer) code(text string) (*qrcode.QRCode, error) {
	if text == "" {
		return nil, errEmptyPayload
	}
	q, err := qrcode.New(text, r.Level)
	if err != nil {
		return nil, err
	}
	q.ForegroundColor = r.Foreground
	q.BackgroundColor = r.Background
	return q, nil
}

// Render returns PNG bytes of a QR code for text.
func (r *QRRenderer) Render(text string) ([]byte, error) {
	q, err := r.code(text)
	if err != nil {
		return nil, err
	}
	pngBytes, err := q.PNG(r.Size)
	if err != nil {
		return nil, err
	}
	// validate png decode
	if _, err := png.DecodeConfig(bytes.NewReader(pngBytes)); err != nil {
		return nil, err
	}
	return pngBytes, nil
}

// Image returns the QR code as an image.Image for further composition.
func (r *QRRenderer) Image(text string) (image.Image, error) {
	q, err := r.code(text)
	if err != nil {
		return nil, err
	}
	return q.Image(r.Size), nil
}

// Terminal renders the code with half-block characters for a terminal.
func (r *QRRenderer) Terminal(text string) (string, error) {
	q, err := r.code(text)
	if err != nil {
		return "", err
	}
	return q.ToSmallString(false), nil
}
