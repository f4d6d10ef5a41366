package api

import (
	"bytes"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/youruser/photoframe/internal/export"
	"github.com/youruser/photoframe/internal/util"
)

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) listFrames(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": len(h.Frames), "frames": h.Frames})
}

// qr returns a PNG QR code for the "url" query param. With download=1 it is
// sent as an attachment named qr-code.png.
func (h *Handler) qr(c *gin.Context) {
	text := c.Query("url")
	if text == "" {
		writeError(c, errNoURL)
		return
	}
	b, err := h.QR.Render(text)
	if err != nil {
		writeError(c, err)
		return
	}
	target := &export.ResponseTarget{W: c.Writer, Inline: c.Query("download") != "1"}
	if err := target.Deliver(c.Request.Context(), export.QRArtifact(b)); err != nil {
		h.Log.WithError(err).Warn("qr response failed")
	}
}

// capture uploads a raw photo straight to the image host, without any frame.
func (h *Handler) capture(c *gin.Context) {
	data, name, err := readImageFile(c)
	if err != nil {
		writeError(c, err)
		return
	}
	link, err := h.Uploader.Upload(c.Request.Context(), name, bytes.NewReader(data))
	if err != nil {
		writeError(c, err)
		return
	}
	h.Log.WithField("url", link).Info("capture uploaded")
	c.JSON(http.StatusOK, gin.H{"url": link, "qr": qrPath(link)})
}

// readImageFile reads the multipart "file" field and checks that it sniffs
// as an image.
func readImageFile(c *gin.Context) ([]byte, string, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, "", errNoFile
	}
	if fh.Size > util.MaxBodyBytes {
		return nil, "", util.ErrTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	data, err := util.ReadLimited(f)
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, "", errNoFile
	}
	if !strings.HasPrefix(http.DetectContentType(data), "image/") {
		return nil, "", errNotImage
	}
	return data, fh.Filename, nil
}

func qrPath(link string) string {
	return "/api/qr?url=" + url.QueryEscape(link)
}
