package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/youruser/photoframe/internal/blob"
	"github.com/youruser/photoframe/internal/export"
	"github.com/youruser/photoframe/internal/flow"
	imagepkg "github.com/youruser/photoframe/internal/image"
	"github.com/youruser/photoframe/internal/upload"
	"github.com/youruser/photoframe/internal/util"
)

var (
	errNoFile           = errors.New("missing file")
	errNotImage         = errors.New("file is not an image")
	errUnknownFrame     = errors.New("unknown frame")
	errNoURL            = errors.New("url is required")
	errUploadInProgress = errors.New("upload already in progress")
)

// statusFor maps an error to the HTTP status it is reported with.
func statusFor(err error) int {
	var ue *upload.Error
	switch {
	case errors.Is(err, flow.ErrUnknownSession), errors.Is(err, errUnknownFrame):
		return http.StatusNotFound
	case errors.Is(err, flow.ErrBlankName), errors.Is(err, flow.ErrNoSource),
		errors.Is(err, errNoFile), errors.Is(err, errNoURL):
		return http.StatusBadRequest
	case errors.Is(err, errNotImage):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, flow.ErrNoBase), errors.Is(err, flow.ErrIncomplete),
		errors.Is(err, export.ErrNoArtifact), errors.Is(err, errUploadInProgress):
		return http.StatusConflict
	case errors.Is(err, blob.ErrFull), errors.Is(err, util.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, imagepkg.ErrBaseLoad):
		return http.StatusUnprocessableEntity
	case errors.Is(err, upload.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.As(err, &ue):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(statusFor(err), gin.H{"error": err.Error()})
}
