package api

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/youruser/photoframe/internal/export"
	"github.com/youruser/photoframe/internal/flow"
	imagepkg "github.com/youruser/photoframe/internal/image"
)

func (h *Handler) createFlow(c *gin.Context) {
	id, st := h.Flows.Create()
	c.JSON(http.StatusCreated, gin.H{"id": id, "state": st})
}

func (h *Handler) getFlow(c *gin.Context) {
	id := c.Param("id")
	st, res, err := h.Flows.Current(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "state": st, "result_ready": res != nil})
}

func (h *Handler) deleteFlow(c *gin.Context) {
	h.Flows.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// update applies fn to the session and answers with the new state.
func (h *Handler) update(c *gin.Context, fn func(flow.State) (flow.State, error)) {
	id := c.Param("id")
	st, err := h.Flows.Update(id, fn)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "state": st})
}

func (h *Handler) selectFrame(c *gin.Context) {
	var req struct {
		FrameID string `json:"frame_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	f, ok := h.Frames.Find(req.FrameID)
	if !ok {
		writeError(c, errUnknownFrame)
		return
	}
	h.update(c, func(s flow.State) (flow.State, error) {
		return s.SelectBase(f.ID, flow.SelectableImage{Source: f.Source, DisplayName: f.Name}, f.Layout)
	})
}

// putFile stores the uploaded file as a preview handle and applies sel to it.
// The handle is released again if the transition is refused.
func (h *Handler) putFile(c *gin.Context, sel func(flow.State, flow.SelectableImage) (flow.State, error)) {
	data, name, err := readImageFile(c)
	if err != nil {
		writeError(c, err)
		return
	}
	handle, err := h.Blobs.Put(data, http.DetectContentType(data), name)
	if err != nil {
		writeError(c, err)
		return
	}
	img := flow.SelectableImage{Source: handle, DisplayName: name}
	id := c.Param("id")
	st, err := h.Flows.Update(id, func(s flow.State) (flow.State, error) { return sel(s, img) })
	if err != nil {
		h.Blobs.Release(handle)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "state": st})
}

func (h *Handler) selectPhoto(c *gin.Context) {
	h.putFile(c, func(s flow.State, img flow.SelectableImage) (flow.State, error) {
		return s.SelectBase("", img, imagepkg.DefaultLayout())
	})
}

func (h *Handler) selectOverlay(c *gin.Context) {
	h.putFile(c, flow.State.SelectOverlay)
}

func (h *Handler) setName(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.update(c, func(s flow.State) (flow.State, error) { return s.SetName(req.Name) })
}

func (h *Handler) back(c *gin.Context) {
	h.update(c, func(s flow.State) (flow.State, error) { return s.Back(), nil })
}

func (h *Handler) restart(c *gin.Context) {
	h.update(c, func(s flow.State) (flow.State, error) { return s.Restart(), nil })
}

// composite returns the session's current composite, rendering it when none
// matches the current revision. The fresh result is offered to the session;
// if the inputs changed meanwhile the session keeps the newer one.
func (h *Handler) composite(c *gin.Context) (flow.State, *imagepkg.CompositeResult, error) {
	id := c.Param("id")
	st, res, err := h.Flows.Current(id)
	if err != nil || res != nil {
		return st, res, err
	}
	req, err := st.CompositeRequest()
	if err != nil {
		return st, nil, err
	}
	res, err = h.Composer.Compose(c.Request.Context(), req)
	if err != nil {
		return st, nil, err
	}
	h.Flows.Offer(id, res)
	return st, res, nil
}

func (h *Handler) result(c *gin.Context) {
	_, res, err := h.composite(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Header("X-Revision", strconv.FormatUint(res.Revision, 10))
	c.Data(http.StatusOK, "image/png", res.Data)
}

// save sends the composite as a download and falls back to showing it inline.
func (h *Handler) save(c *gin.Context) {
	st, res, err := h.composite(c)
	if err != nil {
		writeError(c, err)
		return
	}
	saver := export.NewSaver(h.Log,
		&export.ResponseTarget{W: c.Writer},
		&export.ResponseTarget{W: c.Writer, Inline: true},
	)
	if _, err := saver.Save(c.Request.Context(), export.CompositeArtifact(res, st.Name)); err != nil && !c.Writer.Written() {
		writeError(c, err)
	}
}

func (h *Handler) print(c *gin.Context) {
	st, res, err := h.composite(c)
	if err != nil {
		writeError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := export.PrintHTML(&buf, export.CompositeArtifact(res, st.Name)); err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *Handler) printPDF(c *gin.Context) {
	st, res, err := h.composite(c)
	if err != nil {
		writeError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := export.PrintPDF(&buf, export.CompositeArtifact(res, st.Name)); err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// upload publishes the composite. The session records uploading, then
// success or error, unless its inputs changed while the upload ran. Posting
// again after an error retries.
func (h *Handler) upload(c *gin.Context) {
	id := c.Param("id")
	st, res, err := h.composite(c)
	if err != nil {
		writeError(c, err)
		return
	}
	if _, err := h.Flows.Update(id, func(s flow.State) (flow.State, error) {
		if s.Upload.Status == flow.UploadUploading {
			return s, errUploadInProgress
		}
		return s.WithUpload(flow.Upload{Status: flow.UploadUploading}), nil
	}); err != nil {
		writeError(c, err)
		return
	}

	link, upErr := h.Uploader.Upload(c.Request.Context(), export.CompositeFilename(st.Name), bytes.NewReader(res.Data))
	outcome := flow.Upload{Status: flow.UploadSuccess, URL: link}
	if upErr != nil {
		outcome = flow.Upload{Status: flow.UploadError, Error: upErr.Error()}
	}
	next, err := h.Flows.Update(id, func(s flow.State) (flow.State, error) {
		if s.Revision != res.Revision {
			return s, nil
		}
		return s.WithUpload(outcome), nil
	})
	if upErr != nil {
		h.Log.WithError(upErr).WithField("flow", id).Warn("upload failed")
		writeError(c, upErr)
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	h.Log.WithField("flow", id).WithField("url", link).Info("composite uploaded")
	c.JSON(http.StatusOK, gin.H{"url": link, "qr": qrPath(link), "state": next})
}
