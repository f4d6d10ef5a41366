package export

import (
	"context"
	"io"
	"mime"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/youruser/photoframe/internal/util"
)

// ShareTarget hands image files to a platform share command such as
// termux-share. It is available only when the command is on PATH.
type ShareTarget struct {
	Command string
	Args    []string // placed before the file path

	lookPath func(string) (string, error)
	run      func(ctx context.Context, name string, args ...string) error
}

func NewShareTarget(command string, args ...string) *ShareTarget {
	return &ShareTarget{Command: command, Args: args}
}

func (t *ShareTarget) Name() string { return "share" }

func (t *ShareTarget) Available(_ context.Context, a *Artifact) bool {
	if t.Command == "" || !a.isImage() {
		return false
	}
	look := t.lookPath
	if look == nil {
		look = exec.LookPath
	}
	_, err := look(t.Command)
	return err == nil
}

func (t *ShareTarget) Deliver(ctx context.Context, a *Artifact) error {
	dir, err := os.MkdirTemp("", "photoframe-share-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, filepath.Base(a.Filename))
	if err := os.WriteFile(path, a.Data, 0o644); err != nil {
		return err
	}
	run := t.run
	if run == nil {
		run = func(ctx context.Context, name string, args ...string) error {
			return exec.CommandContext(ctx, name, args...).Run()
		}
	}
	args := append(append([]string(nil), t.Args...), path)
	return run(ctx, t.Command, args...)
}

// FileTarget saves into a directory, the local equivalent of a download.
type FileTarget struct {
	Dir string
	// Saved is the path of the last delivered file.
	Saved string
}

func (t *FileTarget) Name() string { return "download" }

func (t *FileTarget) Available(context.Context, *Artifact) bool { return t.Dir != "" }

func (t *FileTarget) Deliver(_ context.Context, a *Artifact) error {
	path := filepath.Join(t.Dir, filepath.Base(a.Filename))
	if err := util.WriteFileAtomic(path, a.Data); err != nil {
		return err
	}
	t.Saved = path
	return nil
}

// WriterTarget streams raw bytes, e.g. to stdout for piping into a viewer.
type WriterTarget struct {
	W io.Writer
}

func (t *WriterTarget) Name() string { return "view" }

func (t *WriterTarget) Available(context.Context, *Artifact) bool { return t.W != nil }

func (t *WriterTarget) Deliver(_ context.Context, a *Artifact) error {
	_, err := t.W.Write(a.Data)
	return err
}

// ResponseTarget answers an HTTP request with the artifact, either as an
// attachment download or inline for viewing in a new tab.
type ResponseTarget struct {
	W      http.ResponseWriter
	Inline bool
}

func (t *ResponseTarget) Name() string {
	if t.Inline {
		return "view"
	}
	return "download"
}

// Available is false once the response has been committed.
func (t *ResponseTarget) Available(context.Context, *Artifact) bool {
	if t.W == nil {
		return false
	}
	if w, ok := t.W.(interface{ Written() bool }); ok && w.Written() {
		return false
	}
	return true
}

func (t *ResponseTarget) Deliver(_ context.Context, a *Artifact) error {
	disposition := "inline"
	if !t.Inline {
		disposition = mime.FormatMediaType("attachment", map[string]string{"filename": filepath.Base(a.Filename)})
	}
	ctype := a.ContentType
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	h := t.W.Header()
	h.Set("Content-Type", ctype)
	h.Set("Content-Disposition", disposition)
	h.Set("Content-Length", strconv.Itoa(len(a.Data)))
	h.Set("Cache-Control", "no-store")
	t.W.WriteHeader(http.StatusOK)
	_, err := t.W.Write(a.Data)
	return err
}
