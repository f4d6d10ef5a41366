package export

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// CopiedFor is how long a "copied" notice stays visible.
const CopiedFor = 2 * time.Second

// Clipboard receives copied text.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// OSC52 copies through the terminal's OSC 52 escape sequence, which works over
// SSH and inside tmux with set-clipboard enabled.
type OSC52 struct {
	W io.Writer
}

func (c OSC52) WriteText(_ context.Context, text string) error {
	_, err := fmt.Fprintf(c.W, "\x1b]52;c;%s\a", base64.StdEncoding.EncodeToString([]byte(text)))
	return err
}

// Notice is a transient success message.
type Notice struct {
	Message string
	Until   time.Time
}

// Active reports whether the notice should still be shown at now.
func (n Notice) Active(now time.Time) bool {
	return n.Message != "" && now.Before(n.Until)
}

var errEmptyLink = errors.New("no link to copy")

// CopyLink copies url and returns a notice that expires after CopiedFor.
// Failures are logged and returned; the zero Notice is never active.
func CopyLink(ctx context.Context, clip Clipboard, url string, now time.Time, log logrus.FieldLogger) (Notice, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if url == "" {
		return Notice{}, &ExportError{Action: "copy", Err: errEmptyLink}
	}
	if err := clip.WriteText(ctx, url); err != nil {
		log.WithError(err).Warn("copy link failed")
		return Notice{}, &ExportError{Action: "copy", Err: err}
	}
	return Notice{Message: "Link copied", Until: now.Add(CopiedFor)}, nil
}
