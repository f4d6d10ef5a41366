// Package flow models the linear capture -> name -> overlay -> result
// sequence as one immutable state value per session.
package flow

import (
	"errors"
	"strings"

	"github.com/youruser/photoframe/internal/blob"
	imagepkg "github.com/youruser/photoframe/internal/image"
)

// Step is the screen a session is on.
type Step int

const (
	StepCapture Step = iota
	StepName
	StepOverlay
	StepResult
)

var stepNames = [...]string{"capture", "name", "overlay", "result"}

func (s Step) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return "unknown"
	}
	return stepNames[s]
}

func (s Step) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

var (
	ErrNoSource   = errors.New("image has no source")
	ErrNoBase     = errors.New("no frame or photo selected")
	ErrBlankName  = errors.New("name must not be blank")
	ErrIncomplete = errors.New("no selections made")
)

// SelectableImage is a picked frame, captured photo or overlay file.
type SelectableImage struct {
	Source      string `json:"source"`
	DisplayName string `json:"display_name"`
}

// UploadStatus tracks publishing of the current composite.
type UploadStatus string

const (
	UploadIdle      UploadStatus = "idle"
	UploadUploading UploadStatus = "uploading"
	UploadSuccess   UploadStatus = "success"
	UploadError     UploadStatus = "error"
)

type Upload struct {
	Status UploadStatus `json:"status"`
	URL    string       `json:"url,omitempty"`
	Error  string       `json:"error,omitempty"`
}

// State is the whole transient selection of one session. Transitions return
// a new value; nothing mutates a State in place. Revision increases on every
// input change so composites can be matched to the inputs they came from.
type State struct {
	Step     Step             `json:"step"`
	FrameID  string           `json:"frame_id,omitempty"`
	Base     *SelectableImage `json:"base,omitempty"`
	Name     string           `json:"name,omitempty"`
	Overlay  *SelectableImage `json:"overlay,omitempty"`
	Revision uint64           `json:"revision"`
	Upload   Upload           `json:"upload"`

	Layout imagepkg.Layout `json:"-"`
}

// Initial is the empty state every session starts from.
func Initial() State {
	return State{Step: StepCapture, Upload: Upload{Status: UploadIdle}}
}

// SelectBase picks the background. Everything chosen after it is cleared.
func (s State) SelectBase(frameID string, img SelectableImage, layout imagepkg.Layout) (State, error) {
	if img.Source == "" {
		return s, ErrNoSource
	}
	return State{
		Step:     StepName,
		FrameID:  frameID,
		Base:     &img,
		Layout:   layout,
		Revision: s.Revision + 1,
		Upload:   Upload{Status: UploadIdle},
	}, nil
}

// SetName records the trimmed name and moves on to the overlay step.
func (s State) SetName(name string) (State, error) {
	if s.Base == nil {
		return s, ErrNoBase
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return s, ErrBlankName
	}
	s.Name = name
	s.Step = StepOverlay
	return s.changed(), nil
}

// SelectOverlay records the overlay and moves on to the result step.
func (s State) SelectOverlay(img SelectableImage) (State, error) {
	if s.Base == nil {
		return s, ErrNoBase
	}
	if img.Source == "" {
		return s, ErrNoSource
	}
	s.Overlay = &img
	s.Step = StepResult
	return s.changed(), nil
}

// Back returns to the previous step without touching the selections.
func (s State) Back() State {
	if s.Step > StepCapture {
		s.Step--
	}
	return s
}

// Restart returns to the initial state. Revision keeps counting so results
// from before the restart can never be mistaken for current ones.
func (s State) Restart() State {
	next := Initial()
	next.Revision = s.Revision + 1
	return next
}

// WithUpload records upload progress. It does not change the inputs.
func (s State) WithUpload(u Upload) State {
	s.Upload = u
	return s
}

// Complete reports whether base, name and overlay are all present.
func (s State) Complete() bool {
	return s.Base != nil && s.Overlay != nil && s.Name != ""
}

// CompositeRequest builds the compositor input, or ErrIncomplete.
func (s State) CompositeRequest() (imagepkg.CompositeRequest, error) {
	if !s.Complete() {
		return imagepkg.CompositeRequest{}, ErrIncomplete
	}
	return imagepkg.CompositeRequest{
		Base:     s.Base.Source,
		Overlay:  s.Overlay.Source,
		Name:     s.Name,
		Layout:   s.Layout,
		Revision: s.Revision,
	}, nil
}

// Handles lists the blob handles this state references.
func (s State) Handles() []string {
	var out []string
	for _, img := range []*SelectableImage{s.Base, s.Overlay} {
		if img != nil && blob.IsHandle(img.Source) {
			out = append(out, img.Source)
		}
	}
	return out
}

// Released lists handles referenced by prev but not by next.
func Released(prev, next State) []string {
	keep := map[string]bool{}
	for _, h := range next.Handles() {
		keep[h] = true
	}
	var out []string
	for _, h := range prev.Handles() {
		if !keep[h] {
			out = append(out, h)
		}
	}
	return out
}

func (s State) changed() State {
	s.Revision++
	s.Upload = Upload{Status: UploadIdle}
	return s
}
