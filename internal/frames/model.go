package frames

import imagepkg "github.com/youruser/photoframe/internal/image"

// Frame is a base template the user can pick on the first step.
type Frame struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Source string          `json:"source"`
	Layout imagepkg.Layout `json:"layout"`
}

// Catalog is an ordered list of frames.
type Catalog []Frame

// Find returns the frame with the given id.
func (c Catalog) Find(id string) (Frame, bool) {
	for _, f := range c {
		if f.ID == id {
			return f, true
		}
	}
	return Frame{}, false
}
