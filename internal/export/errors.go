package export

import "errors"

var (
	// ErrNoArtifact means there is nothing to export yet.
	ErrNoArtifact = errors.New("still generating: nothing to export yet")
	// ErrUnavailable means no target could take the artifact.
	ErrUnavailable = errors.New("no export target available")
)

// ExportError reports a failed save, print or copy action.
type ExportError struct {
	Action string
	Err    error
}

func (e *ExportError) Error() string { return e.Action + " failed: " + e.Err.Error() }

func (e *ExportError) Unwrap() error { return e.Err }
