package imagepkg

import (
	"errors"
	"fmt"
)

// LoadErrorKind classifies why an image source could not be decoded.
type LoadErrorKind string

const (
	KindNetwork  LoadErrorKind = "network"
	KindFormat   LoadErrorKind = "format"
	KindNotFound LoadErrorKind = "not-found"
)

// LoadError reports a source that failed to load or decode.
type LoadError struct {
	Source string
	Kind   LoadErrorKind
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s (%s): %v", e.Source, e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ErrBaseLoad marks composites that failed because the base image could not
// be loaded. Match with errors.Is.
var ErrBaseLoad = errors.New("base image load failed")

// CompositeError is returned by Compose when no artifact could be produced.
type CompositeError struct {
	Stage string
	Err   error
}

func (e *CompositeError) Error() string {
	return "composite failed at " + e.Stage + ": " + e.Err.Error()
}

func (e *CompositeError) Unwrap() error { return e.Err }

func (e *CompositeError) Is(target error) bool {
	return target == ErrBaseLoad && e.Stage == "base"
}

var errEmptyImage = errors.New("image has no pixels")
