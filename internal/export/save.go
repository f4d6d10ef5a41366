package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Target is one way of handing an artifact to the user.
type Target interface {
	Name() string
	// Available reports whether the target can take a this time.
	Available(ctx context.Context, a *Artifact) bool
	Deliver(ctx context.Context, a *Artifact) error
}

// Saver tries its targets in order. A target is attempted only after every
// earlier one was unavailable or failed to deliver.
type Saver struct {
	Targets []Target
	Log     logrus.FieldLogger
}

func NewSaver(log logrus.FieldLogger, targets ...Target) *Saver {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Saver{Targets: targets, Log: log}
}

// Save returns the name of the target that took the artifact.
func (s *Saver) Save(ctx context.Context, a *Artifact) (string, error) {
	if a.empty() {
		return "", ErrNoArtifact
	}
	var errs []error
	for _, t := range s.Targets {
		log := s.Log.WithFields(logrus.Fields{"target": t.Name(), "file": a.Filename})
		if !t.Available(ctx, a) {
			log.Debug("save target unavailable")
			continue
		}
		if err := t.Deliver(ctx, a); err != nil {
			log.WithError(err).Warn("save target failed, falling back")
			errs = append(errs, fmt.Errorf("%s: %w", t.Name(), err))
			continue
		}
		log.Info("artifact saved")
		return t.Name(), nil
	}
	err := ErrUnavailable
	if len(errs) > 0 {
		err = errors.Join(errs...)
	}
	s.Log.WithError(err).WithField("file", a.Filename).Error("save failed")
	return "", &ExportError{Action: "save", Err: err}
}
