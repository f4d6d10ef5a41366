package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/youruser/photoframe/internal/api"
	"github.com/youruser/photoframe/internal/app"
)

func main() {
	cfg := app.ConfigFromEnv()
	w, err := app.NewWire(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to build app")
	}
	w.Log.WithField("frames", len(w.Frames)).Info("frame catalog loaded")

	stop := make(chan struct{})
	defer close(stop)
	w.Flows.StartSweeper(time.Minute, cfg.SessionTTL, stop)

	r := api.NewRouter(api.New(w), w.Log)

	w.Log.Info("starting server on http://localhost" + cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		w.Log.WithError(err).Fatal("server stopped")
	}
}
