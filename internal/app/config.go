package app

import (
	"os"
	"time"

	"github.com/youruser/photoframe/internal/upload"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Addr       string        // listen address, e.g. :8080
	DataDir    string        // frames.csv and frame images
	FontPath   string        // optional TTF for the name; Go Regular otherwise
	LogLevel   string        // logrus level name
	BlobLimit  int           // bytes of preview files held in memory
	SessionTTL time.Duration // idle sessions are dropped after this
	Upload     upload.Config
	ShareCmd   string // CLI share command, e.g. termux-share
}

// ConfigFromEnv reads Config from the environment, with defaults.
func ConfigFromEnv() Config {
	cfg := Config{
		Addr:       ":8080",
		DataDir:    env("PHOTOFRAME_DATA", "data"),
		FontPath:   os.Getenv("FONT_PATH"),
		LogLevel:   env("LOG_LEVEL", "info"),
		BlobLimit:  256 << 20,
		SessionTTL: 30 * time.Minute,
		Upload: upload.Config{
			BaseURL:      env("CLOUDINARY_BASE_URL", upload.DefaultBaseURL),
			CloudName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
			UploadPreset: os.Getenv("CLOUDINARY_UPLOAD_PRESET"),
			Folder:       os.Getenv("CLOUDINARY_FOLDER"),
		},
		ShareCmd: env("PHOTOFRAME_SHARE_CMD", "termux-share"),
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	if ttl, err := time.ParseDuration(os.Getenv("SESSION_TTL")); err == nil && ttl > 0 {
		cfg.SessionTTL = ttl
	}
	return cfg
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
