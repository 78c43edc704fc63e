package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             int
	LogLevel         string
	AttachmentsDir   string
	AttachmentsMount string
	WebRoot          string
	Timezone         string
	MaxUploadMB      int
	ExportFile       string
	Watch            bool
	NatsURL          string
	NatsToken        string
}

// Load reads the configuration from the environment. Variables from the
// dotenv file named by VIEWER_ENV_FILE (default ".env") are applied first
// without overriding anything already set; a missing file is ignored.
func Load() Config {
	_ = godotenv.Load(envStr("VIEWER_ENV_FILE", ".env"))

	return Config{
		Port:             envInt("VIEWER_PORT", 8760),
		LogLevel:         envStr("LOG_LEVEL", "info"),
		AttachmentsDir:   envStr("VIEWER_ATTACHMENTS_DIR", "./slack_files"),
		AttachmentsMount: mountPrefix(envStr("VIEWER_ATTACHMENTS_MOUNT", "/slack_files")),
		WebRoot:          envStr("VIEWER_WEB_ROOT", "/"),
		Timezone:         envStr("VIEWER_TIMEZONE", "Local"),
		MaxUploadMB:      envInt("VIEWER_MAX_UPLOAD_MB", 32),
		ExportFile:       envStr("VIEWER_EXPORT_FILE", ""),
		Watch:            envBool("VIEWER_WATCH", false),
		NatsURL:          envStr("NATS_URL", ""),
		NatsToken:        envStr("NATS_TOKEN", ""),
	}
}

// Location resolves the display time zone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// MaxUploadBytes is the upload limit in bytes.
func (c Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// mountPrefix forces a leading slash and drops any trailing one.
func mountPrefix(p string) string {
	p = "/" + strings.Trim(p, "/")
	return p
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
