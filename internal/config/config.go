package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	BackendURL string `yaml:"backend_url"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	// MetricsPort enables the prometheus listener when non-empty.
	MetricsPort string `yaml:"metrics_port"`

	ProbeTimeoutMS   int `yaml:"probe_timeout_ms"`
	SyntheticDelayMS int `yaml:"synthetic_delay_ms"`

	// WatchDir enables auto-upload of files dropped into a directory.
	WatchDir string `yaml:"watch_dir"`

	AllowedExtensions string `yaml:"allowed_extensions"`
}

// Load resolves configuration in ascending precedence: built-in defaults,
// the YAML file named by RAGCHAT_CONFIG, then environment variables
// (a .env file is honored if present).
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		BackendURL:        "http://localhost:8000",
		LogLevel:          "info",
		ProbeTimeoutMS:    1000,
		SyntheticDelayMS:  900,
		AllowedExtensions: ".txt,.pdf,.docx,.odt",
	}

	if path := strings.TrimSpace(os.Getenv("RAGCHAT_CONFIG")); path != "" {
		if err := cfg.applyFile(path); err != nil {
			slog.Warn("config_file_ignored", "path", path, "error", err)
		}
	}

	cfg.BackendURL = mustEnv("RAGCHAT_BACKEND_URL", cfg.BackendURL)
	cfg.LogLevel = mustEnv("RAGCHAT_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = mustEnv("RAGCHAT_LOG_FILE", cfg.LogFile)
	cfg.MetricsPort = mustEnv("RAGCHAT_METRICS_PORT", cfg.MetricsPort)
	cfg.ProbeTimeoutMS = mustEnvInt("RAGCHAT_PROBE_TIMEOUT_MS", cfg.ProbeTimeoutMS)
	cfg.SyntheticDelayMS = mustEnvInt("RAGCHAT_SYNTHETIC_DELAY_MS", cfg.SyntheticDelayMS)
	cfg.WatchDir = mustEnv("RAGCHAT_WATCH_DIR", cfg.WatchDir)
	cfg.AllowedExtensions = mustEnv("RAGCHAT_ALLOWED_EXTENSIONS", cfg.AllowedExtensions)

	return cfg
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c Config) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutMS) * time.Millisecond
}

func (c Config) SyntheticDelay() time.Duration {
	return time.Duration(c.SyntheticDelayMS) * time.Millisecond
}

func (c Config) Extensions() []string {
	parts := strings.Split(c.AllowedExtensions, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		ext := strings.ToLower(strings.TrimSpace(part))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
