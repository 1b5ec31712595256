package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is read when NOTEBOOK_CONFIG is unset and the file exists.
const DefaultFile = "config.json"

type Config struct {
	// Backing store
	NotebookPath string

	// HTTP
	Host string
	Port string

	// Auth for mutating routes. Empty disables auth.
	APIKey string

	// Logging
	LogLevel   string
	LogFormat  string
	LogJournal bool

	// Upload limits
	MaxUploadBytes int64

	ShutdownTimeout time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

// fileConfig is the on-disk shape. JSON is valid YAML, so the same decoder
// reads both config.json and config.yaml.
type fileConfig struct {
	NotebookPath string `yaml:"notebook_path"`
	Host         string `yaml:"host"`
	Port         any    `yaml:"port"`
	APIKey       string `yaml:"api_key"`
	LogLevel     string `yaml:"log_level"`
	LogFormat    string `yaml:"log_format"`
}

// Load reads the optional config file and then applies environment
// overrides. An explicitly named config file that cannot be read is an error;
// a missing default file is not.
func Load() (Config, error) {
	cfg := Config{
		NotebookPath: "notebook.md",
		Host:         "127.0.0.1",
		Port:         "5000",
		LogLevel:     "info",
		LogFormat:    "json",
	}

	path, explicit := os.LookupEnv("NOTEBOOK_CONFIG")
	if !explicit {
		path = DefaultFile
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return cfg, err
			}
		}
	}

	cfg.NotebookPath = envOr("NOTEBOOK_PATH", cfg.NotebookPath)
	cfg.Host = envOr("HOST", cfg.Host)
	cfg.Port = envOr("PORT", cfg.Port)
	cfg.APIKey = envOr("NOTEBOOK_API_KEY", cfg.APIKey)
	cfg.LogLevel = envOr("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envOr("LOG_FORMAT", cfg.LogFormat)
	cfg.LogJournal = envBool("LOG_JOURNAL", false)
	cfg.MaxUploadBytes = envInt64("MAX_UPLOAD_BYTES", 10485760) // 10MB
	cfg.ShutdownTimeout = envDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	cfg.PDFFallbackPdftotext = envBool("PDF_FALLBACK_PDFTOTEXT", true)

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	p, err := expandHome(cfg.NotebookPath)
	if err != nil {
		return cfg, err
	}
	if p, err = filepath.Abs(p); err != nil {
		return cfg, fmt.Errorf("resolve notebook path: %w", err)
	}
	cfg.NotebookPath = p

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.NotebookPath != "" {
		c.NotebookPath = fc.NotebookPath
	}
	if fc.Host != "" {
		c.Host = fc.Host
	}
	switch v := fc.Port.(type) {
	case nil:
	case int:
		c.Port = strconv.Itoa(v)
	case string:
		if v != "" {
			c.Port = v
		}
	default:
		return fmt.Errorf("parse config %s: port must be a number or string, got %T", path, v)
	}
	if fc.APIKey != "" {
		c.APIKey = fc.APIKey
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.LogFormat != "" {
		c.LogFormat = fc.LogFormat
	}
	return nil
}

func (c Config) Validate() error {
	if c.NotebookPath == "" {
		return fmt.Errorf("notebook_path is required")
	}
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if n, err := strconv.Atoi(c.Port); err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q (want json or text)", c.LogFormat)
	}
	return nil
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand notebook path: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
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

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
