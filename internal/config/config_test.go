package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"NOTEBOOK_CONFIG", "NOTEBOOK_PATH", "HOST", "PORT", "NOTEBOOK_API_KEY",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_JOURNAL", "MAX_UPLOAD_BYTES",
		"SHUTDOWN_TIMEOUT", "PDF_FALLBACK_PDFTOTEXT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr() != "127.0.0.1:5000" {
		t.Errorf("expected addr %q, got %q", "127.0.0.1:5000", cfg.Addr())
	}
	if !filepath.IsAbs(cfg.NotebookPath) || filepath.Base(cfg.NotebookPath) != "notebook.md" {
		t.Errorf("expected absolute notebook.md path, got %q", cfg.NotebookPath)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected 10s shutdown timeout, got %v", cfg.ShutdownTimeout)
	}
	if cfg.LogJournal {
		t.Error("expected journal logging to be off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoad_JournalOptIn(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_JOURNAL", "true")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.LogJournal {
		t.Error("expected LOG_JOURNAL=true to enable journal logging")
	}
}

func TestLoad_JSONFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{"notebook_path": "` + filepath.Join(dir, "nb.md") + `", "host": "0.0.0.0", "port": 8123}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("NOTEBOOK_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.NotebookPath != filepath.Join(dir, "nb.md") {
		t.Errorf("expected notebook path from file, got %q", cfg.NotebookPath)
	}
	if cfg.Addr() != "0.0.0.0:8123" {
		t.Errorf("expected addr %q, got %q", "0.0.0.0:8123", cfg.Addr())
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("port: \"7000\"\nlog_level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("NOTEBOOK_CONFIG", path)
	t.Setenv("PORT", "9000")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("expected env port 9000, got %q", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level from file, got %q", cfg.LogLevel)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Errorf("expected 3s, got %v", cfg.ShutdownTimeout)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("NOTEBOOK_CONFIG", filepath.Join(t.TempDir(), "nope.json"))
	if _, err := Load(); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoad_BadPortType(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"port": [1]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("NOTEBOOK_CONFIG", path)
	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "port") {
		t.Errorf("expected port error, got %v", err)
	}
}

func TestLoad_HomeExpansion(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("NOTEBOOK_PATH", "~/notes/nb.md")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join(home, "notes", "nb.md")
	if cfg.NotebookPath != want {
		t.Errorf("expected %q, got %q", want, cfg.NotebookPath)
	}
}

func TestValidate(t *testing.T) {
	base := Config{NotebookPath: "/tmp/nb.md", Port: "5000", LogFormat: "json"}
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"no path", func(c *Config) { c.NotebookPath = "" }, true},
		{"bad port", func(c *Config) { c.Port = "http" }, true},
		{"port out of range", func(c *Config) { c.Port = "70000" }, true},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, true},
		{"text format", func(c *Config) { c.LogFormat = "TEXT" }, false},
	}
	for _, tt := range tests {
		c := base
		tt.mutate(&c)
		if err := c.Validate(); (err != nil) != tt.wantErr {
			t.Errorf("%s: expected error=%v, got %v", tt.name, tt.wantErr, err)
		}
	}
}
