// internal/appconfig/appconfig_test.go
package appconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoad verifies that a valid configuration file is loaded without error,
// that invalid JSON and explicit nonexistent paths fail, and that accessor
// methods apply documented defaults for omitted settings.
func TestLoad(t *testing.T) {
	validConfig := `{
        "envFile": "conf/.env",
        "modelsDir": "cache/models",
        "catalogUrl": "https://example.com/library",
        "timeoutSeconds": 30,
        "debug": true
    }`
	tmpfile, err := os.CreateTemp("", "config.json")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())
	if _, err := tmpfile.Write([]byte(validConfig)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() with valid config failed: %v", err)
	}
	if cfg.EnvFilePath() != "conf/.env" {
		t.Fatalf("expected configured env file, got %q", cfg.EnvFilePath())
	}
	if cfg.CachePath() != filepath.Join("cache/models", "models.json") {
		t.Fatalf("unexpected cache path %q", cfg.CachePath())
	}
	if cfg.CatalogEndpoint() != "https://example.com/library" {
		t.Fatalf("unexpected catalog endpoint %q", cfg.CatalogEndpoint())
	}
	if cfg.RequestTimeout() != 30*time.Second {
		t.Fatalf("expected configured timeout of 30s, got %v", cfg.RequestTimeout())
	}
	if !cfg.Debug {
		t.Fatal("expected debug to be enabled")
	}

	invalidJSON := `{ "envFile": `
	tmpfile2, err := os.CreateTemp("", "config.json")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile2.Name())
	if _, err := tmpfile2.Write([]byte(invalidJSON)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile2.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(tmpfile2.Name()); err == nil {
		t.Fatal("Load() with invalid JSON should have failed")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "nonexistent.json")); err == nil {
		t.Fatal("Load() with explicit nonexistent file should have failed")
	}
}

// TestDefaults checks the zero-value accessors so commands can run without a
// config file at all.
func TestDefaults(t *testing.T) {
	var cfg Config

	if cfg.EnvFilePath() != ".env" {
		t.Fatalf("default env file: %q", cfg.EnvFilePath())
	}
	if cfg.EnvTemplatePath() != ".env.example" {
		t.Fatalf("default env template: %q", cfg.EnvTemplatePath())
	}
	if cfg.CachePath() != filepath.Join("models", "models.json") {
		t.Fatalf("default cache path: %q", cfg.CachePath())
	}
	if cfg.CatalogEndpoint() != "https://ollama.com/library" {
		t.Fatalf("default catalog endpoint: %q", cfg.CatalogEndpoint())
	}
	if cfg.Binary() != "ollama" {
		t.Fatalf("default binary: %q", cfg.Binary())
	}
	if cfg.ServerBaseURL() != "http://localhost:11434" {
		t.Fatalf("default server url: %q", cfg.ServerBaseURL())
	}
	if cfg.RequestTimeout() != 120*time.Second {
		t.Fatalf("default timeout: %v", cfg.RequestTimeout())
	}
	if cfg.CatalogMaxAge() != 24*time.Hour {
		t.Fatalf("default catalog max age: %v", cfg.CatalogMaxAge())
	}
	if cfg.LogFilePath() != "getllm.log" {
		t.Fatalf("default log file: %q", cfg.LogFilePath())
	}
}

// TestServerBaseURLTrimsSlash ensures probe URLs never end up with a double slash.
func TestServerBaseURLTrimsSlash(t *testing.T) {
	cfg := Config{ServerURL: "http://127.0.0.1:11434/"}
	if cfg.ServerBaseURL() != "http://127.0.0.1:11434" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.ServerBaseURL())
	}
}
