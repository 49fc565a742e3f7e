// internal/appconfig/load_integration_test.go
package appconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultPath(t *testing.T) {
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, "config")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("mkdir config: %v", err)
	}

	payload := `{
  "runtimeBinary": "ollama-dev",
  "serverUrl": "http://localhost:9999",
  "catalogMaxAgeHours": 6
}`
	path := filepath.Join(configDir, "config.json")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	oldCwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldCwd) })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Binary() != "ollama-dev" {
		t.Fatalf("expected configured binary, got %q", cfg.Binary())
	}
	if cfg.ServerBaseURL() != "http://localhost:9999" {
		t.Fatalf("expected configured server url, got %q", cfg.ServerBaseURL())
	}
	if cfg.CatalogMaxAgeHours != 6 {
		t.Fatalf("expected catalog max age 6h, got %d", cfg.CatalogMaxAgeHours)
	}
	if cfg.ConfigPath != DefaultConfigPath {
		t.Fatalf("expected config path recorded, got %q", cfg.ConfigPath)
	}
}

func TestLoadLegacyFallback(t *testing.T) {
	tempDir := t.TempDir()
	payload := `{ "runtimeBinary": "ollama-legacy" }`
	if err := os.WriteFile(filepath.Join(tempDir, "config.json"), []byte(payload), 0o644); err != nil {
		t.Fatalf("write legacy config: %v", err)
	}

	oldCwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldCwd) })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Binary() != "ollama-legacy" {
		t.Fatalf("expected legacy config applied, got %q", cfg.Binary())
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	tempDir := t.TempDir()
	oldCwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldCwd) })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with no config file should use defaults, got: %v", err)
	}
	if cfg.Binary() != "ollama" {
		t.Fatalf("expected default binary, got %q", cfg.Binary())
	}
}
