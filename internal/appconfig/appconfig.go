// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is the path to the configuration file used in previous versions.
	legacyConfigPath = "config.json"
	// defaultRequestTimeout is the default timeout for HTTP requests and subprocess calls.
	defaultRequestTimeout = 120 * time.Second
	// defaultCatalogMaxAge is how long a catalog snapshot stays fresh when the config omits the value.
	defaultCatalogMaxAge = 24 * time.Hour
	// defaultCatalogURL is the public model library page scraped for catalog entries.
	defaultCatalogURL = "https://ollama.com/library"
	// defaultServerURL is the local runtime API address.
	defaultServerURL = "http://localhost:11434"
	// defaultRuntimeBinary is the runtime executable looked up on PATH.
	defaultRuntimeBinary = "ollama"
)

// Config represents the top-level application configuration.
type Config struct {
	EnvFile            string `json:"envFile,omitempty"`
	EnvTemplate        string `json:"envTemplate,omitempty"`
	ModelsDir          string `json:"modelsDir,omitempty"`
	CatalogURL         string `json:"catalogUrl,omitempty"`
	CatalogMaxAgeHours int    `json:"catalogMaxAgeHours,omitempty"`
	RuntimeBinary      string `json:"runtimeBinary,omitempty"`
	ServerURL          string `json:"serverUrl,omitempty"`
	TimeoutSeconds     int    `json:"timeoutSeconds,omitempty"`
	LogFile            string `json:"logFile,omitempty"`
	Debug              bool   `json:"debug"`
	ConfigPath         string `json:"-"`
}

// RequestTimeout returns the timeout duration for HTTP requests and runtime
// invocations, falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CatalogMaxAge returns how old a catalog snapshot may be before a listing
// triggers a refresh attempt.
func (c Config) CatalogMaxAge() time.Duration {
	if c.CatalogMaxAgeHours <= 0 {
		return defaultCatalogMaxAge
	}
	return time.Duration(c.CatalogMaxAgeHours) * time.Hour
}

// EnvFilePath returns the path of the env file holding the default-model key.
func (c Config) EnvFilePath() string {
	if p := strings.TrimSpace(c.EnvFile); p != "" {
		return p
	}
	return ".env"
}

// EnvTemplatePath returns the template used to seed the env file when absent.
func (c Config) EnvTemplatePath() string {
	if p := strings.TrimSpace(c.EnvTemplate); p != "" {
		return p
	}
	return ".env.example"
}

// ModelsDirPath returns the directory holding cached model metadata.
func (c Config) ModelsDirPath() string {
	if p := strings.TrimSpace(c.ModelsDir); p != "" {
		return p
	}
	return "models"
}

// CachePath returns the location of the catalog snapshot file.
func (c Config) CachePath() string {
	return filepath.Join(c.ModelsDirPath(), "models.json")
}

// CatalogEndpoint returns the remote catalog URL.
func (c Config) CatalogEndpoint() string {
	if u := strings.TrimSpace(c.CatalogURL); u != "" {
		return u
	}
	return defaultCatalogURL
}

// Binary returns the runtime executable name or path.
func (c Config) Binary() string {
	if b := strings.TrimSpace(c.RuntimeBinary); b != "" {
		return b
	}
	return defaultRuntimeBinary
}

// ServerBaseURL returns the local runtime API address used for readiness probes.
func (c Config) ServerBaseURL() string {
	if u := strings.TrimSpace(c.ServerURL); u != "" {
		return strings.TrimRight(u, "/")
	}
	return defaultServerURL
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "getllm.log"
}

// Load reads the application configuration from the specified path, with
// fallback to a legacy path. A missing file is not an error when the default
// path is in use: every setting has a working default.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		if path == DefaultConfigPath {
			config, legacyErr := loadFromPath(legacyConfigPath)
			if legacyErr == nil {
				config.ConfigPath = legacyConfigPath
				return config, nil
			}
			if errors.Is(legacyErr, os.ErrNotExist) {
				return Config{}, nil
			}
			return Config{}, fmt.Errorf("could not read config file %q: %w", legacyConfigPath, legacyErr)
		}
		return Config{}, fmt.Errorf("no configuration file found at %q", path)
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}

	return config, nil
}
