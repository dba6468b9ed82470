package config

import (
	"fmt"
	"os"
	"time"

	"github.com/JaimeStill/rookery/internal/predictions"
	"github.com/JaimeStill/rookery/pkg/identity"
	"github.com/JaimeStill/rookery/pkg/storage"
	"github.com/pelletier/go-toml/v2"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvRookeryEnv             = "ROOKERY_ENV"
	EnvRookeryShutdownTimeout = "ROOKERY_SHUTDOWN_TIMEOUT"
	EnvRookeryVersion         = "ROOKERY_VERSION"
)

var identityEnv = &identity.Env{
	URL:                "ROOKERY_IDENTITY_URL",
	Realm:              "ROOKERY_IDENTITY_REALM",
	ClientID:           "ROOKERY_IDENTITY_CLIENT_ID",
	ClientSecret:       "ROOKERY_IDENTITY_CLIENT_SECRET",
	Timeout:            "ROOKERY_IDENTITY_TIMEOUT",
	InsecureSkipVerify: "ROOKERY_IDENTITY_INSECURE_SKIP_VERIFY",
}

var storageEnv = &storage.Env{
	ContainerName:    "ROOKERY_STORAGE_CONTAINER_NAME",
	ConnectionString: "ROOKERY_STORAGE_CONNECTION_STRING",
	AccountURL:       "ROOKERY_STORAGE_ACCOUNT_URL",
}

var predictionsEnv = &predictions.Env{
	TokenSource: "ROOKERY_PREDICTIONS_TOKEN_SOURCE",
	MaxBodySize: "ROOKERY_PREDICTIONS_MAX_BODY_SIZE",
}

// Config is the root configuration for the Rookery service.
type Config struct {
	Server          ServerConfig       `toml:"server"`
	Model           ModelConfig        `toml:"model"`
	Identity        identity.Config    `toml:"identity"`
	Storage         storage.Config     `toml:"storage"`
	Predictions     predictions.Config `toml:"predictions"`
	API             APIConfig          `toml:"api"`
	ShutdownTimeout string             `toml:"shutdown_timeout"`
	Version         string             `toml:"version"`
}

// Env returns the ROOKERY_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvRookeryEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Model.Merge(&overlay.Model)
	c.Identity.Merge(&overlay.Identity)
	c.Storage.Merge(&overlay.Storage)
	c.Predictions.Merge(&overlay.Predictions)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Model.Finalize(); err != nil {
		return fmt.Errorf("model: %w", err)
	}
	if err := c.Identity.Finalize(identityEnv); err != nil {
		return fmt.Errorf("identity: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Predictions.Finalize(predictionsEnv); err != nil {
		return fmt.Errorf("predictions: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvRookeryShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvRookeryVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvRookeryEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
