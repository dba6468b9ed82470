package config

import (
	"errors"
	"os"
)

const EnvModelPath = "ROOKERY_MODEL_PATH"

// ErrModelPathRequired is returned when no model artifact location is configured.
var ErrModelPathRequired = errors.New("model path required: set " + EnvModelPath)

// ModelConfig locates the classifier artifact. Path is a filesystem path or
// a blob:// key in the configured storage container.
type ModelConfig struct {
	Path string `toml:"path"`
}

// Finalize applies environment variable overrides and validation.
func (c *ModelConfig) Finalize() error {
	if v := os.Getenv(EnvModelPath); v != "" {
		c.Path = v
	}
	if c.Path == "" {
		return ErrModelPathRequired
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *ModelConfig) Merge(overlay *ModelConfig) {
	if overlay.Path != "" {
		c.Path = overlay.Path
	}
}
