package config

import (
	"fmt"

	"github.com/JaimeStill/rookery/pkg/middleware"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "ROOKERY_CORS_ENABLED",
	Origins:          "ROOKERY_CORS_ORIGINS",
	AllowedMethods:   "ROOKERY_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "ROOKERY_CORS_ALLOWED_HEADERS",
	AllowCredentials: "ROOKERY_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "ROOKERY_CORS_MAX_AGE",
}

// APIConfig holds cross-origin settings for the public endpoints.
type APIConfig struct {
	CORS middleware.CORSConfig `toml:"cors"`
}

// Finalize applies defaults, environment variable overrides, and validation
// for the nested CORS config.
func (c *APIConfig) Finalize() error {
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	return nil
}

// Merge overwrites fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	c.CORS.Merge(&overlay.CORS)
}
