package predictions

import (
	"fmt"
	"os"

	"github.com/JaimeStill/rookery/pkg/formatting"
)

// TokenSource selects which token is checked against the identity provider.
type TokenSource string

const (
	// TokenFromCredentials exchanges the body's client credentials for a fresh
	// token and checks that token. The Authorization header is only required
	// to be present.
	TokenFromCredentials TokenSource = "credentials"
	// TokenFromBearer checks the caller's bearer token directly. Body
	// credentials are not required.
	TokenFromBearer TokenSource = "bearer"
)

// Config holds prediction endpoint settings.
type Config struct {
	TokenSource string `toml:"token_source"`
	MaxBodySize string `toml:"max_body_size"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	TokenSource string
	MaxBodySize string
}

// Source returns the configured TokenSource.
func (c *Config) Source() TokenSource {
	return TokenSource(c.TokenSource)
}

// MaxBodyBytes returns MaxBodySize as a byte count.
func (c *Config) MaxBodyBytes() int64 {
	n, _ := formatting.ParseBytes(c.MaxBodySize)
	return n
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.TokenSource != "" {
		c.TokenSource = overlay.TokenSource
	}
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}
}

func (c *Config) loadDefaults() {
	if c.TokenSource == "" {
		c.TokenSource = string(TokenFromCredentials)
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "1MB"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.TokenSource != "" {
		if v := os.Getenv(env.TokenSource); v != "" {
			c.TokenSource = v
		}
	}
	if env.MaxBodySize != "" {
		if v := os.Getenv(env.MaxBodySize); v != "" {
			c.MaxBodySize = v
		}
	}
}

func (c *Config) validate() error {
	switch c.Source() {
	case TokenFromCredentials, TokenFromBearer:
	default:
		return fmt.Errorf("invalid token_source: %q", c.TokenSource)
	}
	if _, err := formatting.ParseBytes(c.MaxBodySize); err != nil {
		return fmt.Errorf("invalid max_body_size: %w", err)
	}
	return nil
}
