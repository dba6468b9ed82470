package identity

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the identity provider connection settings.
type Config struct {
	URL                string `toml:"url"`
	Realm              string `toml:"realm"`
	ClientID           string `toml:"client_id"`
	ClientSecret       string `toml:"client_secret"`
	Timeout            string `toml:"timeout"`
	InsecureSkipVerify bool   `toml:"insecure_skip_verify"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	URL                string
	Realm              string
	ClientID           string
	ClientSecret       string
	Timeout            string
	InsecureSkipVerify string
}

// Issuer returns the realm issuer URL used for OIDC discovery.
func (c *Config) Issuer() string {
	return strings.TrimRight(c.URL, "/") + "/realms/" + url.PathEscape(c.Realm)
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. InsecureSkipVerify only
// applies when the overlay enables it.
func (c *Config) Merge(overlay *Config) {
	if overlay.URL != "" {
		c.URL = overlay.URL
	}
	if overlay.Realm != "" {
		c.Realm = overlay.Realm
	}
	if overlay.ClientID != "" {
		c.ClientID = overlay.ClientID
	}
	if overlay.ClientSecret != "" {
		c.ClientSecret = overlay.ClientSecret
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.InsecureSkipVerify {
		c.InsecureSkipVerify = true
	}
}

func (c *Config) loadDefaults() {
	if c.Timeout == "" {
		c.Timeout = "10s"
	}
}

func (c *Config) loadEnv(env *Env) {
	set := func(name string, dst *string) {
		if name == "" {
			return
		}
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	set(env.URL, &c.URL)
	set(env.Realm, &c.Realm)
	set(env.ClientID, &c.ClientID)
	set(env.ClientSecret, &c.ClientSecret)
	set(env.Timeout, &c.Timeout)

	if env.InsecureSkipVerify != "" {
		if v := os.Getenv(env.InsecureSkipVerify); v != "" {
			if skip, err := strconv.ParseBool(v); err == nil {
				c.InsecureSkipVerify = skip
			}
		}
	}
}

func (c *Config) validate() error {
	if c.URL == "" {
		return fmt.Errorf("url required")
	}
	u, err := url.Parse(c.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid url: %s", c.URL)
	}
	if c.Realm == "" {
		return fmt.Errorf("realm required")
	}
	if c.ClientID == "" {
		return fmt.Errorf("client_id required")
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("client_secret required")
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("invalid timeout: must be positive")
	}
	return nil
}
