package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove config fields, keep the CLI
	// flag wiring in internal/cli in sync.
	Catalog   Catalog
	Installer Installer
	Output    Output
	Runtime   Runtime
}

type Catalog struct {
	// BaseURL is the catalog API endpoint (see --api-url, PANTRY_API_URL).
	// Empty means the production endpoint.
	BaseURL string

	// Token is an explicit bearer token for endpoints accepting plain token
	// auth (see --token, PANTRY_TOKEN). Normally empty; the signing scheme
	// driven by the local session covers authenticated access.
	Token string
}

type Installer struct {
	// Command is the local installer executable (see --installer,
	// PANTRY_INSTALLER). Empty means the default looked up on PATH.
	Command string

	// Timeout bounds a single install invocation (see --install-timeout).
	// Must be > 0.
	Timeout time.Duration
}

type Output struct {
	// Format controls the console sink format (see --format).
	// Allowed values: text, json.
	Format string
}

type Runtime struct {
	// Timeout is the global timeout for a command run (see --timeout).
	// Must be > 0.
	Timeout time.Duration

	// Verbose enables per-request API logging and installer diagnostics.
	Verbose bool
}

func New() *Config {
	return &Config{
		Installer: Installer{
			Timeout: 15 * time.Minute,
		},
		Output: Output{
			Format: "text",
		},
		Runtime: Runtime{
			Timeout: 30 * time.Minute,
		},
	}
}

// LoadEnv applies environment overrides to unset fields, optionally reading
// a .env file first (missing files are fine).
func (c *Config) LoadEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else {
		// Default .env in the working directory, if present.
		if _, err := os.Stat(".env"); err == nil {
			if err := godotenv.Load(); err != nil {
				return fmt.Errorf("load .env: %w", err)
			}
		}
	}

	if c.Catalog.BaseURL == "" {
		c.Catalog.BaseURL = os.Getenv("PANTRY_API_URL")
	}
	if c.Catalog.Token == "" {
		c.Catalog.Token = strings.TrimSpace(os.Getenv("PANTRY_TOKEN"))
	}
	if c.Installer.Command == "" {
		c.Installer.Command = os.Getenv("PANTRY_INSTALLER")
	}
	if raw := os.Getenv("PANTRY_INSTALL_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid PANTRY_INSTALL_TIMEOUT %q: %w", raw, err)
		}
		c.Installer.Timeout = d
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Catalog.BaseURL != "" {
		u, err := url.Parse(c.Catalog.BaseURL)
		if err != nil {
			return fmt.Errorf("invalid --api-url value %q: %w", c.Catalog.BaseURL, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("invalid --api-url value %q: scheme must be http or https", c.Catalog.BaseURL)
		}
		if u.Host == "" {
			return fmt.Errorf("invalid --api-url value %q: missing host", c.Catalog.BaseURL)
		}
	}

	c.Output.Format = normalizeEnumValue(c.Output.Format)
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
	if c.Output.Format != "text" && c.Output.Format != "json" {
		return fmt.Errorf("unsupported --format: %s (must be one of: text, json)", c.Output.Format)
	}

	if c.Installer.Timeout <= 0 {
		return errors.New("--install-timeout must be > 0")
	}
	if c.Runtime.Timeout <= 0 {
		return errors.New("--timeout must be > 0")
	}

	return nil
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
