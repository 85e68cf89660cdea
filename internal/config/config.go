// Package config resolves pm-bot configuration from a YAML file, a .env
// file, and the process environment into an immutable struct.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// Sentinel errors.
var (
	ErrNotFound = errors.New("no " + ConfigFileName + " found")
	ErrInvalid  = errors.New("invalid config")
)

// Config holds the resolved pipeline configuration. It is constructed once
// at process start and never mutated afterwards; core packages receive it
// explicitly and perform no environment lookups of their own.
type Config struct {
	Owner         string  `yaml:"owner"`
	OwnerType     string  `yaml:"owner_type,omitempty"`
	Repo          string  `yaml:"repo,omitempty"`
	ProjectNumber int     `yaml:"project_number"`
	ReportPath    string  `yaml:"report_path,omitempty"`
	NotifyLog     string  `yaml:"notify_log,omitempty"`
	Discord       Webhook `yaml:"discord,omitempty"`
	Slack         Webhook `yaml:"slack,omitempty"`

	// Token comes from the environment only, never from the file (not serialized).
	Token string `yaml:"-"`

	// file is the absolute path of the loaded config file, empty when the
	// configuration came entirely from the environment (not serialized).
	file string `yaml:"-"`
}

// Webhook holds one notification destination's switch and endpoint.
// A destination participates in dispatch only when Enabled is explicitly
// true and URL is non-empty.
type Webhook struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	URL     string `yaml:"webhook_url,omitempty"`
}

// File returns the absolute path of the loaded config file, or "" when
// configuration came entirely from the environment.
func (c *Config) File() string {
	return c.file
}

// NotifyLogPath returns the dispatch log path: the configured notify_log,
// or a default file next to the report.
func (c *Config) NotifyLogPath() string {
	if c.NotifyLog != "" {
		return c.NotifyLog
	}
	return filepath.Join(filepath.Dir(c.ReportPath), DefaultNotifyLogName)
}

// Validate checks the config for errors. An enabled destination with an
// empty URL is rejected here, before any dispatch is attempted.
func (c *Config) Validate() error {
	if c.Owner == "" {
		return fmt.Errorf("%w: owner is required (set %s or owner in %s)", ErrInvalid, EnvOwner, ConfigFileName)
	}
	if c.OwnerType != OwnerTypeUser && c.OwnerType != OwnerTypeOrganization {
		return fmt.Errorf("%w: owner_type %q must be %q or %q",
			ErrInvalid, c.OwnerType, OwnerTypeUser, OwnerTypeOrganization)
	}
	if c.ProjectNumber < 1 {
		return fmt.Errorf("%w: project_number must be >= 1 (set %s)", ErrInvalid, EnvProjectNumber)
	}
	if c.ReportPath == "" {
		return fmt.Errorf("%w: report_path is required", ErrInvalid)
	}
	if c.Discord.Enabled && c.Discord.URL == "" {
		return fmt.Errorf("%w: discord notifications are enabled but %s is empty", ErrInvalid, EnvDiscordURL)
	}
	if c.Slack.Enabled && c.Slack.URL == "" {
		return fmt.Errorf("%w: slack notifications are enabled but %s is empty", ErrInvalid, EnvSlackURL)
	}
	return nil
}

// Resolve builds the configuration: defaults, then the config file
// (explicit path or the nearest ConfigFileName walking upward), then the
// .env file and environment variables on top, then validation.
func Resolve(configPath, envFile string) (*Config, error) {
	cfg := NewDefault()

	path := configPath
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		found, findErr := FindFile(cwd)
		switch {
		case findErr == nil:
			path = found
		case errors.Is(findErr, ErrNotFound):
			// Environment-only configuration is fine.
		default:
			return nil, findErr
		}
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := loadDotenv(envFile); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile reads and parses a YAML config file into the config.
func (c *Config) loadFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	data, err := os.ReadFile(abs) //nolint:gosec // config path chosen by the user
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	c.file = abs
	return nil
}

// FindFile walks upward from startDir looking for ConfigFileName.
// Returns the absolute path to the file.
func FindFile(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}
