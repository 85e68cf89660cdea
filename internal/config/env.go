package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvOwner         = "REPO_OWNER"
	EnvOwnerType     = "PROJECT_OWNER_TYPE"
	EnvRepo          = "REPO_NAME"
	EnvProjectNumber = "GITHUB_PROJECT_NUMBER"
	EnvToken         = "GITHUB_TOKEN" //nolint:gosec // variable name, not a credential
	EnvReportPath    = "REPORT_PATH"
	EnvEnableDiscord = "ENABLE_DISCORD_NOTIFICATION"
	EnvDiscordURL    = "DISCORD_WEBHOOK_URL"
	EnvEnableSlack   = "ENABLE_SLACK_NOTIFICATION"
	EnvSlackURL      = "SLACK_WEBHOOK_URL"
)

// loadDotenv loads an env file into the process environment with override
// semantics. An explicit path must exist; the default ./.env is optional.
func loadDotenv(path string) error {
	if path != "" {
		if err := godotenv.Overload(path); err != nil {
			return fmt.Errorf("loading env file %s: %w", path, err)
		}
		return nil
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Overload(".env"); err != nil {
			return fmt.Errorf("loading .env: %w", err)
		}
	}
	return nil
}

// applyEnv overlays environment variables onto the config. Empty string
// values count as unset, except enable flags, which apply whenever the
// variable is present so an explicit "false" can override the config file.
func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvOwner); v != "" {
		c.Owner = v
	}
	if v := os.Getenv(EnvOwnerType); v != "" {
		c.OwnerType = v
	}
	if v := os.Getenv(EnvRepo); v != "" {
		c.Repo = v
	}
	if v := os.Getenv(EnvProjectNumber); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s %q is not a number", ErrInvalid, EnvProjectNumber, v)
		}
		c.ProjectNumber = n
	}
	if v := os.Getenv(EnvReportPath); v != "" {
		c.ReportPath = v
	}
	c.Token = os.Getenv(EnvToken)

	if v, ok := os.LookupEnv(EnvEnableDiscord); ok {
		c.Discord.Enabled = ParseBool(v)
	}
	if v := os.Getenv(EnvDiscordURL); v != "" {
		c.Discord.URL = v
	}
	if v, ok := os.LookupEnv(EnvEnableSlack); ok {
		c.Slack.Enabled = ParseBool(v)
	}
	if v := os.Getenv(EnvSlackURL); v != "" {
		c.Slack.URL = v
	}

	return nil
}

// ParseBool reports whether an enable-style value is affirmative.
// Accepted: true, 1, yes, y (case-insensitive); everything else,
// including absence, is false.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y":
		return true
	}
	return false
}

// Redact shortens a secret-bearing value for display.
func Redact(s string) string {
	if s == "" {
		return ""
	}
	const visible = 30
	if len(s) > visible {
		s = s[:visible]
	}
	return s + "..."
}
