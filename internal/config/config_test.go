package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("creating dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		EnvOwner, EnvOwnerType, EnvRepo, EnvProjectNumber, EnvToken,
		EnvReportPath, EnvEnableDiscord, EnvDiscordURL, EnvEnableSlack, EnvSlackURL,
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestResolveFromEnvOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvOwner, "karaage0703")
	t.Setenv(EnvProjectNumber, "3")
	t.Setenv(EnvToken, "ghp_dummy")

	cfg, err := Resolve(filepath.Join(t.TempDir(), "missing.yml"), "")
	if err == nil || !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for explicit missing config file, got %v", err)
	}

	cfg, err = Resolve("", "")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if cfg.Owner != "karaage0703" {
		t.Errorf("Expected owner karaage0703, got %q", cfg.Owner)
	}
	if cfg.ProjectNumber != 3 {
		t.Errorf("Expected project number 3, got %d", cfg.ProjectNumber)
	}
	if cfg.OwnerType != OwnerTypeUser {
		t.Errorf("Expected default owner type user, got %q", cfg.OwnerType)
	}
	if cfg.ReportPath != DefaultReportPath {
		t.Errorf("Expected default report path, got %q", cfg.ReportPath)
	}
	if cfg.Token != "ghp_dummy" {
		t.Errorf("Expected token from env, got %q", cfg.Token)
	}
	if cfg.Discord.Enabled || cfg.Slack.Enabled {
		t.Error("Expected destinations disabled by default")
	}
}

func TestResolveEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	writeFile(t, path, "owner: fileowner\nproject_number: 1\nreport_path: out/tasks.md\n")

	t.Setenv(EnvOwner, "envowner")
	t.Setenv(EnvProjectNumber, "7")

	cfg, err := Resolve(path, "")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if cfg.Owner != "envowner" {
		t.Errorf("Expected env to override file owner, got %q", cfg.Owner)
	}
	if cfg.ProjectNumber != 7 {
		t.Errorf("Expected project number 7, got %d", cfg.ProjectNumber)
	}
	if cfg.ReportPath != "out/tasks.md" {
		t.Errorf("Expected report path from file, got %q", cfg.ReportPath)
	}
	if cfg.File() != path {
		t.Errorf("Expected File() %q, got %q", path, cfg.File())
	}
}

func TestResolveDotenvOverridesProcessEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	writeFile(t, envPath,
		"REPO_OWNER=fromdotenv\nGITHUB_PROJECT_NUMBER=2\nENABLE_SLACK_NOTIFICATION=true\nSLACK_WEBHOOK_URL=https://hooks.slack.com/services/T/B/x\n")

	// Register restores for every key the .env file writes.
	t.Setenv(EnvOwner, "fromprocess")
	t.Setenv(EnvProjectNumber, "9")
	t.Setenv(EnvEnableSlack, "false")
	t.Setenv(EnvSlackURL, "")

	cfg, err := Resolve(filepath.Join(dir, "nonexistent-but-unused.yml"), envPath)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for missing config file, got %v", err)
	}

	writeFile(t, filepath.Join(dir, ConfigFileName), "owner: placeholder\nproject_number: 1\n")
	cfg, err = Resolve(filepath.Join(dir, ConfigFileName), envPath)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if cfg.Owner != "fromdotenv" {
		t.Errorf("Expected .env to override process env, got %q", cfg.Owner)
	}
	if cfg.ProjectNumber != 2 {
		t.Errorf("Expected project number 2, got %d", cfg.ProjectNumber)
	}
	if !cfg.Slack.Enabled {
		t.Error("Expected slack enabled from .env")
	}
	if cfg.Slack.URL == "" {
		t.Error("Expected slack URL from .env")
	}
}

func TestResolveBadProjectNumber(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	writeFile(t, path, "owner: someone\nproject_number: 1\n")
	t.Setenv(EnvProjectNumber, "three")

	if _, err := Resolve(path, ""); !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid for non-numeric project number, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := NewDefault()
		c.Owner = "someone"
		c.ProjectNumber = 1
		return c
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid minimal", func(*Config) {}, true},
		{"missing owner", func(c *Config) { c.Owner = "" }, false},
		{"bad owner type", func(c *Config) { c.OwnerType = "team" }, false},
		{"organization owner type", func(c *Config) { c.OwnerType = OwnerTypeOrganization }, true},
		{"zero project number", func(c *Config) { c.ProjectNumber = 0 }, false},
		{"empty report path", func(c *Config) { c.ReportPath = "" }, false},
		{"discord enabled without url", func(c *Config) { c.Discord.Enabled = true }, false},
		{"discord enabled with url", func(c *Config) {
			c.Discord = Webhook{Enabled: true, URL: "https://discord.com/api/webhooks/1/x"}
		}, true},
		{"slack enabled without url", func(c *Config) { c.Slack.Enabled = true }, false},
		{"url without enable is fine", func(c *Config) { c.Slack.URL = "https://hooks.slack.com/services/T/B/x" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Expected valid config, got %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalid) {
				t.Errorf("Expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestParseBool(t *testing.T) {
	affirmative := []string{"true", "TRUE", "True", "1", "yes", "YES", "y", "Y", " true "}
	for _, s := range affirmative {
		if !ParseBool(s) {
			t.Errorf("Expected ParseBool(%q) to be true", s)
		}
	}
	negative := []string{"", "false", "0", "no", "n", "enabled", "on"}
	for _, s := range negative {
		if ParseBool(s) {
			t.Errorf("Expected ParseBool(%q) to be false", s)
		}
	}
}

func TestFindFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	writeFile(t, filepath.Join(root, ConfigFileName), "owner: x\nproject_number: 1\n")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatalf("creating nested dir: %v", err)
	}

	found, err := FindFile(nested)
	if err != nil {
		t.Fatalf("FindFile returned error: %v", err)
	}
	if found != filepath.Join(root, ConfigFileName) {
		t.Errorf("Expected config at root, got %s", found)
	}
}

func TestNotifyLogPath(t *testing.T) {
	cfg := NewDefault()
	cfg.ReportPath = "docs/tasks.md"
	if got := cfg.NotifyLogPath(); got != filepath.Join("docs", DefaultNotifyLogName) {
		t.Errorf("Expected default log next to report, got %s", got)
	}

	cfg.NotifyLog = "/var/log/pm-bot.jsonl"
	if got := cfg.NotifyLogPath(); got != "/var/log/pm-bot.jsonl" {
		t.Errorf("Expected configured log path, got %s", got)
	}
}

func TestRedact(t *testing.T) {
	if Redact("") != "" {
		t.Error("Expected empty string to stay empty")
	}
	long := "https://discord.com/api/webhooks/123456789/secret-token-value"
	got := Redact(long)
	if len(got) != 33 {
		t.Errorf("Expected 30 chars plus ellipsis, got %d: %q", len(got), got)
	}
	if got[:30] != long[:30] {
		t.Errorf("Expected prefix preserved, got %q", got)
	}
}
