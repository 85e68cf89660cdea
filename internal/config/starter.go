package config

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

const starterFileMode = 0o600

// Starter is the config scaffold written by pm-bot init. Unlike Config
// it serializes every key, so the generated file shows all of them,
// including the switched-off webhook stanzas.
type Starter struct {
	Owner         string      `yaml:"owner"`
	OwnerType     string      `yaml:"owner_type"`
	Repo          string      `yaml:"repo"`
	ProjectNumber int         `yaml:"project_number"`
	ReportPath    string      `yaml:"report_path"`
	NotifyLog     string      `yaml:"notify_log"`
	Discord       StarterHook `yaml:"discord"`
	Slack         StarterHook `yaml:"slack"`
}

// StarterHook mirrors Webhook without omitempty.
type StarterHook struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"webhook_url"`
}

// NewStarter seeds a scaffold with defaults and the given board
// coordinates.
func NewStarter(owner, repo string, projectNumber int) Starter {
	return Starter{
		Owner:         owner,
		OwnerType:     OwnerTypeUser,
		Repo:          repo,
		ProjectNumber: projectNumber,
		ReportPath:    DefaultReportPath,
	}
}

// WriteFile marshals the scaffold to path. Refuses to replace an
// existing file so init never clobbers a real config.
func (s Starter) WriteFile(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, starterFileMode) //nolint:gosec // path chosen by the user
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing config: %w", err)
	}
	return f.Close()
}

// EnvExample returns the .env template listing every variable pm-bot
// reads.
func EnvExample() string {
	return "# GitHub access\n" +
		EnvToken + "=\n" +
		EnvOwner + "=\n" +
		EnvRepo + "=\n" +
		EnvProjectNumber + "=\n" +
		EnvOwnerType + "=" + OwnerTypeUser + "\n" +
		"\n# Notifications\n" +
		EnvEnableDiscord + "=false\n" +
		EnvDiscordURL + "=\n" +
		EnvEnableSlack + "=false\n" +
		EnvSlackURL + "=\n" +
		"\n# Report\n" +
		EnvReportPath + "=" + DefaultReportPath + "\n"
}
