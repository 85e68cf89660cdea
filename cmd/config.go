package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/karaage0703/pm-bot/internal/clierr"
	"github.com/karaage0703/pm-bot/internal/config"
	"github.com/karaage0703/pm-bot/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	Long: `Prints the configuration after merging defaults, the config file, the
.env file, and environment variables. Secrets are redacted.`,
	RunE: runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

// configAccessor reads one config key for display. Values come from the
// file and environment only, so there is no set counterpart.
type configAccessor func(*config.Config) any

func configAccessors() map[string]configAccessor {
	return map[string]configAccessor{
		"owner":               func(c *config.Config) any { return c.Owner },
		"owner_type":          func(c *config.Config) any { return c.OwnerType },
		"repo":                func(c *config.Config) any { return c.Repo },
		"project_number":      func(c *config.Config) any { return c.ProjectNumber },
		"report_path":         func(c *config.Config) any { return c.ReportPath },
		"notify_log":          func(c *config.Config) any { return c.NotifyLogPath() },
		"discord.enabled":     func(c *config.Config) any { return c.Discord.Enabled },
		"discord.webhook_url": func(c *config.Config) any { return config.Redact(c.Discord.URL) },
		"slack.enabled":       func(c *config.Config) any { return c.Slack.Enabled },
		"slack.webhook_url":   func(c *config.Config) any { return config.Redact(c.Slack.URL) },
		"token":               func(c *config.Config) any { return config.Redact(c.Token) },
		"config_file":         func(c *config.Config) any { return c.File() },
	}
}

// allConfigKeys returns config keys in display order.
func allConfigKeys() []string {
	return []string{
		"owner",
		"owner_type",
		"repo",
		"project_number",
		"report_path",
		"notify_log",
		"discord.enabled",
		"discord.webhook_url",
		"slack.enabled",
		"slack.webhook_url",
		"token",
		"config_file",
	}
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	accessors := configAccessors()

	if outputFormat() == output.FormatJSON {
		m := make(map[string]any, len(accessors))
		for _, key := range allConfigKeys() {
			m[key] = accessors[key](cfg)
		}
		return output.JSON(os.Stdout, m)
	}

	// Table mode: key-value pairs.
	for _, key := range allConfigKeys() {
		fmt.Fprintf(os.Stdout, "%-20s %s\n", key, formatConfigValue(accessors[key](cfg)))
	}
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key := args[0]
	acc, ok := configAccessors()[key]
	if !ok {
		return clierr.Newf(clierr.InvalidInput, "unknown config key %q", key)
	}

	val := acc(cfg)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, val)
	}

	fmt.Fprintln(os.Stdout, formatConfigValue(val))
	return nil
}

func formatConfigValue(val any) string {
	if s, ok := val.(string); ok && s == "" {
		return "--"
	}
	return fmt.Sprintf("%v", val)
}
