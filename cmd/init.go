package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/karaage0703/pm-bot/internal/clierr"
	"github.com/karaage0703/pm-bot/internal/config"
	"github.com/karaage0703/pm-bot/internal/output"
)

const envExampleName = ".env.example"

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration",
	Long: `Creates pm-bot.yml and .env.example in the current directory as a
starting point. Existing files are never overwritten.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("owner", "", "GitHub user or organization login")
	initCmd.Flags().String("repo", "", "repository name (informational)")
	initCmd.Flags().Int("project", 1, "project number")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	owner, _ := cmd.Flags().GetString("owner")
	repo, _ := cmd.Flags().GetString("repo")
	project, _ := cmd.Flags().GetInt("project")

	path := config.ConfigFileName
	if flagConfig != "" {
		path = flagConfig
	}
	if _, err := os.Stat(path); err == nil {
		return clierr.Newf(clierr.ConfigExists, "config already exists at %s", path).
			WithDetails(map[string]any{"path": path})
	}

	starter := config.NewStarter(owner, repo, project)
	if err := starter.WriteFile(path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	envWritten := false
	if _, err := os.Stat(envExampleName); os.IsNotExist(err) {
		const fileMode = 0o600
		if err := os.WriteFile(envExampleName, []byte(config.EnvExample()), fileMode); err != nil {
			return fmt.Errorf("writing env template: %w", err)
		}
		envWritten = true
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"config":      path,
			"env_example": envWritten,
		})
	}

	output.Messagef(os.Stdout, "Wrote %s", path)
	if envWritten {
		output.Messagef(os.Stdout, "Wrote %s", envExampleName)
	}
	output.Messagef(os.Stdout, "  Next: fill in owner and project_number, set %s, then run: pm-bot report", config.EnvToken)
	return nil
}
