// Package cmd implements the pm-bot CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/karaage0703/pm-bot/internal/board"
	"github.com/karaage0703/pm-bot/internal/clierr"
	"github.com/karaage0703/pm-bot/internal/config"
	"github.com/karaage0703/pm-bot/internal/date"
	"github.com/karaage0703/pm-bot/internal/output"
	"github.com/karaage0703/pm-bot/internal/task"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON    bool
	flagTable   bool
	flagCompact bool
	flagConfig  string
	flagEnvFile string
	flagToday   string
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "pm-bot",
	Short: "Task report and overdue notifications for GitHub Projects",
	Long: `pm-bot reads a GitHub Projects V2 board, writes a markdown task report,
and notifies Discord or Slack about tasks whose deadline has passed.
Run it from cron or CI; each invocation is one full pipeline pass.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to pm-bot.yml")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", "", "path to .env file")
	rootCmd.PersistentFlags().StringVar(&flagToday, "today", "", "override today for deadline evaluation (YYYY-MM-DD)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	// Handle SilentError — exit with code, no output.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	// Determine if JSON mode is active.
	jsonMode := flagJSON
	if !jsonMode {
		jsonMode = os.Getenv("PM_BOT_OUTPUT") == "json"
	}

	if jsonMode {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		// Unknown error — wrap as INTERNAL_ERROR.
		output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	// Non-JSON mode: print to stderr.
	fmt.Fprintln(os.Stderr, err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// loadConfig resolves the configuration from flags, files, and environment.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Resolve(flagConfig, flagEnvFile)
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			return nil, clierr.Newf(clierr.ConfigNotFound, "%v", err)
		}
		if errors.Is(err, config.ErrInvalid) {
			return nil, clierr.Newf(clierr.ConfigInvalid, "%v", err)
		}
		return nil, err
	}
	return cfg, nil
}

// today returns the evaluation date: the --today override when given,
// otherwise the current date.
func today() (date.Date, error) {
	if flagToday == "" {
		return date.Today(), nil
	}
	d, err := date.Parse(flagToday)
	if err != nil {
		return date.Date{}, clierr.Newf(clierr.InvalidDate, "--today: %v", err)
	}
	return d, nil
}

// fetchTasks runs the fetch + normalize half of every pipeline: query the
// configured board, convert items to task records, and report field-parse
// warnings on stderr.
func fetchTasks(ctx context.Context, cfg *config.Config) ([]*task.Task, error) {
	client, err := board.NewClient(cfg)
	if err != nil {
		return nil, clierr.Newf(clierr.AuthFailed, "%v", err)
	}

	items, err := client.FetchItems(ctx)
	if err != nil {
		return nil, clierr.Newf(clierr.FetchFailed, "%v", err)
	}

	tasks, warnings := task.Normalize(items)
	printWarnings(warnings)
	return tasks, nil
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// printWarnings writes normalization warnings to stderr.
func printWarnings(warnings []task.Warning) {
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
}
