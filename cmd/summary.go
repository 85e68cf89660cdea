package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/karaage0703/pm-bot/internal/output"
	"github.com/karaage0703/pm-bot/internal/task"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show aggregate task counts",
	Long:  `Fetches the board and prints totals by state and category plus the overdue count.`,
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	d, err := today()
	if err != nil {
		return err
	}

	tasks, err := fetchTasks(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	s := task.Summarize(tasks, d)

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, s)
	case output.FormatCompact:
		output.SummaryCompact(os.Stdout, s)
	default:
		output.SummaryTable(os.Stdout, s)
	}
	return nil
}
