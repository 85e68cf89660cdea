package cmd

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/karaage0703/pm-bot/internal/clierr"
	"github.com/karaage0703/pm-bot/internal/output"
	"github.com/karaage0703/pm-bot/internal/task"
)

var flagShowRepo string

var showCmd = &cobra.Command{
	Use:   "show NUMBER",
	Short: "Show one task in detail",
	Long:  `Fetches the board and displays every attribute of a single task, including the parsed body sections.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&flagShowRepo, "repo", "", "repository (owner/name) when the number exists in several")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	number, err := strconv.Atoi(args[0])
	if err != nil {
		return clierr.Newf(clierr.InvalidInput, "invalid task number %q", args[0])
	}

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

	t, ok := task.Find(tasks, number, flagShowRepo)
	if !ok {
		return clierr.Newf(clierr.InvalidInput, "no task #%d on the board", number)
	}

	format := outputFormat()
	if format == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}
	if format == output.FormatCompact {
		output.TaskDetailCompact(os.Stdout, t, d)
		return nil
	}

	output.TaskDetail(os.Stdout, t, d)
	return nil
}
