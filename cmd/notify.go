package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/karaage0703/pm-bot/internal/clierr"
	"github.com/karaage0703/pm-bot/internal/notify"
	"github.com/karaage0703/pm-bot/internal/output"
	"github.com/karaage0703/pm-bot/internal/task"
)

var flagNotifyDryRun bool

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Notify webhooks about overdue tasks",
	Long: `Fetch all board items, evaluate deadlines against today, and post one
message per overdue task to each enabled destination. Every pair is
attempted once; one failed webhook never blocks the others.`,
	RunE: runNotify,
}

func init() {
	notifyCmd.Flags().BoolVar(&flagNotifyDryRun, "dry-run", false, "format messages without sending them")
	rootCmd.AddCommand(notifyCmd)
}

func runNotify(cmd *cobra.Command, _ []string) error {
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

	var overdue []notify.OverdueTask
	for _, t := range tasks {
		status := task.CheckOverdue(t, d)
		if status.Overdue {
			overdue = append(overdue, notify.OverdueTask{Task: t, Status: status})
		}
	}

	dests := notify.Destinations(cfg)
	if len(dests) == 0 && len(overdue) > 0 {
		fmt.Fprintln(os.Stderr, "Warning: overdue tasks found but no notification destination is enabled")
	}

	dispatcher := notify.NewDispatcher(flagNotifyDryRun)
	events := dispatcher.Dispatch(cmd.Context(), overdue, dests)

	// Dry runs leave no trace in the dispatch log.
	runID := ""
	if !flagNotifyDryRun {
		runID = notify.LogEvents(cfg.NotifyLogPath(), events)
	}
	result := notify.Tally(runID, len(overdue), events)

	switch outputFormat() {
	case output.FormatJSON:
		if err := output.JSON(os.Stdout, result); err != nil {
			return err
		}
	case output.FormatCompact:
		output.EventCompact(os.Stdout, result)
	default:
		output.EventTable(os.Stdout, result)
		if flagNotifyDryRun {
			printDryRunMessages(result.Events)
		}
	}

	if result.AllFailed() {
		if outputFormat() == output.FormatJSON {
			return &clierr.SilentError{Code: 1}
		}
		return clierr.New(clierr.NotifyFailed, "all webhook deliveries failed")
	}
	return nil
}

// printDryRunMessages shows each formatted message body below the table.
func printDryRunMessages(events []notify.Event) {
	for _, ev := range events {
		fmt.Fprintf(os.Stdout, "\n--- #%d %s ---\n%s\n", ev.TaskNumber, ev.Destination, ev.Message)
	}
}
