package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/karaage0703/pm-bot/internal/clierr"
	"github.com/karaage0703/pm-bot/internal/output"
	"github.com/karaage0703/pm-bot/internal/report"
)

var (
	flagReportOutput string
	flagReportStdout bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the markdown task report",
	Long: `Fetch all board items, normalize them, and write the full task report,
replacing the previous file in one atomic step.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&flagReportOutput, "output", "o", "", "report path (default from config)")
	reportCmd.Flags().BoolVar(&flagReportStdout, "stdout", false, "print the report instead of writing it")
	rootCmd.AddCommand(reportCmd)
}

type reportResult struct {
	Path  string `json:"path"`
	Tasks int    `json:"tasks"`
}

func runReport(cmd *cobra.Command, _ []string) error {
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

	doc := report.Render(tasks, d)

	if flagReportStdout {
		fmt.Print(doc)
		return nil
	}

	path := cfg.ReportPath
	if flagReportOutput != "" {
		path = flagReportOutput
	}
	if err := report.Write(path, doc); err != nil {
		return clierr.Newf(clierr.ReportWrite, "%v", err)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, reportResult{Path: path, Tasks: len(tasks)})
	}
	output.Messagef(os.Stdout, "Wrote %d tasks to %s", len(tasks), path)
	return nil
}
