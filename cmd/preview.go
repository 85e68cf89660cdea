package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/karaage0703/pm-bot/internal/preview"
	"github.com/karaage0703/pm-bot/internal/watcher"
)

var (
	flagPreviewWatch bool
	flagPreviewPlain bool
)

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "View the generated report in the terminal",
	Long: `Renders the markdown report in a scrollable viewer. With --watch the
view refreshes whenever the report file is rewritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().BoolVarP(&flagPreviewWatch, "watch", "w", false, "refresh when the report changes")
	previewCmd.Flags().BoolVar(&flagPreviewPlain, "plain", false, "show the raw markdown without styling")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(_ *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	} else {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path = cfg.ReportPath
	}

	// Without a terminal there is nothing to scroll; print the report once.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		data, err := os.ReadFile(path) //nolint:gosec // report path from config or argument
		if err != nil {
			return fmt.Errorf("reading report: %w", err)
		}
		fmt.Print(string(data))
		return nil
	}

	model := preview.New(path, flagPreviewPlain)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if flagPreviewWatch {
		go startPreviewWatcher(ctx, path, p)
	}

	_, err := p.Run()
	return err
}

func startPreviewWatcher(ctx context.Context, path string, p *tea.Program) {
	w, err := watcher.New(path, func() {
		p.Send(preview.ReloadMsg{})
	})
	if err != nil {
		return // non-fatal: the viewer works without live refresh
	}
	defer w.Close()
	w.Run(ctx, nil)
}
