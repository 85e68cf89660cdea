package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/karaage0703/pm-bot/internal/date"
	"github.com/karaage0703/pm-bot/internal/output"
	"github.com/karaage0703/pm-bot/internal/task"
)

var tasksCmd = &cobra.Command{
	Use:     "tasks",
	Aliases: []string{"list", "ls"},
	Short:   "List board tasks",
	Long:    `Fetches the board and lists its tasks with optional filtering, sorting, and output format control.`,
	RunE:    runTasks,
}

func init() {
	tasksCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "states":
			name = "state"
		case "categories":
			name = "category"
		case "labels":
			name = "label"
		}
		return pflag.NormalizedName(name)
	})
	tasksCmd.Flags().StringSlice("state", nil, "filter by state (comma-separated: OPEN, CLOSED)")
	tasksCmd.Flags().StringSlice("category", nil, "filter by category (comma-separated)")
	tasksCmd.Flags().StringSlice("label", nil, "filter by label (task must carry all)")
	tasksCmd.Flags().String("assignee", "", "filter by assignee login or body assignee")
	tasksCmd.Flags().StringP("search", "s", "", "search tasks by title or detail (case-insensitive)")
	tasksCmd.Flags().Bool("overdue", false, "show only overdue tasks")
	tasksCmd.Flags().Bool("not-overdue", false, "show only tasks that are not overdue")
	tasksCmd.Flags().String("sort", "", "sort field (number, title, category, state, deadline)")
	tasksCmd.Flags().BoolP("reverse", "r", false, "reverse sort order")
	tasksCmd.Flags().IntP("limit", "n", 0, "limit number of results")
	rootCmd.AddCommand(tasksCmd)
}

func runTasks(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	d, err := today()
	if err != nil {
		return err
	}

	states, _ := cmd.Flags().GetStringSlice("state")
	categories, _ := cmd.Flags().GetStringSlice("category")
	labels, _ := cmd.Flags().GetStringSlice("label")
	assignee, _ := cmd.Flags().GetString("assignee")
	search, _ := cmd.Flags().GetString("search")
	overdue, _ := cmd.Flags().GetBool("overdue")
	notOverdue, _ := cmd.Flags().GetBool("not-overdue")
	sortBy, _ := cmd.Flags().GetString("sort")
	reverse, _ := cmd.Flags().GetBool("reverse")
	limit, _ := cmd.Flags().GetInt("limit")

	filter := task.FilterOptions{
		States:     states,
		Categories: categories,
		Labels:     labels,
		Assignee:   assignee,
		Search:     search,
		Today:      d,
	}

	if overdue {
		v := true
		filter.Overdue = &v
	} else if notOverdue {
		v := false
		filter.Overdue = &v
	}

	tasks, err := fetchTasks(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	tasks = task.List(tasks, task.ListOptions{
		Filter:  filter,
		SortBy:  sortBy,
		Reverse: reverse,
		Limit:   limit,
	})

	return outputTaskList(tasks, d)
}

func outputTaskList(tasks []*task.Task, today date.Date) error {
	format := outputFormat()
	if format == output.FormatJSON {
		if tasks == nil {
			tasks = []*task.Task{}
		}
		return output.JSON(os.Stdout, tasks)
	}
	if format == output.FormatCompact {
		output.TaskCompact(os.Stdout, tasks, today)
		return nil
	}

	output.TaskTable(os.Stdout, tasks, today)
	return nil
}
