package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/karaage0703/pm-bot/internal/date"
	"github.com/karaage0703/pm-bot/internal/notify"
	"github.com/karaage0703/pm-bot/internal/task"
)

// TaskCompact renders a list of tasks in one-line-per-record compact format.
func TaskCompact(w io.Writer, tasks []*task.Task, today date.Date) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	for _, t := range tasks {
		fmt.Fprintln(w, formatTaskLine(t, today))
	}
}

// TaskDetailCompact renders a single task with detail in compact format.
func TaskDetailCompact(w io.Writer, t *task.Task, today date.Date) {
	fmt.Fprintln(w, formatTaskLine(t, today))

	extra := ""
	if t.Repository != "" {
		extra += " repo:" + t.Repository
	}
	if t.StartDate != nil {
		extra += " start:" + t.StartDate.String()
	}
	if t.BodyAssignee != "" {
		extra += " body-assignee:" + t.BodyAssignee
	}
	if extra != "" {
		fmt.Fprintln(w, " "+extra)
	}
}

// SummaryCompact renders board metrics in compact format.
func SummaryCompact(w io.Writer, s task.Summary) {
	fmt.Fprintf(w, "%d tasks (%d overdue, %d without deadline)\n", s.Total, s.Overdue, s.NoDeadline)

	if len(s.States) > 0 {
		parts := make([]string, 0, len(s.States))
		for _, sc := range s.States {
			parts = append(parts, string(sc.State)+"="+strconv.Itoa(sc.Count))
		}
		fmt.Fprintln(w, "State: "+strings.Join(parts, " "))
	}

	if len(s.Categories) > 0 {
		parts := make([]string, 0, len(s.Categories))
		for _, cc := range s.Categories {
			parts = append(parts, cc.Category+"="+strconv.Itoa(cc.Count))
		}
		fmt.Fprintln(w, "Category: "+strings.Join(parts, " "))
	}
}

// EventCompact renders a dispatch result one line per event.
func EventCompact(w io.Writer, r notify.Result) {
	for _, ev := range r.Events {
		line := "#" + strconv.Itoa(ev.TaskNumber) + " " + ev.Destination + " " + ev.Outcome
		if ev.Err != "" {
			line += " (" + ev.Err + ")"
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "sent=%d failed=%d skipped=%d\n", r.Sent, r.Failed, r.Skipped)
}

// formatTaskLine builds the one-line representation of a task.
func formatTaskLine(t *task.Task, today date.Date) string {
	line := "#" + strconv.Itoa(t.Number) + " [" + string(t.State) + "/" + t.CategoryLabel() + "] " + t.Title

	for _, a := range t.Assignees {
		line += " @" + a.Login
	}
	if d, _ := task.EffectiveDeadline(t); d != nil {
		line += " due:" + d.String()
	}
	if task.CheckOverdue(t, today).Overdue {
		line += " overdue"
	}

	return line
}
