package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/karaage0703/pm-bot/internal/date"
	"github.com/karaage0703/pm-bot/internal/notify"
	"github.com/karaage0703/pm-bot/internal/task"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	stateStyles = map[string]lipgloss.Style{
		"OPEN":   lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		"CLOSED": lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	}

	outcomeStyles = map[string]lipgloss.Style{
		"SENT":             lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		"FAILED":           lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		"SKIPPED_DISABLED": lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}

	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// DisableColor strips all styling from table output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	stateStyles = map[string]lipgloss.Style{}
	outcomeStyles = map[string]lipgloss.Style{}
	categoryStyle = lipgloss.NewStyle()
	overdueStyle = lipgloss.NewStyle()
}

// TaskTable renders a list of tasks as a formatted table. today drives
// the overdue column.
func TaskTable(w io.Writer, tasks []*task.Task, today date.Date) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	// Calculate column widths. Display width, not byte length, so
	// multi-byte titles and categories line up.
	const pad = 2
	numW, stateW, catW, titleW, assignW := 4, 8, 10, 7, 11
	for _, t := range tasks {
		numW = max(numW, len(strconv.Itoa(t.Number))+1+pad)
		stateW = max(stateW, len(t.State)+pad)
		catW = max(catW, min(lipgloss.Width(t.CategoryLabel())+pad, 20)) //nolint:mnd // max category column width
		titleW = max(titleW, min(lipgloss.Width(t.Title)+pad, 50))       //nolint:mnd // max title column width
		assignW = max(assignW, min(lipgloss.Width(loginList(t))+pad, 30)) //nolint:mnd // max assignee column width
	}
	const deadlineW = 12

	// Print header.
	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s %-*s %s",
		numW, "NUMBER", stateW, "STATE", catW, "CATEGORY",
		titleW, "TITLE", assignW, "ASSIGNEES", deadlineW, "DEADLINE", "OVERDUE")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	// Print rows.
	for _, t := range tasks {
		logins := loginList(t)
		if logins == "" {
			logins = dimStyle.Render("--")
		}

		deadline := dimStyle.Render("--")
		if d, _ := task.EffectiveDeadline(t); d != nil {
			deadline = d.String()
		}

		row := fmt.Sprintf("%s %s %s %s %s %s %s",
			padRight("#"+strconv.Itoa(t.Number), numW),
			padRight(styledValue(string(t.State), stateStyles), stateW),
			padRight(categoryStyle.Render(t.CategoryLabel()), catW),
			padRight(truncate(t.Title, titleW-pad), titleW),
			padRight(logins, assignW),
			padRight(deadline, deadlineW),
			overdueCell(t, today))
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// SummaryTable renders board metrics as a formatted dashboard.
func SummaryTable(w io.Writer, s task.Summary) {
	fmt.Fprintf(w, "Total: %d tasks\n", s.Total)
	overdue := strconv.Itoa(s.Overdue)
	if s.Overdue > 0 {
		overdue = overdueStyle.Render(overdue)
	}
	fmt.Fprintf(w, "Overdue: %s\n", overdue)
	fmt.Fprintf(w, "No deadline: %d\n\n", s.NoDeadline)

	const colW = 16
	header := fmt.Sprintf("%-*s %6s", colW, "STATE", "COUNT")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, sc := range s.States {
		fmt.Fprintf(w, "%s %6d\n", padRight(styledValue(string(sc.State), stateStyles), colW), sc.Count)
	}

	fmt.Fprintln(w)
	catHeader := fmt.Sprintf("%-*s %6s", colW, "CATEGORY", "COUNT")
	fmt.Fprintln(w, headerStyle.Render(catHeader))
	for _, cc := range s.Categories {
		fmt.Fprintf(w, "%s %6d\n", padRight(categoryStyle.Render(cc.Category), colW), cc.Count)
	}
}

// EventTable renders a dispatch result with one row per delivery.
func EventTable(w io.Writer, r notify.Result) {
	fmt.Fprintf(w, "Overdue: %d  Sent: %d  Failed: %d  Skipped: %d\n", r.Overdue, r.Sent, r.Failed, r.Skipped)
	if len(r.Events) == 0 {
		return
	}
	fmt.Fprintln(w)

	const destW = 13
	header := fmt.Sprintf("%-8s %-*s %-18s %s", "TASK", destW, "DESTINATION", "OUTCOME", "DETAIL")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	for _, ev := range r.Events {
		detail := ev.Err
		if detail == "" {
			detail = dimStyle.Render("--")
		}
		row := fmt.Sprintf("%s %s %s %s",
			padRight("#"+strconv.Itoa(ev.TaskNumber), 8), //nolint:mnd // task column width
			padRight(ev.Destination, destW),
			padRight(styledValue(ev.Outcome, outcomeStyles), 18), //nolint:mnd // outcome column width
			detail)
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// TaskDetail renders a single task with every attribute on its own
// line, followed by the detail text.
func TaskDetail(w io.Writer, t *task.Task, today date.Date) {
	titleLine := fmt.Sprintf("Task #%d: [%s] %s", t.Number, t.CategoryLabel(), t.Title)
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", lipgloss.Width(titleLine)))

	printField(w, "Repository", stringOrDash(t.Repository))
	printField(w, "State", styledValue(string(t.State), stateStyles))
	if t.Status != "" {
		printField(w, "Status", t.Status)
	}
	if len(t.Labels) > 0 {
		printField(w, "Labels", strings.Join(t.Labels, ", "))
	} else {
		printField(w, "Labels", dimStyle.Render("--"))
	}
	printField(w, "Assignees", stringOrDash(t.AssigneeText()))
	if t.BodyAssignee != "" {
		printField(w, "Body assignee", t.BodyAssignee)
	}
	printField(w, "Start", dateOrDash(t.StartDate))

	deadline := dimStyle.Render("--")
	if d, fromBody := task.EffectiveDeadline(t); d != nil {
		deadline = d.String()
		if fromBody {
			deadline += " (from body)"
		}
	}
	printField(w, "Deadline", deadline)

	status := task.CheckOverdue(t, today)
	reason := status.Reason
	if status.Overdue {
		reason = overdueStyle.Render(reason)
	}
	printField(w, "Overdue", reason)
	printField(w, "URL", stringOrDash(t.URL))

	if t.Detail != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, t.Detail)
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

func overdueCell(t *task.Task, today date.Date) string {
	status := task.CheckOverdue(t, today)
	switch {
	case status.Overdue:
		return overdueStyle.Render("はい")
	case status.Reason == task.ReasonNoDeadline:
		return dimStyle.Render("不明")
	default:
		return "いいえ"
	}
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-14s %s\n", label+":", value)
}

func stringOrDash(s string) string {
	if s == "" {
		return dimStyle.Render("--")
	}
	return s
}

func dateOrDash(d *date.Date) string {
	if d == nil {
		return dimStyle.Render("--")
	}
	return d.String()
}

// loginList joins platform assignee logins for the compact column.
func loginList(t *task.Task) string {
	logins := make([]string, 0, len(t.Assignees))
	for _, a := range t.Assignees {
		logins = append(logins, a.Login)
	}
	return strings.Join(logins, ",")
}

// truncate shortens s to the given display width, appending "..." when
// anything was cut. Cuts on rune boundaries.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width { //nolint:mnd // width of "..."
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

// styledValue renders s using a matching style from the map, or returns s unchanged.
func styledValue(s string, styles map[string]lipgloss.Style) string {
	if st, ok := styles[s]; ok {
		return st.Render(s)
	}
	return s
}
