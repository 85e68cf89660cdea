package task

import (
	"strings"

	"github.com/karaage0703/pm-bot/internal/date"
)

// FilterOptions defines which tasks to include.
type FilterOptions struct {
	States     []string
	Categories []string
	Labels     []string
	Assignee   string    // matches platform logins and the body assignee
	Search     string    // case-insensitive substring match across title and detail
	Overdue    *bool     // nil=no filter, true=only overdue, false=only not-overdue
	Today      date.Date // reference date for the overdue filter
}

// Filter returns tasks matching all specified criteria (AND logic).
// The fetch order of the input is preserved.
func Filter(tasks []*Task, opts FilterOptions) []*Task {
	var result []*Task
	for _, t := range tasks {
		if matchesFilter(t, opts) {
			result = append(result, t)
		}
	}
	return result
}

func matchesFilter(t *Task, opts FilterOptions) bool {
	if len(opts.States) > 0 && !containsFold(opts.States, string(t.State)) {
		return false
	}
	if len(opts.Categories) > 0 && !containsFold(opts.Categories, t.CategoryLabel()) {
		return false
	}
	for _, l := range opts.Labels {
		if !containsFold(t.Labels, l) {
			return false
		}
	}
	if opts.Assignee != "" && !matchesAssignee(t, opts.Assignee) {
		return false
	}
	if opts.Search != "" && !matchesSearch(t, opts.Search) {
		return false
	}
	if opts.Overdue != nil && CheckOverdue(t, opts.Today).Overdue != *opts.Overdue {
		return false
	}
	return true
}

func matchesAssignee(t *Task, assignee string) bool {
	for _, a := range t.Assignees {
		if strings.EqualFold(a.Login, assignee) {
			return true
		}
	}
	return strings.EqualFold(t.BodyAssignee, assignee)
}

// matchesSearch performs case-insensitive substring matching across title and detail.
func matchesSearch(t *Task, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(t.Title), q) {
		return true
	}
	return strings.Contains(strings.ToLower(t.Detail), q)
}

func containsFold(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}
