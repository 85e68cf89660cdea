// Package task defines the canonical task record and the normalization,
// filtering, and overdue evaluation logic built on it.
package task

import (
	"strings"

	"github.com/karaage0703/pm-bot/internal/date"
)

// State is the lifecycle state of a task's underlying issue.
type State string

// Issue states as reported by the board.
const (
	StateOpen   State = "OPEN"
	StateClosed State = "CLOSED"
)

// FallbackCategory labels tasks whose title carries no bracketed prefix.
const FallbackCategory = "その他"

// Task is the canonical record for one tracked item. Number and
// Repository together identify a record uniquely within a run.
type Task struct {
	Number       int        `json:"number"`
	Repository   string     `json:"repository,omitempty"`
	Title        string     `json:"title"`
	Category     string     `json:"category,omitempty"`
	URL          string     `json:"url,omitempty"`
	State        State      `json:"state"`
	Labels       []string   `json:"labels,omitempty"`
	Assignees    []Assignee `json:"assignees,omitempty"`
	BodyAssignee string     `json:"body_assignee,omitempty"`
	BodyDeadline *date.Date `json:"body_deadline,omitempty"`
	StartDate    *date.Date `json:"start_date,omitempty"`
	EndDate      *date.Date `json:"end_date,omitempty"`
	Status       string     `json:"status,omitempty"`
	Detail       string     `json:"detail,omitempty"`

	// DetailFromSection records whether Detail came from a dedicated
	// body section rather than the first body line.
	DetailFromSection bool `json:"-"`
}

// Assignee is one platform-assigned user, order preserved.
type Assignee struct {
	Login string `json:"login"`
	Name  string `json:"name,omitempty"`
}

// CategoryLabel returns the category, or the fallback for tasks without
// a bracketed title prefix.
func (t *Task) CategoryLabel() string {
	if t.Category == "" {
		return FallbackCategory
	}
	return t.Category
}

// AssigneeText joins platform assignees as "login (name)" entries.
// Returns "" when the platform lists nobody.
func (t *Task) AssigneeText() string {
	parts := make([]string, 0, len(t.Assignees))
	for _, a := range t.Assignees {
		if a.Name != "" {
			parts = append(parts, a.Login+" ("+a.Name+")")
		} else {
			parts = append(parts, a.Login)
		}
	}
	return strings.Join(parts, ", ")
}

// EffectiveDeadline resolves the authoritative deadline: the board end
// date when present, else the body deadline. The second return reports
// whether the body supplied it.
func EffectiveDeadline(t *Task) (*date.Date, bool) {
	if t.EndDate != nil {
		return t.EndDate, false
	}
	if t.BodyDeadline != nil {
		return t.BodyDeadline, true
	}
	return nil, false
}
