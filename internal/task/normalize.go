package task

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/karaage0703/pm-bot/internal/board"
	"github.com/karaage0703/pm-bot/internal/date"
)

// Recognized board field names, matched by equality.
var (
	startFieldNames  = []string{"開始日", "Start date"}
	endFieldNames    = []string{"終了日", "End date"}
	statusFieldNames = []string{"Status", "ステータス"}
)

// categoryPattern splits "[X] Y" titles into category and remainder.
var categoryPattern = regexp.MustCompile(`^\[(.+?)\]\s*(.*)$`)

// Warning records a non-fatal normalization problem on one task.
type Warning struct {
	TaskNumber int
	Field      string
	Err        error
}

func (w Warning) String() string {
	return fmt.Sprintf("task #%d: %s: %v", w.TaskNumber, w.Field, w.Err)
}

// Normalize converts board items into task records, preserving board
// order. Items without issue content are skipped. Unparseable field
// values leave the attribute unset and add a warning; they never fail
// the run.
func Normalize(items []board.Item) ([]*Task, []Warning) {
	var tasks []*Task
	var warnings []Warning

	for _, item := range items {
		if item.Issue == nil || item.Issue.Number == 0 {
			continue
		}
		t, w := normalizeItem(item)
		tasks = append(tasks, t)
		warnings = append(warnings, w...)
	}

	return tasks, warnings
}

func normalizeItem(item board.Item) (*Task, []Warning) {
	iss := item.Issue

	t := &Task{
		Number:     iss.Number,
		Repository: iss.Repository,
		Title:      iss.Title,
		URL:        iss.URL,
		State:      State(strings.ToUpper(iss.State)),
		Labels:     append([]string(nil), iss.Labels...),
	}

	if m := categoryPattern.FindStringSubmatch(iss.Title); m != nil {
		t.Category = m[1]
		t.Title = m[2]
	}

	for _, a := range iss.Assignees {
		t.Assignees = append(t.Assignees, Assignee{Login: a.Login, Name: a.Name})
	}

	var warnings []Warning
	setDate := func(dst **date.Date, fv board.FieldValue) {
		if fv.Date == "" {
			return
		}
		d, err := date.Parse(fv.Date)
		if err != nil {
			warnings = append(warnings, Warning{TaskNumber: t.Number, Field: fv.Name, Err: err})
			return
		}
		*dst = &d
	}

	for _, fv := range item.Fields {
		switch {
		case fv.Kind == board.FieldDate && matchesName(fv.Name, startFieldNames):
			setDate(&t.StartDate, fv)
		case fv.Kind == board.FieldDate && matchesName(fv.Name, endFieldNames):
			setDate(&t.EndDate, fv)
		case fv.Kind == board.FieldSingleSelect && matchesName(fv.Name, statusFieldNames):
			t.Status = fv.Option
		}
	}

	t.BodyAssignee = ExtractBodyAssignee(iss.Body)
	if d, ok := ExtractBodyDeadline(iss.Body); ok {
		t.BodyDeadline = &d
	}
	t.Detail, t.DetailFromSection = ExtractDetail(iss.Body)

	return t, warnings
}

func matchesName(name string, candidates []string) bool {
	for _, c := range candidates {
		if name == c {
			return true
		}
	}
	return false
}
