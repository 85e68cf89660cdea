package task

import (
	"regexp"
	"strings"

	"github.com/karaage0703/pm-bot/internal/date"
)

// Body markers for the assignee, scanned in order, first match wins.
var assigneePatterns = []*regexp.Regexp{
	regexp.MustCompile(`## 担当者\s*\n\s*(.+?)(?:\n|$)`),
	regexp.MustCompile(`担当者[:：]\s*(.+?)(?:\n|$)`),
	regexp.MustCompile(`担当[:：]\s*(.+?)(?:\n|$)`),
}

// Body markers for the deadline, scanned in order. A marker only counts
// when its text carries a date-shaped token.
var deadlinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`## 期限\s*\n\s*(.+?)(?:\n|$)`),
	regexp.MustCompile(`期限[:：]\s*(.+?)(?:\n|$)`),
	regexp.MustCompile(`締切[:：]\s*(.+?)(?:\n|$)`),
	regexp.MustCompile(`(?i)deadline[:：]\s*(.+?)(?:\n|$)`),
}

// detailSectionPattern captures the 詳細な作業内容 section up to the
// next heading or the end of the body.
var detailSectionPattern = regexp.MustCompile(`(?s)## 詳細な作業内容\s*\n(.*?)(?:\n##|$)`)

// ExtractBodyAssignee scans the body for an assignee marker. A leading
// @ is stripped from the matched name.
func ExtractBodyAssignee(body string) string {
	for _, p := range assigneePatterns {
		if m := p.FindStringSubmatch(body); m != nil {
			return strings.TrimPrefix(strings.TrimSpace(m[1]), "@")
		}
	}
	return ""
}

// ExtractBodyDeadline scans the body for a deadline marker whose text
// contains a date. Markers without a recognizable date are passed over.
func ExtractBodyDeadline(body string) (date.Date, bool) {
	for _, p := range deadlinePatterns {
		m := p.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		if d, ok := date.ParseLoose(strings.TrimSpace(m[1])); ok {
			return d, true
		}
	}
	return date.Date{}, false
}

// ExtractDetail pulls the descriptive text out of the body: the
// 詳細な作業内容 section when present, else the first body line that is
// not a heading. The second return reports whether the dedicated
// section supplied it. Newlines collapse to spaces so report sections
// keep a fixed height.
func ExtractDetail(body string) (string, bool) {
	if m := detailSectionPattern.FindStringSubmatch(body); m != nil {
		return collapseLines(m[1]), true
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			return line, false
		}
	}
	return "", false
}

// collapseLines joins the non-empty trimmed lines of s with single
// spaces.
func collapseLines(s string) string {
	var parts []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}
