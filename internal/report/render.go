// Package report renders the task list into a markdown document and
// writes it to disk.
package report

import (
	"fmt"
	"strings"

	"github.com/karaage0703/pm-bot/internal/date"
	"github.com/karaage0703/pm-bot/internal/task"
)

// Header is the fixed first line of every report.
const Header = "# GitHub Project タスク一覧"

// Placeholder tokens, printed so every task block keeps the same keys
// and the same line count regardless of missing data.
const (
	placeholderNone    = "なし"
	placeholderUnknown = "不明"
	placeholderUnset   = "未設定"
	placeholderDetail  = "詳細情報なし"
)

// Render produces the markdown report for tasks as of today. Input
// order is preserved and sections are numbered from 1, so the same
// input renders byte-identically every time.
func Render(tasks []*task.Task, today date.Date) string {
	var b strings.Builder
	b.WriteString(Header + "\n\n")

	for i, t := range tasks {
		renderTask(&b, t, i+1, today)
		if i < len(tasks)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func renderTask(b *strings.Builder, t *task.Task, index int, today date.Date) {
	fmt.Fprintf(b, "## %d. [%s] %s\n\n", index, t.CategoryLabel(), t.Title)

	b.WriteString("### 基本情報\n")
	fmt.Fprintf(b, "- **Issue番号**: #%d\n", t.Number)
	fmt.Fprintf(b, "- **リポジトリ**: %s\n", orElse(t.Repository, placeholderUnknown))
	fmt.Fprintf(b, "- **URL**: %s\n", orElse(t.URL, placeholderUnknown))
	fmt.Fprintf(b, "- **状態**: %s\n", orElse(string(t.State), placeholderUnknown))
	fmt.Fprintf(b, "- **ラベル**: %s\n\n", orElse(strings.Join(t.Labels, ", "), placeholderNone))

	b.WriteString("### 担当者情報\n")
	fmt.Fprintf(b, "- **GitHubアサイン**: %s\n", orElse(t.AssigneeText(), placeholderNone))
	fmt.Fprintf(b, "- **Issue本文内の記載**: %s\n\n", orElse(t.BodyAssignee, placeholderNone))

	b.WriteString("### 詳細内容\n")
	fmt.Fprintf(b, "- **%s**: %s\n", detailKey(t), orElse(t.Detail, placeholderDetail))
	fmt.Fprintf(b, "- **Issue本文内の期限**: %s\n\n", dateOrUnset(t.BodyDeadline))

	b.WriteString("### プロジェクト情報\n")
	fmt.Fprintf(b, "- **開始日**: %s\n", dateOrUnset(t.StartDate))
	fmt.Fprintf(b, "- **終了日**: %s\n", dateOrUnset(t.EndDate))
	fmt.Fprintf(b, "- **期限切れ**: %s\n", task.CheckOverdue(t, today).Reason)
}

// detailKey picks the heading for the detail line: the section name
// when the body carried a dedicated section, a generic key otherwise.
func detailKey(t *task.Task) string {
	if t.DetailFromSection {
		return "詳細な作業内容"
	}
	return "詳細"
}

func orElse(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}

func dateOrUnset(d *date.Date) string {
	if d == nil {
		return placeholderUnset
	}
	return d.String()
}
