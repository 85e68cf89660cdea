package report

import (
	"strings"
	"testing"

	"github.com/karaage0703/pm-bot/internal/date"
	"github.com/karaage0703/pm-bot/internal/task"
)

func mustDate(t *testing.T, s string) date.Date {
	t.Helper()
	d, err := date.Parse(s)
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return d
}

func datePtr(t *testing.T, s string) *date.Date {
	t.Helper()
	d := mustDate(t, s)
	return &d
}

func renderFixture(t *testing.T) []*task.Task {
	t.Helper()
	return []*task.Task{
		{
			Number:     42,
			Repository: "karaage0703/pm-bot",
			Title:      "ログイン機能実装",
			Category:   "開発",
			URL:        "https://github.com/karaage0703/pm-bot/issues/42",
			State:      task.StateOpen,
			Labels:     []string{"bug", "urgent"},
			Assignees: []task.Assignee{
				{Login: "karaage0703", Name: "Karaage"},
				{Login: "yamada"},
			},
			BodyAssignee:      "yamada",
			BodyDeadline:      datePtr(t, "2023-12-01"),
			StartDate:         datePtr(t, "2023-11-01"),
			EndDate:           datePtr(t, "2024-01-15"),
			Detail:            "認証フローを実装する",
			DetailFromSection: true,
		},
		{
			Number: 7,
			Title:  "タイトルのみ",
		},
	}
}

const wantReport = `# GitHub Project タスク一覧

## 1. [開発] ログイン機能実装

### 基本情報
- **Issue番号**: #42
- **リポジトリ**: karaage0703/pm-bot
- **URL**: https://github.com/karaage0703/pm-bot/issues/42
- **状態**: OPEN
- **ラベル**: bug, urgent

### 担当者情報
- **GitHubアサイン**: karaage0703 (Karaage), yamada
- **Issue本文内の記載**: yamada

### 詳細内容
- **詳細な作業内容**: 認証フローを実装する
- **Issue本文内の期限**: 2023-12-01

### プロジェクト情報
- **開始日**: 2023-11-01
- **終了日**: 2024-01-15
- **期限切れ**: いいえ（終了日は未来の日付）

## 2. [その他] タイトルのみ

### 基本情報
- **Issue番号**: #7
- **リポジトリ**: 不明
- **URL**: 不明
- **状態**: 不明
- **ラベル**: なし

### 担当者情報
- **GitHubアサイン**: なし
- **Issue本文内の記載**: なし

### 詳細内容
- **詳細**: 詳細情報なし
- **Issue本文内の期限**: 未設定

### プロジェクト情報
- **開始日**: 未設定
- **終了日**: 未設定
- **期限切れ**: 不明（期限が設定されていません）
`

func TestRender(t *testing.T) {
	got := Render(renderFixture(t), mustDate(t, "2024-01-01"))
	if got != wantReport {
		t.Errorf("rendered report does not match expected output:\n--- got ---\n%s\n--- want ---\n%s", got, wantReport)
	}
}

func TestRender_Deterministic(t *testing.T) {
	tasks := renderFixture(t)
	today := mustDate(t, "2024-01-01")

	first := Render(tasks, today)
	second := Render(tasks, today)
	if first != second {
		t.Error("expected re-rendering the same input to be byte-identical")
	}
}

func TestRender_StableBlockHeight(t *testing.T) {
	today := mustDate(t, "2024-01-01")
	full := Render([]*task.Task{renderFixture(t)[0]}, today)
	empty := Render([]*task.Task{renderFixture(t)[1]}, today)

	fullLines := strings.Count(full, "\n")
	emptyLines := strings.Count(empty, "\n")
	if fullLines != emptyLines {
		t.Errorf("expected identical block height, got %d vs %d lines", fullLines, emptyLines)
	}
}

func TestRender_Empty(t *testing.T) {
	got := Render(nil, mustDate(t, "2024-01-01"))
	if got != Header+"\n\n" {
		t.Errorf("expected bare header for empty input, got %q", got)
	}
}

func TestRender_NumbersFollowInputOrder(t *testing.T) {
	tasks := []*task.Task{
		{Number: 9, Title: "c"},
		{Number: 2, Title: "a"},
		{Number: 5, Title: "b"},
	}
	got := Render(tasks, mustDate(t, "2024-01-01"))

	for i, want := range []string{"## 1. [その他] c", "## 2. [その他] a", "## 3. [その他] b"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected section %d heading %q in output", i+1, want)
		}
	}
	if strings.Index(got, "## 1.") > strings.Index(got, "## 2.") {
		t.Error("expected sections in input order")
	}
}
