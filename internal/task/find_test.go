package task

import "testing"

func TestFind(t *testing.T) {
	tasks := []*Task{
		{Number: 7, Repository: "karaage0703/app", Title: "設定画面"},
		{Number: 7, Repository: "karaage0703/docs", Title: "利用規約"},
		{Number: 9, Repository: "karaage0703/app", Title: "通知改善"},
	}

	t.Run("by number", func(t *testing.T) {
		got, ok := Find(tasks, 9, "")
		if !ok || got.Title != "通知改善" {
			t.Errorf("expected task 9, got %+v", got)
		}
	})

	t.Run("number alone takes the first match", func(t *testing.T) {
		got, ok := Find(tasks, 7, "")
		if !ok || got.Repository != "karaage0703/app" {
			t.Errorf("expected first repo match, got %+v", got)
		}
	})

	t.Run("repo narrows duplicate numbers", func(t *testing.T) {
		got, ok := Find(tasks, 7, "karaage0703/docs")
		if !ok || got.Title != "利用規約" {
			t.Errorf("expected docs repo task, got %+v", got)
		}
	})

	t.Run("repo match is case-insensitive", func(t *testing.T) {
		if _, ok := Find(tasks, 7, "KARAAGE0703/DOCS"); !ok {
			t.Error("expected case-insensitive repository match")
		}
	})

	t.Run("missing number", func(t *testing.T) {
		if _, ok := Find(tasks, 99, ""); ok {
			t.Error("expected no match for unknown number")
		}
	})
}
