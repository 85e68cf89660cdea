package task

import (
	"testing"

	"github.com/karaage0703/pm-bot/internal/date"
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

func TestCheckOverdue_BodyDeadlinePast(t *testing.T) {
	tk := &Task{
		Number:       42,
		Title:        "ログイン機能実装",
		Category:     "開発",
		State:        StateOpen,
		BodyDeadline: datePtr(t, "2023-12-01"),
	}

	status := CheckOverdue(tk, mustDate(t, "2024-01-01"))
	if !status.Overdue {
		t.Fatal("expected task to be overdue")
	}
	if status.Reason != ReasonBodyPast {
		t.Errorf("expected reason %q, got %q", ReasonBodyPast, status.Reason)
	}
	if status.Deadline == nil || status.Deadline.String() != "2023-12-01" {
		t.Errorf("expected deadline 2023-12-01, got %v", status.Deadline)
	}
}

func TestCheckOverdue_ClosedNeverOverdue(t *testing.T) {
	tk := &Task{
		Number:       42,
		State:        StateClosed,
		BodyDeadline: datePtr(t, "2023-12-01"),
	}

	status := CheckOverdue(tk, mustDate(t, "2024-01-01"))
	if status.Overdue {
		t.Fatal("expected closed task to not be overdue")
	}
	if status.Reason != ReasonClosed {
		t.Errorf("expected reason %q, got %q", ReasonClosed, status.Reason)
	}
}

func TestCheckOverdue_EndDateWinsOverBodyDeadline(t *testing.T) {
	tk := &Task{
		Number:       5,
		State:        StateOpen,
		EndDate:      datePtr(t, "2024-06-01"),
		BodyDeadline: datePtr(t, "2023-01-01"),
	}

	status := CheckOverdue(tk, mustDate(t, "2024-01-01"))
	if status.Overdue {
		t.Fatal("expected future end date to override the past body deadline")
	}
	if status.Reason != ReasonEndDateFuture {
		t.Errorf("expected reason %q, got %q", ReasonEndDateFuture, status.Reason)
	}
	if status.Deadline == nil || status.Deadline.String() != "2024-06-01" {
		t.Errorf("expected deadline 2024-06-01, got %v", status.Deadline)
	}
}

func TestCheckOverdue_EndDatePast(t *testing.T) {
	tk := &Task{
		Number:  6,
		State:   StateOpen,
		EndDate: datePtr(t, "2023-11-30"),
	}

	status := CheckOverdue(tk, mustDate(t, "2024-01-01"))
	if !status.Overdue {
		t.Fatal("expected task to be overdue")
	}
	if status.Reason != ReasonEndDatePast {
		t.Errorf("expected reason %q, got %q", ReasonEndDatePast, status.Reason)
	}
}

func TestCheckOverdue_DeadlineTodayIsNotOverdue(t *testing.T) {
	today := mustDate(t, "2024-01-01")

	onToday := &Task{Number: 1, State: StateOpen, EndDate: datePtr(t, "2024-01-01")}
	if status := CheckOverdue(onToday, today); status.Overdue {
		t.Error("expected deadline equal to today to not be overdue")
	}

	dayBefore := &Task{Number: 2, State: StateOpen, EndDate: datePtr(t, "2023-12-31")}
	if status := CheckOverdue(dayBefore, today); !status.Overdue {
		t.Error("expected deadline one day in the past to be overdue")
	}
}

func TestCheckOverdue_NoDeadline(t *testing.T) {
	tk := &Task{Number: 3, State: StateOpen}

	status := CheckOverdue(tk, mustDate(t, "2024-01-01"))
	if status.Overdue {
		t.Fatal("expected task without deadline to not be overdue")
	}
	if status.Reason != ReasonNoDeadline {
		t.Errorf("expected reason %q, got %q", ReasonNoDeadline, status.Reason)
	}
	if status.Deadline != nil {
		t.Errorf("expected nil deadline, got %v", status.Deadline)
	}
}

func TestEffectiveDeadline(t *testing.T) {
	both := &Task{EndDate: datePtr(t, "2024-06-01"), BodyDeadline: datePtr(t, "2023-01-01")}
	if d, fromBody := EffectiveDeadline(both); fromBody || d.String() != "2024-06-01" {
		t.Errorf("expected end date to win, got %v (fromBody=%v)", d, fromBody)
	}

	bodyOnly := &Task{BodyDeadline: datePtr(t, "2023-01-01")}
	if d, fromBody := EffectiveDeadline(bodyOnly); !fromBody || d.String() != "2023-01-01" {
		t.Errorf("expected body deadline, got %v (fromBody=%v)", d, fromBody)
	}

	neither := &Task{}
	if d, _ := EffectiveDeadline(neither); d != nil {
		t.Errorf("expected nil deadline, got %v", d)
	}
}
