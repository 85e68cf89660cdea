package task

import (
	"github.com/karaage0703/pm-bot/internal/date"
)

// Overdue reason strings, cited verbatim in the report and in
// notification text.
const (
	ReasonEndDatePast   = "はい（終了日が過去の日付）"
	ReasonEndDateFuture = "いいえ（終了日は未来の日付）"
	ReasonBodyPast      = "はい（本文内の期限が過去の日付）"
	ReasonBodyFuture    = "いいえ（本文内の期限は未来の日付）"
	ReasonClosed        = "いいえ（タスクは完了済み）"
	ReasonNoDeadline    = "不明（期限が設定されていません）"
)

// OverdueStatus is the outcome of evaluating one task against a date.
type OverdueStatus struct {
	Overdue  bool
	Reason   string
	Deadline *date.Date // effective deadline, nil when none is set
}

// CheckOverdue decides whether a task is overdue as of today. The board
// end date takes precedence over the body deadline; closed tasks are
// never overdue. The comparison is date-only and strict, so a deadline
// equal to today is not overdue. Pure for a fixed today.
func CheckOverdue(t *Task, today date.Date) OverdueStatus {
	deadline, fromBody := EffectiveDeadline(t)

	if t.State == StateClosed {
		return OverdueStatus{Reason: ReasonClosed, Deadline: deadline}
	}
	if deadline == nil {
		return OverdueStatus{Reason: ReasonNoDeadline}
	}

	past := deadline.Before(today.Time)
	switch {
	case fromBody && past:
		return OverdueStatus{Overdue: true, Reason: ReasonBodyPast, Deadline: deadline}
	case fromBody:
		return OverdueStatus{Reason: ReasonBodyFuture, Deadline: deadline}
	case past:
		return OverdueStatus{Overdue: true, Reason: ReasonEndDatePast, Deadline: deadline}
	default:
		return OverdueStatus{Reason: ReasonEndDateFuture, Deadline: deadline}
	}
}
