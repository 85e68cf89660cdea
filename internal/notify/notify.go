// Package notify delivers overdue-task alerts to webhook destinations
// and records each delivery in a dispatch log.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/karaage0703/pm-bot/internal/config"
	"github.com/karaage0703/pm-bot/internal/task"
)

// Destination names.
const (
	DestinationDiscord = "discord"
	DestinationSlack   = "slack"
)

// Delivery outcomes.
const (
	OutcomeSent    = "SENT"
	OutcomeFailed  = "FAILED"
	OutcomeSkipped = "SKIPPED_DISABLED"
)

const requestTimeout = 10 * time.Second

// Destination is one webhook target.
type Destination struct {
	Name string
	URL  string
}

// Destinations returns the targets that participate in dispatch: the
// ones switched on in config with a webhook URL set.
func Destinations(cfg *config.Config) []Destination {
	var dests []Destination
	if cfg.Discord.Enabled && cfg.Discord.URL != "" {
		dests = append(dests, Destination{Name: DestinationDiscord, URL: cfg.Discord.URL})
	}
	if cfg.Slack.Enabled && cfg.Slack.URL != "" {
		dests = append(dests, Destination{Name: DestinationSlack, URL: cfg.Slack.URL})
	}
	return dests
}

// OverdueTask pairs a task with its evaluated overdue status.
type OverdueTask struct {
	Task   *task.Task
	Status task.OverdueStatus
}

// Event records one delivery attempt (or skip) for a task and
// destination pair.
type Event struct {
	TaskNumber  int    `json:"task_number"`
	Destination string `json:"destination"`
	Message     string `json:"message"`
	Outcome     string `json:"outcome"`
	Err         string `json:"error,omitempty"`
}

// Result summarizes one dispatch pass.
type Result struct {
	RunID   string  `json:"run_id,omitempty"`
	Overdue int     `json:"overdue"`
	Sent    int     `json:"sent"`
	Failed  int     `json:"failed"`
	Skipped int     `json:"skipped"`
	Events  []Event `json:"events"`
}

// Tally folds a dispatch pass into a result.
func Tally(runID string, overdueCount int, events []Event) Result {
	r := Result{RunID: runID, Overdue: overdueCount, Events: events}
	for _, ev := range events {
		switch ev.Outcome {
		case OutcomeSent:
			r.Sent++
		case OutcomeFailed:
			r.Failed++
		case OutcomeSkipped:
			r.Skipped++
		}
	}
	return r
}

// AllFailed reports whether at least one delivery was attempted and
// none succeeded.
func (r Result) AllFailed() bool {
	return r.Failed > 0 && r.Sent == 0
}

// Dispatcher posts notifications over HTTP. A dry-run dispatcher makes
// no network calls and marks every pair as skipped.
type Dispatcher struct {
	client *http.Client
	dryRun bool
}

// NewDispatcher returns a dispatcher with the standard request timeout.
func NewDispatcher(dryRun bool) *Dispatcher {
	return &Dispatcher{
		client: &http.Client{Timeout: requestTimeout},
		dryRun: dryRun,
	}
}

// Dispatch sends one notification per overdue task and destination.
// Each pair is attempted exactly once, with no retries; a failed
// delivery never stops the remaining pairs. No destinations means no
// network calls and no events.
func (d *Dispatcher) Dispatch(ctx context.Context, overdue []OverdueTask, dests []Destination) []Event {
	var events []Event
	for _, ot := range overdue {
		for _, dest := range dests {
			events = append(events, d.deliver(ctx, ot, dest))
		}
	}
	return events
}

func (d *Dispatcher) deliver(ctx context.Context, ot OverdueTask, dest Destination) Event {
	ev := Event{
		TaskNumber:  ot.Task.Number,
		Destination: dest.Name,
		Message:     Message(dest.Name, ot),
	}

	if d.dryRun {
		ev.Outcome = OutcomeSkipped
		return ev
	}

	if err := d.post(ctx, dest, ev.Message); err != nil {
		ev.Outcome = OutcomeFailed
		ev.Err = err.Error()
		return ev
	}
	ev.Outcome = OutcomeSent
	return ev
}

func (d *Dispatcher) post(ctx context.Context, dest Destination, message string) error {
	body, err := json.Marshal(payload(dest.Name, message))
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, dest.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting to %s: %w", dest.Name, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%s returned status %d", dest.Name, resp.StatusCode)
	}
	return nil
}

// payload wraps the message in the destination's JSON shape.
func payload(name, message string) map[string]string {
	if name == DestinationSlack {
		return map[string]string{"text": message}
	}
	return map[string]string{"content": message}
}

// Message formats the alert for a destination. Discord carries the
// multi-line body; Slack gets a single line.
func Message(destName string, ot OverdueTask) string {
	t := ot.Task
	deadline := ""
	if ot.Status.Deadline != nil {
		deadline = ot.Status.Deadline.String()
	}
	headline := fmt.Sprintf("[%s] %s (#%d) の期限（%s）が過ぎています",
		t.CategoryLabel(), t.Title, t.Number, deadline)

	if destName == DestinationSlack {
		return "期限切れタスク: " + headline
	}

	var b strings.Builder
	b.WriteString("**期限切れ警告**: " + headline + "\n")
	fmt.Fprintf(&b, "**ステータス**: %s\n", t.State)
	fmt.Fprintf(&b, "**担当者**: %s\n", assigneeLine(t))
	b.WriteString("**URL**: " + t.URL)
	return b.String()
}

// assigneeLine shows the platform assignees with the body assignee in
// parentheses when both are present.
func assigneeLine(t *task.Task) string {
	text := t.AssigneeText()
	if text == "" {
		text = "なし"
	}
	if t.BodyAssignee != "" {
		text += " (" + t.BodyAssignee + ")"
	}
	return text
}
