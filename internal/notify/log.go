package notify

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/karaage0703/pm-bot/internal/filelock"
)

const (
	logFileMode   = 0o600
	logDirMode    = 0o750
	maxLogEntries = 10000 // truncate oldest entries when log exceeds this size
)

// LogEntry is one dispatch log record.
type LogEntry struct {
	RunID       string    `json:"run_id"`
	Timestamp   time.Time `json:"timestamp"`
	TaskNumber  int       `json:"task_number"`
	Destination string    `json:"destination"`
	Outcome     string    `json:"outcome"`
	Message     string    `json:"message"`
}

// AppendLog appends a log entry to the dispatch log at path.
// If the log exceeds maxLogEntries, the oldest entries are truncated.
// A sibling lock file serializes concurrent runs, so overlapping
// invocations never interleave the truncation rewrite.
func AppendLog(path string, entry LogEntry) error {
	if err := os.MkdirAll(filepath.Dir(path), logDirMode); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	return filelock.WithLock(path+".lock", func() error {
		return appendLocked(path, entry)
	})
}

func appendLocked(path string, entry LogEntry) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode) //nolint:gosec // log path from trusted config
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling log entry: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing log entry: %w", err)
	}

	// Truncate if needed (best-effort; errors are non-fatal).
	_ = truncateLogIfNeeded(path)

	return nil
}

// truncateLogIfNeeded reads the log file and, if it exceeds
// maxLogEntries, rewrites it keeping only the most recent entries.
func truncateLogIfNeeded(path string) error {
	f, err := os.Open(path) //nolint:gosec // trusted path
	if err != nil {
		return err
	}

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	_ = f.Close()

	if err := scanner.Err(); err != nil {
		return err
	}

	if len(lines) <= maxLogEntries {
		return nil
	}

	// Keep only the last maxLogEntries lines.
	lines = lines[len(lines)-maxLogEntries:]

	var buf strings.Builder
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(buf.String()), logFileMode)
}

// LogEvents appends one record per event under a fresh run ID and
// returns that ID. Errors are silently discarded because logging must
// never fail a dispatch.
func LogEvents(path string, events []Event) string {
	runID := uuid.NewString()
	now := time.Now()
	for _, ev := range events {
		_ = AppendLog(path, LogEntry{
			RunID:       runID,
			Timestamp:   now,
			TaskNumber:  ev.TaskNumber,
			Destination: ev.Destination,
			Outcome:     ev.Outcome,
			Message:     ev.Message,
		})
	}
	return runID
}
