package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs", "tasks.md")

	if err := Write(path, "# report\n"); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if string(data) != "# report\n" {
		t.Errorf("expected written content, got %q", data)
	}
}

func TestWrite_ReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.md")

	if err := Write(path, "old\n"); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := Write(path, "new\n"); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "new\n" {
		t.Errorf("expected replaced content, got %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp") {
			t.Errorf("expected no leftover temp file, found %s", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("expected only the report in the directory, got %d entries", len(entries))
	}
}
