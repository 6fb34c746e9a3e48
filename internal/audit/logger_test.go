package audit

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func readEvents(t *testing.T, path string) []Event {
	t.Helper()
	blob, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var events []Event
	for _, line := range strings.Split(strings.TrimSpace(string(blob)), "\n") {
		var ev Event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("unmarshal event %q: %v", line, err)
		}
		events = append(events, ev)
	}
	return events
}

func TestLogNoopForNilLoggerAndEmptyPath(t *testing.T) {
	var nilLogger *Logger
	if err := nilLogger.Log(Event{Operation: "delete"}); err != nil {
		t.Fatalf("nil logger should be noop: %v", err)
	}
	if err := New("").Record("delete", "/n/2024-01-01.md", "", nil); err != nil {
		t.Fatalf("empty-path logger should be noop: %v", err)
	}
}

func TestRecordWritesJSONLines(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "audit", "events.log")
	logger := New(logPath)

	if err := logger.Record("move", "/n/a/2024-01-01.md", "/n/b/2024-01-01.md", nil); err != nil {
		t.Fatalf("record move: %v", err)
	}
	failure := errors.New("NB_CONFLICT: destination /n/b/2024-01-01.md exists")
	if err := logger.Record("move", "/n/a/2024-01-01.md", "/n/b", failure); err != nil {
		t.Fatalf("record failed move: %v", err)
	}

	events := readEvents(t, logPath)
	if len(events) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(events))
	}
	first := events[0]
	if _, err := time.Parse(time.RFC3339Nano, first.Timestamp); err != nil {
		t.Fatalf("timestamp should be RFC3339Nano: %v", err)
	}
	if first.Operation != "move" || first.Status != "ok" || first.Target != "/n/b/2024-01-01.md" {
		t.Fatalf("unexpected first event: %+v", first)
	}
	second := events[1]
	if second.Status != "error" || second.Code != "NB_CONFLICT" || !strings.Contains(second.Message, "exists") {
		t.Fatalf("unexpected second event: %+v", second)
	}
}

func TestCodeOf(t *testing.T) {
	tests := map[string]string{
		"NB_NOT_FOUND: there is no entry number 3": "NB_NOT_FOUND",
		"open /x: permission denied":                "",
		"no colon here":                             "",
		": empty code":                              "",
	}
	for msg, want := range tests {
		if got := codeOf(msg); got != want {
			t.Errorf("codeOf(%q) = %q, want %q", msg, got, want)
		}
	}
}

func TestLogMkdirAllFailure(t *testing.T) {
	tmp := t.TempDir()
	blockedPath := filepath.Join(tmp, "blocked")
	if err := os.WriteFile(blockedPath, []byte("x"), 0o644); err != nil {
		t.Fatalf("create blocking file: %v", err)
	}

	logger := New(filepath.Join(blockedPath, "events.log"))
	if err := logger.Log(Event{Operation: "delete"}); err == nil {
		t.Fatalf("expected mkdir failure")
	}
}

func TestLogOpenFileFailure(t *testing.T) {
	dirPath := filepath.Join(t.TempDir(), "log-dir")
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		t.Fatalf("create directory path: %v", err)
	}

	logger := New(dirPath)
	if err := logger.Log(Event{Operation: "delete"}); err == nil {
		t.Fatalf("expected open file failure")
	}
}
