// Package audit appends one JSON line per notebook mutation, so deleted or
// moved entries can be traced after the fact.
package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

type Logger struct {
	path string
	mu   sync.Mutex
}

type Event struct {
	Timestamp string `json:"timestamp"`
	Operation string `json:"operation"`
	Status    string `json:"status"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message,omitempty"`
	Path      string `json:"path,omitempty"`
	Target    string `json:"target,omitempty"`
}

func New(path string) *Logger {
	return &Logger{path: path}
}

// Record logs the outcome of one operation on path. target is the second
// path of a move and empty otherwise.
func (l *Logger) Record(op, path, target string, opErr error) error {
	ev := Event{Operation: op, Status: "ok", Path: path, Target: target}
	if opErr != nil {
		ev.Status = "error"
		ev.Message = opErr.Error()
		ev.Code = codeOf(ev.Message)
	}
	return l.Log(ev)
}

func (l *Logger) Log(ev Event) error {
	if l == nil || l.path == "" {
		return nil
	}
	ev.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	blob, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(append(blob, '\n')); err != nil {
		return err
	}
	return nil
}

// codeOf extracts a leading "NB_NOT_FOUND:"-style code from an error message.
func codeOf(msg string) string {
	code, _, ok := strings.Cut(msg, ":")
	if !ok || code == "" {
		return ""
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && r != '_' {
			return ""
		}
	}
	return code
}
