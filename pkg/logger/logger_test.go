package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewJSONWithSession(t *testing.T) {
	var buf bytes.Buffer
	lg, closeFn, err := New(Options{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer closeFn()

	lg.Debug("hello", "k", "v")
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode: %v (%s)", err, buf.String())
	}
	if rec["msg"] != "hello" || rec["k"] != "v" {
		t.Fatalf("unexpected record: %#v", rec)
	}
	if s, _ := rec["session"].(string); len(s) != 36 {
		t.Fatalf("expected uuid session, got %#v", rec["session"])
	}
}

func TestNewLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	lg, _, err := New(Options{Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	lg.Info("dropped")
	lg.Warn("kept")
	if strings.Contains(buf.String(), "dropped") || !strings.Contains(buf.String(), "kept") {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "gocalc.log")
	lg, closeFn, err := New(Options{File: path})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	lg.Info("to file")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Fatalf("unexpected log file: %s", data)
	}
}
