package loglib

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	l := New()
	var buf bytes.Buffer
	l.SetOutput(&buf)

	l.SetLevel("info")
	l.Debug("books loaded: %d", 7)
	if strings.Contains(buf.String(), "books loaded") {
		t.Error("debug line emitted at info level")
	}

	l.SetLevel("debug")
	l.Debug("books loaded: %d", 7)
	if !strings.Contains(buf.String(), "books loaded: 7") {
		t.Errorf("debug line missing at debug level, got %q", buf.String())
	}

	buf.Reset()
	l.SetLevel("nonsense")
	l.Info("tokenizing")
	if !strings.Contains(buf.String(), "tokenizing") {
		t.Error("unknown level did not fall back to info")
	}
}

func TestDecoratePosition(t *testing.T) {
	l := New()
	var buf bytes.Buffer
	l.SetOutput(&buf)

	l.Info("hello")
	if !strings.Contains(buf.String(), "position=") {
		t.Errorf("log line missing position field, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "loglib_test.go") {
		t.Errorf("position should point at the caller, got %q", buf.String())
	}
}

func TestLogToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	l := New()
	if err := l.LogToFile(dir, "analysis.log"); err != nil {
		t.Fatal(err)
	}

	l.Info("corpus ready")
	b, err := os.ReadFile(filepath.Join(dir, "analysis.log"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "corpus ready") {
		t.Errorf("log file missing entry, got %q", string(b))
	}
}
