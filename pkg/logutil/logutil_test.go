package logutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "jot.log")
	l, closer, err := New("debug", file)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	l.Debug().Str("journal", "WORK").Msg("hello")
	closer()

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"journal":"WORK"`) {
		t.Fatalf("expected structured field in log, got %s", data)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, _, err := New("loud", ""); err == nil {
		t.Fatal("expected unknown level to fail")
	}
}

func TestNewFiltersBelowLevel(t *testing.T) {
	file := filepath.Join(t.TempDir(), "jot.log")
	l, closer, err := New("warn", file)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	l.Info().Msg("quiet")
	l.Warn().Msg("loud")
	closer()

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "quiet") || !strings.Contains(string(data), "loud") {
		t.Fatalf("unexpected log content: %s", data)
	}
}
