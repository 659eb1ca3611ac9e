package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerOutput(t *testing.T) {
	l := NewLogger("test-service", "debug", false)
	buf := bytes.NewBufferString("")
	l.SetOutput(buf)

	l.Info("Testing")
	got := buf.String()
	if !strings.Contains(got, "test-service") {
		t.Fatalf("expected service name in log output; got %q", got)
	}
	if !strings.Contains(got, "info") {
		t.Fatalf("expected info level in log output; got %q", got)
	}
	if !strings.Contains(got, "Testing") {
		t.Fatalf("expected message in log output; got %q", got)
	}
}

func TestLoggerErrorWithStackDump(t *testing.T) {
	l := NewLogger("test-service", "debug", true)
	buf := bytes.NewBufferString("")
	l.SetOutput(buf)

	l.Error("boom")
	got := buf.String()
	if !strings.Contains(got, "stackTrace") {
		t.Fatalf("expected a stack trace in log output; got %q", got)
	}
}
