package ux

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsoleNotifierSuccess(t *testing.T) {
	var buf bytes.Buffer
	n := NewConsoleNotifier(&buf, true)

	n.Success("blog saved")

	got := buf.String()
	if !strings.HasPrefix(got, "✓ ") {
		t.Errorf("expected success marker prefix, got %q", got)
	}
	if !strings.Contains(got, "blog saved") {
		t.Errorf("expected message in output, got %q", got)
	}
}

func TestConsoleNotifierError(t *testing.T) {
	var buf bytes.Buffer
	n := NewConsoleNotifier(&buf, true)

	n.Error("delete failed")

	got := buf.String()
	if !strings.HasPrefix(got, "✗ ") {
		t.Errorf("expected error marker prefix, got %q", got)
	}
	if !strings.Contains(got, "delete failed") {
		t.Errorf("expected message in output, got %q", got)
	}
}

func TestConsoleNotifierColorOutput(t *testing.T) {
	var buf bytes.Buffer
	n := NewConsoleNotifier(&buf, false)

	n.Success("created")

	if !strings.Contains(buf.String(), "created") {
		t.Errorf("expected message in styled output, got %q", buf.String())
	}
}

func TestNopNotifier(t *testing.T) {
	// Must not panic
	var n Notifier = NopNotifier{}
	n.Success("ignored")
	n.Error("ignored")
}
