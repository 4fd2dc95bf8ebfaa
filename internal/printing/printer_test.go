package printing

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewDefaultsToOneAttempt(t *testing.T) {
	p := New("", 0, 0, nil)
	if p.attempts != 1 {
		t.Errorf("attempts = %d, want 1", p.attempts)
	}
}

func TestDestination(t *testing.T) {
	if got := New("", 1, 0, nil).destination(); got != "default" {
		t.Errorf("destination = %q, want default", got)
	}
	if got := New("office-laser", 1, 0, nil).destination(); got != "office-laser" {
		t.Errorf("destination = %q, want office-laser", got)
	}
}

func TestAvailableWithoutSpooler(t *testing.T) {
	// An empty PATH has no lp binary, so printing cannot be attempted.
	t.Setenv("PATH", t.TempDir())

	if New("", 1, 0, nil).Available() {
		t.Error("Available must be false without lp on PATH")
	}
}

func TestPrintFailsWithoutSpooler(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	p := New("", 2, 0, nil)
	err := p.Print(context.Background(), "/tmp/cert.pdf")
	if err == nil {
		t.Fatal("expected an error without lp on PATH")
	}
	if !strings.Contains(err.Error(), "/tmp/cert.pdf") {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestPrintUsesConfiguredDestination(t *testing.T) {
	bin := t.TempDir()
	capture := filepath.Join(bin, "args.txt")
	script := "#!/bin/sh\necho \"$@\" > " + capture + "\n"
	if err := os.WriteFile(filepath.Join(bin, "lp"), []byte(script), 0o755); err != nil {
		t.Fatalf("write lp stub: %v", err)
	}
	t.Setenv("PATH", bin)

	p := New("office-laser", 1, 0, nil)
	if err := p.Print(context.Background(), "/tmp/cert.pdf"); err != nil {
		t.Fatalf("print: %v", err)
	}

	args, err := os.ReadFile(capture)
	if err != nil {
		t.Fatalf("read captured args: %v", err)
	}
	got := strings.TrimSpace(string(args))
	if got != "-d office-laser /tmp/cert.pdf" {
		t.Errorf("lp args = %q", got)
	}
}

func TestPrintRetriesUntilSuccess(t *testing.T) {
	bin := t.TempDir()
	marker := filepath.Join(bin, "failed-once")
	// First invocation fails and drops a marker; the retry succeeds.
	script := "#!/bin/sh\nif [ ! -f " + marker + " ]; then : > " + marker + "; exit 1; fi\nexit 0\n"
	if err := os.WriteFile(filepath.Join(bin, "lp"), []byte(script), 0o755); err != nil {
		t.Fatalf("write lp stub: %v", err)
	}
	t.Setenv("PATH", bin)

	p := New("", 3, time.Millisecond, nil)
	if err := p.Print(context.Background(), "/tmp/cert.pdf"); err != nil {
		t.Fatalf("print should succeed on retry: %v", err)
	}
}
