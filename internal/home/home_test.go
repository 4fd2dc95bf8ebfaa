package home

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDirLayout(t *testing.T) {
	d, err := New("/tmp/certhome")
	if err != nil {
		t.Fatalf("new dir: %v", err)
	}

	if d.Path() != "/tmp/certhome" {
		t.Errorf("path = %q", d.Path())
	}
	if d.InboxDir() != filepath.Join("/tmp/certhome", "inbox") {
		t.Errorf("inbox = %q", d.InboxDir())
	}
	if d.SourceDir() != filepath.Join("/tmp/certhome", "source_certificates") {
		t.Errorf("source = %q", d.SourceDir())
	}
	if d.TrackerDBPath() != filepath.Join("/tmp/certhome", "processed.db") {
		t.Errorf("tracker db = %q", d.TrackerDBPath())
	}
	if d.WorkbookPath() != filepath.Join("/tmp/certhome", "data", "Raw_Warehouses.xlsx") {
		t.Errorf("workbook = %q", d.WorkbookPath())
	}
	if d.ConfigPath() != filepath.Join("/tmp/certhome", ConfigFileName) {
		t.Errorf("config = %q", d.ConfigPath())
	}
}

func TestNewDefaultsToUserHome(t *testing.T) {
	d, err := New("")
	if err != nil {
		t.Fatalf("new dir: %v", err)
	}
	if filepath.Base(d.Path()) != DefaultDirName {
		t.Errorf("default path = %q, want a %s directory", d.Path(), DefaultDirName)
	}
}

func TestEnsureExists(t *testing.T) {
	root := filepath.Join(t.TempDir(), "home")
	d, err := New(root)
	if err != nil {
		t.Fatalf("new dir: %v", err)
	}

	if d.Exists() {
		t.Error("home should not exist before EnsureExists")
	}
	if err := d.EnsureExists(); err != nil {
		t.Fatalf("ensure exists: %v", err)
	}
	if !d.Exists() {
		t.Error("home should exist after EnsureExists")
	}

	for _, dir := range []string{
		d.InboxDir(), d.SourceDir(), d.AnnotatedDir(),
		d.PrintedDir(), d.TranscriptsDir(), d.DataDir(),
	} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("missing subdirectory %s", dir)
		}
	}

	// Idempotent on an existing tree.
	if err := d.EnsureExists(); err != nil {
		t.Fatalf("second ensure exists: %v", err)
	}
}

func TestConfigExists(t *testing.T) {
	d, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new dir: %v", err)
	}

	if d.ConfigExists() {
		t.Error("config should not exist yet")
	}
	if err := os.WriteFile(d.ConfigPath(), []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("seed config: %v", err)
	}
	if !d.ConfigExists() {
		t.Error("config should be reported after writing")
	}
}

func TestResolve(t *testing.T) {
	d, err := New("/tmp/certhome")
	if err != nil {
		t.Fatalf("new dir: %v", err)
	}

	tests := []struct {
		in       string
		expected string
	}{
		{"", ""},
		{"/abs/inbox", "/abs/inbox"},
		{"custom/inbox", filepath.Join("/tmp/certhome", "custom", "inbox")},
	}
	for _, tt := range tests {
		if got := d.Resolve(tt.in); got != tt.expected {
			t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}
