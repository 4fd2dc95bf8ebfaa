package inbox

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestIsCertificateFile(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"cert.pdf", true},
		{"cert.PDF", true},
		{"scan.jpeg", true},
		{"scan.tiff", true},
		{"notes.txt", false},
		{"transcript_ocr.json", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := IsCertificateFile(tt.name); got != tt.expected {
			t.Errorf("IsCertificateFile(%q) = %v, want %v", tt.name, got, tt.expected)
		}
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"b.pdf", "a.pdf", "c.png", "skip.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("seed file: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.pdf"), 0o755); err != nil {
		t.Fatalf("seed dir: %v", err)
	}

	files, err := Scan(dir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.pdf"),
		filepath.Join(dir, "b.pdf"),
		filepath.Join(dir, "c.png"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("files = %v, want %v", files, want)
	}
}

func TestScanMissingDir(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("expected an error for a missing inbox")
	}
}

func TestTracker(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "processed.db")
	tracker, err := OpenTracker(dbPath)
	if err != nil {
		t.Fatalf("open tracker: %v", err)
	}
	defer tracker.Close()

	seen, err := tracker.Seen("abc123")
	if err != nil {
		t.Fatalf("seen: %v", err)
	}
	if seen {
		t.Error("fresh tracker should not know any hash")
	}

	if err := tracker.MarkProcessed("abc123", "/inbox/cert.pdf"); err != nil {
		t.Fatalf("mark processed: %v", err)
	}

	seen, err = tracker.Seen("abc123")
	if err != nil {
		t.Fatalf("seen after mark: %v", err)
	}
	if !seen {
		t.Error("marked hash should be reported as seen")
	}

	// Re-marking the same hash must not fail; the row is replaced.
	if err := tracker.MarkProcessed("abc123", "/inbox/renamed.pdf"); err != nil {
		t.Fatalf("re-mark processed: %v", err)
	}
}

func TestTrackerSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "processed.db")

	tracker, err := OpenTracker(dbPath)
	if err != nil {
		t.Fatalf("open tracker: %v", err)
	}
	if err := tracker.MarkProcessed("deadbeef", "/inbox/cert.pdf"); err != nil {
		t.Fatalf("mark processed: %v", err)
	}
	if err := tracker.Close(); err != nil {
		t.Fatalf("close tracker: %v", err)
	}

	reopened, err := OpenTracker(dbPath)
	if err != nil {
		t.Fatalf("reopen tracker: %v", err)
	}
	defer reopened.Close()

	seen, err := reopened.Seen("deadbeef")
	if err != nil {
		t.Fatalf("seen after reopen: %v", err)
	}
	if !seen {
		t.Error("processed hashes must persist across restarts")
	}
}

func TestFileHash(t *testing.T) {
	dir := t.TempDir()

	a := filepath.Join(dir, "a.pdf")
	b := filepath.Join(dir, "b.pdf")
	c := filepath.Join(dir, "c.pdf")
	for path, content := range map[string]string{a: "same", b: "same", c: "different"} {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("seed file: %v", err)
		}
	}

	hashA, err := FileHash(a)
	if err != nil {
		t.Fatalf("hash a: %v", err)
	}
	hashB, err := FileHash(b)
	if err != nil {
		t.Fatalf("hash b: %v", err)
	}
	hashC, err := FileHash(c)
	if err != nil {
		t.Fatalf("hash c: %v", err)
	}

	if hashA != hashB {
		t.Error("identical content under different names must hash equal")
	}
	if hashA == hashC {
		t.Error("different content must hash differently")
	}

	if _, err := FileHash(filepath.Join(dir, "absent.pdf")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
