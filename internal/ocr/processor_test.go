package ocr

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// seedArtifact writes a file under dir and backdates it by age.
func seedArtifact(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
	old := time.Now().Add(-age)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("backdate %s: %v", name, err)
	}
	return path
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestCleanupStale(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(nil, dir, 300, nil)

	var stale, fresh []string
	for _, sub := range []string{"images", "json", "debug_texts"} {
		subDir := filepath.Join(dir, sub)
		stale = append(stale, seedArtifact(t, subDir, "old", 48*time.Hour))
		fresh = append(fresh, seedArtifact(t, subDir, "new", time.Minute))
	}
	// Directories are skipped even when old.
	nested := filepath.Join(dir, "images", "keepdir")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("create nested dir: %v", err)
	}
	old := time.Now().Add(-72 * time.Hour)
	if err := os.Chtimes(nested, old, old); err != nil {
		t.Fatalf("backdate nested dir: %v", err)
	}

	p.CleanupStale(24 * time.Hour)

	for _, path := range stale {
		if exists(path) {
			t.Errorf("stale artifact survived: %s", path)
		}
	}
	for _, path := range fresh {
		if !exists(path) {
			t.Errorf("fresh artifact removed: %s", path)
		}
	}
	if !exists(nested) {
		t.Error("directory entries must not be removed")
	}
}

func TestCleanupStaleDisabled(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(nil, dir, 300, nil)

	stale := seedArtifact(t, filepath.Join(dir, "json"), "old_ocr.json", 30*24*time.Hour)

	p.CleanupStale(0)
	if !exists(stale) {
		t.Error("zero max age must disable cleanup")
	}

	p.CleanupStale(-time.Hour)
	if !exists(stale) {
		t.Error("negative max age must disable cleanup")
	}
}

func TestCleanupStaleMissingDirs(t *testing.T) {
	// An empty transcripts tree must not panic or error.
	p := NewProcessor(nil, t.TempDir(), 300, nil)
	p.CleanupStale(time.Hour)
}
