package inbox

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Tracker records which inbox documents were already processed, keyed by
// content hash so a re-delivered copy under a new name is still skipped.
type Tracker struct {
	db *sql.DB
}

// OpenTracker opens (or creates) the tracking database at path.
func OpenTracker(path string) (*Tracker, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open tracker db: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS processed_documents (
			content_hash   TEXT PRIMARY KEY,
			path           TEXT,
			processed_time TEXT
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init tracker schema: %w", err)
	}

	return &Tracker{db: db}, nil
}

// Close releases the database.
func (t *Tracker) Close() error {
	return t.db.Close()
}

// Seen reports whether a document with this content hash was processed
// before.
func (t *Tracker) Seen(hash string) (bool, error) {
	var n int
	err := t.db.QueryRow(
		"SELECT COUNT(*) FROM processed_documents WHERE content_hash = ?", hash,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query tracker: %w", err)
	}
	return n > 0, nil
}

// MarkProcessed records a document as processed.
func (t *Tracker) MarkProcessed(hash, path string) error {
	_, err := t.db.Exec(`
		INSERT OR REPLACE INTO processed_documents (content_hash, path, processed_time)
		VALUES (?, ?, ?)
	`, hash, path, time.Now().Format("2006-01-02 15:04:05"))
	if err != nil {
		return fmt.Errorf("record processed document: %w", err)
	}
	return nil
}

// FileHash returns the hex content hash of a file.
func FileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open for hashing: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
