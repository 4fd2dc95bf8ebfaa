package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the certprint home directory.
	DefaultDirName = ".certprint"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"

	inboxDirName       = "inbox"
	sourceDirName      = "source_certificates"
	annotatedDirName   = "annotated"
	printedDirName     = "printed"
	transcriptsDirName = "transcripts"
	dataDirName        = "data"
	trackerDBName      = "processed.db"
	workbookName       = "Raw_Warehouses.xlsx"
)

// Dir represents the certprint home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.certprint).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}
	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// InboxDir is where incoming certificate documents land.
func (d *Dir) InboxDir() string {
	return filepath.Join(d.path, inboxDirName)
}

// SourceDir is the archive for processed source certificates.
func (d *Dir) SourceDir() string {
	return filepath.Join(d.path, sourceDirName)
}

// AnnotatedDir holds stamped certificate copies.
func (d *Dir) AnnotatedDir() string {
	return filepath.Join(d.path, annotatedDirName)
}

// PrintedDir holds copies of certificates that were sent to the printer.
func (d *Dir) PrintedDir() string {
	return filepath.Join(d.path, printedDirName)
}

// TranscriptsDir holds OCR transcripts and rendered page images.
func (d *Dir) TranscriptsDir() string {
	return filepath.Join(d.path, transcriptsDirName)
}

// DataDir holds the reference workbook and other static data.
func (d *Dir) DataDir() string {
	return filepath.Join(d.path, dataDirName)
}

// TrackerDBPath is the processed-document tracking database.
func (d *Dir) TrackerDBPath() string {
	return filepath.Join(d.path, trackerDBName)
}

// WorkbookPath is the default location of the reference workbook.
func (d *Dir) WorkbookPath() string {
	return filepath.Join(d.DataDir(), workbookName)
}

// EnsureExists creates the home directory and subdirectories if they don't
// exist.
func (d *Dir) EnsureExists() error {
	for _, dir := range []string{
		d.InboxDir(),
		d.SourceDir(),
		d.AnnotatedDir(),
		d.PrintedDir(),
		d.TranscriptsDir(),
		d.DataDir(),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}

// Resolve turns a possibly relative configured path into an absolute path
// under the home directory.
func (d *Dir) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(d.path, path)
}
