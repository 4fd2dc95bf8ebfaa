package ocr

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PageBreakMarker separates page texts in a concatenated transcript.
const PageBreakMarker = "---PAGE BREAK---"

// TranscriptSuffix is the filename suffix for persisted transcripts.
const TranscriptSuffix = "_ocr.json"

// PageRecord is one recognized page of a source document.
type PageRecord struct {
	PDFFile     string `json:"pdf_file"`
	PageNumber  int    `json:"page_number"`
	ImageFile   string `json:"image_file,omitempty"`
	Text        string `json:"ocr_text"`
	ProcessedAt string `json:"processed_at"`
}

// Transcript is the recognized text of one source document.
type Transcript struct {
	SourceFile string
	Pages      []PageRecord
}

// Text concatenates the page texts with page-break markers, matching what
// the free-text extractor expects.
func (t *Transcript) Text() string {
	parts := make([]string, 0, len(t.Pages))
	for _, p := range t.Pages {
		parts = append(parts, p.Text)
	}
	return strings.Join(parts, "\n"+PageBreakMarker+"\n")
}

// TranscriptPath returns where the transcript for sourceFile is persisted
// under dir.
func TranscriptPath(dir, sourceFile string) string {
	base := strings.TrimSuffix(filepath.Base(sourceFile), filepath.Ext(sourceFile))
	return filepath.Join(dir, "json", base+TranscriptSuffix)
}

// WriteTranscript persists the transcript's page records as JSON and a plain
// text debug copy next to it.
func WriteTranscript(dir string, t *Transcript) (string, error) {
	jsonPath := TranscriptPath(dir, t.SourceFile)
	if err := os.MkdirAll(filepath.Dir(jsonPath), 0o755); err != nil {
		return "", fmt.Errorf("create transcript dir: %w", err)
	}

	data, err := json.MarshalIndent(t.Pages, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal transcript: %w", err)
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}

	// Debug text copy; failures here are not worth aborting for.
	debugDir := filepath.Join(dir, "debug_texts")
	if err := os.MkdirAll(debugDir, 0o755); err == nil {
		debugPath := filepath.Join(debugDir, filepath.Base(t.SourceFile)+".txt")
		_ = os.WriteFile(debugPath, []byte(t.Text()), 0o644)
	}

	return jsonPath, nil
}

// ReadTranscript loads a previously persisted transcript JSON.
func ReadTranscript(path string) (*Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	var pages []PageRecord
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("parse transcript: %w", err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("transcript %s has no pages", filepath.Base(path))
	}

	return &Transcript{SourceFile: pages[0].PDFFile, Pages: pages}, nil
}
