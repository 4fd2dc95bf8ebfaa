package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Processor turns a certificate document into a persisted transcript:
// PDF pages are rendered with pdftoppm and recognized one by one; image
// documents are recognized directly.
type Processor struct {
	engine *Engine
	outDir string // transcripts directory
	dpi    int
	logger *slog.Logger
}

// NewProcessor creates a processor writing transcripts and page images
// under outDir.
func NewProcessor(engine *Engine, outDir string, dpi int, logger *slog.Logger) *Processor {
	if dpi <= 0 {
		dpi = 300
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{engine: engine, outDir: outDir, dpi: dpi, logger: logger}
}

// Process recognizes all pages of the document at path, persists the
// transcript, and returns it. The context is checked between pages.
func (p *Processor) Process(ctx context.Context, path string) (*Transcript, error) {
	name := filepath.Base(path)
	t := &Transcript{SourceFile: name}

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		if err := p.processPDF(ctx, path, t); err != nil {
			return nil, err
		}
	} else {
		// Image documents (jpg/png/tiff/bmp) are a single page already.
		text, err := p.engine.RecognizeFile(path)
		if err != nil {
			return nil, err
		}
		t.Pages = append(t.Pages, PageRecord{
			PDFFile:     name,
			PageNumber:  1,
			Text:        text,
			ProcessedAt: time.Now().Format(time.RFC3339),
		})
	}

	if _, err := WriteTranscript(p.outDir, t); err != nil {
		return nil, err
	}
	p.logger.Info("transcript written", "file", name, "pages", len(t.Pages))
	return t, nil
}

func (p *Processor) processPDF(ctx context.Context, path string, t *Transcript) error {
	count, err := pageCount(path)
	if err != nil {
		return err
	}
	p.logger.Debug("rendering pdf pages", "file", filepath.Base(path), "pages", count)

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	imgDir := filepath.Join(p.outDir, "images")
	if err := os.MkdirAll(imgDir, 0o755); err != nil {
		return fmt.Errorf("create image dir: %w", err)
	}

	for page := 1; page <= count; page++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		imgName := fmt.Sprintf("%s_page%d.png", base, page)
		imgPath := filepath.Join(imgDir, imgName)
		if err := renderPage(path, imgPath, page, p.dpi); err != nil {
			return fmt.Errorf("render page %d: %w", page, err)
		}

		p.logger.Debug("recognizing page", "file", filepath.Base(path), "page", page)
		text, err := p.engine.RecognizeFile(imgPath)
		if err != nil {
			return fmt.Errorf("recognize page %d: %w", page, err)
		}

		t.Pages = append(t.Pages, PageRecord{
			PDFFile:     filepath.Base(path),
			PageNumber:  page,
			ImageFile:   imgName,
			Text:        text,
			ProcessedAt: time.Now().Format(time.RFC3339),
		})
	}
	return nil
}

// CleanupStale removes transcript artifacts (page images, JSON, debug texts)
// older than maxAge. A zero maxAge disables cleanup.
func (p *Processor) CleanupStale(maxAge time.Duration) {
	if maxAge <= 0 {
		return
	}
	cutoff := time.Now().Add(-maxAge)

	for _, sub := range []string{"images", "json", "debug_texts"} {
		dir := filepath.Join(p.outDir, sub)
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			info, err := entry.Info()
			if err != nil || info.IsDir() {
				continue
			}
			if info.ModTime().Before(cutoff) {
				if err := os.Remove(filepath.Join(dir, entry.Name())); err == nil {
					p.logger.Debug("removed stale artifact", "file", entry.Name())
				}
			}
		}
	}
}
