// Package ocr renders certificate pages to images and recognizes their text
// with Tesseract, producing the transcript the lot extractor consumes.
package ocr

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguages is the recognition preference order for mixed
// Arabic/English certificates.
var DefaultLanguages = []string{"ara+eng", "eng"}

// Engine wraps a Tesseract client factory. A fresh client is created per
// image; language sets are tried in order and the longest recognized text
// wins, since the certificates mix scripts and no single language model
// reads everything.
type Engine struct {
	languages     []string
	clientFactory func() *gosseract.Client
	logger        *slog.Logger
}

// NewEngine constructs a Tesseract-backed OCR engine. languages entries use
// Tesseract syntax ("eng", "ara+eng"); nil uses DefaultLanguages.
func NewEngine(languages []string, logger *slog.Logger) *Engine {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		languages:     languages,
		clientFactory: gosseract.NewClient,
		logger:        logger,
	}
}

// RecognizeFile runs OCR on one image file and returns the best text across
// the configured language sets.
func (e *Engine) RecognizeFile(imagePath string) (string, error) {
	best := ""
	var lastErr error

	for _, langs := range e.languages {
		text, err := e.recognizeOnce(imagePath, langs)
		if err != nil {
			e.logger.Warn("ocr attempt failed", "languages", langs, "error", err)
			lastErr = err
			continue
		}
		if len(text) > len(best) {
			best = text
		}
	}

	if best == "" && lastErr != nil {
		return "", fmt.Errorf("ocr %s: %w", imagePath, lastErr)
	}
	return best, nil
}

func (e *Engine) recognizeOnce(imagePath, langs string) (string, error) {
	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if err := c.SetLanguage(strings.Split(langs, "+")...); err != nil {
		return "", fmt.Errorf("set languages: %w", err)
	}
	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}
