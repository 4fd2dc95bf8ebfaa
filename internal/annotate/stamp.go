package annotate

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// stampDesc places the annotation top-right on the page in a light grey box,
// mirroring where warehouse staff expect the hand stamp.
const stampDesc = "fontname:Helvetica, points:12, scale:1 abs, pos:tr, off:-20 -20, rot:0, fillcol:#000000, bgcol:#E6E6E6"

// Stamper writes annotated copies of certificate PDFs.
type Stamper struct {
	outDir string
	logger *slog.Logger
}

// NewStamper returns a stamper writing annotated copies into outDir.
func NewStamper(outDir string, logger *slog.Logger) *Stamper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Stamper{outDir: outDir, logger: logger}
}

// Stamp applies the plan's printable text to page 1 of pdfPath and writes
// "<base>_<timestamp>_ANNOTATED.pdf" into the output directory, returning
// the new path. Only PDF documents can be stamped; scanned image
// certificates go through extraction fine but must be converted to PDF
// before annotation.
func (s *Stamper) Stamp(pdfPath string, plan *Plan) (string, error) {
	if !strings.EqualFold(filepath.Ext(pdfPath), ".pdf") {
		return "", fmt.Errorf("annotate %s: only PDF documents can be stamped", filepath.Base(pdfPath))
	}

	text := plan.PrintableText()
	if strings.TrimSpace(text) == "" {
		text = NotFoundText
	}

	if err := os.MkdirAll(s.outDir, 0o755); err != nil {
		return "", fmt.Errorf("create annotated dir: %w", err)
	}

	wm, err := api.TextWatermark(text, stampDesc, true, false, types.POINTS)
	if err != nil {
		return "", fmt.Errorf("build stamp: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	timestamp := time.Now().Format("20060102_150405")
	outPath := filepath.Join(s.outDir, fmt.Sprintf("%s_%s_ANNOTATED.pdf", base, timestamp))

	if err := api.AddWatermarksFile(pdfPath, outPath, []string{"1"}, wm, nil); err != nil {
		return "", fmt.Errorf("stamp %s: %w", filepath.Base(pdfPath), err)
	}

	s.logger.Info("annotated certificate written", "file", filepath.Base(outPath))
	return outPath, nil
}
