// Package pipeline orchestrates the certificate-printing batch: inbox scan,
// OCR, lot extraction, reference lookup, annotation stamping, printing, and
// archiving. Documents are processed sequentially; one document's failure is
// recorded and the batch moves on.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/certprint/certprint/internal/annotate"
	"github.com/certprint/certprint/internal/config"
	"github.com/certprint/certprint/internal/home"
	"github.com/certprint/certprint/internal/inbox"
	"github.com/certprint/certprint/internal/lot"
	"github.com/certprint/certprint/internal/ocr"
	"github.com/certprint/certprint/internal/printing"
	"github.com/certprint/certprint/internal/refdata"
)

// Paths are the resolved working directories for one pipeline instance.
type Paths struct {
	Inbox       string
	Source      string
	Annotated   string
	Printed     string
	Transcripts string
	TrackerDB   string
	Workbook    string
}

// ResolvePaths applies config overrides on top of the home layout.
func ResolvePaths(cfg *config.Config, h *home.Dir) Paths {
	pick := func(override, fallback string) string {
		if override != "" {
			return h.Resolve(override)
		}
		return fallback
	}
	return Paths{
		Inbox:       pick(cfg.Paths.Inbox, h.InboxDir()),
		Source:      pick(cfg.Paths.Source, h.SourceDir()),
		Annotated:   pick(cfg.Paths.Annotated, h.AnnotatedDir()),
		Printed:     pick(cfg.Paths.Printed, h.PrintedDir()),
		Transcripts: pick(cfg.Paths.Transcripts, h.TranscriptsDir()),
		TrackerDB:   pick(cfg.Paths.TrackerDB, h.TrackerDBPath()),
		Workbook:    pick(cfg.Paths.Workbook, h.WorkbookPath()),
	}
}

// Pipeline processes inbox documents end to end.
type Pipeline struct {
	mode      string
	paths     Paths
	extractor lot.Extractor
	processor *ocr.Processor
	lookup    refdata.LookupFunc
	stamper   *annotate.Stamper
	printer   *printing.Printer
	printOn   bool
	tracker   *inbox.Tracker
	cleanup   time.Duration
	logger    *slog.Logger
}

// New wires a pipeline from configuration. Close must be called when done.
func New(cfg *config.Config, h *home.Dir, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}
	paths := ResolvePaths(cfg, h)

	filter := lot.NewFalsePositiveFilter(cfg.Extraction.FalsePositiveYears)
	extractor, err := lot.ForMode(cfg.Extraction.Mode, filter, logger)
	if err != nil {
		return nil, err
	}

	engine := ocr.NewEngine(cfg.Extraction.Languages, logger)
	processor := ocr.NewProcessor(engine, paths.Transcripts, cfg.Extraction.DPI, logger)

	workbook := refdata.Open(paths.Workbook, cfg.Excel.Sheets, refdata.Columns{
		CertLot:     cfg.Excel.Columns.CertLot,
		InternalLot: cfg.Excel.Columns.InternalLot,
		Supplier:    cfg.Excel.Columns.Supplier,
	}, logger)

	tracker, err := inbox.OpenTracker(paths.TrackerDB)
	if err != nil {
		return nil, err
	}

	printer := printing.New(
		cfg.Printing.PrinterName,
		cfg.Printing.RetryAttempts,
		time.Duration(cfg.Printing.RetryDelaySeconds)*time.Second,
		logger,
	)

	return &Pipeline{
		mode:      cfg.Extraction.Mode,
		paths:     paths,
		extractor: extractor,
		processor: processor,
		lookup:    workbook.LookupFunc(),
		stamper:   annotate.NewStamper(paths.Annotated, logger),
		printer:   printer,
		printOn:   cfg.Printing.Enabled,
		tracker:   tracker,
		cleanup:   time.Duration(cfg.Extraction.CleanupMaxAgeHours) * time.Hour,
		logger:    logger,
	}, nil
}

// Close releases pipeline resources.
func (p *Pipeline) Close() error {
	return p.tracker.Close()
}

// Run executes one batch pass over the inbox.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	report := &Report{RunID: uuid.New().String(), StartedAt: time.Now()}
	defer func() { report.FinishedAt = time.Now() }()

	p.processor.CleanupStale(p.cleanup)

	files, err := inbox.Scan(p.paths.Inbox)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		p.logger.Info("inbox is empty", "dir", p.paths.Inbox)
		return report, nil
	}
	p.logger.Info("starting batch", "run_id", report.RunID, "documents", len(files))

	for _, file := range files {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}
		report.add(p.ProcessDocument(ctx, file))
	}

	p.logger.Info("batch complete",
		"run_id", report.RunID, "total", report.Total, "printed", report.Printed,
		"annotated", report.Annotated, "failed", report.Failed, "skipped", report.Skipped)
	return report, nil
}

// ProcessDocument runs one document through the full flow. Failures are
// captured in the returned report, never propagated as errors: the batch
// loop must not abort.
func (p *Pipeline) ProcessDocument(ctx context.Context, path string) DocumentReport {
	name := filepath.Base(path)
	doc := DocumentReport{File: name}

	hash, err := inbox.FileHash(path)
	if err != nil {
		return fail(doc, fmt.Errorf("hash document: %w", err))
	}
	if seen, err := p.tracker.Seen(hash); err != nil {
		return fail(doc, err)
	} else if seen {
		p.logger.Info("already processed, skipping", "file", name)
		doc.Status = StatusSkipped
		return doc
	}

	res, err := p.extract(ctx, path)
	if err != nil {
		if errors.Is(err, lot.ErrNoLotFound) {
			p.logger.Warn("no lot number found", "file", name)
		}
		return fail(doc, err)
	}
	doc.CertNumber = res.CertificationNumber
	doc.Product = res.ProductName
	doc.LotNumbers = res.LotNumbers
	doc.Structure = res.StructureTag

	plan := annotate.BuildPlan(res, p.lookup)
	doc.LotsFound = plan.FoundCount
	doc.LotsTotal = plan.TotalCount
	doc.AllFound = plan.AllFound

	annotated, err := p.stamper.Stamp(path, plan)
	if err != nil {
		return fail(doc, err)
	}
	doc.AnnotatedPath = annotated
	doc.Status = StatusAnnotated

	if p.printOn && p.printer.Available() {
		if err := p.printer.Print(ctx, annotated); err != nil {
			// Annotated copy survives; the document is not a failure.
			p.logger.Warn("printing failed", "file", name, "error", err)
		} else {
			doc.Status = StatusPrinted
		}
	}

	if err := p.archive(path, annotated, doc.Status == StatusPrinted); err != nil {
		p.logger.Warn("archiving failed", "file", name, "error", err)
	}

	if err := p.tracker.MarkProcessed(hash, path); err != nil {
		p.logger.Warn("tracker update failed", "file", name, "error", err)
	}

	return doc
}

// extract obtains the extraction input per the configured mode and runs the
// extractor over it.
func (p *Pipeline) extract(ctx context.Context, path string) (*lot.Result, error) {
	switch p.mode {
	case lot.ModeFilename:
		return p.extractor.Extract(path, filepath.Base(path))

	case lot.ModeOCR:
		t, err := p.processor.Process(ctx, path)
		if err != nil {
			return nil, err
		}
		return p.extractor.Extract(path, t.Text())

	case lot.ModeTranscript:
		// Reuse a persisted transcript when present; OCR otherwise.
		tPath := ocr.TranscriptPath(p.paths.Transcripts, path)
		t, err := ocr.ReadTranscript(tPath)
		if err != nil {
			t, err = p.processor.Process(ctx, path)
			if err != nil {
				return nil, err
			}
		}
		return p.extractor.Extract(path, t.Text())

	default:
		return nil, fmt.Errorf("unknown extraction mode %q", p.mode)
	}
}

// archive moves the source into the archive directory and, for printed
// documents, copies the annotated PDF into the printed directory.
func (p *Pipeline) archive(srcPath, annotatedPath string, printed bool) error {
	timestamp := time.Now().Format("20060102_150405")

	if err := os.MkdirAll(p.paths.Source, 0o755); err != nil {
		return err
	}
	if err := os.Rename(srcPath, filepath.Join(p.paths.Source, archiveName(srcPath, timestamp))); err != nil {
		return fmt.Errorf("archive source: %w", err)
	}

	if !printed {
		return nil
	}
	if err := os.MkdirAll(p.paths.Printed, 0o755); err != nil {
		return err
	}
	base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	dst := filepath.Join(p.paths.Printed, fmt.Sprintf("%s_%s_printed.pdf", base, timestamp))
	if err := copyFile(annotatedPath, dst); err != nil {
		return fmt.Errorf("copy printed: %w", err)
	}
	return nil
}

// archiveName appends a timestamp so re-deliveries of the same filename do
// not collide in the archive.
func archiveName(srcPath, timestamp string) string {
	name := filepath.Base(srcPath)
	ext := filepath.Ext(name)
	return fmt.Sprintf("%s_%s%s", strings.TrimSuffix(name, ext), timestamp, ext)
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

func fail(doc DocumentReport, err error) DocumentReport {
	doc.Status = StatusFailed
	doc.Error = err.Error()
	return doc
}
