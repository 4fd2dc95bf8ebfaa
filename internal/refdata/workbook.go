// Package refdata answers lot-number lookups against the warehouse reference
// workbook. One sheet per calendar year; sheets are loaded lazily and cached
// for the lifetime of the Workbook. The cache is safe for single-threaded
// reuse only, which matches the sequential batch pipeline.
package refdata

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Columns names the workbook columns holding the lookup key and the values
// returned for a hit.
type Columns struct {
	CertLot     string // certificate lot number (lookup key)
	InternalLot string // internal warehouse lot
	Supplier    string // supplier name
}

// DefaultColumns matches the warehouse workbook as exported from the ERP.
func DefaultColumns() Columns {
	return Columns{CertLot: "NO", InternalLot: "Lot Num.", Supplier: "Supplier"}
}

// Row is one reference record for a lot.
type Row struct {
	Supplier    string
	InternalLot string
	Sheet       string // sheet the lot was found in
}

// LookupFunc is the lookup contract the annotation builder consumes.
// A miss is (zero Row, false), never an error.
type LookupFunc func(lotNumber string) (Row, bool)

// Workbook is an Excel-backed reference dataset.
type Workbook struct {
	path   string
	sheets []string // search order, typically newest year first
	cols   Columns
	logger *slog.Logger

	// cache maps sheet name -> normalized cert lot -> row. A sheet that
	// failed to load is cached as nil so it is not retried per lookup.
	cache map[string]map[string]Row
}

// Open prepares a workbook for lookups. The file is not read until the
// first lookup touches a sheet.
func Open(path string, sheets []string, cols Columns, logger *slog.Logger) *Workbook {
	if logger == nil {
		logger = slog.Default()
	}
	if cols.CertLot == "" {
		cols = DefaultColumns()
	}
	return &Workbook{
		path:   path,
		sheets: sheets,
		cols:   cols,
		logger: logger,
		cache:  make(map[string]map[string]Row),
	}
}

// Lookup finds the reference row for a lot number, searching sheets in
// order. The key is trimmed and stripped of the trailing ".0" float artifact
// that spreadsheet exports leave on numeric cells.
func (w *Workbook) Lookup(lotNumber string) (Row, bool) {
	key := NormalizeLot(lotNumber)
	if key == "" {
		return Row{}, false
	}

	for _, sheet := range w.sheets {
		rows, err := w.loadSheet(sheet)
		if err != nil {
			w.logger.Warn("skipping reference sheet", "sheet", sheet, "error", err)
			continue
		}
		if row, ok := rows[key]; ok {
			w.logger.Info("lot found in reference data",
				"lot", key, "sheet", sheet, "supplier", row.Supplier, "internal_lot", row.InternalLot)
			return row, true
		}
	}

	w.logger.Warn("lot not found in reference data", "lot", key)
	return Row{}, false
}

// LookupFunc adapts the workbook to the annotation builder's contract.
func (w *Workbook) LookupFunc() LookupFunc {
	return func(lotNumber string) (Row, bool) {
		return w.Lookup(lotNumber)
	}
}

// loadSheet reads and indexes a sheet on first use.
func (w *Workbook) loadSheet(sheet string) (map[string]Row, error) {
	if rows, ok := w.cache[sheet]; ok {
		if rows == nil {
			return nil, fmt.Errorf("sheet %q previously failed to load", sheet)
		}
		return rows, nil
	}

	index, err := w.readSheet(sheet)
	if err != nil {
		w.cache[sheet] = nil
		return nil, err
	}
	w.cache[sheet] = index
	w.logger.Info("reference sheet loaded", "sheet", sheet, "rows", len(index))
	return index, nil
}

func (w *Workbook) readSheet(sheet string) (map[string]Row, error) {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheet)
	}

	certIdx, internalIdx, supplierIdx := -1, -1, -1
	for i, header := range rows[0] {
		switch strings.TrimSpace(header) {
		case w.cols.CertLot:
			certIdx = i
		case w.cols.InternalLot:
			internalIdx = i
		case w.cols.Supplier:
			supplierIdx = i
		}
	}
	if certIdx < 0 || internalIdx < 0 || supplierIdx < 0 {
		return nil, fmt.Errorf("sheet %q is missing required columns %q/%q/%q",
			sheet, w.cols.CertLot, w.cols.InternalLot, w.cols.Supplier)
	}

	index := make(map[string]Row, len(rows)-1)
	for _, r := range rows[1:] {
		key := NormalizeLot(cell(r, certIdx))
		if key == "" {
			continue
		}
		// First occurrence wins, matching spreadsheet reading order.
		if _, dup := index[key]; dup {
			continue
		}
		index[key] = Row{
			Supplier:    strings.TrimSpace(cell(r, supplierIdx)),
			InternalLot: NormalizeLot(cell(r, internalIdx)),
			Sheet:       sheet,
		}
	}
	return index, nil
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

// NormalizeLot trims a lot value and removes the trailing ".0" that numeric
// spreadsheet cells pick up when rendered as strings.
func NormalizeLot(v string) string {
	return strings.TrimSuffix(strings.TrimSpace(v), ".0")
}
