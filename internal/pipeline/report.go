package pipeline

import (
	"time"

	"github.com/certprint/certprint/internal/lot"
)

// Document statuses in a batch report.
const (
	StatusPrinted   = "printed"   // annotated and sent to the printer
	StatusAnnotated = "annotated" // annotated, printing skipped or failed
	StatusFailed    = "failed"    // extraction or annotation failed
	StatusSkipped   = "skipped"   // already processed (content hash match)
)

// DocumentReport records the outcome for one inbox document.
type DocumentReport struct {
	File          string   `json:"file" yaml:"file"`
	Status        string   `json:"status" yaml:"status"`
	CertNumber    string   `json:"cert_number,omitempty" yaml:"cert_number,omitempty"`
	Product       string   `json:"product,omitempty" yaml:"product,omitempty"`
	LotNumbers    []string `json:"lot_numbers,omitempty" yaml:"lot_numbers,omitempty"`
	Structure     lot.Kind `json:"lot_structure,omitempty" yaml:"lot_structure,omitempty"`
	LotsFound     int      `json:"lots_found" yaml:"lots_found"`
	LotsTotal     int      `json:"lots_total" yaml:"lots_total"`
	AllFound      bool     `json:"all_found" yaml:"all_found"`
	AnnotatedPath string   `json:"annotated_path,omitempty" yaml:"annotated_path,omitempty"`
	Error         string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report summarizes one batch run over the inbox.
type Report struct {
	RunID      string           `json:"run_id" yaml:"run_id"`
	StartedAt  time.Time        `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time        `json:"finished_at" yaml:"finished_at"`
	Total      int              `json:"total" yaml:"total"`
	Printed    int              `json:"printed" yaml:"printed"`
	Annotated  int              `json:"annotated" yaml:"annotated"`
	Failed     int              `json:"failed" yaml:"failed"`
	Skipped    int              `json:"skipped" yaml:"skipped"`
	Documents  []DocumentReport `json:"documents" yaml:"documents"`
}

// add tallies a document outcome into the summary counters.
func (r *Report) add(doc DocumentReport) {
	r.Documents = append(r.Documents, doc)
	r.Total++
	switch doc.Status {
	case StatusPrinted:
		r.Printed++
	case StatusAnnotated:
		r.Annotated++
	case StatusSkipped:
		r.Skipped++
	default:
		r.Failed++
	}
}
