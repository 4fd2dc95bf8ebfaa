// Package annotate turns extraction results into the stamp printed onto a
// certificate: reference-data lookups per lot, the rendered annotation text,
// and the PDF stamping itself.
package annotate

import (
	"strings"

	"github.com/certprint/certprint/internal/lot"
	"github.com/certprint/certprint/internal/refdata"
)

// NotFoundText is stamped when none of the document's lots exist in the
// reference data ("not registered in the system").
const NotFoundText = "غير مسجل في النظام"

// Pair is one found lot: the supplier and internal lot printed on its
// annotation line, plus the implicit-multi hint (e.g. "+2") as data for the
// renderer.
type Pair struct {
	LotNumber   string `json:"lot_number" yaml:"lot_number"`
	Supplier    string `json:"supplier" yaml:"supplier"`
	InternalLot string `json:"internal_lot" yaml:"internal_lot"`
	Hint        string `json:"hint,omitempty" yaml:"hint,omitempty"`
}

// Plan is the annotation to apply to one certificate.
type Plan struct {
	CertNumber string `json:"cert_number" yaml:"cert_number"`
	Product    string `json:"product" yaml:"product"`
	SourceID   string `json:"source_id" yaml:"source_id"`
	Pairs      []Pair `json:"pairs" yaml:"pairs"`
	FoundCount int    `json:"found_count" yaml:"found_count"`
	TotalCount int    `json:"total_count" yaml:"total_count"`
	AllFound   bool   `json:"all_found" yaml:"all_found"`
}

// BuildPlan looks up every lot of an extraction result in order and collects
// the found pairs. A lookup miss is a normal outcome: the lot is left out of
// the pairs and only counted in the found/total ratio.
func BuildPlan(res *lot.Result, lookup refdata.LookupFunc) *Plan {
	plan := &Plan{
		CertNumber: res.CertificationNumber,
		Product:    res.ProductName,
		SourceID:   res.SourceID,
		TotalCount: len(res.Tokens),
	}

	for _, token := range res.Tokens {
		row, ok := lookup(token.Number)
		if !ok {
			continue
		}
		plan.FoundCount++
		plan.Pairs = append(plan.Pairs, Pair{
			LotNumber:   token.Number,
			Supplier:    row.Supplier,
			InternalLot: row.InternalLot,
			Hint:        token.AnnotationHint(),
		})
	}

	plan.AllFound = plan.TotalCount > 0 && plan.FoundCount == plan.TotalCount
	return plan
}

// Text renders the annotation lines without hints, one "<supplier>
// <internalLot>" line per found pair in original lot order, or NotFoundText
// when nothing was found.
func (p *Plan) Text() string {
	return p.render(false)
}

// PrintableText renders the final stamp text with implicit-multi hints
// appended to their lines.
func (p *Plan) PrintableText() string {
	return p.render(true)
}

func (p *Plan) render(withHints bool) string {
	if len(p.Pairs) == 0 {
		return NotFoundText
	}
	lines := make([]string, 0, len(p.Pairs))
	for _, pair := range p.Pairs {
		line := pair.Supplier + "  " + pair.InternalLot
		if withHints && pair.Hint != "" {
			line += " " + pair.Hint
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
