package lot

import "errors"

// ErrNoLotFound is returned when extraction yields zero lot candidates after
// filtering. Callers must treat the document as failed rather than proceeding
// with an empty lookup.
var ErrNoLotFound = errors.New("no lot number found")

// Unknown is the sentinel for absent best-effort fields (certification
// number, product name).
const Unknown = "UNKNOWN"

// SourceKind identifies where extraction input came from.
type SourceKind string

const (
	SourceFilename   SourceKind = "filename"
	SourceOCR        SourceKind = "ocr"
	SourceTranscript SourceKind = "json-transcript"
)

// Result is the outcome of extracting lot data from one document.
// LotNumbers is flattened, de-duplicated, and insertion-ordered; Tokens
// carries the per-lot classification in the same order.
type Result struct {
	SourceID            string     `json:"source_id" yaml:"source_id"`
	SourceKind          SourceKind `json:"source_kind" yaml:"source_kind"`
	CertificationNumber string     `json:"certification_number" yaml:"certification_number"`
	ProductName         string     `json:"product_name" yaml:"product_name"`
	LotNumbers          []string   `json:"lot_numbers" yaml:"lot_numbers"`
	Tokens              []Token    `json:"-" yaml:"-"`
	StructureTag        Kind       `json:"lot_structure" yaml:"lot_structure"`
}

// aggregateKind derives the document-level structure tag from the individual
// token classifications. Implicit multi dominates, then explicit multi when
// at least two explicit-multi lots are present.
func aggregateKind(tokens []Token) Kind {
	if len(tokens) == 0 {
		return KindUnknown
	}
	explicit := 0
	for _, t := range tokens {
		switch t.Kind {
		case KindImplicitMulti:
			return KindImplicitMulti
		case KindExplicitMulti:
			explicit++
		}
	}
	if explicit >= 2 {
		return KindExplicitMulti
	}
	if len(tokens) == 1 {
		return KindSingle
	}
	return KindMultiple
}
