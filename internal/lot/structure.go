// Package lot classifies raw certificate lot identifiers and extracts them
// from filenames and OCR transcripts.
package lot

import "fmt"

// Kind identifies how a lot identifier is structured.
type Kind string

const (
	// KindSingle is one lot number.
	KindSingle Kind = "single"
	// KindExplicitMulti is two or more independently meaningful lot numbers
	// written together (e.g. "139912/139913").
	KindExplicitMulti Kind = "explicit_multi"
	// KindImplicitMulti is one lot number plus a count of additional
	// unlisted units sharing it (e.g. "139865/2").
	KindImplicitMulti Kind = "implicit_multi"
	// KindMultiple marks a document carrying several unrelated single lots.
	KindMultiple Kind = "multiple"
	// KindUnknown is the aggregate tag for a document with no lots.
	KindUnknown Kind = "unknown"
)

// Structure is the classified form of one raw lot identifier.
// Exactly one variant is populated: Values for explicit multi, Base (and
// RepeatCount) for single and implicit multi.
type Structure struct {
	Kind        Kind
	Values      []string // explicit multi: lot numbers in written order
	Base        string   // single / implicit multi
	RepeatCount int      // implicit multi: total units, >= 1
}

// Lots returns the lot numbers to look up, in order. For implicit multi only
// the base is returned; the extra units are not individually identified.
func (s Structure) Lots() []string {
	if s.Kind == KindExplicitMulti {
		return s.Values
	}
	return []string{s.Base}
}

// AnnotationHint returns the "+N" suffix for implicit multi lots, or "" when
// there is nothing to hint.
func (s Structure) AnnotationHint() string {
	if s.Kind == KindImplicitMulti && s.RepeatCount > 1 {
		return fmt.Sprintf("+%d", s.RepeatCount-1)
	}
	return ""
}

// Token is one lot number together with its classification. A Structure
// flattens into one token per lot number.
type Token struct {
	Number      string
	Kind        Kind
	RepeatCount int // implicit multi only
}

// AnnotationHint returns the "+N" suffix for an implicit multi token.
func (t Token) AnnotationHint() string {
	if t.Kind == KindImplicitMulti && t.RepeatCount > 1 {
		return fmt.Sprintf("+%d", t.RepeatCount-1)
	}
	return ""
}

// Tokens flattens a structure into per-lot tokens.
func (s Structure) Tokens() []Token {
	switch s.Kind {
	case KindExplicitMulti:
		tokens := make([]Token, 0, len(s.Values))
		for _, v := range s.Values {
			tokens = append(tokens, Token{Number: v, Kind: KindExplicitMulti})
		}
		return tokens
	case KindImplicitMulti:
		return []Token{{Number: s.Base, Kind: KindImplicitMulti, RepeatCount: s.RepeatCount}}
	default:
		return []Token{{Number: s.Base, Kind: KindSingle}}
	}
}
