package lot

import (
	"strconv"
	"strings"
)

// Parse classifies a raw lot identifier. It is total: an identifier that
// matches none of the multi-lot shapes comes back as a Single carrying the
// normalized input.
//
// Rules, first match wins:
//
//  1. Hyphen-separated where every part is numeric with at least 3 digits:
//     explicit multi ("139912-139913"). Structured single identifiers with
//     short parts (e.g. "163-31-03-39-2394") fail the gate and fall through.
//  2. Exactly one slash with numeric sides: a right side of 5+ digits is a
//     second lot number (explicit multi), a shorter right side is a repeat
//     count (implicit multi). The digit-length cutoff is a heuristic; a
//     4-digit right side is always read as a count even though it could be
//     a short second lot.
//  3. Everything else is a single lot, including alphanumeric codes like
//     "SFP228" and composites like "DH956-TX/2025".
func Parse(raw string) Structure {
	norm := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")

	if strings.Contains(norm, "-") {
		if parts, ok := explicitHyphenParts(norm); ok {
			return Structure{Kind: KindExplicitMulti, Values: parts}
		}
	}

	if strings.Count(norm, "/") == 1 {
		left, right, _ := strings.Cut(norm, "/")
		if isDigits(left) && isDigits(right) {
			if len(right) >= 5 {
				return Structure{Kind: KindExplicitMulti, Values: []string{left, right}}
			}
			if count, err := strconv.Atoi(right); err == nil && count >= 1 {
				return Structure{Kind: KindImplicitMulti, Base: left, RepeatCount: count}
			}
		}
	}

	return Structure{Kind: KindSingle, Base: norm, RepeatCount: 1}
}

// explicitHyphenParts splits on "-" and reports whether every non-empty part
// is purely numeric with length >= 3.
func explicitHyphenParts(s string) ([]string, bool) {
	var parts []string
	for _, p := range strings.Split(s, "-") {
		if p == "" {
			continue
		}
		if !isDigits(p) || len(p) < 3 {
			return nil, false
		}
		parts = append(parts, p)
	}
	return parts, len(parts) >= 2
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
