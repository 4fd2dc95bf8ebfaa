package lot

import (
	"fmt"
	"regexp"
)

// DefaultFalsePositiveYears are 4-digit values never accepted as lot numbers
// by the bare-number fallback. Certificates in circulation carry issue and
// expiry years that OCR happily reads as lots.
var DefaultFalsePositiveYears = []string{"2023", "2024", "2025", "2026"}

// FalsePositiveFilter rejects numeric candidates that are likely calendar
// years, dates, page numbers, or certificate serials rather than lot numbers.
// It is applied only to bare-number fallback matches; candidates found next
// to an explicit "Lot" label are trusted.
type FalsePositiveFilter struct {
	years map[string]struct{}
}

// NewFalsePositiveFilter builds a filter rejecting the given year values.
// A nil or empty slice uses DefaultFalsePositiveYears.
func NewFalsePositiveFilter(years []string) *FalsePositiveFilter {
	if len(years) == 0 {
		years = DefaultFalsePositiveYears
	}
	set := make(map[string]struct{}, len(years))
	for _, y := range years {
		set[y] = struct{}{}
	}
	return &FalsePositiveFilter{years: set}
}

// IsFalsePositive reports whether candidate should be discarded given the
// surrounding text it was found in.
func (f *FalsePositiveFilter) IsFalsePositive(candidate, context string) bool {
	if _, ok := f.years[candidate]; ok {
		return true
	}

	quoted := regexp.QuoteMeta(candidate)
	excludes := []string{
		fmt.Sprintf(`(?i)Date\s*[:：]?\s*%s`, quoted),
		fmt.Sprintf(`(?i)Year\s*[:：]?\s*%s`, quoted),
		fmt.Sprintf(`(?i)Page\s*%s`, quoted),
		fmt.Sprintf(`(?i)Certificate\s*#?%s`, quoted),
	}
	for _, pattern := range excludes {
		if regexp.MustCompile(pattern).MatchString(context) {
			return true
		}
	}
	return false
}
