package lot

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
)

// Extractor discovers lot numbers in one source string. Implementations
// share the downstream classification (Parse) and differ only in where the
// candidates come from.
type Extractor interface {
	// Extract returns the lot data found in input, or ErrNoLotFound when no
	// candidate survives filtering.
	Extract(sourceID, input string) (*Result, error)
}

// Extraction modes selectable via config.
const (
	ModeFilename   = "filename"
	ModeOCR        = "ocr"
	ModeTranscript = "transcript"
)

// ForMode returns the extractor implementation for a configured mode.
func ForMode(mode string, filter *FalsePositiveFilter, logger *slog.Logger) (Extractor, error) {
	switch mode {
	case ModeFilename:
		return NewFilenameExtractor(logger), nil
	case ModeOCR:
		return NewTextExtractor(filter, SourceOCR, logger), nil
	case ModeTranscript:
		return NewTextExtractor(filter, SourceTranscript, logger), nil
	default:
		return nil, fmt.Errorf("unknown extraction mode %q", mode)
	}
}

// Filename pattern families, in priority order. The first family that
// matches wins and its token goes through Parse.
var (
	fnLabelPattern    = regexp.MustCompile(`(?i)lot\s*(?:number|no\.?)?\s*[:：]?\s*(\d{5,7}(?:[/-]\d{1,7})?)`)
	fnHyphenRun       = regexp.MustCompile(`\d{2,6}(?:-\d{2,6})+`)
	fnSlashPair       = regexp.MustCompile(`(\d{5,7})[/_](\d{1,7})\b`)
	fnAlphanumCode    = regexp.MustCompile(`\b([A-Za-z]{2,3}-?\d{3,4})\b`)
	fnBareRun         = regexp.MustCompile(`\b(\d{5,7})\b`)
	fnWordSeparators  = regexp.MustCompile(`[ _\-.]+`)
	fnAlphabeticToken = regexp.MustCompile(`^[A-Za-z]{3,20}$`)
)

// filenameStopwords are label words that never name a product.
var filenameStopwords = map[string]struct{}{
	"lot": {}, "number": {}, "no": {}, "num": {},
	"cert": {}, "certificate": {}, "scan": {}, "copy": {},
}

// FilenameExtractor pulls a lot number out of a bare filename. Filenames
// rarely carry dates or years next to the lot, so no false-positive
// filtering is applied.
type FilenameExtractor struct {
	logger *slog.Logger
}

// NewFilenameExtractor returns a filename-mode extractor.
func NewFilenameExtractor(logger *slog.Logger) *FilenameExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &FilenameExtractor{logger: logger}
}

// Extract parses the filename in input. sourceID is typically the full path
// and input its base name; passing the same string for both is fine.
func (e *FilenameExtractor) Extract(sourceID, input string) (*Result, error) {
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))

	raw := ""
	switch {
	case fnLabelPattern.MatchString(name):
		raw = fnLabelPattern.FindStringSubmatch(name)[1]
	case fnHyphenRun.MatchString(name):
		raw = fnHyphenRun.FindString(name)
	case fnSlashPair.MatchString(name):
		m := fnSlashPair.FindStringSubmatch(name)
		raw = m[1] + "/" + m[2]
	case fnAlphanumCode.MatchString(name):
		raw = fnAlphanumCode.FindStringSubmatch(name)[1]
	case fnBareRun.MatchString(name):
		raw = fnBareRun.FindStringSubmatch(name)[1]
	default:
		e.logger.Warn("no lot number in filename", "file", input)
		return nil, fmt.Errorf("%s: %w", sourceID, ErrNoLotFound)
	}

	structure := Parse(raw)
	tokens := structure.Tokens()

	res := &Result{
		SourceID:            sourceID,
		SourceKind:          SourceFilename,
		CertificationNumber: Unknown,
		ProductName:         productFromFilename(name, raw),
		LotNumbers:          numbersOf(tokens),
		Tokens:              tokens,
		StructureTag:        aggregateKind(tokens),
	}
	e.logger.Info("extracted from filename",
		"file", input, "lots", res.LotNumbers, "structure", res.StructureTag)
	return res, nil
}

// productFromFilename picks the first plain word in the filename that is
// neither the lot token nor a label word.
func productFromFilename(name, lotToken string) string {
	cleaned := strings.ReplaceAll(name, lotToken, " ")
	for _, word := range fnWordSeparators.Split(cleaned, -1) {
		if !fnAlphabeticToken.MatchString(word) {
			continue
		}
		if _, skip := filenameStopwords[strings.ToLower(word)]; skip {
			continue
		}
		return word
	}
	return Unknown
}

// textPattern is one labeled pattern tried against free text.
type textPattern struct {
	re       *regexp.Regexp
	pair     bool // two capture groups forming "left/right"
	fallback bool // bare-number pattern, subject to false-positive checks
}

// textPatterns covers the label variants seen on certificates, including the
// Arabic batch label, plus multi-lot forms and a bare-digit fallback. All
// patterns are tried; matches are de-duplicated by lot number.
var textPatterns = []textPattern{
	{re: regexp.MustCompile(`(?i)Lot\s*Number\s*[:：]?\s*(\d{5,7})\b`)},
	{re: regexp.MustCompile(`(?i)Lot\s*[:：]\s*(\d{5,7})\b`)},
	{re: regexp.MustCompile(`(?i)Lot\s*No\.?\s*[:：]?\s*(\d{5,7})\b`)},
	{re: regexp.MustCompile(`(?i)Lot\s*#\s*(\d{5,7})\b`)},
	{re: regexp.MustCompile(`(?i)Lot\s*(?:Number|No\.?)?\s*[:：]?\s*(\d{5,7})\s*[/\-]\s*(\d{5,7})`), pair: true},
	{re: regexp.MustCompile(`(?i)Lot\s*(?:Number|No\.?)?\s*[:：]?\s*(\d{5,7})\s*/\s*(\d{1,2})\b`), pair: true},
	{re: regexp.MustCompile(`رقم\s*(?:اللوت|الباتش)\s*[:：]?\s*(\d{5,7})`)},
	{re: regexp.MustCompile(`(?i)Lot\s*(?:Number|No\.?)?\s*[:：]?\s*([A-Z]{2,3}\d{3,4})\b`)},
	{re: regexp.MustCompile(`\b(\d{5,7})\b`), fallback: true},
}

var certPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Certificate\s*(?:Number|No\.?)?\s*[:：]\s*([A-Za-z]+[-–]\d+)`),
	regexp.MustCompile(`(?i)Cert\.?\s*#?\s*[:：]\s*([A-Za-z0-9-]+)`),
	regexp.MustCompile(`(Dokki[-–]\d+)`),
	regexp.MustCompile(`(ISM[-–]\d+)`),
}

var productPattern = regexp.MustCompile(`(?i)Sample\s*[:：]\s*([A-Za-z]{3,20})`)

// knownProducts is the fallback list for transcripts where the "Sample:"
// line did not survive OCR.
var knownProducts = []string{"Basil", "Fennel", "Peppermint", "Marjoram"}

// TextExtractor discovers lot numbers in a free-text transcript. Every
// pattern is tried and all distinct matches are collected; bare-number
// fallback matches additionally pass through the false-positive filter.
type TextExtractor struct {
	filter *FalsePositiveFilter
	kind   SourceKind
	logger *slog.Logger
}

// NewTextExtractor returns a free-text extractor tagging its results with
// the given source kind (SourceOCR or SourceTranscript).
func NewTextExtractor(filter *FalsePositiveFilter, kind SourceKind, logger *slog.Logger) *TextExtractor {
	if filter == nil {
		filter = NewFalsePositiveFilter(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TextExtractor{filter: filter, kind: kind, logger: logger}
}

// Extract scans input for lot candidates and classifies each through Parse.
func (e *TextExtractor) Extract(sourceID, input string) (*Result, error) {
	var tokens []Token
	seen := make(map[string]struct{})

	add := func(t Token) {
		if _, dup := seen[t.Number]; dup {
			return
		}
		seen[t.Number] = struct{}{}
		tokens = append(tokens, t)
	}

	for _, p := range e.textPatternsMatches(input) {
		for _, t := range Parse(p).Tokens() {
			add(t)
		}
	}

	if len(tokens) == 0 {
		e.logger.Warn("no lot number in text", "source", sourceID)
		return nil, fmt.Errorf("%s: %w", sourceID, ErrNoLotFound)
	}

	res := &Result{
		SourceID:            sourceID,
		SourceKind:          e.kind,
		CertificationNumber: ExtractCertificationNumber(input),
		ProductName:         ExtractProductName(input),
		LotNumbers:          numbersOf(tokens),
		Tokens:              tokens,
		StructureTag:        aggregateKind(tokens),
	}
	e.logger.Info("extracted from text",
		"source", sourceID, "lots", res.LotNumbers, "structure", res.StructureTag,
		"cert", res.CertificationNumber, "product", res.ProductName)
	return res, nil
}

// textPatternsMatches returns the raw candidate strings in discovery order,
// with fallback matches already filtered.
func (e *TextExtractor) textPatternsMatches(text string) []string {
	var raws []string
	for _, p := range textPatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			raw := m[1]
			if p.pair {
				raw = m[1] + "/" + m[2]
			} else if p.fallback && e.filter.IsFalsePositive(raw, text) {
				e.logger.Debug("discarded false positive", "candidate", raw)
				continue
			}
			raws = append(raws, raw)
		}
	}
	return raws
}

// ExtractCertificationNumber finds the certificate serial in text, returning
// Unknown when absent. Best effort; never fatal.
func ExtractCertificationNumber(text string) string {
	for _, re := range certPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			cert := strings.TrimSpace(m[1])
			if len(cert) > 3 {
				return cert
			}
		}
	}
	return Unknown
}

// ExtractProductName finds the sampled product name in text, returning
// Unknown when absent. Best effort; never fatal.
func ExtractProductName(text string) string {
	if m := productPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	for _, product := range knownProducts {
		if strings.Contains(text, product) {
			return product
		}
	}
	return Unknown
}

func numbersOf(tokens []Token) []string {
	nums := make([]string, len(tokens))
	for i, t := range tokens {
		nums[i] = t.Number
	}
	return nums
}
