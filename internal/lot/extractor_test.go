package lot

import (
	"errors"
	"reflect"
	"testing"
)

func TestFilenameExtractor(t *testing.T) {
	e := NewFilenameExtractor(nil)

	tests := []struct {
		name         string
		filename     string
		wantLots     []string
		wantTag      Kind
		wantProduct  string
		wantHints    []string
		wantNotFound bool
	}{
		{
			name:        "labeled lot with product",
			filename:    "Lot Number 139385 Basil.pdf",
			wantLots:    []string{"139385"},
			wantTag:     KindSingle,
			wantProduct: "Basil",
		},
		{
			name:        "underscore pair is an implicit multi",
			filename:    "139865_2_Basil.pdf",
			wantLots:    []string{"139865"},
			wantTag:     KindImplicitMulti,
			wantProduct: "Basil",
			wantHints:   []string{"+1"},
		},
		{
			name:        "hyphen joined pair",
			filename:    "139912-139913_Fennel.pdf",
			wantLots:    []string{"139912", "139913"},
			wantTag:     KindExplicitMulti,
			wantProduct: "Fennel",
		},
		{
			name:        "alphanumeric code",
			filename:    "SFP228 Peppermint.pdf",
			wantLots:    []string{"SFP228"},
			wantTag:     KindSingle,
			wantProduct: "Peppermint",
		},
		{
			name:        "bare digit run",
			filename:    "139385.pdf",
			wantLots:    []string{"139385"},
			wantTag:     KindSingle,
			wantProduct: Unknown,
		},
		{
			name:         "no lot at all",
			filename:     "scancopy.pdf",
			wantNotFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.Extract(tt.filename, tt.filename)

			if tt.wantNotFound {
				if !errors.Is(err, ErrNoLotFound) {
					t.Fatalf("expected ErrNoLotFound, got res=%+v err=%v", res, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(res.LotNumbers, tt.wantLots) {
				t.Errorf("lots = %v, want %v", res.LotNumbers, tt.wantLots)
			}
			if res.StructureTag != tt.wantTag {
				t.Errorf("structure = %s, want %s", res.StructureTag, tt.wantTag)
			}
			if res.ProductName != tt.wantProduct {
				t.Errorf("product = %q, want %q", res.ProductName, tt.wantProduct)
			}
			if res.SourceKind != SourceFilename {
				t.Errorf("source kind = %s, want %s", res.SourceKind, SourceFilename)
			}
			for i, hint := range tt.wantHints {
				if got := res.Tokens[i].AnnotationHint(); got != hint {
					t.Errorf("token %d hint = %q, want %q", i, got, hint)
				}
			}
		})
	}
}

func TestTextExtractor(t *testing.T) {
	e := NewTextExtractor(nil, SourceOCR, nil)

	t.Run("labeled single with metadata", func(t *testing.T) {
		text := "Certificate Number : Dokki-1234\n" +
			"Sample : Basil\n" +
			"Lot Number : 139928\n" +
			"Date : 01/05/2025\n"

		res, err := e.Extract("cert.pdf", text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(res.LotNumbers, []string{"139928"}) {
			t.Errorf("lots = %v", res.LotNumbers)
		}
		if res.StructureTag != KindSingle {
			t.Errorf("structure = %s", res.StructureTag)
		}
		if res.CertificationNumber != "Dokki-1234" {
			t.Errorf("cert = %q", res.CertificationNumber)
		}
		if res.ProductName != "Basil" {
			t.Errorf("product = %q", res.ProductName)
		}
	})

	t.Run("explicit multi lot", func(t *testing.T) {
		res, err := e.Extract("cert.pdf", "Lot 139912/139913")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(res.LotNumbers, []string{"139912", "139913"}) {
			t.Errorf("lots = %v", res.LotNumbers)
		}
		if res.StructureTag != KindExplicitMulti {
			t.Errorf("structure = %s", res.StructureTag)
		}
	})

	t.Run("implicit multi lot with hint", func(t *testing.T) {
		res, err := e.Extract("cert.pdf", "Lot 139865/2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(res.LotNumbers, []string{"139865"}) {
			t.Errorf("lots = %v", res.LotNumbers)
		}
		if res.StructureTag != KindImplicitMulti {
			t.Errorf("structure = %s", res.StructureTag)
		}
		if hint := res.Tokens[0].AnnotationHint(); hint != "+1" {
			t.Errorf("hint = %q, want +1", hint)
		}
	})

	t.Run("arabic batch label", func(t *testing.T) {
		res, err := e.Extract("cert.pdf", "رقم اللوت : 139950")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(res.LotNumbers, []string{"139950"}) {
			t.Errorf("lots = %v", res.LotNumbers)
		}
	})

	t.Run("fallback match passes the false positive filter", func(t *testing.T) {
		res, err := e.Extract("cert.pdf", "Ref 139928\nPage 139929")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// 139929 follows the Page keyword and is discarded.
		if !reflect.DeepEqual(res.LotNumbers, []string{"139928"}) {
			t.Errorf("lots = %v, want only 139928", res.LotNumbers)
		}
	})

	t.Run("duplicates collapse across patterns", func(t *testing.T) {
		res, err := e.Extract("cert.pdf", "Lot Number : 139928\nLot#139928\n139928")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(res.LotNumbers, []string{"139928"}) {
			t.Errorf("lots = %v, want single entry", res.LotNumbers)
		}
	})

	t.Run("no candidates is a failure, not an empty result", func(t *testing.T) {
		res, err := e.Extract("cert.pdf", "Quality Certificate\nYear : 2025")
		if !errors.Is(err, ErrNoLotFound) {
			t.Fatalf("expected ErrNoLotFound, got res=%+v err=%v", res, err)
		}
	})

	t.Run("transcript kind is tagged", func(t *testing.T) {
		te := NewTextExtractor(nil, SourceTranscript, nil)
		res, err := te.Extract("cert.json", "Lot Number : 139928")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.SourceKind != SourceTranscript {
			t.Errorf("source kind = %s", res.SourceKind)
		}
	})
}

func TestExtractCertificationNumber(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{"Certificate Number : Dokki-12345", "Dokki-12345"},
		{"some header\nISM-2210 inspection", "ISM-2210"},
		{"Cert. # : AB-99-X", "AB-99-X"},
		{"nothing here", Unknown},
	}
	for _, tt := range tests {
		if got := ExtractCertificationNumber(tt.text); got != tt.expected {
			t.Errorf("ExtractCertificationNumber(%q) = %q, want %q", tt.text, got, tt.expected)
		}
	}
}

func TestExtractProductName(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{"Sample : Basil", "Basil"},
		{"shipment of Peppermint leaves", "Peppermint"},
		{"unlabeled cargo", Unknown},
	}
	for _, tt := range tests {
		if got := ExtractProductName(tt.text); got != tt.expected {
			t.Errorf("ExtractProductName(%q) = %q, want %q", tt.text, got, tt.expected)
		}
	}
}

func TestAggregateKind(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []Token
		expected Kind
	}{
		{"no tokens", nil, KindUnknown},
		{"one single", []Token{{Kind: KindSingle}}, KindSingle},
		{"implicit dominates", []Token{{Kind: KindExplicitMulti}, {Kind: KindImplicitMulti}}, KindImplicitMulti},
		{"two explicit", []Token{{Kind: KindExplicitMulti}, {Kind: KindExplicitMulti}}, KindExplicitMulti},
		{"mixed singles", []Token{{Kind: KindSingle}, {Kind: KindSingle}}, KindMultiple},
		{"single plus one explicit", []Token{{Kind: KindSingle}, {Kind: KindExplicitMulti}}, KindMultiple},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := aggregateKind(tt.tokens); got != tt.expected {
				t.Errorf("aggregateKind = %s, want %s", got, tt.expected)
			}
		})
	}
}
