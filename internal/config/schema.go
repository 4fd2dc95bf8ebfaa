package config

// Config holds certprint configuration.
// Stored at: {home}/config.yaml
type Config struct {
	Paths      PathsCfg      `mapstructure:"paths" yaml:"paths"`
	Excel      ExcelCfg      `mapstructure:"excel" yaml:"excel"`
	Extraction ExtractionCfg `mapstructure:"extraction" yaml:"extraction"`
	Printing   PrintingCfg   `mapstructure:"printing" yaml:"printing"`
}

// PathsCfg overrides locations under the home directory. Relative paths are
// resolved against the home dir; empty values use the home layout defaults.
type PathsCfg struct {
	Inbox       string `mapstructure:"inbox" yaml:"inbox"`
	Source      string `mapstructure:"source" yaml:"source"`
	Annotated   string `mapstructure:"annotated" yaml:"annotated"`
	Printed     string `mapstructure:"printed" yaml:"printed"`
	Transcripts string `mapstructure:"transcripts" yaml:"transcripts"`
	TrackerDB   string `mapstructure:"tracker_db" yaml:"tracker_db"`
	Workbook    string `mapstructure:"workbook" yaml:"workbook"`
}

// ExcelCfg describes the reference workbook.
type ExcelCfg struct {
	Sheets  []string `mapstructure:"sheets" yaml:"sheets"`   // search order, newest year first
	Columns ColsCfg  `mapstructure:"columns" yaml:"columns"` // header names
}

// ColsCfg names the workbook columns.
type ColsCfg struct {
	CertLot     string `mapstructure:"cert_lot" yaml:"cert_lot"`
	InternalLot string `mapstructure:"internal_lot" yaml:"internal_lot"`
	Supplier    string `mapstructure:"supplier" yaml:"supplier"`
}

// ExtractionCfg configures lot extraction.
type ExtractionCfg struct {
	// Mode selects the extractor strategy: "filename", "ocr", or
	// "transcript".
	Mode string `mapstructure:"mode" yaml:"mode"`
	// Languages is the Tesseract language preference order.
	Languages []string `mapstructure:"languages" yaml:"languages"`
	// FalsePositiveYears are 4-digit values rejected by the bare-number
	// fallback pattern.
	FalsePositiveYears []string `mapstructure:"false_positive_years" yaml:"false_positive_years"`
	// DPI is the page render resolution for OCR.
	DPI int `mapstructure:"dpi" yaml:"dpi"`
	// CleanupMaxAgeHours prunes transcript/temp files older than this at the
	// start of a batch run. Zero disables cleanup.
	CleanupMaxAgeHours int `mapstructure:"cleanup_max_age_hours" yaml:"cleanup_max_age_hours"`
}

// PrintingCfg configures the print step.
type PrintingCfg struct {
	Enabled           bool   `mapstructure:"enabled" yaml:"enabled"`
	PrinterName       string `mapstructure:"printer_name" yaml:"printer_name"`
	RetryAttempts     uint   `mapstructure:"retry_attempts" yaml:"retry_attempts"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" yaml:"retry_delay_seconds"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Excel: ExcelCfg{
			Sheets: []string{"2026", "2025", "2024", "2023"},
			Columns: ColsCfg{
				CertLot:     "NO",
				InternalLot: "Lot Num.",
				Supplier:    "Supplier",
			},
		},
		Extraction: ExtractionCfg{
			Mode:               "ocr",
			Languages:          []string{"ara+eng", "eng"},
			FalsePositiveYears: []string{"2023", "2024", "2025", "2026"},
			DPI:                300,
			CleanupMaxAgeHours: 24,
		},
		Printing: PrintingCfg{
			Enabled:           true,
			RetryAttempts:     3,
			RetryDelaySeconds: 10,
		},
	}
}
