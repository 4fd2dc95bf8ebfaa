package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/certprint/certprint/internal/api"
	"github.com/certprint/certprint/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "certprint",
	Short: "Certificate printing pipeline with OCR lot extraction",
	Long: `Certprint automates the certificate printing workflow: it picks up
incoming certificate documents from an inbox directory, extracts the lot
number (from the filename or via OCR), looks the lot up in the warehouse
reference workbook, stamps the supplier annotation onto the document, and
prints and archives it.

The pipeline includes:
  - Tesseract OCR with Arabic/English language fallback
  - Lot number extraction with multi-lot classification
  - Excel-backed reference data lookup
  - PDF annotation stamping and CUPS printing`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.certprint/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "certprint home directory (default: ~/.certprint)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the process logger honoring --verbose.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}
