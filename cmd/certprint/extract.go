package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/certprint/certprint/internal/api"
	"github.com/certprint/certprint/internal/config"
	"github.com/certprint/certprint/internal/home"
	"github.com/certprint/certprint/internal/lot"
	"github.com/certprint/certprint/internal/ocr"
	"github.com/certprint/certprint/internal/pipeline"
)

var extractMode string

var extractCmd = &cobra.Command{
	Use:   "extract <file-or-name>",
	Short: "Extract lot numbers from one document (debugging aid)",
	Long: `Extract and classify lot numbers from a single input without
touching the reference workbook, the printer, or the inbox tracker.

In filename mode the argument is parsed as a name only; in ocr mode it must
be an existing document which is recognized first; in transcript mode a
previously written transcript is reused when present.

Examples:
  certprint extract --mode filename "Lot Number 139385 Basil.pdf"
  certprint extract --mode ocr inbox/certificate.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger()
		input := args[0]

		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		cm, err := config.NewManager(resolveConfigFile(h))
		if err != nil {
			return err
		}
		cfg := cm.Get()
		if extractMode != "" {
			cfg.Extraction.Mode = extractMode
		}

		filter := lot.NewFalsePositiveFilter(cfg.Extraction.FalsePositiveYears)
		extractor, err := lot.ForMode(cfg.Extraction.Mode, filter, logger)
		if err != nil {
			return err
		}

		text := input
		if cfg.Extraction.Mode != lot.ModeFilename {
			if _, err := os.Stat(input); err != nil {
				return fmt.Errorf("document not found: %s", input)
			}
			paths := pipeline.ResolvePaths(cfg, h)
			engine := ocr.NewEngine(cfg.Extraction.Languages, logger)
			processor := ocr.NewProcessor(engine, paths.Transcripts, cfg.Extraction.DPI, logger)

			t, err := ocr.ReadTranscript(ocr.TranscriptPath(paths.Transcripts, input))
			if err != nil {
				t, err = processor.Process(ctx, input)
				if err != nil {
					return err
				}
			}
			text = t.Text()
		}

		res, err := extractor.Extract(input, text)
		if err != nil {
			return err
		}
		return api.Output(res)
	},
}

func init() {
	extractCmd.Flags().StringVar(
		&extractMode, "mode", "", "override extraction mode: filename, ocr, or transcript",
	)
	rootCmd.AddCommand(extractCmd)
}
