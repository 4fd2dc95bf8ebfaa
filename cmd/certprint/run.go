package main

import (
	"github.com/spf13/cobra"

	"github.com/certprint/certprint/internal/api"
	"github.com/certprint/certprint/internal/config"
	"github.com/certprint/certprint/internal/home"
	"github.com/certprint/certprint/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process all certificates in the inbox once",
	Long: `Run one batch pass over the inbox: each certificate is recognized,
its lot numbers are extracted and looked up in the reference workbook, the
annotation is stamped onto the PDF, and the result is printed and archived.

A document whose lot cannot be extracted is recorded as failed in the batch
report; the batch continues with the next document.

Examples:
  certprint run                  # Process the inbox
  certprint run -o json          # Emit the batch report as JSON`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger()

		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		cm, err := config.NewManager(resolveConfigFile(h))
		if err != nil {
			return err
		}

		p, err := pipeline.New(cm.Get(), h, logger)
		if err != nil {
			return err
		}
		defer p.Close()

		report, err := p.Run(ctx)
		if err != nil {
			return err
		}
		return api.Output(report)
	},
}

// resolveConfigFile prefers --config, falling back to the home dir config
// when one exists so viper does not pick up an unrelated ./config.yaml.
func resolveConfigFile(h *home.Dir) string {
	if cfgFile != "" {
		return cfgFile
	}
	if h.ConfigExists() {
		return h.ConfigPath()
	}
	return ""
}

func init() {
	rootCmd.AddCommand(runCmd)
}
