package main

import (
	"github.com/spf13/cobra"

	"github.com/certprint/certprint/internal/api"
	"github.com/certprint/certprint/internal/config"
	"github.com/certprint/certprint/internal/home"
	"github.com/certprint/certprint/internal/pipeline"
	"github.com/certprint/certprint/internal/refdata"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <lot-number>",
	Short: "Look up a lot number in the reference workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		cm, err := config.NewManager(resolveConfigFile(h))
		if err != nil {
			return err
		}
		cfg := cm.Get()
		paths := pipeline.ResolvePaths(cfg, h)

		workbook := refdata.Open(paths.Workbook, cfg.Excel.Sheets, refdata.Columns{
			CertLot:     cfg.Excel.Columns.CertLot,
			InternalLot: cfg.Excel.Columns.InternalLot,
			Supplier:    cfg.Excel.Columns.Supplier,
		}, logger)

		type result struct {
			Lot         string `json:"lot" yaml:"lot"`
			Found       bool   `json:"found" yaml:"found"`
			Supplier    string `json:"supplier,omitempty" yaml:"supplier,omitempty"`
			InternalLot string `json:"internal_lot,omitempty" yaml:"internal_lot,omitempty"`
			Sheet       string `json:"sheet,omitempty" yaml:"sheet,omitempty"`
		}

		out := result{Lot: refdata.NormalizeLot(args[0])}
		if row, ok := workbook.Lookup(args[0]); ok {
			out.Found = true
			out.Supplier = row.Supplier
			out.InternalLot = row.InternalLot
			out.Sheet = row.Sheet
		}
		return api.Output(out)
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}
