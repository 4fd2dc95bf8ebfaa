package main

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/certprint/certprint/internal/config"
	"github.com/certprint/certprint/internal/home"
	"github.com/certprint/certprint/internal/inbox"
	"github.com/certprint/certprint/internal/pipeline"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the inbox and process certificates as they arrive",
	Long: `Run a batch pass immediately, then keep watching the inbox
directory and run another pass whenever new certificate files land. Bursts
of arrivals are debounced into a single pass.

Config changes are picked up without a restart: edits to the config file
rebuild the pipeline before the next pass. The inbox location itself is
fixed at startup.

Stop with Ctrl+C.`,
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

		var mu sync.Mutex
		p, err := pipeline.New(cm.Get(), h, logger)
		if err != nil {
			return err
		}
		defer func() {
			mu.Lock()
			defer mu.Unlock()
			p.Close()
		}()

		// Swap in a fresh pipeline when the config file changes. The reload
		// callback runs on viper's watcher goroutine, so the swap is locked
		// against in-flight passes.
		cm.OnChange(func(cfg *config.Config) {
			next, err := pipeline.New(cfg, h, logger)
			if err != nil {
				logger.Error("config reload failed, keeping previous pipeline", "error", err)
				return
			}
			mu.Lock()
			old := p
			p = next
			mu.Unlock()
			old.Close()
			logger.Info("configuration reloaded",
				"mode", cfg.Extraction.Mode, "printing", cfg.Printing.Enabled)
		})
		cm.WatchConfig()

		runPass := func() {
			mu.Lock()
			current := p
			report, err := current.Run(ctx)
			mu.Unlock()
			if err != nil {
				logger.Error("batch pass failed", "error", err)
				return
			}
			logger.Info("pass finished",
				"printed", report.Printed, "annotated", report.Annotated,
				"failed", report.Failed, "skipped", report.Skipped)
		}

		// Catch anything already waiting before events start flowing.
		runPass()

		paths := pipeline.ResolvePaths(cm.Get(), h)
		err = inbox.Watch(ctx, paths.Inbox, watchDebounce, logger, runPass)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	watchCmd.Flags().DurationVar(
		&watchDebounce, "debounce", 2*time.Second, "quiet period before processing new arrivals",
	)
	rootCmd.AddCommand(watchCmd)
}
