package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"songbook/internal/scanner"
	"songbook/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the library and rescan on changes until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger := ctx.ensureLogger()
			scan := scanner.New(cfg, store, logger)
			fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (press Ctrl-C to stop)\n", cfg.Paths.LibraryDir)
			return watch.New(cfg, scan.Scan, logger).Run(runCtx)
		},
	}
}
