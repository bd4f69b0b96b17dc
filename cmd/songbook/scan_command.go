package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"songbook/internal/scanner"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the library and reconcile the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}

			result, err := scanner.New(cfg, store, ctx.ensureLogger()).Scan(cmd.Context())
			if errors.Is(err, scanner.ErrScanInProgress) {
				return errors.New("a scan is already running against this library")
			}
			if err != nil {
				return fmt.Errorf("scan library: %w", err)
			}

			if asJSON {
				return writeJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Added %d, moved %d, updated %d, deleted %d, enriched %d\n",
				result.Added, result.Moved, result.Updated, result.Deleted, result.Enriched)

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("catalog stats: %w", err)
			}
			fmt.Fprintf(out, "Catalog now holds %d songs\n", stats.Total)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the scan result as JSON")
	return cmd
}
