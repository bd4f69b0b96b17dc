package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDBCommand(ctx *commandContext) *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Database maintenance utilities",
	}

	dbCmd.AddCommand(newDBHealthCommand(ctx))
	dbCmd.AddCommand(newDBResetMetadataCommand(ctx))

	return dbCmd
}

func newDBHealthCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check catalog database integrity",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}

			health, err := store.CheckHealth(cmd.Context())
			if err != nil {
				return fmt.Errorf("check health: %w", err)
			}

			if asJSON {
				return writeJSON(cmd, health)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Database: %s\n", health.Path)
			fmt.Fprintf(out, "Schema version: %d\n", health.SchemaVersion)
			fmt.Fprintf(out, "Songs: %d\n", health.SongCount)
			if health.IntegrityOK {
				fmt.Fprintln(out, "Integrity: ok")
			} else {
				fmt.Fprintf(out, "Integrity: FAILED (%s)\n", health.IntegrityInfo)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit health report as JSON")
	return cmd
}

func newDBResetMetadataCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-metadata",
		Short: "Mark every song for re-enrichment on the next scan",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}

			count, err := store.ResetMetadataStatus(cmd.Context())
			if err != nil {
				return fmt.Errorf("reset metadata status: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %d songs pending\n", count)
			return nil
		},
	}
}
