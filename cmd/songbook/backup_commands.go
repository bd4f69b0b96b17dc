package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"songbook/internal/catalog"
	"songbook/internal/config"
)

func newBackupCommand(ctx *commandContext) *cobra.Command {
	backupCmd := &cobra.Command{
		Use:   "backup",
		Short: "Database backup utilities",
	}

	backupCmd.AddCommand(newBackupCreateCommand(ctx))
	backupCmd.AddCommand(newBackupListCommand(ctx))
	backupCmd.AddCommand(newBackupRestoreCommand(ctx))

	return backupCmd
}

func newBackupCreateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Write a consistent snapshot of the catalog database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}

			path, err := store.Backup(cmd.Context(), cfg.Paths.BackupDir)
			if err != nil {
				return fmt.Errorf("create backup: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", path)
			return nil
		},
	}
}

func newBackupListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available backups, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			backups, err := catalog.ListBackups(cfg.Paths.BackupDir)
			if err != nil {
				return fmt.Errorf("list backups: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(backups) == 0 {
				fmt.Fprintln(out, "No backups found")
				return nil
			}
			for _, backup := range backups {
				fmt.Fprintln(out, backup)
			}
			return nil
		},
	}
}

func newBackupRestoreCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <file>",
		Short: "Replace the catalog database with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}

			source, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve backup path: %w", err)
			}

			if err := store.RestoreFrom(cmd.Context(), source); err != nil {
				if errors.Is(err, catalog.ErrInvalidBackup) {
					return fmt.Errorf("%s is not a SQLite database", source)
				}
				return fmt.Errorf("restore backup: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Catalog restored from %s\n", source)
			return nil
		},
	}
}
