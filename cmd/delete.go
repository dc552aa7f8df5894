// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/canonical/scim-bulk/internal/bulk"
	"github.com/canonical/scim-bulk/internal/config"
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the users listed in a CSV file",
	Long: `Delete the users listed in a CSV file through the SCIM Bulk endpoint.

Every row is resolved to a SCIM id by userName or externalId first. Unless
dry-run is disabled, the resolved users are only reported and nothing is
deleted; delete.dry_run defaults to true.

Example:
  scim-bulk delete --csv leavers.csv --dry-run=false`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDelete(cmd); err != nil {
			fmt.Fprintf(os.Stderr, "Delete failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	deleteCmd.Flags().String("csv", "", "CSV file to read, overrides import.csv_file")
	deleteCmd.Flags().Int("batch-size", 0, "Operations per bulk request, overrides import.batch_size")
	deleteCmd.Flags().Bool("dry-run", true, "Only report what would be deleted, overrides delete.dry_run")

	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = deleteUsers(ctx, cfg)
	return err
}

func deleteUsers(ctx context.Context, cfg *config.Config) (*bulk.DeleteSummary, error) {
	r, err := newRuntime(cfg)
	if err != nil {
		return nil, err
	}
	defer r.close()

	r.logger.Security().SystemStartup()
	defer r.logger.Security().SystemShutdown()

	if err := r.openJournal(ctx); err != nil {
		return nil, err
	}

	client, err := r.scimClient(ctx)
	if err != nil {
		return nil, err
	}

	deleter := bulk.NewDeleter(
		cfg.Import.BatchSize,
		cfg.DeleteDryRun(),
		r.csvSource(),
		client,
		r.journal,
		r.tracer,
		r.monitor,
		r.logger,
	)

	summary, err := deleter.Run(ctx)
	if err != nil {
		return nil, err
	}

	r.logger.Infof(
		"Run %s: %d rows, %d resolved, %d skipped, %d batches, %d succeeded, %d failed (dry-run %t)",
		summary.RunID, summary.Rows, summary.Resolved, summary.Skipped, summary.Batches, summary.Succeeded, summary.Failed, summary.DryRun,
	)

	return summary, nil
}
