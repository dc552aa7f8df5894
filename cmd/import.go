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
	"github.com/canonical/scim-bulk/internal/mapper"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Create the users listed in a CSV file",
	Long: `Create the users listed in a CSV file through the SCIM Bulk endpoint.

Each row is mapped to a SCIM User, extended with the configured attribute
rules, and submitted in batches of import.batch_size operations.

Example:
  scim-bulk import --config conf/application.yaml --csv users.csv --batch-size 50`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runImport(cmd); err != nil {
			fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	importCmd.Flags().String("csv", "", "CSV file to read, overrides import.csv_file")
	importCmd.Flags().Int("batch-size", 0, "Operations per bulk request, overrides import.batch_size")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = importUsers(ctx, cfg)
	return err
}

func importUsers(ctx context.Context, cfg *config.Config) (*bulk.ImportSummary, error) {
	r, err := newRuntime(cfg)
	if err != nil {
		return nil, err
	}
	defer r.close()

	r.logger.Security().SystemStartup()
	defer r.logger.Security().SystemShutdown()

	rules, errs := config.ParseRules(cfg.Import.AttributeRules)
	for _, err := range errs {
		r.logger.Warnf("Ignoring attribute rule: %v", err)
	}

	if err := r.openJournal(ctx); err != nil {
		return nil, err
	}

	client, err := r.scimClient(ctx)
	if err != nil {
		return nil, err
	}

	importer := bulk.NewImporter(
		cfg.Import.BatchSize,
		r.csvSource(),
		mapper.NewMapper(rules, r.logger),
		client,
		r.journal,
		r.tracer,
		r.monitor,
		r.logger,
	)

	summary, err := importer.Run(ctx)
	if err != nil {
		return nil, err
	}

	r.logger.Infof(
		"Run %s: %d rows, %d prepared, %d skipped, %d batches, %d succeeded, %d failed",
		summary.RunID, summary.Rows, summary.Prepared, summary.Skipped, summary.Batches, summary.Succeeded, summary.Failed,
	)

	return summary, nil
}
