// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/canonical/scim-bulk/internal/config"
	"github.com/canonical/scim-bulk/internal/storage"
	"github.com/canonical/scim-bulk/internal/types"
)

var reportCmd = &cobra.Command{
	Use:   "report [run-id]",
	Short: "Show journaled runs and their per-operation outcomes",
	Long: `Show the runs recorded in the audit database.

Without arguments the most recent runs are listed. With a run id the run and
its operation outcomes are printed. Requires audit.dsn.

Example:
  scim-bulk report --flow delete
  scim-bulk report 2b1f7c9e-5d8a-4c1e-9f0b-3a6d2e8c4b71`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runReport(cmd, args); err != nil {
			fmt.Fprintf(os.Stderr, "Report failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	reportCmd.Flags().String("flow", "", "Only list runs of this flow (import or delete)")
	reportCmd.Flags().Int64("page", 1, "Page to show")
	reportCmd.Flags().Int64("size", 0, "Entries per page")

	rootCmd.AddCommand(reportCmd)
}

type runDocument struct {
	Run      *types.Run               `json:"run"`
	Outcomes []types.OperationOutcome `json:"outcomes"`
}

func runReport(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	flow, _ := cmd.Flags().GetString("flow")
	page, _ := cmd.Flags().GetInt64("page")
	size, _ := cmd.Flags().GetInt64("size")

	switch types.Flow(flow) {
	case "", types.FlowImport, types.FlowDelete:
	default:
		return fmt.Errorf("unknown flow %q", flow)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	r, err := newRuntime(cfg)
	if err != nil {
		return err
	}
	defer r.close()

	ctx := context.Background()

	s, err := r.openStorage(ctx)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		return writeRun(ctx, cmd.OutOrStdout(), s, args[0], page, size)
	}
	return writeRuns(ctx, cmd.OutOrStdout(), s, types.Flow(flow), page, size)
}

func writeRun(ctx context.Context, w io.Writer, s storage.StorageInterface, id string, page, size int64) error {
	run, err := s.GetRun(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get run %s: %w", id, err)
	}

	outcomes, err := s.ListOutcomes(ctx, id, page, size)
	if err != nil {
		return err
	}

	return writeJSON(w, runDocument{Run: run, Outcomes: outcomes})
}

func writeRuns(ctx context.Context, w io.Writer, s storage.StorageInterface, flow types.Flow, page, size int64) error {
	runs, err := s.ListRuns(ctx, flow, page, size)
	if err != nil {
		return err
	}

	return writeJSON(w, runs)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
