// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scim-bulk",
	Short: "Bulk provision and deprovision users through a SCIM 2.0 Bulk endpoint",
	Long: `scim-bulk reads users from a CSV file and creates or deletes them on a
SCIM 2.0 service provider in batches, reconciling every per-operation result.

The configuration document defaults to conf/application.yaml and can be
changed with --config or the SCIM_BULK_CONFIG environment variable.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to the YAML configuration document")
}

// Execute runs the command selected on the command line.
func Execute() error {
	return rootCmd.Execute()
}
