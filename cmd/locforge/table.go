// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/locforge/internal/convert"
	"github.com/pdiddy/locforge/pkg/types"
)

var tableCmd = &cobra.Command{
	Use:   "table <file>",
	Short: "Convert a 3-column string table into id=value lines",
	Long: `Table reads a TSV or CSV file whose rows carry an ID, the source text,
and the target text, and writes the target strings as id=value lines.
The delimiter follows the file extension: comma for .csv, tab otherwise.

Oversized sources are cut to the configured row cap, keeping the most
recent rows; the cut is reported as a warning.`,
	Args: cobra.ExactArgs(1),
	RunE: runTable,
}

func runTable(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	applyBatchFlags(cmd, &cfg)
	if cmd.Flags().Changed("max-rows") {
		cfg.Source.MaxRows, _ = cmd.Flags().GetInt("max-rows")
	}

	return runConvert(cmd, convert.Request{
		Mode:   types.ModeTable,
		Path:   args[0],
		Config: cfg,
	})
}

func init() {
	addConvertFlags(tableCmd, "lines")
	tableCmd.Flags().Int("max-rows", 0, "row cap before the source is truncated (default from config)")

	rootCmd.AddCommand(tableCmd)
}
