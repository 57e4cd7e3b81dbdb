// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/locforge/internal/convert"
	"github.com/pdiddy/locforge/pkg/types"
)

var idsCmd = &cobra.Command{
	Use:   "ids [file]",
	Short: "Convert id=value line text into a string table",
	Long: `Ids reads id=value lines from a file (or stdin when no file is given),
splits each line on its first '=', and writes the resulting string table.
Blank lines, '#' comments, and example-marker lines are ignored; malformed
lines are skipped and counted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIds,
}

func runIds(cmd *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	applyBatchFlags(cmd, &cfg)

	return runConvert(cmd, convert.Request{
		Mode:   types.ModeLine,
		Text:   text,
		Config: cfg,
	})
}

func readInput(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading input file: %w", err)
	}
	return string(data), nil
}

func init() {
	addConvertFlags(idsCmd, "tsv")

	rootCmd.AddCommand(idsCmd)
}
