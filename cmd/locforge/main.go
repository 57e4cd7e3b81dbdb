// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the locforge CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/locforge/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the locforge CLI.
var rootCmd = &cobra.Command{
	Use:   "locforge",
	Short: "Convert localization string tables between line and table form",
	Long: `locforge converts localization string data between the two formats the
translation workflow uses: id=value line text and three-column tables
(ID, source text, target text) in TSV or CSV form.

Each direction is a subcommand: ids converts line text, table converts a
table file. Past runs are kept in a local ledger readable with history.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./locforge.yaml or ~/.config/locforge/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("locforge")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "locforge"))
		}
	}

	viper.SetEnvPrefix("LOCFORGE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig builds the run configuration from defaults overlaid with any
// values present in the config file or LOCFORGE_* environment.
func loadConfig() types.Config {
	cfg := types.DefaultConfig()

	if viper.IsSet("batch.size") {
		cfg.Batch.BatchSize = viper.GetInt("batch.size")
	}
	if viper.IsSet("batch.delay") {
		cfg.Batch.BatchDelay = viper.GetDuration("batch.delay")
	}
	if viper.IsSet("source.max_rows") {
		cfg.Source.MaxRows = viper.GetInt("source.max_rows")
	}
	if viper.IsSet("source.probe_rows") {
		cfg.Source.ProbeRows = viper.GetInt("source.probe_rows")
	}
	if viper.IsSet("source.window_rows") {
		cfg.Source.WindowRows = viper.GetInt("source.window_rows")
	}
	if viper.IsSet("retry.attempts") {
		cfg.Retry.Attempts = viper.GetInt("retry.attempts")
	}
	if viper.IsSet("retry.delay") {
		cfg.Retry.Delay = viper.GetDuration("retry.delay")
	}
	if viper.IsSet("history.dir") {
		cfg.HistoryDir = viper.GetString("history.dir")
	}

	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
