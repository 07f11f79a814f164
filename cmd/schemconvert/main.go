// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the schemconvert CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/schemconvert/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the schemconvert CLI.
var rootCmd = &cobra.Command{
	Use:   "schemconvert",
	Short: "Bulk-convert schematic files between formats",
	Long: `schemconvert converts every .schem file in a folder of its data directory
from one schematic format to another, writing the results to a subfolder.

Formats are named by their canonical name or an alias; run "schemconvert
formats" for the list. Failures are reported per file and never stop the
rest of the batch.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./schemconvert.yaml or ~/.config/schemconvert/schemconvert.yaml)")
	pf.String("data-dir", filepath.Join(xdg.DataHome, "schemconvert"), "data root that input folders are resolved under")
	pf.Int("workers", types.DefaultWorkers, "files converted concurrently per job")
	pf.String("log-level", types.DefaultLogLevel, "log level: debug, info, warn or error")
	pf.Bool("no-color", false, "disable colored output")
	pf.Bool("metrics", false, "record conversion metrics and log them on exit")

	for key, flag := range map[string]string{
		"data_dir":  "data-dir",
		"workers":   "workers",
		"log_level": "log-level",
		"no_color":  "no-color",
		"metrics":   "metrics",
	} {
		_ = viper.BindPFlag(key, pf.Lookup(flag))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("schemconvert")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "schemconvert"))
		}
	}

	viper.SetEnvPrefix("SCHEMCONVERT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig reads the effective settings after initConfig has run.
func loadConfig() types.ConverterConfig {
	return types.ConverterConfig{
		DataDir:  viper.GetString("data_dir"),
		Workers:  viper.GetInt("workers"),
		LogLevel: viper.GetString("log_level"),
		Color:    !viper.GetBool("no_color"),
		Metrics:  viper.GetBool("metrics"),
	}.WithDefaults()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
