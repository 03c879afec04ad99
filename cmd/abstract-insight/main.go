// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the abstract-insight CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the abstract-insight CLI.
var rootCmd = &cobra.Command{
	Use:   "abstract-insight",
	Short: "Mine conference abstract submissions for word statistics",
	Long: `abstract-insight turns a directory of submission PDFs and an acceptance
table into an HTML word-statistics report. Each pipeline stage is a
subcommand: convert, extract, join, tokenize, and report. Use run to
execute all five in order, query to search the corpus, and export to
dump it.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./abstract-insight.yaml or ~/.config/abstract-insight/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("abstract-insight")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "abstract-insight"))
		}
	}

	viper.SetEnvPrefix("ABSTRACT_INSIGHT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// stringSetting resolves a string flag, letting a config file or environment
// value override the flag default when the flag was not set explicitly.
func stringSetting(cmd *cobra.Command, name string) string {
	if !cmd.Flags().Changed(name) && viper.IsSet(name) {
		return viper.GetString(name)
	}
	v, _ := cmd.Flags().GetString(name)
	return v
}

// intSetting is stringSetting for integer flags.
func intSetting(cmd *cobra.Command, name string) int {
	if !cmd.Flags().Changed(name) && viper.IsSet(name) {
		return viper.GetInt(name)
	}
	v, _ := cmd.Flags().GetInt(name)
	return v
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
