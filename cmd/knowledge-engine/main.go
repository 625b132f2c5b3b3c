// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the knowledge-engine CLI.
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

// rootCmd is the base command for the knowledge-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "knowledge-engine",
	Short: "Knowledge graph service for academic repository pages",
	Long: `knowledge-engine ingests academic-repository landing pages, extracts
bibliographic metadata and the attached document, and persists the result as a
small knowledge graph of publications and authors. It serves paginated browse,
ranked full-text search, and co-authorship recommendations over HTTP.

Run "serve" to start the HTTP API, or "ingest" for a one-shot ingestion.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./knowledge-engine.yaml or ~/.config/knowledge-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("knowledge-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "knowledge-engine"))
		}
	}

	viper.SetEnvPrefix("KNOWLEDGE_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
