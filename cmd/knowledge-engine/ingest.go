// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/knowledge-engine/internal/acquire"
	"github.com/pdiddy/knowledge-engine/internal/ingest"
	"github.com/pdiddy/knowledge-engine/internal/knowledge"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <landing-page-url>",
	Short: "Ingest a single repository landing page",
	Long: `Ingest fetches one landing page, extracts its metadata and attachment,
persists the knowledge record, and prints the created record as YAML.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	logger := newLogger()

	store, err := knowledge.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	fetcher := acquire.NewFetcher(cfg.Fetch)
	pipeline := ingest.New(fetcher, store, cfg.Fetch, logger.With("component", "ingest"))

	created, err := pipeline.CreateFromURL(context.Background(), args[0])
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()
	return enc.Encode(created)
}
