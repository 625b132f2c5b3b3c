// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/knowledge-engine/internal/acquire"
	"github.com/pdiddy/knowledge-engine/internal/ingest"
	"github.com/pdiddy/knowledge-engine/internal/knowledge"
	"github.com/pdiddy/knowledge-engine/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the knowledge service HTTP API",
	Long: `Serve ensures the store schema and full-text index exist, then listens
for API requests: ingestion, browse, search, and recommendations.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	logger := newLogger()

	// Schema and index creation happen here, before traffic is served.
	store, err := knowledge.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	fetcher := acquire.NewFetcher(cfg.Fetch)
	pipeline := ingest.New(fetcher, store, cfg.Fetch, logger.With("component", "ingest"))
	srv := server.New(store, pipeline, logger.With("component", "http"))

	logger.Info("listening", "addr", cfg.Server.Addr)
	return srv.Run(cfg.Server.Addr)
}
