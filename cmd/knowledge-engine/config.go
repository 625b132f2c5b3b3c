// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/knowledge-engine/internal/log"
	"github.com/pdiddy/knowledge-engine/pkg/types"
)

// loadConfig assembles the service configuration from viper with
// working defaults for a local run.
func loadConfig() types.Config {
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("store.data_dir", "data")
	viper.SetDefault("fetch.repository_base", "https://dspace.kpfu.ru")
	viper.SetDefault("fetch.timeout", 30*time.Second)
	viper.SetDefault("fetch.user_agent", "knowledge-engine/"+version)
	viper.SetDefault("fetch.max_retries", 3)
	viper.SetDefault("fetch.rate_limit", 2.0)

	return types.Config{
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("fetch.timeout"),
				UserAgent: viper.GetString("fetch.user_agent"),
			},
			RepositoryBase: viper.GetString("fetch.repository_base"),
			MaxRetries:     viper.GetInt("fetch.max_retries"),
			RateLimit:      viper.GetFloat64("fetch.rate_limit"),
		},
		Store: types.StoreConfig{
			DataDir: viper.GetString("store.data_dir"),
		},
		Server: types.ServerConfig{
			Addr: viper.GetString("server.addr"),
		},
	}
}

// newLogger builds the process logger from viper settings.
func newLogger() *slog.Logger {
	cfg := log.Config{JSON: viper.GetBool("log.json")}
	if viper.GetBool("log.debug") {
		cfg.Level = slog.LevelDebug
	}
	return log.New(cfg)
}
