package types

import "time"

// HTTPConfig holds shared settings for outbound HTTP requests.
type HTTPConfig struct {
	// Timeout is the per-request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with every request
	// (e.g. "knowledge-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for landing-page and attachment fetches.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// RepositoryBase is the base URL of the academic repository that
	// rewritten attachment links are resolved against.
	RepositoryBase string `json:"repository_base" yaml:"repository_base"`

	// MaxRetries bounds retry attempts on transient failures (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// RateLimit caps outbound requests per second (default 2).
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit"`
}

// StoreConfig holds settings for the knowledge store.
type StoreConfig struct {
	// DataDir is the base directory for store state (contains index/).
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// ServerConfig holds settings for the HTTP API server.
type ServerConfig struct {
	// Addr is the listen address (e.g. ":8080").
	Addr string `json:"addr" yaml:"addr"`
}

// Config groups all component configurations.
type Config struct {
	Fetch  FetchConfig  `json:"fetch" yaml:"fetch"`
	Store  StoreConfig  `json:"store" yaml:"store"`
	Server ServerConfig `json:"server" yaml:"server"`
}
