package config

import (
	"time"
)

// Config represents the complete application configuration.
// Values come from defaults, an optional YAML config file, HANDLESCAN_*
// environment variables and command flags, in increasing precedence.
type Config struct {
	// Platforms restricts checks to these platform names. Empty means all.
	Platforms []string `mapstructure:"platforms"`
	// Proxies are cycled through per platform, one per request.
	Proxies []string `mapstructure:"proxies"`
	// ProxyFile lists additional proxies, one per line.
	ProxyFile   string `mapstructure:"proxy_file"`
	PrimeTokens bool   `mapstructure:"prime_tokens"`
	// Concurrency caps in-flight checks. Zero means unbounded.
	Concurrency int `mapstructure:"concurrency"`

	HTTP HTTPConfig `mapstructure:"http"`
	// Endpoints overrides platform URLs, keyed by platform then endpoint name.
	Endpoints map[string]map[string]string `mapstructure:"endpoints"`

	Logging LoggingConfig `mapstructure:"logging"`
	Server  ServerConfig  `mapstructure:"server"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// HTTPConfig controls outbound requests to platforms.
type HTTPConfig struct {
	Timeout          time.Duration            `mapstructure:"timeout"`
	UserAgent        string                   `mapstructure:"user_agent"`
	AcceptLanguage   string                   `mapstructure:"accept_language"`
	RandomUserAgent  bool                     `mapstructure:"random_user_agent"`
	PlatformTimeouts map[string]time.Duration `mapstructure:"platform_timeouts"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// MaxQueries bounds the number of queries accepted by one API request.
	MaxQueries int `mapstructure:"max_queries"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	// Level controls the minimum log level
	// Valid values: trace, debug, info, warn, error
	Level string `mapstructure:"level"`
}

// MetricsConfig contains Prometheus metrics configuration
type MetricsConfig struct {
	// Enabled controls whether /metrics is served
	Enabled bool `mapstructure:"enabled"`
}
