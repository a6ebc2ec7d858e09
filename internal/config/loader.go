// Package config loads handlescan configuration through viper and decodes it
// into typed structs with mapstructure.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	gfconfig "github.com/fulmenhq/gofulmen/config"
	"github.com/fulmenhq/gofulmen/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/namelens/handlescan/internal/core"
	"github.com/namelens/handlescan/internal/core/checker"
)

// AppName names the config directory, env prefix and default user agent.
const AppName = "handlescan"

var (
	// appConfig holds the current application configuration
	appConfig *Config
	configMu  sync.RWMutex
)

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper, version string) {
	v.SetDefault("platforms", []string{})
	v.SetDefault("proxies", []string{})
	v.SetDefault("proxy_file", "")
	v.SetDefault("prime_tokens", false)
	v.SetDefault("concurrency", 0)

	// HTTP defaults
	v.SetDefault("http.timeout", checker.DefaultTimeout.String())
	v.SetDefault("http.user_agent", strings.TrimSpace(AppName+" "+version))
	v.SetDefault("http.accept_language", checker.DefaultAcceptLanguage)
	v.SetDefault("http.random_user_agent", false)
	v.SetDefault("http.platform_timeouts", map[string]string{})

	v.SetDefault("endpoints", map[string]map[string]string{})

	// Logging defaults
	v.SetDefault("logging.level", "info")

	// Server defaults
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.max_queries", 50)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
}

// Load decodes the settings held by v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	setConfig(cfg)
	return cfg, nil
}

// Validate checks values that would otherwise fail later, mid-run.
func (c *Config) Validate() error {
	if _, err := core.ParsePlatforms(c.Platforms); err != nil {
		return fmt.Errorf("platforms: %w", err)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative")
	}
	if c.HTTP.Timeout < 0 {
		return fmt.Errorf("http.timeout must not be negative")
	}
	for name := range c.HTTP.PlatformTimeouts {
		if _, err := core.ParsePlatform(name); err != nil {
			return fmt.Errorf("http.platform_timeouts: %w", err)
		}
	}
	for name := range c.Endpoints {
		if _, err := core.ParsePlatform(name); err != nil {
			return fmt.Errorf("endpoints: %w", err)
		}
	}
	return nil
}

// SelectedPlatforms resolves the configured platform names.
func (c *Config) SelectedPlatforms() ([]core.Platform, error) {
	return core.ParsePlatforms(c.Platforms)
}

// ProxyList merges inline proxies with those read from ProxyFile.
func (c *Config) ProxyList() ([]string, error) {
	proxies := append([]string(nil), c.Proxies...)
	if strings.TrimSpace(c.ProxyFile) == "" {
		return proxies, nil
	}
	lines, err := ReadLines(c.ProxyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read proxy file: %w", err)
	}
	return append(proxies, lines...), nil
}

// Session builds the shared checker session described by the config.
func (c *Config) Session(logger *logging.Logger) (*checker.Session, error) {
	rawProxies, err := c.ProxyList()
	if err != nil {
		return nil, err
	}
	proxies, err := checker.ParseProxies(rawProxies)
	if err != nil {
		return nil, err
	}

	timeouts := make(map[core.Platform]time.Duration, len(c.HTTP.PlatformTimeouts))
	for name, timeout := range c.HTTP.PlatformTimeouts {
		platform, err := core.ParsePlatform(name)
		if err != nil {
			return nil, err
		}
		timeouts[platform] = timeout
	}

	endpoints := make(map[core.Platform]map[string]string, len(c.Endpoints))
	for name, urls := range c.Endpoints {
		platform, err := core.ParsePlatform(name)
		if err != nil {
			return nil, err
		}
		endpoints[platform] = urls
	}

	return &checker.Session{
		Client:           checker.NewClient(),
		Proxies:          proxies,
		UserAgent:        c.HTTP.UserAgent,
		AcceptLanguage:   c.HTTP.AcceptLanguage,
		RandomUserAgent:  c.HTTP.RandomUserAgent,
		Timeout:          c.HTTP.Timeout,
		PlatformTimeouts: timeouts,
		Endpoints:        endpoints,
		Logger:           logger,
	}, nil
}

// ReadLines returns the trimmed, non-empty lines of a file, skipping # comments.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() // nolint:errcheck // read-only file

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// GetConfig returns the current application configuration (thread-safe)
func GetConfig() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return appConfig
}

// setConfig updates the current configuration (thread-safe)
func setConfig(cfg *Config) {
	configMu.Lock()
	defer configMu.Unlock()
	appConfig = cfg
}

// DefaultConfigDir returns the XDG-compliant config directory for the app.
func DefaultConfigDir() string {
	return gfconfig.GetAppConfigDir(AppName)
}

// DefaultConfigPath returns the XDG-compliant path to the user config file.
func DefaultConfigPath() string {
	configDir := DefaultConfigDir()
	if strings.TrimSpace(configDir) == "" {
		return ""
	}
	return filepath.Join(configDir, "config.yaml")
}
