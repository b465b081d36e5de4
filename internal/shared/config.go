package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Providers ProvidersConfig `toml:"providers"`
	Cache     CacheConfig     `toml:"cache"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host           string `toml:"host"`
	Port           int    `toml:"port"`
	ReadTimeoutSec int    `toml:"read_timeout_seconds"`
}

// Address returns the host:port listen address.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ProvidersConfig contains per-provider client settings.
type ProvidersConfig struct {
	YouTube    ProviderConfig `toml:"youtube"`
	SoundCloud ProviderConfig `toml:"soundcloud"`
}

// ProviderConfig contains settings for one provider's search/resolve client.
type ProviderConfig struct {
	BaseURL   string  `toml:"base_url"`
	APIKey    string  `toml:"api_key"`
	RateLimit float64 `toml:"rate_limit"` // requests per second
}

// CacheConfig contains TTL and sweep intervals for the two caches: the
// resolver's per-track de-duplication cache and the server's per-playlist
// fetch cache.
type CacheConfig struct {
	ResolveTTLSec    int `toml:"resolve_ttl_seconds"`
	ResolveSweepSec  int `toml:"resolve_sweep_seconds"`
	PlaylistTTLSec   int `toml:"playlist_ttl_seconds"`
	PlaylistSweepSec int `toml:"playlist_sweep_seconds"`
}

// ResolveTTL returns the track cache TTL as a [time.Duration].
func (c CacheConfig) ResolveTTL() time.Duration {
	return time.Duration(c.ResolveTTLSec) * time.Second
}

// ResolveSweep returns the track cache sweep interval as a [time.Duration].
func (c CacheConfig) ResolveSweep() time.Duration {
	return time.Duration(c.ResolveSweepSec) * time.Second
}

// PlaylistTTL returns the playlist fetch cache TTL as a [time.Duration].
func (c CacheConfig) PlaylistTTL() time.Duration {
	return time.Duration(c.PlaylistTTLSec) * time.Second
}

// PlaylistSweep returns the playlist fetch cache sweep interval as a [time.Duration].
func (c CacheConfig) PlaylistSweep() time.Duration {
	return time.Duration(c.PlaylistSweepSec) * time.Second
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingConfig, err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
