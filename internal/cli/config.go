package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/knomap/knomap/pkg/pipeline"
)

// Cache backend names accepted in the config file.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Config holds the user configuration loaded from config.toml.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Layout LayoutConfig `toml:"layout"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects and configures the result cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// StoreConfig configures the named-graph store.
type StoreConfig struct {
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// LayoutConfig holds default layout parameters applied before flags.
type LayoutConfig struct {
	Strategy string  `toml:"strategy"`
	Width    float64 `toml:"width"`
	Height   float64 `toml:"height"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Cache: CacheConfig{
			Backend:   CacheBackendFile,
			RedisAddr: "localhost:6379",
		},
		Store: StoreConfig{
			Database: appName,
		},
		Layout: LayoutConfig{
			Strategy: pipeline.DefaultStrategy,
			Width:    pipeline.DefaultWidth,
			Height:   pipeline.DefaultHeight,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// LoadConfig reads the config file and merges it over the defaults. A
// missing or unreadable file yields the defaults; a malformed file is
// also ignored rather than blocking every command.
func LoadConfig() Config {
	cfg := DefaultConfig()
	path, err := configPath()
	if err != nil {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	_, _ = toml.Decode(string(data), &cfg)
	return cfg
}

// configPath returns the config file path using XDG standard
// (~/.config/knomap/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// baseOptions builds pipeline options seeded from the config defaults.
func (c *CLI) baseOptions() pipeline.Options {
	return pipeline.Options{
		Strategy: c.Config.Layout.Strategy,
		Width:    c.Config.Layout.Width,
		Height:   c.Config.Layout.Height,
	}
}
