// Package config loads netlayout configuration from TOML files.
//
// Configuration is entirely optional: every field has a working default and
// a missing config file is not an error. The CLI looks for a file at
// ~/.config/netlayout/config.toml unless an explicit path is given, and
// command-line flags override file values.
//
// # Example
//
//	[layout]
//	algorithm = "hierarchical"
//	iterations = 80
//	width = 1280.0
//	height = 720.0
//
//	[cache]
//	backend = "file"
//
//	[server]
//	addr = ":8080"
//
//	[store]
//	backend = "memory"
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/jmichalek/netlayout/pkg/errors"
	"github.com/jmichalek/netlayout/pkg/layout"
)

// Recognized cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Recognized store backends.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// Config is the full on-disk configuration.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Store  StoreConfig  `toml:"store"`
}

// LayoutConfig sets layout run defaults.
type LayoutConfig struct {
	// Algorithm is the default strategy name.
	Algorithm string `toml:"algorithm"`

	// Iterations is the force-directed iteration count.
	Iterations int `toml:"iterations"`

	// Width and Height are the default viewport dimensions.
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`

	// Seed feeds the layout random source. Zero means the built-in seed.
	Seed uint64 `toml:"seed"`
}

// CacheConfig selects and tunes the layout result cache.
type CacheConfig struct {
	// Backend is "file", "redis" or "none".
	Backend string `toml:"backend"`

	// Dir overrides the file cache directory. Empty means the default
	// under the user cache dir.
	Dir string `toml:"dir"`

	// RedisAddr is the host:port of the Redis server for the redis backend.
	RedisAddr string `toml:"redis_addr"`
}

// ServerConfig tunes the HTTP API server.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`
}

// StoreConfig selects the topology persistence backend.
type StoreConfig struct {
	// Backend is "memory" or "mongo".
	Backend string `toml:"backend"`

	// MongoURI is the connection string for the mongo backend.
	MongoURI string `toml:"mongo_uri"`

	// Database is the Mongo database name.
	Database string `toml:"database"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Layout: LayoutConfig{
			Algorithm:  string(layout.DefaultAlgorithm),
			Iterations: layout.DefaultIterations,
			Width:      800,
			Height:     600,
		},
		Cache:  CacheConfig{Backend: CacheFile},
		Server: ServerConfig{Addr: ":8080"},
		Store: StoreConfig{
			Backend:  StoreMemory,
			Database: "netlayout",
		},
	}
}

// DefaultPath returns the conventional config file location,
// ~/.config/netlayout/config.toml. The file does not need to exist.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve home directory")
	}
	return filepath.Join(home, ".config", "netlayout", "config.toml"), nil
}

// Load reads the config file at path, layered over [Default]. An empty path
// means [DefaultPath]. A missing file returns the defaults without error;
// any other read or parse failure is reported.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field values that have a closed set of legal inputs.
func (c Config) Validate() error {
	if c.Layout.Algorithm != "" && !layout.ValidAlgorithm(layout.Algorithm(c.Layout.Algorithm)) {
		return errors.New(errors.ErrCodeInvalidConfig,
			"unknown layout algorithm %q (valid: %v)", c.Layout.Algorithm, layout.Algorithms())
	}
	switch c.Cache.Backend {
	case "", CacheFile, CacheRedis, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case "", StoreMemory, StoreMongo:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}
	if c.Layout.Width < 0 || c.Layout.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"viewport dimensions must not be negative, got %gx%g", c.Layout.Width, c.Layout.Height)
	}
	return nil
}
