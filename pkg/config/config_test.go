package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jmichalek/netlayout/pkg/errors"
	"github.com/jmichalek/netlayout/pkg/layout"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Layout.Algorithm != string(layout.DefaultAlgorithm) {
		t.Errorf("algorithm = %q, want default", cfg.Layout.Algorithm)
	}
	if cfg.Cache.Backend != CacheFile || cfg.Store.Backend != StoreMemory {
		t.Errorf("backends = %q/%q, want file/memory", cfg.Cache.Backend, cfg.Store.Backend)
	}
}

func TestLoadLayersOverDefaults(t *testing.T) {
	path := writeConfig(t, `
[layout]
algorithm = "hierarchical"
iterations = 80

[server]
addr = ":9999"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Layout.Algorithm != "hierarchical" || cfg.Layout.Iterations != 80 {
		t.Errorf("layout section not applied: %+v", cfg.Layout)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("server.addr = %q, want :9999", cfg.Server.Addr)
	}
	// Untouched sections keep their defaults.
	if cfg.Layout.Width != 800 || cfg.Cache.Backend != CacheFile {
		t.Errorf("defaults lost: width=%v cache=%q", cfg.Layout.Width, cfg.Cache.Backend)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, `[layout`)

	_, err := Load(path)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Defaults", func(*Config) {}, false},
		{"EmptyAlgorithmAllowed", func(c *Config) { c.Layout.Algorithm = "" }, false},
		{"UnknownAlgorithm", func(c *Config) { c.Layout.Algorithm = "circular" }, true},
		{"UnknownCacheBackend", func(c *Config) { c.Cache.Backend = "memcached" }, true},
		{"UnknownStoreBackend", func(c *Config) { c.Store.Backend = "postgres" }, true},
		{"NegativeViewport", func(c *Config) { c.Layout.Width = -1 }, true},
		{"RedisBackend", func(c *Config) { c.Cache.Backend = CacheRedis }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error code = %v, want INVALID_CONFIG", errors.GetCode(err))
			}
		})
	}
}
