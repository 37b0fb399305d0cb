// Package config loads the optional silhouette configuration file.
//
// The file is TOML, by default at ~/.config/silhouette/config.toml:
//
//	seed = 42
//
//	[density]
//	"." = 0.2
//	"#" = 1.0
//
//	[cache]
//	backend = "file"        # file | redis | none
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//
// A missing file at the default location is not an error; every field
// has a default. A missing file named explicitly with --config is. The
// [density] table overrides individual entries of the ASCII density map
// used to classify art characters and output characters as foreground
// or background.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/silhouette/pkg/art"
	"github.com/matzehuels/silhouette/pkg/errors"
	"github.com/matzehuels/silhouette/pkg/layout"
)

// Cache backend names accepted in [cache].backend.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the root of the configuration file.
type Config struct {
	// Seed seeds the layout engine's PRNG. The fixed default keeps
	// output reproducible; -1 selects a time-based seed per run.
	Seed int64 `toml:"seed"`

	// Density overrides entries of the ASCII density map. Keys must be
	// single ASCII characters; values are clamped to [0, 1].
	Density map[string]float64 `toml:"density"`

	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects and configures the render cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Seed: layout.DefaultSeed,
		Cache: CacheConfig{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Load reads the configuration file at path. An empty path selects the
// default location, and a missing file there yields the defaults. A
// missing file at an explicit path, or a file that exists but fails to
// parse or validate, is an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultPath returns the default config file location, honoring
// XDG_CONFIG_HOME. Returns "" when no home directory can be determined.
func DefaultPath() string {
	if cfgHome := os.Getenv("XDG_CONFIG_HOME"); cfgHome != "" {
		return filepath.Join(cfgHome, "silhouette", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "silhouette", "config.toml")
}

// DensityMap materializes the default density map with this config's
// overrides applied.
func (c *Config) DensityMap() art.DensityMap {
	m := art.DefaultDensity()
	for k, v := range c.Density {
		if len(k) == 1 && k[0] < 128 {
			m.Set(rune(k[0]), v)
		}
	}
	return m
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case "", BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	for k := range c.Density {
		if len(k) != 1 || k[0] >= 128 {
			return errors.New(errors.ErrCodeInvalidConfig, "density key %q is not a single ASCII character", k)
		}
	}
	return nil
}
