package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/bstviz/pkg/cache"
	"github.com/matzehuels/bstviz/pkg/errors"
	bstio "github.com/matzehuels/bstviz/pkg/io"
	"github.com/matzehuels/bstviz/pkg/pipeline"
	"github.com/matzehuels/bstviz/pkg/render/layout"
)

// configFile is the file name looked up in the config directory.
const configFile = "config.toml"

// defaultAddr is the listen address of the HTTP service.
const defaultAddr = ":8080"

// Config is the on-disk configuration. Command-line flags override it.
//
//	[layout]
//	scale = 1.65
//	base = 7
//	max = 0
//
//	[render]
//	format = "tikz,svg"
//	standalone = false
//	delimiter = ";"
//
//	[cache]
//	redis_url = "redis://localhost:6379/0"
//	ttl = "24h"
//	disabled = false
//
//	[serve]
//	addr = ":8080"
type Config struct {
	Layout layout.Config `toml:"layout"`
	Render RenderConfig  `toml:"render"`
	Cache  CacheConfig   `toml:"cache"`
	Serve  ServeConfig   `toml:"serve"`
}

// RenderConfig holds render defaults.
type RenderConfig struct {
	Format     string `toml:"format"`
	Standalone bool   `toml:"standalone"`
	Delimiter  string `toml:"delimiter"`
}

// CacheConfig selects and tunes the artifact cache.
type CacheConfig struct {
	RedisURL string   `toml:"redis_url"`
	TTL      Duration `toml:"ttl"`
	Disabled bool     `toml:"disabled"`
}

// ServeConfig configures the HTTP service.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a string ("36h", "90m") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() Config {
	return Config{
		Layout: layout.DefaultConfig(),
		Render: RenderConfig{
			Format:    pipeline.DefaultFormat,
			Delimiter: bstio.DefaultDelimiter,
		},
		Cache: CacheConfig{TTL: Duration{cache.DefaultTTL}},
		Serve: ServeConfig{Addr: defaultAddr},
	}
}

// defaultConfigPath returns $XDG_CONFIG_HOME/bstviz/config.toml.
func defaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// LoadConfig reads the config file at path on top of the defaults. With an
// empty path the default location is tried, and a missing file there is not
// an error. Unknown keys are rejected so typos do not pass silently.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := defaultConfigPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file")
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "layout")
	}
	if err := pipeline.ValidateFormats(parseFormats(c.Render.Format)); err != nil {
		return err
	}
	if err := errors.ValidateDelimiter(c.Render.Delimiter); err != nil {
		return err
	}
	if c.Cache.RedisURL != "" {
		if err := errors.ValidateRedisURL(c.Cache.RedisURL); err != nil {
			return err
		}
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	return nil
}
