package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix for all settings.
const envPrefix = "VIBES"

// newViper builds a pre-configured viper instance: YAML file type, VIBES_
// env prefix, automatic env binding, and a key replacer mapping "." to "_"
// so nested keys like "gateway.base_url" resolve to VIBES_GATEWAY_BASE_URL.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Register every key so environment-only overrides survive Unmarshal;
	// viper resolves env vars only for keys it knows about. Zero values
	// mean "unset" and are replaced by ApplyDefaults afterwards.
	for _, key := range []string{
		"gateway.base_url", "stub.host", "stub.mode", "log.level", "log.format",
	} {
		v.SetDefault(key, "")
	}
	for _, key := range []string{
		"map.default_center_lat", "map.default_center_lon", "map.default_zoom",
		"map.center_epsilon", "map.zoom_epsilon",
		"where.radius_km", "where.resolution_km",
	} {
		v.SetDefault(key, 0.0)
	}
	v.SetDefault("gateway.timeout", time.Duration(0))
	v.SetDefault("map.guard_window", time.Duration(0))
	v.SetDefault("stub.port", 0)
	v.SetDefault("log.output_paths", []string{})
	return v
}

// Load reads the YAML file at configPath, merges VIBES_* environment
// variable overrides, applies defaults, and validates the result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from VIBES_* environment variables
// and defaults, with no config file required. This is the normal loading
// path: the base-URL override (VIBES_GATEWAY_BASE_URL) is the only setting
// most users ever touch.
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// Watch monitors configPath for changes and invokes onChange with the newly
// parsed Config whenever the file is modified. Intended for hot-reloading
// non-critical settings such as log level; a change that fails to parse or
// validate is dropped without invoking onChange.
//
// Watch is non-blocking; viper manages the background watcher goroutine.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)

	// Initial read errors are ignored here; callers should Load first.
	_ = v.ReadInConfig()

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			return
		}
		onChange(cfg)
	})
}
