// Package config defines the configuration structures for Weather Vibes.
// No I/O or parsing logic lives in this file — only plain data types,
// defaults, and validation.
package config

import (
	"fmt"
	"time"

	"github.com/weathervibes/weathervibes/internal/logging"
)

// GatewayConfig holds the backend-gateway tunables. The base URL is the
// only environment-dependent knob (local vs. deployed backend).
type GatewayConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// MapConfig holds the map adapter tunables: the starting viewport and the
// feedback-loop suppression parameters.
type MapConfig struct {
	DefaultCenterLat float64 `mapstructure:"default_center_lat"`
	DefaultCenterLon float64 `mapstructure:"default_center_lon"`
	DefaultZoom      float64 `mapstructure:"default_zoom"`

	// CenterEpsilon and ZoomEpsilon bound the deltas below which a viewport
	// update is treated as an echo and dropped.
	CenterEpsilon float64 `mapstructure:"center_epsilon"`
	ZoomEpsilon   float64 `mapstructure:"zoom_epsilon"`

	// GuardWindow is how long after commanding a programmatic move the
	// adapter suppresses native move-end writes. A best-effort debounce,
	// not an acknowledgement-based guarantee.
	GuardWindow time.Duration `mapstructure:"guard_window"`
}

// WhereConfig holds the fixed where-panel defaults that are not
// user-exposed.
type WhereConfig struct {
	RadiusKm     float64 `mapstructure:"radius_km"`
	ResolutionKm float64 `mapstructure:"resolution_km"`
}

// StubConfig holds the devstub server tunables.
type StubConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: "debug" | "release" | "test"
}

// Config is the root configuration for the application.
type Config struct {
	Gateway GatewayConfig  `mapstructure:"gateway"`
	Map     MapConfig      `mapstructure:"map"`
	Where   WhereConfig    `mapstructure:"where"`
	Stub    StubConfig     `mapstructure:"stub"`
	Log     logging.Config `mapstructure:"log"`
}

// ApplyDefaults fills unset fields with the application defaults.
func ApplyDefaults(cfg *Config) {
	if cfg.Gateway.BaseURL == "" {
		cfg.Gateway.BaseURL = "http://localhost:8000"
	}
	if cfg.Gateway.Timeout == 0 {
		cfg.Gateway.Timeout = 30 * time.Second
	}

	if cfg.Map.DefaultCenterLat == 0 && cfg.Map.DefaultCenterLon == 0 {
		// Bengaluru.
		cfg.Map.DefaultCenterLat = 12.9716
		cfg.Map.DefaultCenterLon = 77.5946
	}
	if cfg.Map.DefaultZoom == 0 {
		cfg.Map.DefaultZoom = 10
	}
	if cfg.Map.CenterEpsilon == 0 {
		cfg.Map.CenterEpsilon = 1e-4
	}
	if cfg.Map.ZoomEpsilon == 0 {
		cfg.Map.ZoomEpsilon = 0.1
	}
	if cfg.Map.GuardWindow == 0 {
		cfg.Map.GuardWindow = 300 * time.Millisecond
	}

	if cfg.Where.RadiusKm == 0 {
		cfg.Where.RadiusKm = 100
	}
	if cfg.Where.ResolutionKm == 0 {
		cfg.Where.ResolutionKm = 5
	}

	if cfg.Stub.Host == "" {
		cfg.Stub.Host = "0.0.0.0"
	}
	if cfg.Stub.Port == 0 {
		cfg.Stub.Port = 8000
	}
	if cfg.Stub.Mode == "" {
		cfg.Stub.Mode = "release"
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
}

// Validate checks value ranges. It assumes ApplyDefaults has run.
func (c *Config) Validate() error {
	if c.Gateway.Timeout <= 0 {
		return fmt.Errorf("gateway.timeout must be positive, got %s", c.Gateway.Timeout)
	}
	if c.Map.CenterEpsilon <= 0 {
		return fmt.Errorf("map.center_epsilon must be positive, got %g", c.Map.CenterEpsilon)
	}
	if c.Map.ZoomEpsilon <= 0 {
		return fmt.Errorf("map.zoom_epsilon must be positive, got %g", c.Map.ZoomEpsilon)
	}
	if c.Map.GuardWindow < 0 {
		return fmt.Errorf("map.guard_window must not be negative, got %s", c.Map.GuardWindow)
	}
	if lat := c.Map.DefaultCenterLat; lat < -90 || lat > 90 {
		return fmt.Errorf("map.default_center_lat out of range: %g", lat)
	}
	if lon := c.Map.DefaultCenterLon; lon < -180 || lon > 180 {
		return fmt.Errorf("map.default_center_lon out of range: %g", lon)
	}
	if c.Where.RadiusKm <= 0 || c.Where.RadiusKm > 500 {
		return fmt.Errorf("where.radius_km must be in (0, 500], got %g", c.Where.RadiusKm)
	}
	if c.Where.ResolutionKm <= 0 {
		return fmt.Errorf("where.resolution_km must be positive, got %g", c.Where.ResolutionKm)
	}
	if c.Stub.Port < 1 || c.Stub.Port > 65535 {
		return fmt.Errorf("stub.port out of range: %d", c.Stub.Port)
	}
	return nil
}
