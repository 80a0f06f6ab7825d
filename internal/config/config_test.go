package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, "http://localhost:8000", cfg.Gateway.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, 12.9716, cfg.Map.DefaultCenterLat)
	assert.Equal(t, 77.5946, cfg.Map.DefaultCenterLon)
	assert.Equal(t, 10.0, cfg.Map.DefaultZoom)
	assert.Equal(t, 1e-4, cfg.Map.CenterEpsilon)
	assert.Equal(t, 0.1, cfg.Map.ZoomEpsilon)
	assert.Equal(t, 300*time.Millisecond, cfg.Map.GuardWindow)
	assert.Equal(t, 100.0, cfg.Where.RadiusKm)
	assert.Equal(t, 5.0, cfg.Where.ResolutionKm)
	assert.Equal(t, 8000, cfg.Stub.Port)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestApplyDefaults_DoesNotOverrideSetValues(t *testing.T) {
	cfg := &Config{}
	cfg.Gateway.BaseURL = "https://api.example.com"
	cfg.Map.DefaultZoom = 4
	ApplyDefaults(cfg)

	assert.Equal(t, "https://api.example.com", cfg.Gateway.BaseURL)
	assert.Equal(t, 4.0, cfg.Map.DefaultZoom)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative timeout", func(c *Config) { c.Gateway.Timeout = -time.Second }},
		{"zero center epsilon", func(c *Config) { c.Map.CenterEpsilon = -1 }},
		{"lat out of range", func(c *Config) { c.Map.DefaultCenterLat = 91 }},
		{"lon out of range", func(c *Config) { c.Map.DefaultCenterLon = -200 }},
		{"radius too large", func(c *Config) { c.Where.RadiusKm = 1000 }},
		{"bad stub port", func(c *Config) { c.Stub.Port = 70000 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			ApplyDefaults(cfg)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vibes.yaml")
	yaml := `
gateway:
  base_url: https://weather-vibes.example.com
  timeout: 10s
map:
  default_zoom: 6
  guard_window: 150ms
where:
  radius_km: 250
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://weather-vibes.example.com", cfg.Gateway.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, 6.0, cfg.Map.DefaultZoom)
	assert.Equal(t, 150*time.Millisecond, cfg.Map.GuardWindow)
	assert.Equal(t, 250.0, cfg.Where.RadiusKm)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Unset fields still pick up defaults.
	assert.Equal(t, 1e-4, cfg.Map.CenterEpsilon)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadFromEnv_Override(t *testing.T) {
	t.Setenv("VIBES_GATEWAY_BASE_URL", "http://127.0.0.1:9999")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9999", cfg.Gateway.BaseURL)
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vibes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("where:\n  radius_km: 9999\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestWatch_ReloadsChangedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vibes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: info\n"), 0o644))

	reloaded := make(chan *Config, 8)
	Watch(path, func(cfg *Config) { reloaded <- cfg })

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o644))

	require.Eventually(t, func() bool {
		select {
		case cfg := <-reloaded:
			return cfg.Log.Level == "debug"
		default:
			return false
		}
	}, 5*time.Second, 20*time.Millisecond, "watch never delivered the reparsed config")
}

func TestWatch_DropsInvalidChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vibes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: info\n"), 0o644))

	reloaded := make(chan *Config, 8)
	Watch(path, func(cfg *Config) { reloaded <- cfg })

	// Fails validation, so it must never reach the callback.
	require.NoError(t, os.WriteFile(path, []byte("where:\n  radius_km: 9999\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o644))

	require.Eventually(t, func() bool {
		select {
		case cfg := <-reloaded:
			assert.NotEqual(t, 9999.0, cfg.Where.RadiusKm, "invalid config leaked through")
			return cfg.Log.Level == "warn"
		default:
			return false
		}
	}, 5*time.Second, 20*time.Millisecond)
}
