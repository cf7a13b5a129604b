// Package config loads viewer settings from .sfdigest.yaml, SFDIGEST_*
// environment variables and command-line overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/andareed/siftly-digest/timerange"
)

const (
	keyBackendURL   = "backend_url"
	keyDashboardURL = "dashboard_url"
	keyTelescope    = "telescope"
	keyTimeout      = "timeout"
	keyHostName     = "site.host_display_name"
	keyRetention    = "site.retention_days"
	keyCachePath    = "cache.path"
	keyCacheTTL     = "cache.ttl"
	keyCacheMemory  = "cache.max_memory"
	keyCacheEnabled = "cache.enabled"
)

type Config struct {
	BackendURL   string
	DashboardURL string
	Telescope    string
	Timeout      time.Duration
	Retention    timerange.Retention
	Cache        CacheConfig
}

type CacheConfig struct {
	Enabled   bool
	Path      string
	TTL       time.Duration
	MaxMemory uint64
}

// New returns a viper instance with defaults, env binding and the config
// search path set. Callers may bind flags to it before Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(keyBackendURL, "http://localhost:8080/nightlydigest/api")
	v.SetDefault(keyDashboardURL, "http://localhost:8080/nightlydigest")
	v.SetDefault(keyTelescope, "Simonyi")
	v.SetDefault(keyTimeout, "30s")
	v.SetDefault(keyHostName, "")
	v.SetDefault(keyRetention, 0)
	v.SetDefault(keyCacheEnabled, true)
	v.SetDefault(keyCachePath, "~/.cache/sfdigest")
	v.SetDefault(keyCacheTTL, "5m")
	v.SetDefault(keyCacheMemory, 4*1024*1024)

	v.SetConfigName(".sfdigest") // .yaml is implicit
	v.SetEnvPrefix("SFDIGEST")
	v.AutomaticEnv()
	if override := os.Getenv("SFDIGEST_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	return v
}

// Load reads the config file, when there is one, and resolves the settings.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cachePath, err := homedir.Expand(v.GetString(keyCachePath))
	if err != nil {
		return nil, fmt.Errorf("cache path: %w", err)
	}

	cfg := &Config{
		BackendURL:   v.GetString(keyBackendURL),
		DashboardURL: v.GetString(keyDashboardURL),
		Telescope:    v.GetString(keyTelescope),
		Timeout:      v.GetDuration(keyTimeout),
		Retention: timerange.Retention{
			HostDisplayName: v.GetString(keyHostName),
			Days:            v.GetInt(keyRetention),
		},
		Cache: CacheConfig{
			Enabled:   v.GetBool(keyCacheEnabled),
			Path:      cachePath,
			TTL:       v.GetDuration(keyCacheTTL),
			MaxMemory: uint64(v.GetInt64(keyCacheMemory)),
		},
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %q", v.GetString(keyTimeout))
	}
	if cfg.Retention.Days < 0 {
		cfg.Retention.Days = 0
	}
	return cfg, nil
}
