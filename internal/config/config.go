package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/roman-numerals/internal/storage"
)

const (
	defaultPort           = "8080"
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
	defaultLogLevel       = "info"
	defaultCacheTTL       = 24 * time.Hour
	defaultCacheNamespace = "roman"
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	Port                 string
	HistorySize          int
	ShutdownGracePeriod  time.Duration
	ReadHeaderTimeout    time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	EnableRequestLogging bool
	LogLevel             string
	RateLimitRPS         float64
	RateLimitBurst       int
	Cache                CacheConfig
}

// CacheConfig holds the Redis connection used to cache conversions.
// An empty Addr disables caching.
type CacheConfig struct {
	Addr      string
	Password  string
	DB        int
	TTL       time.Duration
	Namespace string
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Port                 string        `yaml:"port"`
	HistorySize          int           `yaml:"history_size"`
	ShutdownGracePeriod  string        `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string        `yaml:"read_header_timeout"`
	WriteTimeout         string        `yaml:"write_timeout"`
	IdleTimeout          string        `yaml:"idle_timeout"`
	EnableRequestLogging *bool         `yaml:"enable_request_logging"`
	LogLevel             string        `yaml:"log_level"`
	RateLimit            yamlRateLimit `yaml:"rate_limit"`
	Cache                yamlCache     `yaml:"cache"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

type yamlCache struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	TTL       string `yaml:"ttl"`
	Namespace string `yaml:"namespace"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile     string
	Port           *string
	HistorySize    *int
	RedisAddr      *string
	RateLimitRPS   *float64
	RateLimitBurst *int
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	// Apply environment variables
	if err := applyEnvConfig(&cfg); err != nil {
		return Config{}, err
	}

	// Load from YAML file if specified (overrides environment)
	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := applyYAMLConfig(&cfg, yamlCfg); err != nil {
			return Config{}, fmt.Errorf("apply YAML config: %w", err)
		}
	}

	// Apply CLI overrides (highest precedence)
	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Port:                 defaultPort,
		HistorySize:          storage.DefaultCapacity,
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		LogLevel:             defaultLogLevel,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
		Cache: CacheConfig{
			TTL:       defaultCacheTTL,
			Namespace: defaultCacheNamespace,
		},
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) error {
	if yamlCfg.Port != "" {
		cfg.Port = yamlCfg.Port
	}

	if yamlCfg.HistorySize != 0 {
		cfg.HistorySize = yamlCfg.HistorySize
	}

	durations := []struct {
		name   string
		raw    string
		target *time.Duration
	}{
		{"shutdown_grace_period", yamlCfg.ShutdownGracePeriod, &cfg.ShutdownGracePeriod},
		{"read_header_timeout", yamlCfg.ReadHeaderTimeout, &cfg.ReadHeaderTimeout},
		{"write_timeout", yamlCfg.WriteTimeout, &cfg.WriteTimeout},
		{"idle_timeout", yamlCfg.IdleTimeout, &cfg.IdleTimeout},
		{"cache.ttl", yamlCfg.Cache.TTL, &cfg.Cache.TTL},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("%s: %w", d.name, err)
		}
		*d.target = parsed
	}

	if yamlCfg.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *yamlCfg.EnableRequestLogging
	}

	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}

	if yamlCfg.RateLimit.RPS != nil {
		cfg.RateLimitRPS = *yamlCfg.RateLimit.RPS
	}

	if yamlCfg.RateLimit.Burst != nil {
		cfg.RateLimitBurst = *yamlCfg.RateLimit.Burst
	}

	if yamlCfg.Cache.Addr != "" {
		cfg.Cache.Addr = yamlCfg.Cache.Addr
	}
	if yamlCfg.Cache.Password != "" {
		cfg.Cache.Password = yamlCfg.Cache.Password
	}
	if yamlCfg.Cache.DB != 0 {
		cfg.Cache.DB = yamlCfg.Cache.DB
	}
	if yamlCfg.Cache.Namespace != "" {
		cfg.Cache.Namespace = yamlCfg.Cache.Namespace
	}

	return nil
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) error {
	if port := env("PORT"); port != "" {
		cfg.Port = port
	}

	if raw := env("HISTORY_SIZE"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("HISTORY_SIZE: invalid integer %q", raw)
		}
		cfg.HistorySize = value
	}

	if level := env("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	if rps := env("RATE_LIMIT_RPS"); rps != "" {
		value, err := strconv.ParseFloat(rps, 64)
		if err != nil || value < 0 {
			return fmt.Errorf("RATE_LIMIT_RPS: must be a non-negative number, got %q", rps)
		}
		cfg.RateLimitRPS = value
	}

	if burst := env("RATE_LIMIT_BURST"); burst != "" {
		value, err := strconv.Atoi(burst)
		if err != nil || value < 0 {
			return fmt.Errorf("RATE_LIMIT_BURST: must be a non-negative integer, got %q", burst)
		}
		cfg.RateLimitBurst = value
	}

	if addr := env("REDIS_ADDR"); addr != "" {
		cfg.Cache.Addr = addr
	}

	if password := env("REDIS_PASSWORD"); password != "" {
		cfg.Cache.Password = password
	}

	if raw := env("REDIS_DB"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("REDIS_DB: invalid integer %q", raw)
		}
		cfg.Cache.DB = value
	}

	if raw := env("CACHE_TTL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("CACHE_TTL: %w", err)
		}
		cfg.Cache.TTL = d
	}

	return nil
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Port = *overrides.Port
	}

	if overrides.HistorySize != nil && *overrides.HistorySize > 0 {
		cfg.HistorySize = *overrides.HistorySize
	}

	if overrides.RedisAddr != nil && *overrides.RedisAddr != "" {
		cfg.Cache.Addr = *overrides.RedisAddr
	}

	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}

	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be >= 0")
	}
	if err := storage.ValidateCapacity(cfg.HistorySize); err != nil {
		return fmt.Errorf("history size %d: %w", cfg.HistorySize, err)
	}
	if cfg.Cache.DB < 0 {
		return fmt.Errorf("REDIS_DB must be >= 0")
	}
	return nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
