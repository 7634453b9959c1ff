package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/eugenenazirov/roman-numerals/internal/storage"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "HISTORY_SIZE", "LOG_LEVEL", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "CACHE_TTL",
	} {
		t.Setenv(key, "")
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.HistorySize != storage.DefaultCapacity {
		t.Fatalf("expected default history size, got %d", cfg.HistorySize)
	}
	if cfg.ShutdownGracePeriod != 10*time.Second {
		t.Fatalf("unexpected shutdown grace period: %s", cfg.ShutdownGracePeriod)
	}
	if cfg.Cache.Addr != "" {
		t.Fatalf("expected caching to be disabled by default, got %q", cfg.Cache.Addr)
	}
	if cfg.Cache.TTL != defaultCacheTTL || cfg.Cache.Namespace != defaultCacheNamespace {
		t.Fatalf("unexpected cache defaults: %+v", cfg.Cache)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("HISTORY_SIZE", " 25 ")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CACHE_TTL", "1h")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(&CLIOverrides{})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "9000" {
		t.Fatalf("expected overridden port, got %s", cfg.Port)
	}
	if cfg.HistorySize != 25 {
		t.Fatalf("expected history size 25, got %d", cfg.HistorySize)
	}
	if cfg.Cache.Addr != "localhost:6379" || cfg.Cache.DB != 2 || cfg.Cache.TTL != time.Hour {
		t.Fatalf("unexpected cache config: %+v", cfg.Cache)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected log level debug, got %s", cfg.LogLevel)
	}
}

func TestLoadRejectsInvalidEnv(t *testing.T) {
	tests := map[string]string{
		"HISTORY_SIZE":     "many",
		"REDIS_DB":         "x",
		"CACHE_TTL":        "forever",
		"RATE_LIMIT_RPS":   "fast",
		"RATE_LIMIT_BURST": "-3",
	}
	for key, value := range tests {
		key, value := key, value
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			if _, err := Load(nil); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}

func TestLoadHistorySizeOutOfRange(t *testing.T) {
	clearEnv(t)
	t.Setenv("HISTORY_SIZE", "0")

	_, err := Load(nil)
	if !errors.Is(err, storage.ErrInvalidCapacity) {
		t.Fatalf("expected ErrInvalidCapacity, got %v", err)
	}
}

func TestLoadYAMLOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("REDIS_ADDR", "env-redis:6379")

	path := writeConfigFile(t, `
port: "7000"
history_size: 5
write_timeout: 3s
enable_request_logging: false
log_level: warn
rate_limit:
  rps: 0
  burst: 0
cache:
  addr: yaml-redis:6379
  ttl: 30m
  namespace: numerals
`)

	cfg, err := Load(&CLIOverrides{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "7000" {
		t.Fatalf("expected YAML port to win over env, got %s", cfg.Port)
	}
	if cfg.HistorySize != 5 || cfg.WriteTimeout != 3*time.Second {
		t.Fatalf("unexpected YAML values: %+v", cfg)
	}
	if cfg.EnableRequestLogging {
		t.Fatalf("expected request logging to be disabled")
	}
	if cfg.RateLimitRPS != 0 || cfg.RateLimitBurst != 0 {
		t.Fatalf("expected rate limit disabled, got %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.Cache.Addr != "yaml-redis:6379" || cfg.Cache.TTL != 30*time.Minute || cfg.Cache.Namespace != "numerals" {
		t.Fatalf("unexpected cache config: %+v", cfg.Cache)
	}
}

func TestLoadYAMLKeepsDefaultsForMissingKeys(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, "port: \"7000\"\n")

	cfg, err := Load(&CLIOverrides{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.EnableRequestLogging {
		t.Fatalf("expected request logging default to be kept")
	}
	if cfg.RateLimitRPS != defaultRateLimitRPS || cfg.RateLimitBurst != defaultRateLimitBurst {
		t.Fatalf("expected default rate limits, got %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadYAMLErrors(t *testing.T) {
	clearEnv(t)

	if _, err := Load(&CLIOverrides{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Fatalf("expected error for missing file")
	}

	bad := writeConfigFile(t, "port: [unterminated\n")
	if _, err := Load(&CLIOverrides{ConfigFile: bad}); err == nil {
		t.Fatalf("expected error for malformed YAML")
	}

	badDuration := writeConfigFile(t, "idle_timeout: soon\n")
	if _, err := Load(&CLIOverrides{ConfigFile: badDuration}); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestLoadCLIOverridesWin(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	path := writeConfigFile(t, "port: \"7000\"\nhistory_size: 5\n")

	port := "6000"
	history := 42
	redisAddr := "cli-redis:6379"
	rps := 2.5
	burst := 3

	cfg, err := Load(&CLIOverrides{
		ConfigFile:     path,
		Port:           &port,
		HistorySize:    &history,
		RedisAddr:      &redisAddr,
		RateLimitRPS:   &rps,
		RateLimitBurst: &burst,
	})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "6000" || cfg.HistorySize != 42 || cfg.Cache.Addr != "cli-redis:6379" {
		t.Fatalf("expected CLI overrides to win, got %+v", cfg)
	}
	if cfg.RateLimitRPS != 2.5 || cfg.RateLimitBurst != 3 {
		t.Fatalf("unexpected rate limits %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}
