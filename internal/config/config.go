package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
)

// Storage backends selectable through the storage field.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config holds everything pkgscout reads from config.toml and the
// environment.
type Config struct {
	RegistryURL string
	Storage     string
	DataDir     string
	PopularPath string
	LogLevel    string
	LogPath     string
	Debounce    time.Duration
	CacheTTL    time.Duration
	RateLimit   float64 // lookups per second; zero disables limiting
}

const (
	envPrefix = "pkgscout"

	defaultConfigPath  = "~/.config/pkgscout/config.toml"
	defaultDataDir     = "~/.local/share/pkgscout"
	defaultRegistryURL = "https://registry.npmjs.org"
	defaultLogLevel    = "info"
	defaultDebounce    = 150 * time.Millisecond
	defaultCacheTTL    = 2 * time.Minute
	defaultRateLimit   = 5.0
)

// raw is decoded from TOML first, then overlaid with PKGSCOUT_* variables.
type raw struct {
	RegistryURL string   `toml:"registry_url" envconfig:"REGISTRY_URL"`
	Storage     string   `toml:"storage" envconfig:"STORAGE"`
	DataDir     string   `toml:"data_dir" envconfig:"DATA_DIR"`
	PopularPath string   `toml:"popular_path" envconfig:"POPULAR_PATH"`
	LogLevel    string   `toml:"log_level" envconfig:"LOG_LEVEL"`
	LogPath     string   `toml:"log_path" envconfig:"LOG_PATH"`
	Debounce    string   `toml:"debounce" envconfig:"DEBOUNCE"`
	CacheTTL    string   `toml:"cache_ttl" envconfig:"CACHE_TTL"`
	RateLimit   *float64 `toml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Load reads the config file at path (the default location when empty),
// applies environment overrides and fills defaults. A missing file is not an
// error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var r raw
	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &r); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	if err := envconfig.Process(envPrefix, &r); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return r.resolve()
}

func (r raw) resolve() (Config, error) {
	cfg := Config{
		RegistryURL: orDefault(r.RegistryURL, defaultRegistryURL),
		Storage:     strings.ToLower(orDefault(r.Storage, StorageFile)),
		LogLevel:    orDefault(r.LogLevel, defaultLogLevel),
		Debounce:    defaultDebounce,
		CacheTTL:    defaultCacheTTL,
		RateLimit:   defaultRateLimit,
	}

	switch cfg.Storage {
	case StorageFile, StorageSQLite, StorageMemory:
	default:
		return Config{}, fmt.Errorf("unknown storage %q (want file, sqlite or memory)", r.Storage)
	}

	dataDir, err := expandPath(orDefault(r.DataDir, defaultDataDir))
	if err != nil {
		return Config{}, fmt.Errorf("data_dir: %w", err)
	}
	cfg.DataDir = dataDir

	if p := strings.TrimSpace(r.PopularPath); p != "" {
		if cfg.PopularPath, err = expandPath(p); err != nil {
			return Config{}, fmt.Errorf("popular_path: %w", err)
		}
	}

	if p := strings.TrimSpace(r.LogPath); p != "" {
		if cfg.LogPath, err = expandPath(p); err != nil {
			return Config{}, fmt.Errorf("log_path: %w", err)
		}
	} else {
		cfg.LogPath = filepath.Join(cfg.DataDir, "pkgscout.log")
	}

	if cfg.Debounce, err = parseDuration(r.Debounce, defaultDebounce); err != nil {
		return Config{}, fmt.Errorf("debounce: %w", err)
	}
	if cfg.CacheTTL, err = parseDuration(r.CacheTTL, defaultCacheTTL); err != nil {
		return Config{}, fmt.Errorf("cache_ttl: %w", err)
	}

	if r.RateLimit != nil {
		if *r.RateLimit < 0 {
			return Config{}, fmt.Errorf("rate_limit must not be negative")
		}
		cfg.RateLimit = *r.RateLimit
	}

	return cfg, nil
}

// SQLitePath returns the database file used by the sqlite storage backend.
func (c Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "pkgscout.db")
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", d)
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
