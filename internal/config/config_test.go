package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.RegistryURL != defaultRegistryURL {
		t.Fatalf("RegistryURL = %q, want %q", cfg.RegistryURL, defaultRegistryURL)
	}
	if cfg.Storage != StorageFile {
		t.Fatalf("Storage = %q, want %q", cfg.Storage, StorageFile)
	}

	wantDataDir, err := expandPath(defaultDataDir)
	if err != nil {
		t.Fatalf("expandPath(defaultDataDir) returned error: %v", err)
	}
	if cfg.DataDir != wantDataDir {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, wantDataDir)
	}
	if cfg.LogPath != filepath.Join(wantDataDir, "pkgscout.log") {
		t.Fatalf("LogPath = %q, want %q", cfg.LogPath, filepath.Join(wantDataDir, "pkgscout.log"))
	}
	if cfg.SQLitePath() != filepath.Join(wantDataDir, "pkgscout.db") {
		t.Fatalf("SQLitePath = %q", cfg.SQLitePath())
	}
	if cfg.Debounce != defaultDebounce || cfg.CacheTTL != defaultCacheTTL {
		t.Fatalf("timings = %s/%s, want %s/%s", cfg.Debounce, cfg.CacheTTL, defaultDebounce, defaultCacheTTL)
	}
	if cfg.RateLimit != defaultRateLimit {
		t.Fatalf("RateLimit = %v, want %v", cfg.RateLimit, defaultRateLimit)
	}
	if cfg.PopularPath != "" {
		t.Fatalf("PopularPath = %q, want empty", cfg.PopularPath)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
registry_url = "  http://127.0.0.1:4873  "
storage = " SQLite "
data_dir = "  ~/.pkgscout  "
popular_path = "~/popular.toml"
log_level = "debug"
debounce = "250ms"
cache_ttl = "30s"
rate_limit = 0.0
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.RegistryURL != "http://127.0.0.1:4873" {
		t.Fatalf("RegistryURL = %q", cfg.RegistryURL)
	}
	if cfg.Storage != StorageSQLite {
		t.Fatalf("Storage = %q, want %q", cfg.Storage, StorageSQLite)
	}
	if cfg.DataDir != filepath.Join(home, ".pkgscout") {
		t.Fatalf("DataDir = %q, want it under HOME %q", cfg.DataDir, home)
	}
	if cfg.PopularPath != filepath.Join(home, "popular.toml") {
		t.Fatalf("PopularPath = %q", cfg.PopularPath)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.LogPath != filepath.Join(cfg.DataDir, "pkgscout.log") {
		t.Fatalf("LogPath = %q", cfg.LogPath)
	}
	if cfg.Debounce != 250*time.Millisecond {
		t.Fatalf("Debounce = %s", cfg.Debounce)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Fatalf("CacheTTL = %s", cfg.CacheTTL)
	}
	if cfg.RateLimit != 0 {
		t.Fatalf("RateLimit = %v, want 0 (explicitly disabled)", cfg.RateLimit)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := writeConfig(t, `
registry_url = "   "
storage = ""
debounce = ""
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.RegistryURL != defaultRegistryURL {
		t.Fatalf("RegistryURL = %q, want %q", cfg.RegistryURL, defaultRegistryURL)
	}
	if cfg.Storage != StorageFile {
		t.Fatalf("Storage = %q, want %q", cfg.Storage, StorageFile)
	}
	if cfg.Debounce != defaultDebounce {
		t.Fatalf("Debounce = %s, want %s", cfg.Debounce, defaultDebounce)
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PKGSCOUT_STORAGE", "memory")
	t.Setenv("PKGSCOUT_DEBOUNCE", "75ms")
	t.Setenv("PKGSCOUT_RATE_LIMIT", "2.5")
	t.Setenv("PKGSCOUT_LOG_PATH", "~/scout.log")

	path := writeConfig(t, `
storage = "sqlite"
debounce = "400ms"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Storage != StorageMemory {
		t.Fatalf("Storage = %q, want %q", cfg.Storage, StorageMemory)
	}
	if cfg.Debounce != 75*time.Millisecond {
		t.Fatalf("Debounce = %s, want 75ms", cfg.Debounce)
	}
	if cfg.RateLimit != 2.5 {
		t.Fatalf("RateLimit = %v, want 2.5", cfg.RateLimit)
	}
	if cfg.LogPath != filepath.Join(home, "scout.log") {
		t.Fatalf("LogPath = %q", cfg.LogPath)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "storage", body: `storage = "redis"`, want: "unknown storage"},
		{name: "debounce", body: `debounce = "soon"`, want: "debounce"},
		{name: "negative ttl", body: `cache_ttl = "-1s"`, want: "cache_ttl"},
		{name: "rate", body: `rate_limit = -3.0`, want: "rate_limit"},
		{name: "toml", body: `storage = `, want: "parse config"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			if err == nil {
				t.Fatalf("Load returned nil error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error = %v, want it to mention %q", err, tc.want)
			}
		})
	}
}

func TestLoad_DefaultPathUsesHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "pkgscout")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`log_level = "warn"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q, want warn", cfg.LogLevel)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/data")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if got != filepath.Join(home, "data") {
		t.Fatalf("ExpandPath = %q, want %q", got, filepath.Join(home, "data"))
	}

	if _, err := ExpandPath("   "); err == nil {
		t.Fatalf("ExpandPath(blank) returned nil error")
	}

	got, err = ExpandPath("relative/dir")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Fatalf("ExpandPath(relative) = %q, want absolute", got)
	}
}
