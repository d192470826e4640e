package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/pkgscout/internal/config"
	"github.com/five82/pkgscout/internal/kv"
	"github.com/five82/pkgscout/internal/logging"
	"github.com/five82/pkgscout/internal/popular"
	"github.com/five82/pkgscout/internal/prefs"
	"github.com/five82/pkgscout/internal/recent"
	"github.com/five82/pkgscout/internal/registry"
	"github.com/five82/pkgscout/internal/saved"
	"github.com/five82/pkgscout/internal/suggest"
	"github.com/five82/pkgscout/internal/ui"
)

// Version is reported in the registry User-Agent.
const Version = "0.1.0"

// Options configure the pkgscout application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/pkgscout/prefs.toml
	// Query runs a single lookup, prints the settled suggestions and exits
	// instead of starting the TUI.
	Query string
	// Ephemeral keeps all state in memory for this run.
	Ephemeral bool
	// LogLines prints the last LogLines lines of the log file and exits.
	LogLines int
	// SavedList prints the named saved list and exits. Unsave and ClearSaved
	// modify that list before it is printed.
	SavedList  string
	Unsave     string
	ClearSaved bool
	// Out receives one-shot and log output; nil uses os.Stdout.
	Out io.Writer
}

// components is the wired object graph shared by both run modes.
type components struct {
	store  *kv.Store
	recent *recent.Store
	saved  *saved.Store
	agg    *suggest.Aggregator
	logger *zap.Logger
}

func (c *components) Close() {
	c.agg.Close()
	if err := c.store.Close(); err != nil {
		c.logger.Warn("close storage", zap.Error(err))
	}
}

// Run boots pkgscout until the user quits, the one-shot query settles, or
// the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.Ephemeral {
		cfg.Storage = config.StorageMemory
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	if opts.LogLines > 0 {
		return printLog(out, cfg.LogPath, opts.LogLines)
	}

	logger := logging.NewOrNop(logging.FileConfig(cfg.LogLevel, cfg.LogPath))
	defer func() { _ = logger.Sync() }()

	c, err := build(cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	if opts.SavedList != "" {
		return runSaved(c, opts.SavedList, opts.Unsave, opts.ClearSaved, out)
	}
	if query := strings.TrimSpace(opts.Query); query != "" {
		return runOnce(ctx, c, query, out)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	return ui.Run(ctx, ui.Options{
		Aggregator: c.agg,
		Recent:     c.recent,
		Saved:      c.saved,
		ThemeName:  prefs.Load(prefsPath).Theme,
		PrefsPath:  prefsPath,
		Logger:     logger,
	})
}

func build(cfg config.Config, logger *zap.Logger) (*components, error) {
	client, err := registry.NewClient(cfg.RegistryURL,
		registry.WithRateLimit(cfg.RateLimit, registry.DefaultBurst),
		registry.WithUserAgent("pkgscout/"+Version),
	)
	if err != nil {
		return nil, fmt.Errorf("init registry client: %w", err)
	}

	names, err := popular.Load(cfg.PopularPath)
	if err != nil {
		logger.Warn("popular list unreadable, using built-in list",
			zap.String("path", cfg.PopularPath), zap.Error(err))
		names = popular.Default()
	}

	store := kv.New(openBackend(cfg, logger), logger)
	recentStore := recent.NewStore(store)
	savedStore := saved.NewStore(store, logger)

	agg := suggest.New(suggest.Options{
		Lookup:   client,
		Recent:   recentStore,
		Popular:  names,
		Logger:   logger,
		Debounce: cfg.Debounce,
		CacheTTL: cfg.CacheTTL,
	})

	logger.Info("pkgscout started",
		zap.String("registry", cfg.RegistryURL),
		zap.String("storage", cfg.Storage),
		zap.Bool("storage_available", store.Available()))

	return &components{
		store:  store,
		recent: recentStore,
		saved:  savedStore,
		agg:    agg,
		logger: logger,
	}, nil
}

func printLog(out io.Writer, path string, n int) error {
	lines, err := logging.Tail(path, n)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("write log: %w", err)
		}
	}
	return nil
}

// openBackend returns nil when the configured backend cannot be opened; the
// stores then behave as if storage were empty.
func openBackend(cfg config.Config, logger *zap.Logger) kv.Backend {
	switch cfg.Storage {
	case config.StorageMemory:
		return kv.NewMemory()
	case config.StorageSQLite:
		db, err := kv.OpenSQLite(cfg.SQLitePath())
		if err != nil {
			logger.Warn("storage unavailable", zap.String("backend", cfg.Storage), zap.Error(err))
			return nil
		}
		logger.Debug("sqlite storage opened",
			zap.String("path", cfg.SQLitePath()),
			zap.String("driver", kv.DriverName),
			zap.String("build", kv.BuildMode))
		return db
	default:
		dir, err := kv.NewFile(filepath.Join(cfg.DataDir, "store"))
		if err != nil {
			logger.Warn("storage unavailable", zap.String("backend", cfg.Storage), zap.Error(err))
			return nil
		}
		return dir
	}
}
