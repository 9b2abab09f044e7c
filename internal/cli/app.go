package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/reeflow/reeflow/pkg/cache"
	"github.com/reeflow/reeflow/pkg/config"
	"github.com/reeflow/reeflow/pkg/dataset"
	"github.com/reeflow/reeflow/pkg/diagram"
	"github.com/reeflow/reeflow/pkg/diagram/overrides"
	apperr "github.com/reeflow/reeflow/pkg/errors"
)

// appName is the application name used for directories and display.
const appName = "reeflow"

// app bundles the wired-up collaborators a command needs, plus a close
// function for the ones holding connections.
type app struct {
	cfg     config.Config
	dataset *dataset.Dataset
	session *diagram.Session
	store   overrides.Store
}

// newApp loads the config and wires dataset, store, cache, and session.
// dataPath, when non-empty, overrides the configured dataset path.
func newApp(ctx context.Context, configPath, dataPath string, logger *log.Logger) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dataPath != "" {
		cfg.Data.Path = dataPath
	}
	if cfg.Data.Path == "" {
		return nil, apperr.New(apperr.ErrCodeInvalidConfig, "no dataset: pass a data file or set data.path in the config")
	}

	ds, err := loadDataset(cfg.Data.Path)
	if err != nil {
		return nil, err
	}
	logger.Debug("dataset loaded", "path", cfg.Data.Path, "years", ds.Len())

	store, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	session := diagram.NewSession(diagram.Config{
		Dataset: ds,
		Store:   store,
		Cache:   newArtifactCache(ctx, cfg, logger),
		Keyer:   datasetKeyer(cfg.Data.Path),
		Logger:  logger,
		Canvas:  cfg.Canvas(),
		Layout:  cfg.LayoutOptions(),
	})
	return &app{cfg: cfg, dataset: ds, session: session, store: store}, nil
}

// close releases store connections.
func (a *app) close(ctx context.Context) {
	if a.store != nil {
		_ = a.store.Close(ctx)
	}
}

// loadDataset reads a dataset file, picking the reader by extension.
func loadDataset(path string) (*dataset.Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return dataset.LoadCSV(path)
	case ".json":
		return dataset.LoadJSON(path)
	default:
		return nil, apperr.New(apperr.ErrCodeInvalidFormat, "unsupported dataset format %q (want .csv or .json)", filepath.Ext(path))
	}
}

// newStore builds the configured override store.
func newStore(ctx context.Context, cfg config.Config) (overrides.Store, error) {
	switch cfg.Store.Backend {
	case "mongo":
		return overrides.NewMongoStore(ctx, overrides.MongoConfig{
			URI:        cfg.Store.URI,
			Database:   cfg.Store.Database,
			Collection: cfg.Store.Collection,
		})
	default:
		return overrides.NewFileStore(cfg.Store.Dir)
	}
}

// newArtifactCache builds the configured artifact cache. Backend failures
// degrade to no caching with a warning rather than aborting the command.
func newArtifactCache(ctx context.Context, cfg config.Config, logger *log.Logger) cache.Cache {
	switch cfg.Cache.Backend {
	case "file":
		dir := cfg.Cache.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				logger.Warn("cache disabled", "err", err)
				return cache.NewNullCache()
			}
		}
		c, err := cache.NewFileCache(dir)
		if err != nil {
			logger.Warn("cache disabled", "err", err)
			return cache.NewNullCache()
		}
		return c
	case "redis":
		c, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			logger.Warn("cache disabled", "err", err)
			return cache.NewNullCache()
		}
		return c
	default:
		return cache.NewNullCache()
	}
}

// datasetKeyer namespaces cache keys by dataset, so datasets sharing
// one cache backend cannot serve each other's entries.
func datasetKeyer(dataPath string) cache.Keyer {
	prefix := fmt.Sprintf("dataset:%s:", cache.Hash([]byte(dataPath))[:12])
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), prefix)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/reeflow/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// resolveYear picks the year to operate on: an explicit argument wins,
// otherwise the dataset's most recent year.
func resolveYear(arg string, session *diagram.Session) (int, error) {
	if arg != "" {
		var year int
		if _, err := fmt.Sscanf(arg, "%d", &year); err != nil {
			return 0, apperr.New(apperr.ErrCodeInvalidYear, "year must be an integer, got %q", arg)
		}
		return year, nil
	}
	years := session.Years()
	if len(years) == 0 {
		return 0, apperr.New(apperr.ErrCodeYearNotFound, "dataset has no years")
	}
	return years[len(years)-1], nil
}
