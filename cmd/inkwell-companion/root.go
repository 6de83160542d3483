package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/inkwellkeeper/inkwell-companion/internal/config"
	"github.com/inkwellkeeper/inkwell-companion/internal/lorcana/catalog"
	"github.com/inkwellkeeper/inkwell-companion/internal/lorcana/collection"
	"github.com/inkwellkeeper/inkwell-companion/internal/storage"
	"github.com/inkwellkeeper/inkwell-companion/internal/version"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "inkwell-companion",
	Short: "Track a Lorcana card collection against the card catalog",
	Long: `Inkwell Companion tracks a physical Lorcana card collection against the
canonical card catalog, reconciles card identities across reprints and
variants, imports and exports collection lists in several dialects, and
reports deck completion.`,
	Version:      version.GetVersion(),
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "inkwell.toml", "path to config file")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(collectionCmd)
	rootCmd.AddCommand(deckCmd)
	rootCmd.AddCommand(backupCmd)
}

// app bundles the constructed services a command needs. Everything is
// dependency-injected from here; no package-level service state.
type app struct {
	cfg        *config.Config
	logger     *slog.Logger
	catalog    *catalog.Service
	db         *storage.DB
	store      *storage.CollectionStore
	decks      *storage.DeckStore
	aggregator *collection.Aggregator
	watcher    *catalog.Watcher
}

// newApp loads configuration, opens the database, loads the catalog, and
// restores the aggregator from the store.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if cfg.App.DebugMode {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cat := catalog.NewService(logger)
	if err := cat.LoadDir(cfg.Data.Dir); err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	db, err := storage.Open(&storage.Config{
		Path:        cfg.Database.Path,
		AutoMigrate: cfg.Database.AutoMigrate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open collection database: %w", err)
	}

	store := storage.NewCollectionStore(db)
	agg := collection.New(collection.Config{Store: store, Logger: logger})

	entries, err := store.LoadEntries(cmd.Context())
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to restore collection: %w", err)
	}
	agg.Restore(entries)

	a := &app{
		cfg:        cfg,
		logger:     logger,
		catalog:    cat,
		db:         db,
		store:      store,
		decks:      storage.NewDeckStore(db),
		aggregator: agg,
	}

	if cfg.Data.WatchForChanges {
		w, err := catalog.NewWatcher(catalog.WatcherConfig{
			Catalog:  cat,
			Dir:      cfg.Data.Dir,
			Debounce: time.Duration(cfg.Data.WatchDebounceMS) * time.Millisecond,
			Logger:   logger,
		})
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		if err := w.Start(); err != nil {
			_ = db.Close()
			return nil, err
		}
		a.watcher = w
	}

	return a, nil
}

// close releases the app's resources.
func (a *app) close() {
	if a.watcher != nil {
		_ = a.watcher.Stop()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}
