package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/flashdeck/flashdeck-api/internal/collection"
	"github.com/flashdeck/flashdeck-api/internal/config"
	"github.com/flashdeck/flashdeck-api/internal/platform/storage"
	"github.com/flashdeck/flashdeck-api/internal/session"
)

// application holds the fully wired dependencies of the running server.
type application struct {
	config   *config.Config
	logger   *slog.Logger
	store    *collection.Store
	settings *collection.SettingsStore
	sessions *session.Manager
	closeFn  func()
}

// newApplication opens the configured record store, builds the collection
// and settings stores on top of it, hydrates them, and wires the session
// manager to collection changes.
//
// Hydration happens here, before any route is registered, so every
// mutation the server accepts operates on loaded state and can never
// clobber previously persisted data with an empty pre-hydration write.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (*application, error) {
	records, closeFn, err := openRecordStore(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}

	store := collection.New(records, logger)
	settings := collection.NewSettings(records, logger)
	store.Hydrate(ctx)
	settings.Hydrate(ctx)

	sessions := session.NewManager(logger)
	store.Subscribe(sessions.HandleSnapshot)

	logger.Info("application initialized",
		"storage_backend", cfg.Storage.Backend,
		"storage_path", cfg.Storage.Path)

	return &application{
		config:   cfg,
		logger:   logger,
		store:    store,
		settings: settings,
		sessions: sessions,
		closeFn:  closeFn,
	}, nil
}

// openRecordStore builds the durable record backend selected by config.
// The returned func releases backend resources on shutdown.
func openRecordStore(
	ctx context.Context,
	cfg config.StorageConfig,
) (storage.RecordStore, func(), error) {
	switch cfg.Backend {
	case "sqlite":
		store, err := storage.NewSQLiteStore(ctx, cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				slog.Error("failed to close sqlite store", "error", err)
			}
		}, nil
	case "file":
		store, err := storage.NewFileStore(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	default:
		// Config validation rejects unknown backends before we get here.
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// cleanup releases application resources. Safe to call once at shutdown.
func (app *application) cleanup() {
	if app.closeFn != nil {
		app.closeFn()
	}
}
