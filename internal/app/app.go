// Package app provides application lifecycle management.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/azyu/adventurecrafter/internal/adventure"
	"github.com/azyu/adventurecrafter/internal/persist"
	"github.com/azyu/adventurecrafter/internal/storage"
	"github.com/azyu/adventurecrafter/pkg/types"
	"github.com/rs/zerolog"
)

// Storage backends accepted in the config.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Options controls how New builds the application.
type Options struct {
	// ConfigPath overrides the global config location.
	ConfigPath string
	// LogOutput receives log lines. Defaults to stderr.
	LogOutput io.Writer
}

// App represents the main application instance.
type App struct {
	Config      *ConfigManager
	Logger      zerolog.Logger
	Store       *adventure.Store
	Persistence *persist.Adapter

	unsubscribe func()
	closer      io.Closer
}

// New loads the configuration, opens the configured storage medium and
// returns an application whose store is seeded from it.
func New(opts Options) (*App, error) {
	var configManager *ConfigManager
	if opts.ConfigPath != "" {
		configManager = NewConfigManagerAt(opts.ConfigPath)
	} else {
		var err error
		configManager, err = NewConfigManager()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize config manager: %w", err)
		}
	}

	globalConfig, err := configManager.LoadGlobalConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load global config: %w", err)
	}

	logOutput := opts.LogOutput
	if logOutput == nil {
		logOutput = os.Stderr
	}
	logger := NewLogger(globalConfig.Logging.Level, logOutput)

	medium, closer, err := openMedium(globalConfig.Storage)
	if err != nil {
		// Storage that cannot even be opened is treated like storage that
		// fails the probe: the app keeps working in memory.
		logger.Warn().Err(err).Str("backend", globalConfig.Storage.Backend).Msg("failed to open storage")
		medium, closer = nil, nil
	}

	a, err := Open(globalConfig, medium, logger)
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, err
	}
	a.Config = configManager
	a.closer = closer
	return a, nil
}

// Open wires a store and persistence adapter over an already opened medium.
// A nil medium runs the app in memory only.
func Open(config *types.GlobalConfig, medium storage.Medium, logger zerolog.Logger) (*App, error) {
	throttle, err := parseThrottle(config.Storage.Throttle)
	if err != nil {
		return nil, err
	}

	opts := []persist.Option{
		persist.WithKey(config.Storage.Key),
		persist.WithThrottle(throttle),
		persist.WithLogger(logger.With().Str("component", "persist").Logger()),
	}
	if medium == nil {
		opts = append(opts, persist.WithAvailability(false))
	}
	adapter := persist.New(medium, opts...)

	store := adventure.NewStore(types.InitialState(),
		adventure.WithLogger(logger.With().Str("component", "store").Logger()))
	unsubscribe := adapter.Bind(store)

	return &App{
		Logger:      logger,
		Store:       store,
		Persistence: adapter,
		unsubscribe: unsubscribe,
	}, nil
}

func openMedium(cfg types.StorageConfig) (storage.Medium, io.Closer, error) {
	switch cfg.Backend {
	case BackendSQLite:
		db, err := storage.NewSQLiteMedium(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil
	case BackendFile, "":
		return storage.NewOsFileMedium(cfg.Dir), nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown storage backend %q", ErrInvalidConfig, cfg.Backend)
	}
}

// Dispatch applies an intent to the store.
func (a *App) Dispatch(action adventure.Action) types.AdventureState {
	return a.Store.Dispatch(action)
}

// Close flushes pending writes and releases storage.
func (a *App) Close() error {
	var errs []error
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
	if a.Persistence != nil {
		if err := a.Persistence.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.closer != nil {
		if err := a.closer.Close(); err != nil {
			errs = append(errs, err)
		}
		a.closer = nil
	}
	return errors.Join(errs...)
}
