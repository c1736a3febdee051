package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	sqliterepo "github.com/bnema/autounclaim/internal/adapters/repo/sqlite"
	tomlrepo "github.com/bnema/autounclaim/internal/adapters/repo/toml"
	"github.com/bnema/autounclaim/internal/application"
	"github.com/bnema/autounclaim/internal/config"
	"github.com/bnema/autounclaim/internal/logging"
	"github.com/bnema/autounclaim/internal/ports"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type claimStore interface {
	ports.ActivityOracle
	ports.ClaimDirectory
}

type settings struct {
	cfg      config.Config
	viper    *viper.Viper
	logger   zerolog.Logger
	warnings []string
}

type app struct {
	settings
	store   claimStore
	closers []io.Closer
	engine  *application.PruneEngine
	service *application.PruneService
	now     func() time.Time
}

// loadSettings reads configuration and builds the logger. Config warnings
// are logged once here.
func loadSettings(opts *rootOptions, logOutput io.Writer) (settings, error) {
	v := viper.New()
	cfg, warnings, err := config.Load(v, opts.configPath)
	if err != nil {
		return settings{}, fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: logOutput,
	})
	for _, warning := range warnings {
		logger.Warn().Msg(warning)
	}

	return settings{cfg: cfg, viper: v, logger: logger, warnings: warnings}, nil
}

func wireApp(ctx context.Context, opts *rootOptions, logOutput io.Writer) (*app, error) {
	s, err := loadSettings(opts, logOutput)
	if err != nil {
		return nil, err
	}

	a := &app{settings: s, now: time.Now}

	switch s.cfg.Store.Driver {
	case config.DriverSQLite:
		store, err := sqliterepo.Open(ctx, s.cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("wire sqlite store: %w", err)
		}
		a.store = store
		a.closers = append(a.closers, store)
	default:
		s.viper.Set("store.path", s.cfg.Store.Path)
		repo, err := tomlrepo.NewRepository(s.viper)
		if err != nil {
			return nil, fmt.Errorf("wire toml store: %w", err)
		}
		a.store = repo
	}

	duplicates := application.CountPerOwner
	if s.cfg.Prune.DedupeClaims {
		duplicates = application.DedupeByClaim
	}

	a.engine, err = application.NewPruneEngine(a.store, a.store, application.EngineConfig{
		Threshold:  s.cfg.InactivePeriod.Duration(),
		Duplicates: duplicates,
		Clock:      ports.SystemClock{},
		Logger:     s.logger.With().Str("component", "engine").Logger(),
	})
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("wire prune engine: %w", err)
	}

	a.service = application.NewPruneService(
		a.engine,
		application.GuardReject,
		ports.SystemClock{},
		s.logger.With().Str("component", "prune").Logger(),
	)

	return a, nil
}

func (a *app) Close() error {
	var firstErr error
	for _, closer := range a.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}
