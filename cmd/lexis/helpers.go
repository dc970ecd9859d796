package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/lexis/internal/config"
	"github.com/at-ishikawa/lexis/internal/database"
	"github.com/at-ishikawa/lexis/internal/dictionary"
	"github.com/at-ishikawa/lexis/internal/history"
	"github.com/at-ishikawa/lexis/internal/review"
	"github.com/at-ishikawa/lexis/internal/tracking"
	"github.com/at-ishikawa/lexis/internal/translate"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// services holds everything a command needs to talk to the database.
type services struct {
	db         *sqlx.DB
	translator *translate.Client
	records    *tracking.DBRepository
	meanings   *dictionary.DBRepository
	reviews    *review.Service
	history    *history.Service
	dictionary *dictionary.Service
}

func openServices(ctx context.Context) (*services, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	logger := slog.Default()
	records := tracking.NewDBRepository(db)
	meanings := dictionary.NewDBRepository(db)
	svc := &services{
		db:       db,
		records:  records,
		meanings: meanings,
		reviews:  review.NewService(records, meanings, cfg.Review, logger),
		history:  history.NewService(records, cfg.Review, logger),
	}

	// A nil interface, not a typed nil, disables translation
	var translator dictionary.Translator
	if cfg.Translate.BaseURL != "" && cfg.Translate.TargetLanguage != "" {
		svc.translator = translate.NewClient(cfg.Translate)
		translator = svc.translator
	}
	svc.dictionary = dictionary.NewService(meanings, newUpstream(cfg.Dictionaries.RapidAPI), translator, logger)
	return svc, nil
}

func (s *services) Close() {
	if s.translator != nil {
		if err := s.translator.Close(); err != nil {
			slog.Default().Warn("failed to close the translate client", "error", err)
		}
	}
	if err := s.db.Close(); err != nil {
		slog.Default().Warn("failed to close the database", "error", err)
	}
}

// openDatabase opens the configured database. A local SQLite file is created
// together with its schema on first use.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	if cfg.Driver == database.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(cfg.Path), err)
		}
	}
	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if cfg.Driver == database.DriverSQLite {
		if err := database.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("database.EnsureSchema() > %w", err)
		}
	}
	return db, nil
}

// newUpstream returns nil when no RapidAPI key is configured, which limits lookups to stored words.
func newUpstream(cfg config.RapidAPIConfig) dictionary.Upstream {
	if cfg.Key == "" {
		return nil
	}
	return dictionary.NewReader(cfg)
}
