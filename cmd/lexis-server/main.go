package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/lexis/internal/auth"
	"github.com/at-ishikawa/lexis/internal/bootstrap"
	"github.com/at-ishikawa/lexis/internal/config"
	"github.com/at-ishikawa/lexis/internal/database"
	"github.com/at-ishikawa/lexis/internal/dictionary"
	"github.com/at-ishikawa/lexis/internal/history"
	"github.com/at-ishikawa/lexis/internal/review"
	"github.com/at-ishikawa/lexis/internal/server"
	"github.com/at-ishikawa/lexis/internal/tracking"
	"github.com/at-ishikawa/lexis/internal/translate"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "lexis-server",
		Short:         "Lexis review service HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}
	logger := newLogger(os.Stderr, cfg.Log)
	slog.SetDefault(logger)
	app := bootstrap.New(bootstrap.WithLogger(logger))

	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	app.AddShutdownHook("database", func(context.Context) error {
		return db.Close()
	})

	handler, err := newHandler(app, db, cfg, logger)
	if err != nil {
		return fmt.Errorf("newHandler() > %w", err)
	}
	tokens, err := auth.NewTokenManager(cfg.Auth)
	if err != nil {
		return fmt.Errorf("auth.NewTokenManager() > %w", err)
	}

	mux := http.NewServeMux()
	handler.Register(mux, logger, auth.NewInterceptor(tokens))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: corsMiddleware(h2c.NewHandler(mux, &http2.Server{}), cfg.Server.CORS.AllowedOrigins),
	}
	app.AddShutdownHook("http server", srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		logger.InfoContext(ctx, "starting server", "addr", srv.Addr, "database", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	if cfg.Driver == database.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(cfg.Path), err)
		}
	}
	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}
	if cfg.Driver == database.DriverSQLite {
		if err := database.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("database.EnsureSchema() > %w", err)
		}
	}
	return db, nil
}

func newHandler(app *bootstrap.App, db *sqlx.DB, cfg *config.Config, logger *slog.Logger) (*server.Handler, error) {
	records := tracking.NewDBRepository(db)
	meanings := dictionary.NewDBRepository(db)

	var upstream dictionary.Upstream
	if cfg.Dictionaries.RapidAPI.Key != "" {
		upstream = dictionary.NewReader(cfg.Dictionaries.RapidAPI)
	} else {
		logger.Warn("RapidAPI key is not set, lookups are limited to stored words")
	}
	var translator dictionary.Translator
	if cfg.Translate.BaseURL != "" && cfg.Translate.TargetLanguage != "" {
		client := translate.NewClient(cfg.Translate)
		app.AddShutdownHook("translate client", func(context.Context) error {
			return client.Close()
		})
		translator = client
	}

	reviews := review.NewService(records, meanings, cfg.Review, logger)
	return server.NewHandler(
		reviews,
		reviews,
		dictionary.NewService(meanings, upstream, translator, logger),
		history.NewService(records, cfg.Review, logger),
	)
}

func corsMiddleware(next http.Handler, allowedOrigins []string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, X-Request-Id")
		w.Header().Set("Access-Control-Expose-Headers", "X-Request-Id")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
