package main

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/lexis/internal/config"
)

func TestCorsMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := corsMiddleware(next, []string{"http://localhost:3000"})

	tests := []struct {
		name            string
		method          string
		origin          string
		wantStatus      int
		wantAllowOrigin string
	}{
		{
			name:            "allowed origin reaches the handler",
			method:          http.MethodPost,
			origin:          "http://localhost:3000",
			wantStatus:      http.StatusTeapot,
			wantAllowOrigin: "http://localhost:3000",
		},
		{
			name:       "unknown origin is not echoed",
			method:     http.MethodPost,
			origin:     "http://evil.example.com",
			wantStatus: http.StatusTeapot,
		},
		{
			name:            "preflight stops at the middleware",
			method:          http.MethodOptions,
			origin:          "http://localhost:3000",
			wantStatus:      http.StatusNoContent,
			wantAllowOrigin: "http://localhost:3000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/lexis.v1.ReviewService/GetQueue", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantAllowOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
			assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "X-Request-Id")
		})
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.LogConfig
		wantDebug   bool
		wantContent string
	}{
		{
			name:        "text at info",
			cfg:         config.LogConfig{Level: "info", Format: "text"},
			wantContent: "msg=hello",
		},
		{
			name:        "json at debug",
			cfg:         config.LogConfig{Level: "debug", Format: "json"},
			wantDebug:   true,
			wantContent: `"msg":"hello"`,
		},
		{
			name:        "unknown level falls back to info",
			cfg:         config.LogConfig{Level: "verbose", Format: "text"},
			wantContent: "msg=hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.cfg)

			assert.Equal(t, tt.wantDebug, logger.Enabled(context.Background(), slog.LevelDebug))
			logger.Info("hello")
			assert.Contains(t, buf.String(), tt.wantContent)
		})
	}
}

func TestOpenDatabase_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "lexis.db")
	db, err := openDatabase(context.Background(), config.DatabaseConfig{Driver: "sqlite", Path: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var tables []string
	require.NoError(t, db.Select(&tables,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name"))
	assert.Equal(t, []string{"review_events", "user_words", "word_meanings", "words"}, tables)
}
